// Package budgetalertrelay is a Cloud Function that forwards GCP budget
// notifications to an MS Teams channel.
package budgetalertrelay

import (
	"context"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/logging"
	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/relay"
)

func init() {
	logging.SetupFromEnv()

	// The webhook URL is fetched once per instance, on cold start
	r := relay.Bootstrap(context.Background(), nil)

	// "ProcessBudgetAlert" will be the entrypoint function
	functions.CloudEvent("ProcessBudgetAlert", r.HandleCloudEvent)
}
