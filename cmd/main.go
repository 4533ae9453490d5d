// Command main serves the function locally:
//
//	FUNCTION_TARGET=ProcessBudgetAlert GCP_PROJECT_ID=... SECRET_ID=... go run ./cmd
package main

import (
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/rs/zerolog/log"

	_ "github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay"
)

func main() {
	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	if err := funcframework.Start(port); err != nil {
		log.Fatal().Err(err).Msg("funcframework.Start")
	}
}
