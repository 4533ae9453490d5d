// Package relay turns budget notifications into Teams alerts.
package relay

import (
	"context"
	"net/http"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/budget"
	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/config"
	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/errs"
	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/teams"
)

// Poster delivers a card to the chat webhook.
type Poster interface {
	Post(ctx context.Context, card teams.MessageCard) error
}

// Relay handles one budget notification per call. A Relay without a webhook
// is disabled and drops every event.
type Relay struct {
	poster Poster
}

// Option configures a Relay.
type Option func(*relayOptions)

type relayOptions struct {
	httpClient *http.Client
	poster     Poster
}

// WithHTTPClient sets the HTTP client used to call the webhook.
func WithHTTPClient(c *http.Client) Option {
	return func(o *relayOptions) { o.httpClient = c }
}

// WithPoster replaces the webhook client altogether.
func WithPoster(p Poster) Option {
	return func(o *relayOptions) { o.poster = p }
}

// New creates a relay for cfg. cfg may be nil, which yields a disabled relay.
func New(cfg *config.Config, opts ...Option) *Relay {
	var o relayOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := &Relay{}
	if !cfg.Enabled() {
		return r
	}

	r.poster = o.poster
	if r.poster == nil {
		r.poster = teams.NewClient(cfg.WebhookURL, teams.WithHTTPClient(o.httpClient))
	}
	return r
}

// Bootstrap resolves the configuration at cold start. Failures are logged and
// produce a disabled relay instead of an error, so a misconfigured function
// does not crash on every start.
func Bootstrap(ctx context.Context, clientOpts []option.ClientOption, opts ...Option) *Relay {
	cfg, err := config.Load(ctx, clientOpts...)
	if err != nil {
		log.Error().Err(err).Str("kind", errs.Kind(err)).Msg("Failed to initialize secrets on cold start, relay is disabled")
		return New(nil, opts...)
	}

	log.Info().Str("secret", cfg.SecretPath).Msg("Resolved Teams webhook URL")
	return New(cfg, opts...)
}

// Enabled reports whether events are relayed.
func (r *Relay) Enabled() bool {
	return r.poster != nil
}

// HandleCloudEvent is the CloudEvent entrypoint.
func (r *Relay) HandleCloudEvent(ctx context.Context, e event.Event) error {
	log.Info().Str("id", e.ID()).Str("source", e.Source()).Str("type", e.Type()).Msg("Received event")
	return r.Handle(ctx, e.Data())
}

// Handle relays the Pub/Sub event data in payload.
//
// A disabled relay logs and returns nil: redelivery cannot fix missing
// configuration. Decode and delivery errors are returned so the platform
// applies its redelivery policy.
func (r *Relay) Handle(ctx context.Context, payload []byte) error {
	if !r.Enabled() {
		err := errs.DisabledError.New("Teams webhook URL is not configured")
		log.Error().Err(err).Msg("Halting function")
		return nil
	}

	n, err := budget.Decode(payload)
	if err != nil {
		log.Error().Err(err).Str("kind", errs.Kind(err)).Msg("Error processing budget alert")
		return err
	}

	msg := n.Message
	logger := log.With().
		Str("budget", msg.BudgetDisplayName).
		Str("budgetId", n.Attributes.BudgetID).
		Str("billingAccountId", n.Attributes.BillingAccountID).
		Str("messageId", n.MessageID).
		Logger()

	sections := teams.BuildSections(msg)
	if len(sections) == 0 {
		logger.Debug().Msg("No threshold exceeded, nothing to send")
		return nil
	}

	logger.Info().Int("sections", len(sections)).Msg("Sending formatted alert to Teams")
	card := teams.NewMessageCard(msg.BudgetDisplayName, sections)
	if err := r.poster.Post(ctx, card); err != nil {
		logger.Error().Err(err).Str("kind", errs.Kind(err)).Msg("Error processing budget alert")
		return err
	}

	logger.Info().Msg("Successfully sent alert to Teams")
	return nil
}
