// Package budget decodes Cloud Billing budget notifications delivered through
// Pub/Sub CloudEvents.
package budget

import "github.com/shopspring/decimal"

// Default values for fields missing from a notification.
const (
	DefaultCurrencyCode      = "USD"
	DefaultBudgetDisplayName = "Unnamed Budget"
)

// Envelope is the data of a Pub/Sub CloudEvent.
// https://cloud.google.com/eventarc/docs/cloudevents#pubsub
type Envelope struct {
	Message      *PubSubMessage `json:"message"`
	Subscription string         `json:"subscription,omitempty"`
}

// PubSubMessage is a standard Pub/Sub message. Data is kept base64-encoded so
// a missing field can be told apart from an empty one.
// https://cloud.google.com/pubsub/docs/reference/rest/v1/PubsubMessage
type PubSubMessage struct {
	Attributes  Attributes `json:"attributes"`
	Data        *string    `json:"data"`
	MessageID   string     `json:"messageId,omitempty"`
	PublishTime string     `json:"publishTime,omitempty"`
}

// Attributes of an automatic budget notification.
// https://cloud.google.com/billing/docs/how-to/budgets-programmatic-notifications#notification_format
type Attributes struct {
	BillingAccountID string `json:"billingAccountId,omitempty"`
	BudgetID         string `json:"budgetId,omitempty"`
	SchemaVersion    string `json:"schemaVersion,omitempty"`
}

// Message is the "data" part of a budget notification.
type Message struct {
	BudgetDisplayName string          `json:"budgetDisplayName"`
	CostAmount        decimal.Decimal `json:"costAmount"`
	BudgetAmount      decimal.Decimal `json:"budgetAmount"`
	CurrencyCode      string          `json:"currencyCode"`

	// Fractions of the budget, e.g. 0.9. Absent until a threshold is crossed.
	AlertThresholdExceeded    decimal.NullDecimal `json:"alertThresholdExceeded"`
	ForecastThresholdExceeded decimal.NullDecimal `json:"forecastThresholdExceeded"`

	BudgetAmountType  string `json:"budgetAmountType,omitempty"`
	CostIntervalStart string `json:"costIntervalStart,omitempty"`
	SchemaVersion     string `json:"schemaVersion,omitempty"`
}

// NewMessage returns a Message with the documented defaults applied.
func NewMessage() Message {
	return Message{
		BudgetDisplayName: DefaultBudgetDisplayName,
		CurrencyCode:      DefaultCurrencyCode,
	}
}

// ActualTriggered reports whether an actual-spend threshold was crossed.
// A threshold of zero counts as not crossed.
func (m Message) ActualTriggered() bool {
	return triggered(m.AlertThresholdExceeded)
}

// ForecastTriggered reports whether a forecasted-spend threshold was crossed.
func (m Message) ForecastTriggered() bool {
	return triggered(m.ForecastThresholdExceeded)
}

func triggered(d decimal.NullDecimal) bool {
	return d.Valid && !d.Decimal.IsZero()
}

// Notification is a decoded budget notification.
type Notification struct {
	Attributes  Attributes
	MessageID   string
	PublishTime string
	Message     Message
}
