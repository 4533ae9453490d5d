// Package teams builds MS Teams MessageCards for budget alerts and posts them
// to an incoming webhook.
package teams

import (
	"fmt"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/budget"
)

const (
	cardType    = "MessageCard"
	cardContext = "http://schema.org/extensions"

	// ThemeColor is the accent color of every alert card.
	ThemeColor = "FF0000"
)

// MessageCard is the legacy actionable message card accepted by Teams
// incoming webhooks.
// https://learn.microsoft.com/en-us/outlook/actionable-messages/message-card-reference
type MessageCard struct {
	Type       string    `json:"@type"`
	Context    string    `json:"@context"`
	ThemeColor string    `json:"themeColor"`
	Summary    string    `json:"summary"`
	Sections   []Section `json:"sections"`
}

// Section is one alert inside a card.
type Section struct {
	ActivityTitle    string `json:"activityTitle"`
	ActivitySubtitle string `json:"activitySubtitle"`
	Facts            []Fact `json:"facts"`
	Markdown         bool   `json:"markdown"`
}

// Fact is a label/value row of a section.
type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewMessageCard wraps sections into a card for the named budget.
func NewMessageCard(budgetName string, sections []Section) MessageCard {
	return MessageCard{
		Type:       cardType,
		Context:    cardContext,
		ThemeColor: ThemeColor,
		Summary:    fmt.Sprintf("GCP Budget Alert for %s", budgetName),
		Sections:   sections,
	}
}

// BuildSections returns one section per crossed threshold, actual spend
// first. It returns nil when no threshold was crossed.
func BuildSections(msg budget.Message) []Section {
	var sections []Section

	if msg.ActualTriggered() {
		pct := FormatPercent(msg.AlertThresholdExceeded.Decimal)
		sections = append(sections, Section{
			ActivityTitle:    fmt.Sprintf("**🚨 Budget ALERT (Actual Spend): %s**", msg.BudgetDisplayName),
			ActivitySubtitle: fmt.Sprintf("You have spent %s of your budget.", pct),
			Facts:            facts(msg, pct+" (Actual Spend)"),
			Markdown:         true,
		})
	}

	if msg.ForecastTriggered() {
		pct := FormatPercent(msg.ForecastThresholdExceeded.Decimal)
		sections = append(sections, Section{
			ActivityTitle:    fmt.Sprintf("**⚠️ Budget WARNING (Forecasted Spend): %s**", msg.BudgetDisplayName),
			ActivitySubtitle: fmt.Sprintf("You are *forecasted* to spend %s of your budget.", pct),
			Facts:            facts(msg, pct+" (Forecasted Spend)"),
			Markdown:         true,
		})
	}

	return sections
}

func facts(msg budget.Message, threshold string) []Fact {
	return []Fact{
		{Name: "Budget Name:", Value: msg.BudgetDisplayName},
		{Name: "Current Cost:", Value: FormatMoney(msg.CostAmount, msg.CurrencyCode)},
		{Name: "Budget Amount:", Value: FormatMoney(msg.BudgetAmount, msg.CurrencyCode)},
		{Name: "Triggered Threshold:", Value: threshold},
	}
}
