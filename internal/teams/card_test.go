package teams_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/budget"
	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/teams"
)

func engBudget() budget.Message {
	msg := budget.NewMessage()
	msg.BudgetDisplayName = "Eng Budget"
	msg.CostAmount = decimal.NewFromInt(150)
	msg.BudgetAmount = decimal.NewFromInt(200)
	return msg
}

func threshold(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestBuildSections_NoThresholds(t *testing.T) {
	assert.Empty(t, teams.BuildSections(engBudget()))

	msg := engBudget()
	msg.AlertThresholdExceeded = threshold("0")
	msg.ForecastThresholdExceeded = threshold("0")
	assert.Empty(t, teams.BuildSections(msg))
}

func TestBuildSections_ActualOnly(t *testing.T) {
	msg := engBudget()
	msg.AlertThresholdExceeded = threshold("0.75")

	sections := teams.BuildSections(msg)
	require.Len(t, sections, 1)

	s := sections[0]
	assert.Equal(t, "**🚨 Budget ALERT (Actual Spend): Eng Budget**", s.ActivityTitle)
	assert.Equal(t, "You have spent 75% of your budget.", s.ActivitySubtitle)
	assert.True(t, s.Markdown)
	assert.Equal(t, []teams.Fact{
		{Name: "Budget Name:", Value: "Eng Budget"},
		{Name: "Current Cost:", Value: "150.00 USD"},
		{Name: "Budget Amount:", Value: "200.00 USD"},
		{Name: "Triggered Threshold:", Value: "75% (Actual Spend)"},
	}, s.Facts)
}

func TestBuildSections_ForecastOnly(t *testing.T) {
	msg := engBudget()
	msg.ForecastThresholdExceeded = threshold("1.2")

	sections := teams.BuildSections(msg)
	require.Len(t, sections, 1)

	s := sections[0]
	assert.Equal(t, "**⚠️ Budget WARNING (Forecasted Spend): Eng Budget**", s.ActivityTitle)
	assert.Equal(t, "You are *forecasted* to spend 120% of your budget.", s.ActivitySubtitle)
	assert.Equal(t, "120% (Forecasted Spend)", s.Facts[3].Value)
}

func TestBuildSections_BothActualFirst(t *testing.T) {
	msg := engBudget()
	msg.AlertThresholdExceeded = threshold("0.5")
	msg.ForecastThresholdExceeded = threshold("1.0")

	sections := teams.BuildSections(msg)
	require.Len(t, sections, 2)
	assert.Contains(t, sections[0].ActivityTitle, "Actual Spend")
	assert.Equal(t, "50% (Actual Spend)", sections[0].Facts[3].Value)
	assert.Contains(t, sections[1].ActivityTitle, "Forecasted Spend")
	assert.Equal(t, "100% (Forecasted Spend)", sections[1].Facts[3].Value)
}

func TestBuildSections_Defaults(t *testing.T) {
	msg := budget.NewMessage()
	msg.AlertThresholdExceeded = threshold("0.9")

	sections := teams.BuildSections(msg)
	require.Len(t, sections, 1)
	assert.Contains(t, sections[0].ActivityTitle, "Unnamed Budget")
	assert.Equal(t, "0.00 USD", sections[0].Facts[1].Value)
}

func TestNewMessageCard_JSON(t *testing.T) {
	msg := engBudget()
	msg.AlertThresholdExceeded = threshold("0.75")
	card := teams.NewMessageCard(msg.BudgetDisplayName, teams.BuildSections(msg))

	body, err := json.Marshal(card)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, "MessageCard", got["@type"])
	assert.Equal(t, "http://schema.org/extensions", got["@context"])
	assert.Equal(t, "FF0000", got["themeColor"])
	assert.Equal(t, "GCP Budget Alert for Eng Budget", got["summary"])

	sections, ok := got["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 1)

	section := sections[0].(map[string]any)
	assert.Equal(t, true, section["markdown"])
	facts := section["facts"].([]any)
	require.Len(t, facts, 4)
	assert.Equal(t, map[string]any{"name": "Current Cost:", "value": "150.00 USD"}, facts[1])
}
