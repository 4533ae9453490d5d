package budget

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/errs"
)

var (
	errMissingMessage = errors.New(`missing "message" field`)
	errMissingData    = errors.New(`missing "message.data" field`)
	errNotObject      = errors.New("budget message is not a JSON object")
)

// Bounds on the amounts and thresholds of a notification. Formatting expands
// a value into all of its digits, so exponents are limited before that.
const (
	maxDigits        = 40
	maxIntegerDigits = 18
	minExponent      = -20
)

// Decode unwraps the Pub/Sub envelope in payload and parses the budget
// notification inside it. Fields missing from the notification keep their
// defaults. Every failure is a DecodeError.
func Decode(payload []byte) (*Notification, error) {
	if !utf8.Valid(payload) {
		return nil, errs.DecodeError.New("event data is not valid UTF-8")
	}

	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, errs.DecodeError.Wrap(err, "parse event data")
	}
	if envelope.Message == nil {
		return nil, errs.DecodeError.Wrap(errMissingMessage, "parse event data")
	}
	if envelope.Message.Data == nil {
		return nil, errs.DecodeError.Wrap(errMissingData, "parse event data")
	}

	data, err := base64.StdEncoding.DecodeString(*envelope.Message.Data)
	if err != nil {
		return nil, errs.DecodeError.Wrap(err, "decode message data")
	}

	msg, err := parseMessage(data)
	if err != nil {
		return nil, errs.DecodeError.Wrap(err, "parse budget message")
	}

	return &Notification{
		Attributes:  envelope.Message.Attributes,
		MessageID:   envelope.Message.MessageID,
		PublishTime: envelope.Message.PublishTime,
		Message:     msg,
	}, nil
}

func parseMessage(data []byte) (Message, error) {
	msg := NewMessage()

	if !utf8.Valid(data) {
		return msg, errors.New("message data is not valid UTF-8")
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return msg, errNotObject
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, err
	}
	if err := msg.checkRange(); err != nil {
		return msg, err
	}
	return msg, nil
}

func (m Message) checkRange() error {
	amounts := []struct {
		field string
		value decimal.Decimal
		valid bool
	}{
		{"costAmount", m.CostAmount, true},
		{"budgetAmount", m.BudgetAmount, true},
		{"alertThresholdExceeded", m.AlertThresholdExceeded.Decimal, m.AlertThresholdExceeded.Valid},
		{"forecastThresholdExceeded", m.ForecastThresholdExceeded.Decimal, m.ForecastThresholdExceeded.Valid},
	}

	for _, a := range amounts {
		if !a.valid {
			continue
		}
		if !inRange(a.value) {
			return fmt.Errorf("%s is out of range", a.field)
		}
	}
	return nil
}

func inRange(d decimal.Decimal) bool {
	if d.IsZero() && d.Exponent() == 0 {
		return true
	}
	digits := d.NumDigits()
	exp := int64(d.Exponent())
	return digits <= maxDigits && exp >= minExponent && int64(digits)+exp <= maxIntegerDigits
}

// Encode wraps msg into the envelope Decode accepts.
func Encode(msg Message, attrs Attributes) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("error while encoding budget message: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	envelope := Envelope{
		Message: &PubSubMessage{
			Attributes: attrs,
			Data:       &encoded,
		},
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("error while encoding event data: %w", err)
	}
	return payload, nil
}
