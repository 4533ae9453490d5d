// Package errs defines the error kinds the relay distinguishes between.
//
// Configuration and disabled-state errors are permanent: redelivering the
// event cannot help. Decode errors are returned to the platform as well, which
// asks for redelivery of a message that will fail again. Delivery errors are
// marked temporary.
package errs

import "github.com/joomcode/errorx"

var (
	namespace = errorx.NewNamespace("budgetrelay")

	ConfigurationError = namespace.NewType("configuration")
	DisabledError      = namespace.NewType("disabled")
	DecodeError        = namespace.NewType("decode")
	DeliveryError      = namespace.NewType("delivery", errorx.Temporary())
)

// Kind returns a short name for the kind of err, for use as a log field.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errorx.IsOfType(err, ConfigurationError):
		return "configuration"
	case errorx.IsOfType(err, DisabledError):
		return "disabled"
	case errorx.IsOfType(err, DecodeError):
		return "decode"
	case errorx.IsOfType(err, DeliveryError):
		return "delivery"
	default:
		return "unknown"
	}
}
