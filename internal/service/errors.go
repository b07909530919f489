package service

import "net/http"

// ErrorKind is the closed set of checkout failure classes. Handlers switch on
// the kind, never on error strings.
type ErrorKind int

const (
	// KindInvalidRequest covers malformed bodies and missing required fields.
	KindInvalidRequest ErrorKind = iota
	// KindPackageUnavailable covers unknown and inactive package ids.
	KindPackageUnavailable
	// KindMisconfigured covers missing deployment credentials.
	KindMisconfigured
	// KindUpstream covers failed provider or database calls.
	KindUpstream
)

// CheckoutError carries a caller-facing message plus the upstream error text
// in Details. Details must only ever hold the upstream's own message, never
// credentials or configuration values.
type CheckoutError struct {
	Kind    ErrorKind
	Message string
	Details string
}

func (e *CheckoutError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *CheckoutError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidRequest, KindPackageUnavailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func invalidRequest(message string) *CheckoutError {
	return &CheckoutError{Kind: KindInvalidRequest, Message: message}
}

func packageUnavailable(message string) *CheckoutError {
	return &CheckoutError{Kind: KindPackageUnavailable, Message: message}
}

func misconfigured(message string) *CheckoutError {
	return &CheckoutError{Kind: KindMisconfigured, Message: message}
}

func upstreamFailure(message, details string) *CheckoutError {
	return &CheckoutError{Kind: KindUpstream, Message: message, Details: details}
}
