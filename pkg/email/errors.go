package email

import (
	"fmt"
	"net/http"
)

// ValidationError indicates a message that cannot be handed to any
// provider: missing recipient, bad recipient shape, or no body.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid email message: %s: %s", e.Field, e.Reason)
}

// DeliveryErrorKind categorizes provider failures.
type DeliveryErrorKind string

const (
	// DeliveryRejected - the provider refused the recipient address
	DeliveryRejected DeliveryErrorKind = "rejected"
	// DeliveryDomainUnverified - the sender domain is not verified with the provider
	DeliveryDomainUnverified DeliveryErrorKind = "domain_unverified"
	// DeliveryConfig - the provider is misconfigured
	DeliveryConfig DeliveryErrorKind = "configuration"
	// DeliveryFailed - generic provider or network failure
	DeliveryFailed DeliveryErrorKind = "failed"
)

// DeliveryError wraps a provider failure with a category and an
// HTTP-style status code for the API layer.
type DeliveryError struct {
	Kind       DeliveryErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func newDeliveryError(kind DeliveryErrorKind, message string, err error) *DeliveryError {
	status := http.StatusInternalServerError
	if kind == DeliveryRejected {
		status = http.StatusBadRequest
	}
	return &DeliveryError{
		Kind:       kind,
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}
