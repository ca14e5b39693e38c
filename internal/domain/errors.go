package domain

import (
	"errors"
	"fmt"
)

// Input rejections. Their messages are returned to the client verbatim.
var (
	ErrBadRequest     = errors.New("Bad request")
	ErrBadAmount      = errors.New("Bad amount or not same currency")
	ErrBadEmail       = errors.New("Bad e-mail")
	ErrBadCompanyName = errors.New("Bad company name")
)

// Failures after validation. None of these reach the client.
var (
	// ErrCatalogMisconfigured the processor catalog does not hold exactly the two license products
	ErrCatalogMisconfigured = errors.New("catalog misconfigured")

	// ErrPlanSuffix a plan identifier has no usable trailing numeric suffix
	ErrPlanSuffix = errors.New("plan identifier without numeric suffix")

	// ErrUnsupportedOutcome the subscription/payment state pair is not handled
	ErrUnsupportedOutcome = errors.New("unsupported outcome")

	// ErrProcessor the payment processor call failed
	ErrProcessor = errors.New("payment processor error")
)

// ErrorKind tags a checkout failure with its category.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInputRejection
	KindConfiguration
	KindProcessor
	KindDefect
)

// String returns the kind name used in logs and metric labels.
func (k ErrorKind) String() string {
	switch k {
	case KindInputRejection:
		return "input_rejection"
	case KindConfiguration:
		return "configuration"
	case KindProcessor:
		return "processor"
	case KindDefect:
		return "defect"
	default:
		return "unknown"
	}
}

// CheckoutError is a failure of one checkout step
type CheckoutError struct {
	Kind        ErrorKind
	Op          string
	OriginalErr error
}

// Error implements the error interface
func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout %s [%s]: %v", e.Op, e.Kind, e.OriginalErr)
}

// Unwrap returns the wrapped error
func (e *CheckoutError) Unwrap() error {
	return e.OriginalErr
}

// NewCheckoutError creates a new checkout error
func NewCheckoutError(kind ErrorKind, op string, err error) *CheckoutError {
	return &CheckoutError{
		Kind:        kind,
		Op:          op,
		OriginalErr: err,
	}
}

// Reject wraps one of the input rejection sentinels.
func Reject(op string, err error) *CheckoutError {
	return NewCheckoutError(KindInputRejection, op, err)
}

// KindOf classifies err. Untagged errors are reported as defects, except for
// the well known sentinels.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var ce *CheckoutError
	if errors.As(err, &ce) {
		return ce.Kind
	}

	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrBadAmount),
		errors.Is(err, ErrBadEmail), errors.Is(err, ErrBadCompanyName):
		return KindInputRejection
	case errors.Is(err, ErrCatalogMisconfigured), errors.Is(err, ErrPlanSuffix):
		return KindConfiguration
	case errors.Is(err, ErrProcessor):
		return KindProcessor
	default:
		return KindDefect
	}
}

// RejectionMessage returns the client facing message of an input rejection,
// and false for any other error.
func RejectionMessage(err error) (string, bool) {
	if KindOf(err) != KindInputRejection {
		return "", false
	}
	for _, sentinel := range []error{ErrBadAmount, ErrBadEmail, ErrBadCompanyName, ErrBadRequest} {
		if errors.Is(err, sentinel) {
			return sentinel.Error(), true
		}
	}
	return ErrBadRequest.Error(), true
}
