package service

import (
	"fmt"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/stripe"
)

// Composite keys of the handled outcomes.
const (
	KeyActiveSucceeded           = "active|succeeded"
	KeyIncompleteRequiresPayment = "incomplete|requires_payment_method"
)

// CompositeKey joins the subscription status and the payment intent status.
func CompositeKey(sub *stripe.Subscription) string {
	return sub.Status + "|" + sub.PaymentIntentStatus
}

// Classify maps a composite key to an outcome. Only two keys are handled; any
// other key, trial states included, is an ErrUnsupportedOutcome.
func Classify(key string) (domain.Outcome, error) {
	switch key {
	case KeyActiveSucceeded:
		return domain.Outcome{Type: domain.OutcomeSuccess, Code: key, Title: domain.TitleThanks}, nil
	case KeyIncompleteRequiresPayment:
		return domain.Outcome{Type: domain.OutcomeFailure, Code: key, Title: domain.TitlePaymentFailed}, nil
	default:
		return domain.Outcome{}, domain.NewCheckoutError(domain.KindDefect, "Classify",
			fmt.Errorf("%w: %q", domain.ErrUnsupportedOutcome, key))
	}
}
