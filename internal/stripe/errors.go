package stripe

import (
	"errors"
	"fmt"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/pkg/logger"

	"github.com/stripe/stripe-go/v78"
)

// wrapError logs err and tags it as a processor failure of operation.
func wrapError(log *logger.Logger, operation string, err error) error {
	logStripeError(log, operation, err)
	return domain.NewCheckoutError(domain.KindProcessor, operation,
		fmt.Errorf("%w: %w", domain.ErrProcessor, err))
}

// logStripeError logs the details Stripe attaches to an API error.
func logStripeError(log *logger.Logger, operation string, err error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		log.Errorw("Stripe API error",
			"operation", operation,
			"type", string(stripeErr.Type),
			"code", string(stripeErr.Code),
			"param", stripeErr.Param,
			"message", stripeErr.Msg,
			"request_id", stripeErr.RequestID,
			"status_code", stripeErr.HTTPStatusCode,
		)
		return
	}
	log.Errorw("Non-Stripe error during Stripe operation",
		"operation", operation,
		"error", err,
	)
}
