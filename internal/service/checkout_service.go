package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/email"
	"github.com/logary/checkout-service/internal/pricing"
	"github.com/logary/checkout-service/pkg/logger"
)

// CheckoutRecorder receives checkout results for metrics.
type CheckoutRecorder interface {
	RecordOutcome(outcome domain.Outcome)
	RecordRejection(reason string)
	RecordFailure(kind domain.ErrorKind)
}

// EventPublisher publishes checkout events. Implementations must not block on
// the broker.
type EventPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, event domain.CheckoutCompleted) error
}

// CheckoutService turns an order into a subscription.
type CheckoutService interface {
	Checkout(ctx context.Context, order domain.Order) (domain.Outcome, error)
}

type checkoutService struct {
	calculator *pricing.Calculator
	customers  CustomerReconciler
	builder    SubscriptionBuilder
	recorder   CheckoutRecorder
	publisher  EventPublisher
	log        *logger.Logger
}

// NewCheckoutService wires the checkout steps together. recorder and
// publisher may be nil.
func NewCheckoutService(
	calculator *pricing.Calculator,
	customers CustomerReconciler,
	builder SubscriptionBuilder,
	recorder CheckoutRecorder,
	publisher EventPublisher,
	log *logger.Logger,
) CheckoutService {
	return &checkoutService{
		calculator: calculator,
		customers:  customers,
		builder:    builder,
		recorder:   recorder,
		publisher:  publisher,
		log:        log,
	}
}

// Checkout validates the order, then reconciles the customer, creates the
// subscription and classifies the result. Validation failures are input
// rejections and happen before any processor call.
func (s *checkoutService) Checkout(ctx context.Context, order domain.Order) (domain.Outcome, error) {
	outcome, err := s.checkout(ctx, order)
	if err != nil {
		s.recordError(err)
		return domain.Outcome{}, err
	}
	if s.recorder != nil {
		s.recorder.RecordOutcome(outcome)
	}
	return outcome, nil
}

func (s *checkoutService) checkout(ctx context.Context, order domain.Order) (domain.Outcome, error) {
	price := s.calculator.Calculate(order.Cores, order.Devs, order.Years, pricing.ContinuousRebate, order.Customer.ChargesVAT())
	s.log.Debugw("Calculated price", "price", price.Stringify())

	if !pricing.Equal(price.Total, order.Price.Total) {
		s.log.Warnw("Received price from client differs from calculated price",
			"received", order.Price.Stringify(),
			"calculated", price.Stringify(),
		)
		return domain.Outcome{}, domain.Reject("ValidatePrice", domain.ErrBadAmount)
	}

	addr, err := email.Normalize(order.Customer.Email)
	if err != nil {
		s.log.Warn("Rejected e-mail: %v", err)
		return domain.Outcome{}, domain.Reject("NormalizeEmail", errors.Join(domain.ErrBadEmail, err))
	}

	if strings.TrimSpace(order.Customer.CompanyName) == "" {
		return domain.Outcome{}, domain.Reject("ValidateCompanyName", domain.ErrBadCompanyName)
	}

	customer, err := s.customers.Reconcile(ctx, order.Token, order.Customer, addr)
	if err != nil {
		return domain.Outcome{}, err
	}

	sub, err := s.builder.Build(ctx, order.Cores, order.Devs, price, customer)
	if err != nil {
		return domain.Outcome{}, err
	}

	key := CompositeKey(sub)
	s.log.Info("Outcome for %s: %s", customer.ID, key)

	outcome, err := Classify(key)
	if err != nil {
		return domain.Outcome{}, err
	}

	s.publish(ctx, domain.CheckoutCompleted{
		CustomerID:     customer.ID,
		SubscriptionID: sub.ID,
		Outcome:        outcome.Type,
		Code:           outcome.Code,
		Cores:          order.Cores,
		Devs:           order.Devs,
		Years:          order.Years,
		Total:          price.Total,
		OccurredAt:     time.Now().UTC(),
	})
	return outcome, nil
}

func (s *checkoutService) publish(ctx context.Context, event domain.CheckoutCompleted) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishCheckoutCompleted(ctx, event); err != nil {
		s.log.Warnw("Failed to publish checkout event", "error", err, "subscriptionID", event.SubscriptionID)
	}
}

func (s *checkoutService) recordError(err error) {
	kind := domain.KindOf(err)
	if kind == domain.KindInputRejection {
		msg, _ := domain.RejectionMessage(err)
		s.log.Info("Rejected checkout: %s", msg)
		if s.recorder != nil {
			s.recorder.RecordRejection(msg)
		}
		return
	}

	s.log.Errorw("Checkout failed", "kind", kind.String(), "error", err)
	if s.recorder != nil {
		s.recorder.RecordFailure(kind)
	}
}
