package service

import (
	"context"
	"errors"
	"testing"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/pricing"
	"github.com/logary/checkout-service/internal/stripe"
	"github.com/logary/checkout-service/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	client    *MockStripeClient
	recorder  *MockRecorder
	publisher *MockPublisher
	svc       CheckoutService
	calc      *pricing.Calculator
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		client:    &MockStripeClient{},
		recorder:  &MockRecorder{},
		publisher: &MockPublisher{},
		calc:      testCalculator(t),
	}
	log := logger.NewNop()
	resolver := NewCatalogResolver(f.client, testProductNames, log)
	f.svc = NewCheckoutService(
		f.calc,
		newTestReconciler(f.client),
		NewSubscriptionBuilder(f.client, resolver, log),
		f.recorder,
		f.publisher,
		log,
	)
	return f
}

func (f *checkoutFixture) order(vatNo string) domain.Order {
	return domain.Order{
		Customer: domain.CustomerProfile{
			CompanyName: "Logary AB",
			Name:        "Henrik",
			Email:       "henrik@example.com",
			VATNo:       vatNo,
		},
		Cores: 1,
		Devs:  1,
		Years: 1,
		Price: f.calc.Calculate(1, 1, 1, pricing.ContinuousRebate, vatNo == ""),
		Token: "tok_1",
	}
}

func TestCheckout_NewCustomerSucceeds(t *testing.T) {
	f := newCheckoutFixture(t)
	f.client.On("ListCustomersByEmail", mock.Anything, "henrik@example.com", int64(1)).Return([]stripe.Customer{}, nil)
	f.client.On("CreateCustomer", mock.Anything, mock.AnythingOfType("stripe.CustomerCreateParams")).
		Return(&stripe.Customer{ID: "cus_new", DefaultSource: "card_1"}, nil).Once()
	licenseCatalog(f.client)
	f.client.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(p stripe.SubscriptionCreateParams) bool {
		return p.CustomerID == "cus_new" && p.Metadata["total"] == "400.00 EUR"
	})).Return(&stripe.Subscription{ID: "sub_1", Status: "active", PaymentIntentStatus: "succeeded"}, nil).Once()

	want := domain.Outcome{Type: domain.OutcomeSuccess, Code: "active|succeeded", Title: "Thanks!"}
	f.recorder.On("RecordOutcome", want).Once()
	f.publisher.On("PublishCheckoutCompleted", mock.Anything, mock.MatchedBy(func(e domain.CheckoutCompleted) bool {
		return e.CustomerID == "cus_new" && e.SubscriptionID == "sub_1" && e.Code == "active|succeeded" &&
			pricing.Format(e.Total) == "400.00 EUR"
	})).Return(nil).Once()

	got, err := f.svc.Checkout(context.Background(), f.order(""))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	f.client.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCheckout_PriceMismatchMakesNoProcessorCall(t *testing.T) {
	tests := []struct {
		name  string
		total pricing.Money
	}{
		{"off by a cent", pricing.Money{Amount: decimal.RequireFromString("400.01"), Currency: "EUR"}},
		{"other currency", pricing.Money{Amount: decimal.RequireFromString("400"), Currency: "USD"}},
		{"vat not charged", pricing.Money{Amount: decimal.RequireFromString("320"), Currency: "EUR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.recorder.On("RecordRejection", "Bad amount or not same currency").Once()

			order := f.order("")
			order.Price.Total = tt.total

			_, err := f.svc.Checkout(context.Background(), order)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrBadAmount)
			assert.Equal(t, domain.KindInputRejection, domain.KindOf(err))

			assert.Empty(t, f.client.Calls)
			f.recorder.AssertExpectations(t)
		})
	}
}

func TestCheckout_VATNumberRemovesVAT(t *testing.T) {
	f := newCheckoutFixture(t)
	f.recorder.On("RecordRejection", mock.Anything)

	// Client charged VAT although a VAT number was given.
	order := f.order("SE556677889901")
	order.Price = f.calc.Calculate(1, 1, 1, pricing.ContinuousRebate, true)

	_, err := f.svc.Checkout(context.Background(), order)
	assert.ErrorIs(t, err, domain.ErrBadAmount)
	assert.Empty(t, f.client.Calls)
}

func TestCheckout_BadEmailMakesNoProcessorCall(t *testing.T) {
	f := newCheckoutFixture(t)
	f.recorder.On("RecordRejection", "Bad e-mail").Once()

	order := f.order("")
	order.Customer.Email = "a@example.com, b@example.com"

	_, err := f.svc.Checkout(context.Background(), order)
	require.Error(t, err)
	msg, ok := domain.RejectionMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Bad e-mail", msg)
	assert.Empty(t, f.client.Calls)
	f.recorder.AssertExpectations(t)
}

func TestCheckout_BlankCompanyName(t *testing.T) {
	f := newCheckoutFixture(t)
	f.recorder.On("RecordRejection", "Bad company name").Once()

	order := f.order("")
	order.Customer.CompanyName = "   "

	_, err := f.svc.Checkout(context.Background(), order)
	assert.ErrorIs(t, err, domain.ErrBadCompanyName)
	assert.Empty(t, f.client.Calls)
	f.recorder.AssertExpectations(t)
}

func TestCheckout_ExistingCustomerWithNewTokenIsUpdated(t *testing.T) {
	f := newCheckoutFixture(t)
	existing := stripe.Customer{ID: "cus_1", DefaultSource: "card_old", Metadata: map[string]string{"created": "1"}}
	f.client.On("ListCustomersByEmail", mock.Anything, "henrik@example.com", int64(1)).Return([]stripe.Customer{existing}, nil)
	f.client.On("UpdateCustomer", mock.Anything, "cus_1", mock.MatchedBy(func(p stripe.CustomerUpdateParams) bool {
		return p.Source == "tok_1" && p.Metadata["created"] == "1" && p.Metadata[MetaCompanyName] == "Logary AB"
	})).Return(&stripe.Customer{ID: "cus_1", DefaultSource: "card_new"}, nil).Once()
	licenseCatalog(f.client)
	f.client.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(p stripe.SubscriptionCreateParams) bool {
		return p.CustomerID == "cus_1"
	})).Return(&stripe.Subscription{ID: "sub_2", Status: "incomplete", PaymentIntentStatus: "requires_payment_method"}, nil).Once()

	want := domain.Outcome{Type: domain.OutcomeFailure, Code: "incomplete|requires_payment_method", Title: "Payment failed"}
	f.recorder.On("RecordOutcome", want).Once()
	f.publisher.On("PublishCheckoutCompleted", mock.Anything, mock.Anything).Return(nil)

	got, err := f.svc.Checkout(context.Background(), f.order(""))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	f.client.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	f.client.AssertExpectations(t)
}

func TestCheckout_UnsupportedOutcomeIsDefect(t *testing.T) {
	f := newCheckoutFixture(t)
	f.client.On("ListCustomersByEmail", mock.Anything, mock.Anything, mock.Anything).
		Return([]stripe.Customer{{ID: "cus_1", DefaultSource: "tok_1"}}, nil)
	licenseCatalog(f.client)
	f.client.On("CreateSubscription", mock.Anything, mock.Anything).
		Return(&stripe.Subscription{ID: "sub_3", Status: "trialing"}, nil)
	f.recorder.On("RecordFailure", domain.KindDefect).Once()

	_, err := f.svc.Checkout(context.Background(), f.order(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOutcome)
	f.recorder.AssertExpectations(t)
	f.publisher.AssertNotCalled(t, "PublishCheckoutCompleted", mock.Anything, mock.Anything)
}

func TestCheckout_ProcessorFailureIsCounted(t *testing.T) {
	f := newCheckoutFixture(t)
	f.client.On("ListCustomersByEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewCheckoutError(domain.KindProcessor, "ListCustomers", domain.ErrProcessor))
	f.recorder.On("RecordFailure", domain.KindProcessor).Once()

	_, err := f.svc.Checkout(context.Background(), f.order(""))
	require.Error(t, err)
	_, isRejection := domain.RejectionMessage(err)
	assert.False(t, isRejection)
	f.recorder.AssertExpectations(t)
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	f := newCheckoutFixture(t)
	f.client.On("ListCustomersByEmail", mock.Anything, mock.Anything, mock.Anything).
		Return([]stripe.Customer{{ID: "cus_1", DefaultSource: "tok_1"}}, nil)
	licenseCatalog(f.client)
	f.client.On("CreateSubscription", mock.Anything, mock.Anything).
		Return(&stripe.Subscription{ID: "sub_4", Status: "active", PaymentIntentStatus: "succeeded"}, nil)
	f.recorder.On("RecordOutcome", mock.Anything)
	f.publisher.On("PublishCheckoutCompleted", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	got, err := f.svc.Checkout(context.Background(), f.order(""))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuccess, got.Type)
}
