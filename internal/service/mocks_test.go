package service

import (
	"context"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/stripe"

	"github.com/stretchr/testify/mock"
)

// MockStripeClient is a mock implementation of stripe.Client.
type MockStripeClient struct {
	mock.Mock
}

func (m *MockStripeClient) ListCustomersByEmail(ctx context.Context, email string, limit int64) ([]stripe.Customer, error) {
	args := m.Called(ctx, email, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stripe.Customer), args.Error(1)
}

func (m *MockStripeClient) CreateCustomer(ctx context.Context, params stripe.CustomerCreateParams) (*stripe.Customer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Customer), args.Error(1)
}

func (m *MockStripeClient) UpdateCustomer(ctx context.Context, customerID string, params stripe.CustomerUpdateParams) (*stripe.Customer, error) {
	args := m.Called(ctx, customerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Customer), args.Error(1)
}

func (m *MockStripeClient) ListProducts(ctx context.Context, filter stripe.ProductFilter) ([]stripe.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stripe.Product), args.Error(1)
}

func (m *MockStripeClient) ListPlans(ctx context.Context, productID string, limit int64) ([]stripe.Plan, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stripe.Plan), args.Error(1)
}

func (m *MockStripeClient) CreateSubscription(ctx context.Context, params stripe.SubscriptionCreateParams) (*stripe.Subscription, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

// MockRecorder is a mock implementation of CheckoutRecorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordOutcome(outcome domain.Outcome) { m.Called(outcome) }
func (m *MockRecorder) RecordRejection(reason string)        { m.Called(reason) }
func (m *MockRecorder) RecordFailure(kind domain.ErrorKind)  { m.Called(kind) }

// MockPublisher is a mock implementation of EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCheckoutCompleted(ctx context.Context, event domain.CheckoutCompleted) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// licenseCatalog registers the default two product, two plans per product
// catalog on m.
func licenseCatalog(m *MockStripeClient) {
	m.On("ListProducts", mock.Anything, stripe.ProductFilter{Active: true, Type: stripe.ProductTypeService, Limit: 10}).
		Return([]stripe.Product{
			{ID: "prod_cores", Name: "logary_license_cores"},
			{ID: "prod_devs", Name: "logary_license_devs"},
		}, nil)
	m.On("ListPlans", mock.Anything, "prod_cores", int64(50)).
		Return([]stripe.Plan{{ID: "cores_1"}, {ID: "cores_3"}, {ID: "cores_2"}}, nil)
	m.On("ListPlans", mock.Anything, "prod_devs", int64(50)).
		Return([]stripe.Plan{{ID: "devs_7"}, {ID: "devs_10"}}, nil)
}

var testProductNames = ProductNames{Cores: "logary_license_cores", Devs: "logary_license_devs"}
