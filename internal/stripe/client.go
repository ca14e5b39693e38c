package stripe

import (
	"context"

	"github.com/logary/checkout-service/pkg/logger"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

const (
	// CollectionChargeAutomatically bills the customer's default source right away.
	CollectionChargeAutomatically = "charge_automatically"

	// ExpandPaymentIntent makes the first invoice's payment intent part of the
	// subscription response.
	ExpandPaymentIntent = "latest_invoice.payment_intent"

	// ProductTypeService is the catalog type of license products.
	ProductTypeService = "service"
)

// Customer is a Stripe customer as seen by the checkout.
type Customer struct {
	ID            string
	Email         string
	Name          string
	DefaultSource string
	Metadata      map[string]string
}

// CustomerCreateParams describes a new customer.
type CustomerCreateParams struct {
	Name        string
	Email       string
	Description string
	Source      string
	Metadata    map[string]string
}

// CustomerUpdateParams replaces the default source and sets metadata keys.
type CustomerUpdateParams struct {
	Source   string
	Metadata map[string]string
}

// ProductFilter restricts a product listing.
type ProductFilter struct {
	Active bool
	Type   string
	Limit  int64
}

// Product is a catalog product.
type Product struct {
	ID   string
	Name string
}

// Plan is a billable variant of a product.
type Plan struct {
	ID        string
	ProductID string
}

// SubscriptionItem is one plan and its seat count.
type SubscriptionItem struct {
	PlanID   string
	Quantity int64
}

// SubscriptionCreateParams describes a new subscription.
type SubscriptionCreateParams struct {
	CustomerID       string
	Items            []SubscriptionItem
	CollectionMethod string
	Metadata         map[string]string
	TaxPercent       float64
	Expand           []string
}

// Subscription is the processor's answer to a subscription creation.
// PaymentIntentStatus is empty when the latest invoice carries no payment intent.
type Subscription struct {
	ID                  string
	CustomerID          string
	Status              string
	PaymentIntentStatus string
}

// Client is the set of processor operations the checkout depends on.
type Client interface {
	// ListCustomersByEmail returns at most limit customers with exactly this e-mail.
	ListCustomersByEmail(ctx context.Context, email string, limit int64) ([]Customer, error)

	// CreateCustomer creates a customer with a payment source attached.
	CreateCustomer(ctx context.Context, params CustomerCreateParams) (*Customer, error)

	// UpdateCustomer replaces the customer's source and sets the given metadata.
	UpdateCustomer(ctx context.Context, customerID string, params CustomerUpdateParams) (*Customer, error)

	// ListProducts returns a single page of catalog products.
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	// ListPlans returns a single page of plans of one product.
	ListPlans(ctx context.Context, productID string, limit int64) ([]Plan, error)

	// CreateSubscription creates and, for automatic collection, charges a subscription.
	CreateSubscription(ctx context.Context, params SubscriptionCreateParams) (*Subscription, error)
}

// Config configures the Stripe client.
type Config struct {
	SecretKey         string
	MaxNetworkRetries int64
	// APIURL overrides the API base URL, e.g. to point at stripe-mock.
	APIURL string
}

// stripeClient implements Client on top of the Stripe SDK.
type stripeClient struct {
	api *client.API
	log *logger.Logger
}

// NewStripeClient creates a client bound to one secret key. Nothing global in
// the SDK is touched, so several clients can coexist.
func NewStripeClient(cfg Config, log *logger.Logger) Client {
	// GetBackendWithConfig fills in defaults, so every backend gets its own config.
	backendConfig := func(url string) *stripe.BackendConfig {
		bc := &stripe.BackendConfig{
			MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
			LeveledLogger:     leveledLogger{log: log},
		}
		if url != "" {
			bc.URL = stripe.String(url)
		}
		return bc
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig(cfg.APIURL)),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig("")),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig("")),
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, backends)

	return &stripeClient{
		api: api,
		log: log,
	}
}

// leveledLogger lets the SDK log through the service logger.
type leveledLogger struct {
	log *logger.Logger
}

func (l leveledLogger) Debugf(format string, v ...interface{}) { l.log.Debug(format, v...) }
func (l leveledLogger) Infof(format string, v ...interface{})  { l.log.Debug(format, v...) }
func (l leveledLogger) Warnf(format string, v ...interface{})  { l.log.Warn(format, v...) }
func (l leveledLogger) Errorf(format string, v ...interface{}) { l.log.Error(format, v...) }
