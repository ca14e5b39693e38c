package service

import (
	"context"
	"fmt"

	"github.com/logary/checkout-service/internal/pricing"
	"github.com/logary/checkout-service/internal/stripe"
	"github.com/logary/checkout-service/pkg/logger"
)

// SubscriptionBuilder creates the license subscription of a customer.
type SubscriptionBuilder interface {
	Build(ctx context.Context, cores, devs int, price pricing.Breakdown, customer *stripe.Customer) (*stripe.Subscription, error)
}

type subscriptionBuilder struct {
	client  stripe.Client
	catalog CatalogResolver
	log     *logger.Logger
}

// NewSubscriptionBuilder creates a builder on top of catalog.
func NewSubscriptionBuilder(client stripe.Client, catalog CatalogResolver, log *logger.Logger) SubscriptionBuilder {
	return &subscriptionBuilder{
		client:  client,
		catalog: catalog,
		log:     log,
	}
}

// Build creates one automatically charged subscription with a devs and a cores
// item. Calling it twice creates two subscriptions.
func (b *subscriptionBuilder) Build(ctx context.Context, cores, devs int, price pricing.Breakdown, customer *stripe.Customer) (*stripe.Subscription, error) {
	catalog, err := b.catalog.ResolveCatalog(ctx)
	if err != nil {
		return nil, err
	}

	corePlan, err := b.catalog.ResolvePlan(ctx, catalog.Cores)
	if err != nil {
		return nil, err
	}
	devPlan, err := b.catalog.ResolvePlan(ctx, catalog.Devs)
	if err != nil {
		return nil, err
	}

	b.log.Debug("Creating subscription for customer %s with plans %s x%d, %s x%d",
		customer.ID, devPlan.ID, devs, corePlan.ID, cores)

	sub, err := b.client.CreateSubscription(ctx, stripe.SubscriptionCreateParams{
		CustomerID: customer.ID,
		Items: []stripe.SubscriptionItem{
			{PlanID: devPlan.ID, Quantity: int64(devs)},
			{PlanID: corePlan.ID, Quantity: int64(cores)},
		},
		CollectionMethod: stripe.CollectionChargeAutomatically,
		Metadata:         price.Stringify(),
		TaxPercent:       price.TaxPercent(),
		Expand:           []string{stripe.ExpandPaymentIntent},
	})
	if err != nil {
		return nil, fmt.Errorf("create subscription for %s: %w", customer.ID, err)
	}
	return sub, nil
}
