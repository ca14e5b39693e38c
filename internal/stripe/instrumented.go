package stripe

import (
	"context"
	"time"
)

// Observer records the outcome and latency of processor calls.
type Observer interface {
	ObserveProcessorCall(operation string, duration time.Duration, err error)
}

type instrumentedClient struct {
	next Client
	obs  Observer
}

// NewInstrumentedClient decorates next so that every call is reported to obs.
func NewInstrumentedClient(next Client, obs Observer) Client {
	return &instrumentedClient{next: next, obs: obs}
}

func (c *instrumentedClient) observe(op string, start time.Time, err error) {
	c.obs.ObserveProcessorCall(op, time.Since(start), err)
}

func (c *instrumentedClient) ListCustomersByEmail(ctx context.Context, email string, limit int64) (out []Customer, err error) {
	start := time.Now()
	defer func() { c.observe("list_customers", start, err) }()
	return c.next.ListCustomersByEmail(ctx, email, limit)
}

func (c *instrumentedClient) CreateCustomer(ctx context.Context, p CustomerCreateParams) (out *Customer, err error) {
	start := time.Now()
	defer func() { c.observe("create_customer", start, err) }()
	return c.next.CreateCustomer(ctx, p)
}

func (c *instrumentedClient) UpdateCustomer(ctx context.Context, id string, p CustomerUpdateParams) (out *Customer, err error) {
	start := time.Now()
	defer func() { c.observe("update_customer", start, err) }()
	return c.next.UpdateCustomer(ctx, id, p)
}

func (c *instrumentedClient) ListProducts(ctx context.Context, f ProductFilter) (out []Product, err error) {
	start := time.Now()
	defer func() { c.observe("list_products", start, err) }()
	return c.next.ListProducts(ctx, f)
}

func (c *instrumentedClient) ListPlans(ctx context.Context, productID string, limit int64) (out []Plan, err error) {
	start := time.Now()
	defer func() { c.observe("list_plans", start, err) }()
	return c.next.ListPlans(ctx, productID, limit)
}

func (c *instrumentedClient) CreateSubscription(ctx context.Context, p SubscriptionCreateParams) (out *Subscription, err error) {
	start := time.Now()
	defer func() { c.observe("create_subscription", start, err) }()
	return c.next.CreateSubscription(ctx, p)
}
