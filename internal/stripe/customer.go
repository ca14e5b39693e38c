package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v78"
)

// ListCustomersByEmail lists customers whose e-mail matches exactly.
func (sc *stripeClient) ListCustomersByEmail(ctx context.Context, email string, limit int64) ([]Customer, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Limit = stripe.Int64(limit)
	params.Single = true
	params.Context = ctx

	var out []Customer
	it := sc.api.Customers.List(params)
	for it.Next() {
		out = append(out, toCustomer(it.Customer()))
	}
	if err := it.Err(); err != nil {
		return nil, wrapError(sc.log, "ListCustomers", err)
	}

	sc.log.Debugw("Listed Stripe customers by e-mail", "count", len(out))
	return out, nil
}

// CreateCustomer creates a new customer with the given source attached.
func (sc *stripeClient) CreateCustomer(ctx context.Context, p CustomerCreateParams) (*Customer, error) {
	params := &stripe.CustomerParams{
		Name:        stripe.String(p.Name),
		Email:       stripe.String(p.Email),
		Description: stripe.String(p.Description),
		Source:      stripe.String(p.Source),
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	cus, err := sc.api.Customers.New(params)
	if err != nil {
		return nil, wrapError(sc.log, "CreateCustomer", err)
	}

	sc.log.Infow("Stripe customer created", "stripeCustomerID", cus.ID)
	c := toCustomer(cus)
	return &c, nil
}

// UpdateCustomer replaces the default source and sets metadata keys. Keys not
// present in p.Metadata are left untouched by Stripe.
func (sc *stripeClient) UpdateCustomer(ctx context.Context, customerID string, p CustomerUpdateParams) (*Customer, error) {
	params := &stripe.CustomerParams{
		Source: stripe.String(p.Source),
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	cus, err := sc.api.Customers.Update(customerID, params)
	if err != nil {
		return nil, wrapError(sc.log, "UpdateCustomer", err)
	}

	sc.log.Infow("Stripe customer updated", "stripeCustomerID", cus.ID)
	c := toCustomer(cus)
	return &c, nil
}

func toCustomer(c *stripe.Customer) Customer {
	out := Customer{
		ID:       c.ID,
		Email:    c.Email,
		Name:     c.Name,
		Metadata: make(map[string]string, len(c.Metadata)),
	}
	if c.DefaultSource != nil {
		out.DefaultSource = c.DefaultSource.ID
	}
	for k, v := range c.Metadata {
		out.Metadata[k] = v
	}
	return out
}
