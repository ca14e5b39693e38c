package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v78"
)

// ListProducts returns one page of products matching filter.
func (sc *stripeClient) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	params := &stripe.ProductListParams{
		Active: stripe.Bool(filter.Active),
	}
	if filter.Type != "" {
		params.Filters.AddFilter("type", "", filter.Type)
	}
	params.Limit = stripe.Int64(filter.Limit)
	params.Single = true
	params.Context = ctx

	var out []Product
	it := sc.api.Products.List(params)
	for it.Next() {
		p := it.Product()
		out = append(out, Product{ID: p.ID, Name: p.Name})
	}
	if err := it.Err(); err != nil {
		return nil, wrapError(sc.log, "ListProducts", err)
	}

	sc.log.Debugw("Listed Stripe products", "count", len(out))
	return out, nil
}

// ListPlans returns one page of plans belonging to productID.
func (sc *stripeClient) ListPlans(ctx context.Context, productID string, limit int64) ([]Plan, error) {
	params := &stripe.PlanListParams{
		Product: stripe.String(productID),
	}
	params.Limit = stripe.Int64(limit)
	params.Single = true
	params.Context = ctx

	var out []Plan
	it := sc.api.Plans.List(params)
	for it.Next() {
		p := it.Plan()
		plan := Plan{ID: p.ID, ProductID: productID}
		if p.Product != nil {
			plan.ProductID = p.Product.ID
		}
		out = append(out, plan)
	}
	if err := it.Err(); err != nil {
		return nil, wrapError(sc.log, "ListPlans", err)
	}

	sc.log.Debugw("Listed Stripe plans", "productID", productID, "count", len(out))
	return out, nil
}
