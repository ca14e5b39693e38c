package stripe

import (
	"context"
	"math"

	"github.com/stripe/stripe-go/v78"
)

// CreateSubscription creates a subscription for the given plans. A positive
// TaxPercent is applied as an exclusive default tax rate of that percentage.
func (sc *stripeClient) CreateSubscription(ctx context.Context, p SubscriptionCreateParams) (*Subscription, error) {
	items := make([]*stripe.SubscriptionItemsParams, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, &stripe.SubscriptionItemsParams{
			Plan:     stripe.String(item.PlanID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.SubscriptionParams{
		Customer:         stripe.String(p.CustomerID),
		Items:            items,
		CollectionMethod: stripe.String(p.CollectionMethod),
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	for _, e := range p.Expand {
		params.AddExpand(e)
	}
	params.Context = ctx

	if p.TaxPercent > 0 {
		taxRateID, err := sc.taxRateFor(ctx, p.TaxPercent)
		if err != nil {
			return nil, err
		}
		params.DefaultTaxRates = []*string{stripe.String(taxRateID)}
	}

	sub, err := sc.api.Subscriptions.New(params)
	if err != nil {
		return nil, wrapError(sc.log, "CreateSubscription", err)
	}

	out := toSubscription(sub)
	sc.log.Infow("Stripe subscription created",
		"stripeSubscriptionID", out.ID,
		"status", out.Status,
		"paymentIntentStatus", out.PaymentIntentStatus,
	)
	return &out, nil
}

const taxRateDisplayName = "VAT"

// taxRateFor returns an active exclusive VAT rate with the given percentage,
// creating one the first time a percentage is needed. All pages are scanned.
func (sc *stripeClient) taxRateFor(ctx context.Context, percent float64) (string, error) {
	params := &stripe.TaxRateListParams{
		Active:    stripe.Bool(true),
		Inclusive: stripe.Bool(false),
	}
	params.Limit = stripe.Int64(100)
	params.Context = ctx

	it := sc.api.TaxRates.List(params)
	for it.Next() {
		tr := it.TaxRate()
		if tr.DisplayName == taxRateDisplayName && samePercent(tr.Percentage, percent) {
			return tr.ID, nil
		}
	}
	if err := it.Err(); err != nil {
		return "", wrapError(sc.log, "ListTaxRates", err)
	}

	createParams := &stripe.TaxRateParams{
		DisplayName: stripe.String(taxRateDisplayName),
		Percentage:  stripe.Float64(percent),
		Inclusive:   stripe.Bool(false),
	}
	createParams.Context = ctx

	tr, err := sc.api.TaxRates.New(createParams)
	if err != nil {
		return "", wrapError(sc.log, "CreateTaxRate", err)
	}

	sc.log.Infow("Stripe tax rate created", "taxRateID", tr.ID, "percentage", percent)
	return tr.ID, nil
}

func samePercent(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func toSubscription(s *stripe.Subscription) Subscription {
	out := Subscription{
		ID:     s.ID,
		Status: string(s.Status),
	}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if s.LatestInvoice != nil && s.LatestInvoice.PaymentIntent != nil {
		out.PaymentIntentStatus = string(s.LatestInvoice.PaymentIntent.Status)
	}
	return out
}
