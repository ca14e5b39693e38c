package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/stripe"
	"github.com/logary/checkout-service/pkg/logger"
)

const (
	productPageSize = 10
	planPageSize    = 50
)

// Catalog holds the two license products.
type Catalog struct {
	Cores stripe.Product
	Devs  stripe.Product
}

// ProductNames are the catalog names of the license products.
type ProductNames struct {
	Cores string
	Devs  string
}

// CatalogResolver finds the license products and their current plans.
type CatalogResolver interface {
	ResolveCatalog(ctx context.Context) (Catalog, error)
	ResolvePlan(ctx context.Context, product stripe.Product) (stripe.Plan, error)
}

type catalogResolver struct {
	client stripe.Client
	names  ProductNames
	log    *logger.Logger
}

// NewCatalogResolver creates a resolver for the given product names.
func NewCatalogResolver(client stripe.Client, names ProductNames, log *logger.Logger) CatalogResolver {
	return &catalogResolver{
		client: client,
		names:  names,
		log:    log,
	}
}

// ResolveCatalog expects exactly two active service products, one per license
// name. Anything else is a configuration error.
func (r *catalogResolver) ResolveCatalog(ctx context.Context) (Catalog, error) {
	const op = "ResolveCatalog"

	products, err := r.client.ListProducts(ctx, stripe.ProductFilter{
		Active: true,
		Type:   stripe.ProductTypeService,
		Limit:  productPageSize,
	})
	if err != nil {
		return Catalog{}, fmt.Errorf("list products: %w", err)
	}

	if len(products) != 2 {
		r.log.Error("Expected two active service products, got %d", len(products))
		return Catalog{}, domain.NewCheckoutError(domain.KindConfiguration, op,
			fmt.Errorf("%w: expected two active service products, got %d", domain.ErrCatalogMisconfigured, len(products)))
	}

	var catalog Catalog
	var haveCores, haveDevs bool
	for _, p := range products {
		switch p.Name {
		case r.names.Cores:
			catalog.Cores, haveCores = p, true
		case r.names.Devs:
			catalog.Devs, haveDevs = p, true
		}
	}
	if !haveCores || !haveDevs {
		r.log.Error("Catalog lacks %q or %q", r.names.Cores, r.names.Devs)
		return Catalog{}, domain.NewCheckoutError(domain.KindConfiguration, op,
			fmt.Errorf("%w: products %q and %q are required", domain.ErrCatalogMisconfigured, r.names.Cores, r.names.Devs))
	}

	return catalog, nil
}

// ResolvePlan returns the plan of product with the greatest numeric suffix.
func (r *catalogResolver) ResolvePlan(ctx context.Context, product stripe.Product) (stripe.Plan, error) {
	plans, err := r.client.ListPlans(ctx, product.ID, planPageSize)
	if err != nil {
		return stripe.Plan{}, fmt.Errorf("list plans of %s: %w", product.ID, err)
	}

	plan, err := LatestPlan(plans)
	if err != nil {
		r.log.Error("No current plan for product %s: %v", product.ID, err)
		return stripe.Plan{}, domain.NewCheckoutError(domain.KindConfiguration, "ResolvePlan",
			fmt.Errorf("product %s: %w", product.ID, err))
	}

	r.log.Debug("Resolved plan %s for product %s", plan.ID, product.ID)
	return plan, nil
}

var planSuffixRe = regexp.MustCompile(`_(\d+)$`)

// PlanSuffix extracts the trailing numeric suffix of a plan id,
// e.g. 5 for "logary_devs_5".
func PlanSuffix(id string) (int, error) {
	m := planSuffixRe.FindStringSubmatch(id)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrPlanSuffix, id)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrPlanSuffix, id, err)
	}
	return n, nil
}

// ComparePlans orders plan ids by descending suffix: it is negative when a
// sorts before b, i.e. a has the greater suffix.
func ComparePlans(a, b string) (int, error) {
	sa, err := PlanSuffix(a)
	if err != nil {
		return 0, err
	}
	sb, err := PlanSuffix(b)
	if err != nil {
		return 0, err
	}
	return sb - sa, nil
}

// LatestPlan picks the plan with the strictly greatest suffix. Missing or
// malformed suffixes and ties for the greatest suffix are errors.
func LatestPlan(plans []stripe.Plan) (stripe.Plan, error) {
	if len(plans) == 0 {
		return stripe.Plan{}, fmt.Errorf("%w: no plans", domain.ErrCatalogMisconfigured)
	}

	for _, p := range plans {
		if _, err := PlanSuffix(p.ID); err != nil {
			return stripe.Plan{}, err
		}
	}

	sorted := make([]stripe.Plan, len(plans))
	copy(sorted, plans)
	sort.SliceStable(sorted, func(i, j int) bool {
		c, _ := ComparePlans(sorted[i].ID, sorted[j].ID)
		return c < 0
	})

	if len(sorted) > 1 {
		if c, _ := ComparePlans(sorted[0].ID, sorted[1].ID); c == 0 {
			return stripe.Plan{}, fmt.Errorf("%w: %q and %q share the greatest suffix",
				domain.ErrPlanSuffix, sorted[0].ID, sorted[1].ID)
		}
	}
	return sorted[0], nil
}
