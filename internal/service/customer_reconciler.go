package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/email"
	"github.com/logary/checkout-service/internal/stripe"
	"github.com/logary/checkout-service/pkg/logger"
)

// Customer metadata keys.
const (
	MetaEmailName   = "emailName"
	MetaCompanyName = "companyName"
	MetaCreated     = "created"
	MetaUpdated     = "updated"
)

// CustomerReconciler finds or creates the processor customer for a checkout.
type CustomerReconciler interface {
	Reconcile(ctx context.Context, token string, profile domain.CustomerProfile, addr email.Address) (*stripe.Customer, error)
}

type customerReconciler struct {
	client stripe.Client
	now    func() time.Time
	log    *logger.Logger
}

// ReconcilerOption configures a CustomerReconciler.
type ReconcilerOption func(*customerReconciler)

// WithClock sets the clock used for the created/updated timestamps.
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *customerReconciler) {
		r.now = now
	}
}

// NewCustomerReconciler creates a reconciler that looks customers up by e-mail.
func NewCustomerReconciler(client stripe.Client, log *logger.Logger, opts ...ReconcilerOption) CustomerReconciler {
	r := &customerReconciler{
		client: client,
		now:    time.Now,
		log:    log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile returns the customer registered under addr. An existing customer
// whose default source already is token is returned without any write; one
// with another source gets token as its new source. Unknown addresses get a
// new customer.
//
// The lookup and the write are not atomic: two concurrent checkouts for the
// same address may both create a customer.
func (r *customerReconciler) Reconcile(ctx context.Context, token string, profile domain.CustomerProfile, addr email.Address) (*stripe.Customer, error) {
	r.log.Debug("Listing customers based on the e-mail provided")

	existing, err := r.client.ListCustomersByEmail(ctx, addr.Address, 1)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	companyName := strings.TrimSpace(profile.CompanyName)

	if len(existing) > 0 {
		found := existing[0]
		if found.DefaultSource == token {
			r.log.Info("Found existing customer %s, reusing as tokens were identical", found.ID)
			return &found, nil
		}

		r.log.Info("Found existing customer %s, updating source", found.ID)
		metadata := make(map[string]string, len(found.Metadata)+3)
		for k, v := range found.Metadata {
			metadata[k] = v
		}
		metadata[MetaEmailName] = addr.Name
		metadata[MetaCompanyName] = companyName
		metadata[MetaUpdated] = r.timestamp()

		updated, err := r.client.UpdateCustomer(ctx, found.ID, stripe.CustomerUpdateParams{
			Source:   token,
			Metadata: metadata,
		})
		if err != nil {
			return nil, fmt.Errorf("update customer %s: %w", found.ID, err)
		}
		return updated, nil
	}

	r.log.Info("Creating new customer")
	name := strings.TrimSpace(profile.Name)
	created, err := r.client.CreateCustomer(ctx, stripe.CustomerCreateParams{
		Name:        name,
		Email:       addr.Address,
		Description: fmt.Sprintf(`Customer for "%s" <%s>`, name, addr.Address),
		Source:      token,
		Metadata: map[string]string{
			MetaEmailName:   addr.Name,
			MetaCompanyName: companyName,
			MetaCreated:     r.timestamp(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

// timestamp renders the current time in unix milliseconds.
func (r *customerReconciler) timestamp() string {
	return strconv.FormatInt(r.now().UnixMilli(), 10)
}
