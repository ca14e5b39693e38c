package domain

import (
	"time"

	"github.com/logary/checkout-service/internal/pricing"
)

// CheckoutCompleted is emitted after a checkout produced an outcome.
type CheckoutCompleted struct {
	CustomerID     string        `json:"customerId"`
	SubscriptionID string        `json:"subscriptionId"`
	Outcome        OutcomeType   `json:"outcome"`
	Code           string        `json:"code"`
	Cores          int           `json:"cores"`
	Devs           int           `json:"devs"`
	Years          int           `json:"years"`
	Total          pricing.Money `json:"total"`
	OccurredAt     time.Time     `json:"occurredAt"`
}
