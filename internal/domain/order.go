package domain

import (
	"strings"

	"github.com/logary/checkout-service/internal/pricing"
)

// CustomerProfile holds the customer details submitted with an order.
type CustomerProfile struct {
	CompanyName string
	Name        string
	Email       string
	VATNo       string
}

// ChargesVAT reports whether VAT applies, i.e. no VAT number was given.
func (p CustomerProfile) ChargesVAT() bool {
	return strings.TrimSpace(p.VATNo) == ""
}

// Order is a validated-shape checkout request.
type Order struct {
	Customer CustomerProfile
	Cores    int
	Devs     int
	Years    int
	// Price is the breakdown the client displayed to the buyer.
	Price pricing.Breakdown
	// Token is the single-use payment source created in the browser.
	Token string
}
