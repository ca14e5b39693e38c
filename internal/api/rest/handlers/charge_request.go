package handlers

import (
	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/internal/pricing"
)

// ChargeRequest is the body of POST /charge. E-mail and company name are
// checked by the checkout itself so that they get their own rejection messages.
type ChargeRequest struct {
	Customer CustomerRequest   `json:"customer"`
	Cores    int               `json:"cores" validate:"gte=0"`
	Devs     int               `json:"devs" validate:"gte=0"`
	Years    int               `json:"years" validate:"gte=1"`
	Price    pricing.Breakdown `json:"price"`
	Token    TokenRequest      `json:"token"`
}

// CustomerRequest holds the buyer's details.
type CustomerRequest struct {
	CompanyName string `json:"companyName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	VATNo       string `json:"vatNo,omitempty"`
}

// TokenRequest is the payment source created by Stripe.js.
type TokenRequest struct {
	ID string `json:"id" validate:"required"`
}

// ChargeResponse is the body of a classified outcome.
type ChargeResponse struct {
	Type    string         `json:"type"`
	Payload OutcomePayload `json:"payload"`
}

// OutcomePayload carries the composite status code and a title for the buyer.
type OutcomePayload struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// ToOrder converts the request into a domain order.
func (r ChargeRequest) ToOrder() domain.Order {
	return domain.Order{
		Customer: domain.CustomerProfile{
			CompanyName: r.Customer.CompanyName,
			Name:        r.Customer.Name,
			Email:       r.Customer.Email,
			VATNo:       r.Customer.VATNo,
		},
		Cores: r.Cores,
		Devs:  r.Devs,
		Years: r.Years,
		Price: r.Price,
		Token: r.Token.ID,
	}
}

func newChargeResponse(o domain.Outcome) ChargeResponse {
	return ChargeResponse{
		Type:    string(o.Type),
		Payload: OutcomePayload{Code: o.Code, Title: o.Title},
	}
}
