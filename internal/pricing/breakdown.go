package pricing

import (
	"github.com/shopspring/decimal"
)

// Breakdown is a computed price split into named components. Money fields are
// amounts, RebateRate and VATRate are scalars.
type Breakdown struct {
	CoresPrice Money           `json:"coresPrice"`
	DevsPrice  Money           `json:"devsPrice"`
	Subtotal   Money           `json:"subtotal"`
	RebateRate decimal.Decimal `json:"rebateRate"`
	Rebate     Money           `json:"rebate"`
	Net        Money           `json:"net"`
	VATRate    decimal.Decimal `json:"vatRate"`
	VAT        Money           `json:"vat"`
	Total      Money           `json:"total"`
}

// Stringify renders every component as a string, suitable for processor
// metadata: money through Format, scalars in their plain decimal form.
func (b Breakdown) Stringify() map[string]string {
	return map[string]string{
		"coresPrice": Format(b.CoresPrice),
		"devsPrice":  Format(b.DevsPrice),
		"subtotal":   Format(b.Subtotal),
		"rebateRate": b.RebateRate.String(),
		"rebate":     Format(b.Rebate),
		"net":        Format(b.Net),
		"vatRate":    b.VATRate.String(),
		"vat":        Format(b.VAT),
		"total":      Format(b.Total),
	}
}

// TaxPercent returns the VAT rate as a percentage, e.g. 25 for a rate of 0.25.
func (b Breakdown) TaxPercent() float64 {
	return b.VATRate.Mul(decimal.NewFromInt(100)).InexactFloat64()
}
