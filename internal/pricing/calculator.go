package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rebate returns the rebate rate granted for a license duration in years.
type Rebate func(years int) decimal.Decimal

var (
	rebateStep = decimal.RequireFromString("0.05")
	rebateCap  = decimal.RequireFromString("0.25")
)

// ContinuousRebate grants 5% for every year beyond the first, capped at 25%.
func ContinuousRebate(years int) decimal.Decimal {
	if years <= 1 {
		return decimal.Zero
	}
	r := rebateStep.Mul(decimal.NewFromInt(int64(years - 1)))
	return decimal.Min(r, rebateCap)
}

// NoRebate never grants a rebate.
func NoRebate(int) decimal.Decimal {
	return decimal.Zero
}

// Calculator computes authoritative prices from list prices.
type Calculator struct {
	currency   string
	coreYearly decimal.Decimal
	devYearly  decimal.Decimal
	vatRate    decimal.Decimal
}

// NewCalculator creates a calculator from decimal strings, e.g. "120", "0.25".
func NewCalculator(currency, coreYearly, devYearly, vatRate string) (*Calculator, error) {
	if currency == "" {
		return nil, fmt.Errorf("pricing: currency is required")
	}
	core, err := decimal.NewFromString(coreYearly)
	if err != nil {
		return nil, fmt.Errorf("pricing: core price: %w", err)
	}
	dev, err := decimal.NewFromString(devYearly)
	if err != nil {
		return nil, fmt.Errorf("pricing: dev price: %w", err)
	}
	vat, err := decimal.NewFromString(vatRate)
	if err != nil {
		return nil, fmt.Errorf("pricing: vat rate: %w", err)
	}
	if core.IsNegative() || dev.IsNegative() || vat.IsNegative() {
		return nil, fmt.Errorf("pricing: prices and vat rate must not be negative")
	}

	return &Calculator{
		currency:   currency,
		coreYearly: core,
		devYearly:  dev,
		vatRate:    vat,
	}, nil
}

// Calculate prices cores and devs seats for the given number of years. VAT is
// only applied when chargeVAT is set.
func (c *Calculator) Calculate(cores, devs, years int, rebate Rebate, chargeVAT bool) Breakdown {
	y := decimal.NewFromInt(int64(years))
	coresPrice := NewMoney(c.coreYearly.Mul(decimal.NewFromInt(int64(cores))).Mul(y), c.currency)
	devsPrice := NewMoney(c.devYearly.Mul(decimal.NewFromInt(int64(devs))).Mul(y), c.currency)
	subtotal := NewMoney(coresPrice.Amount.Add(devsPrice.Amount), c.currency)

	rebateRate := rebate(years)
	rebateAmount := NewMoney(subtotal.Amount.Mul(rebateRate), c.currency)
	net := NewMoney(subtotal.Amount.Sub(rebateAmount.Amount), c.currency)

	vatRate := decimal.Zero
	if chargeVAT {
		vatRate = c.vatRate
	}
	vat := NewMoney(net.Amount.Mul(vatRate), c.currency)

	return Breakdown{
		CoresPrice: coresPrice,
		DevsPrice:  devsPrice,
		Subtotal:   subtotal,
		RebateRate: rebateRate,
		Rebate:     rebateAmount,
		Net:        net,
		VATRate:    vatRate,
		VAT:        vat,
		Total:      NewMoney(net.Amount.Add(vat.Amount), c.currency),
	}
}
