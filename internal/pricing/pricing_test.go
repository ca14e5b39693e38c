package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator("EUR", "120", "200", "0.25")
	require.NoError(t, err)
	return c
}

func TestEqual(t *testing.T) {
	a := NewMoney(decimal.RequireFromString("400"), "EUR")

	assert.True(t, Equal(a, NewMoney(decimal.RequireFromString("400.00"), "eur")))
	assert.False(t, Equal(a, NewMoney(decimal.RequireFromString("400.01"), "EUR")))
	assert.False(t, Equal(a, NewMoney(decimal.RequireFromString("399.99"), "EUR")))
	assert.False(t, Equal(a, NewMoney(decimal.RequireFromString("400"), "USD")))
}

func TestContinuousRebate(t *testing.T) {
	cases := map[int]string{0: "0", 1: "0", 2: "0.05", 3: "0.1", 5: "0.2", 6: "0.25", 10: "0.25"}
	for years, want := range cases {
		assert.True(t, decimal.RequireFromString(want).Equal(ContinuousRebate(years)), "years=%d got %s", years, ContinuousRebate(years))
	}
}

func TestCalculate_WithVAT(t *testing.T) {
	c := testCalculator(t)

	b := c.Calculate(1, 1, 1, ContinuousRebate, true)

	assert.Equal(t, "120.00 EUR", Format(b.CoresPrice))
	assert.Equal(t, "200.00 EUR", Format(b.DevsPrice))
	assert.Equal(t, "320.00 EUR", Format(b.Subtotal))
	assert.Equal(t, "0.00 EUR", Format(b.Rebate))
	assert.Equal(t, "80.00 EUR", Format(b.VAT))
	assert.Equal(t, "400.00 EUR", Format(b.Total))
	assert.Equal(t, 25.0, b.TaxPercent())
}

func TestCalculate_WithoutVATAndRebate(t *testing.T) {
	c := testCalculator(t)

	b := c.Calculate(2, 3, 3, ContinuousRebate, false)

	// (2*120 + 3*200) * 3 = 2520, 10% rebate = 252
	assert.Equal(t, "2520.00 EUR", Format(b.Subtotal))
	assert.Equal(t, "252.00 EUR", Format(b.Rebate))
	assert.Equal(t, "2268.00 EUR", Format(b.Total))
	assert.True(t, b.VATRate.IsZero())
	assert.Equal(t, 0.0, b.TaxPercent())
}

func TestStringify(t *testing.T) {
	c := testCalculator(t)
	m := c.Calculate(1, 1, 2, ContinuousRebate, true).Stringify()

	assert.Len(t, m, 9)
	assert.Equal(t, "0.25", m["vatRate"])
	assert.Equal(t, "0.05", m["rebateRate"])
	assert.Equal(t, "760.00 EUR", m["total"])
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	var fromNumber, fromString Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 400.00, "currency": "eur"}`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "400", "currency": "EUR"}`), &fromString))

	assert.True(t, Equal(fromNumber, fromString))

	var missing Money
	assert.Error(t, json.Unmarshal([]byte(`{"currency": "EUR"}`), &missing))
}

func TestMoney_UnmarshalJSONNull(t *testing.T) {
	var b Breakdown
	require.NoError(t, json.Unmarshal([]byte(`{"vat": null, "total": {"amount": "400", "currency": "EUR"}}`), &b))

	assert.True(t, b.VAT.IsZero())
	assert.Equal(t, "400.00 EUR", Format(b.Total))

	m := NewMoney(decimal.NewFromInt(5), "EUR")
	require.NoError(t, m.UnmarshalJSON([]byte("null")))
	assert.Equal(t, "5.00 EUR", Format(m))
}

func TestNewCalculator_Invalid(t *testing.T) {
	_, err := NewCalculator("", "1", "1", "0")
	assert.Error(t, err)
	_, err = NewCalculator("EUR", "abc", "1", "0")
	assert.Error(t, err)
	_, err = NewCalculator("EUR", "1", "1", "-0.1")
	assert.Error(t, err)
}
