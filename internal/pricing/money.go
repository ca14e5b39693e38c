package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact amount in a currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney builds a Money rounded to cents, with an upper-case currency code.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount.Round(2), Currency: strings.ToUpper(currency)}
}

// Equal is the price comparator: amounts must be numerically identical and
// currencies must match. There is no tolerance.
func Equal(a, b Money) bool {
	return a.Currency == b.Currency && a.Amount.Equal(b.Amount)
}

// IsZero reports whether the money value was never set.
func (m Money) IsZero() bool {
	return m.Currency == "" && m.Amount.IsZero()
}

// Format renders the amount with two decimals followed by the currency code.
func Format(m Money) string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

func (m Money) String() string {
	return Format(m)
}

// UnmarshalJSON accepts the amount either as a JSON number or a string. A JSON
// null leaves m unchanged.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw struct {
		Amount   json.RawMessage `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Amount) == 0 {
		return fmt.Errorf("money: missing amount")
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw.Amount); err != nil {
		return fmt.Errorf("money: %w", err)
	}

	m.Amount = amount
	m.Currency = strings.ToUpper(strings.TrimSpace(raw.Currency))
	return nil
}
