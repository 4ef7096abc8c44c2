// Package money rounds, parses and formats monetary amounts.
//
// Amounts travel through the system as float64 for arithmetic; this package
// is the single place where they are snapped to cents for display and storage.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// Currency is an ISO 4217 code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	ARS Currency = "ARS"
)

var symbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	ARS: "$",
}

// Symbol returns the display symbol for c, defaulting to "$".
func (c Currency) Symbol() string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return "$"
}

// RoundCents rounds v half away from zero to two decimal places.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Cents converts v to integer minor units.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
}

// Parse reads a decimal amount such as "12.50" or "$12.50".
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€")
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.InexactFloat64(), nil
}

// Format renders amount with the currency symbol and two decimals, e.g. "$12.50".
func Format(amount float64, c Currency) string {
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsNegative() {
		return "-" + c.Symbol() + d.Abs().StringFixed(2)
	}
	return c.Symbol() + d.StringFixed(2)
}
