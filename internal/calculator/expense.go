package calculator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidExpense is returned when an expense cannot be split, e.g. it
	// has no payers, no participants or a non-positive amount.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrInvalidBalanceMap is returned by the simplifier when the balances it
	// receives do not net out to zero.
	ErrInvalidBalanceMap = errors.New("invalid balance map")
)

// Expense is a shared cost with the minimal information needed for balance calculations.
type Expense struct {
	ID           string
	Amount       float64
	PaidBy       []string // Split equally among payers
	Participants []string // Split equally among participants
}

// Validate checks that the expense can be divided among its payers and participants.
func (e Expense) Validate() error {
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidExpense, e.Amount)
	}
	if len(uniqueNames(e.PaidBy)) == 0 {
		return fmt.Errorf("%w: must have at least one payer", ErrInvalidExpense)
	}
	if len(uniqueNames(e.Participants)) == 0 {
		return fmt.Errorf("%w: must have at least one participant", ErrInvalidExpense)
	}
	return nil
}

// uniqueNames drops empty and repeated names, keeping first occurrence order.
// A member listed twice counts once.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
