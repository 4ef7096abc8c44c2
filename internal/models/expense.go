package models

import (
	"strings"

	"github.com/mmynk/groupsplit/internal/calculator"
)

// Expense represents one shared cost within a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is the human-readable description (e.g., "Groceries").
	Title string

	// Amount is the total cost. Always positive.
	Amount float64

	// PaidBy lists the usernames who fronted the money.
	// The amount is split equally among them.
	PaidBy []string

	// Participants lists the usernames who benefit from the expense.
	// The amount is split equally among them.
	Participants []string

	// CreatedBy is the username of the member who recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsSettlement reports whether the expense records a debt being paid off.
func (e *Expense) IsSettlement() bool {
	return len(e.PaidBy) == 1 && len(e.Participants) == 1 &&
		strings.HasPrefix(e.Title, calculator.SettlementTitlePrefix)
}

// ForBalance converts the expense to the calculator's input format.
func (e *Expense) ForBalance() calculator.Expense {
	return calculator.Expense{
		ID:           e.ID,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
	}
}

// ExpensesForBalance converts a list of expenses to the calculator's input format.
func ExpensesForBalance(expenses []*Expense) []calculator.Expense {
	out := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = e.ForBalance()
	}
	return out
}
