package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Balance is one member's position in a group.
type Balance struct {
	Member string
	Net    float64 // Positive = owed money, Negative = owes money
	Paid   float64 // Total credited as a payer
	Owed   float64 // Total debited as a participant
}

// Balances is an ordered balance map. Order matters: the simplifier breaks
// ties between equal magnitudes by position in this slice.
type Balances []Balance

// Get returns the net balance for member, or zero if absent.
func (b Balances) Get(member string) float64 {
	for _, bal := range b {
		if bal.Member == member {
			return bal.Net
		}
	}
	return 0
}

// Map returns the net balances keyed by member.
func (b Balances) Map() map[string]float64 {
	m := make(map[string]float64, len(b))
	for _, bal := range b {
		m[bal.Member] += bal.Net
	}
	return m
}

// Sum returns the total of all net balances. It is zero for a consistent map
// and NaN when any balance is not a finite number.
func (b Balances) Sum() float64 {
	total := decimal.Zero
	for _, bal := range b {
		if !isFinite(bal.Net) {
			return math.NaN()
		}
		total = total.Add(decimal.NewFromFloat(bal.Net))
	}
	return total.InexactFloat64()
}

// IsZeroSum reports whether the balances net out to zero within tol.
func (b Balances) IsZeroSum(tol float64) bool {
	return withinTolerance(b.Sum(), tol)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FromMap builds Balances from a plain map. Members are ordered by name since
// map iteration order is random.
func FromMap(m map[string]float64) Balances {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Balances, len(names))
	for i, name := range names {
		out[i] = Balance{Member: name, Net: m[name]}
	}
	return out
}

// ComputeBalances reduces a list of expenses into a net balance per member.
//
// Algorithm:
// - Every member starts at zero, so members without expenses still appear
// - Each payer is credited amount / len(payers)
// - Each participant is debited amount / len(participants)
// - Names an expense references outside members are still counted and are
//   appended after members in name order
//
// Shares are accumulated as decimals, so the result does not depend on the
// order of expenses and sums to zero within ZeroSumTolerance. Any invalid
// expense fails the whole computation.
func ComputeBalances(members []string, expenses []Expense) (Balances, error) {
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("expense %d (%s): %w", i, e.ID, err)
		}
	}

	type tally struct {
		paid decimal.Decimal
		owed decimal.Decimal
	}
	tallies := make(map[string]*tally)
	get := func(name string) *tally {
		t, ok := tallies[name]
		if !ok {
			t = &tally{paid: decimal.Zero, owed: decimal.Zero}
			tallies[name] = t
		}
		return t
	}

	order := uniqueNames(members)
	for _, m := range order {
		get(m)
	}
	known := len(tallies)

	for _, e := range expenses {
		payers := uniqueNames(e.PaidBy)
		participants := uniqueNames(e.Participants)
		amount := decimal.NewFromFloat(e.Amount)

		sharePerPayer := amount.Div(decimal.NewFromInt(int64(len(payers))))
		sharePerParticipant := amount.Div(decimal.NewFromInt(int64(len(participants))))

		for _, p := range payers {
			t := get(p)
			t.paid = t.paid.Add(sharePerPayer)
		}
		for _, p := range participants {
			t := get(p)
			t.owed = t.owed.Add(sharePerParticipant)
		}
	}

	if len(tallies) > known {
		inMembers := make(map[string]bool, len(order))
		for _, m := range order {
			inMembers[m] = true
		}
		var extra []string
		for name := range tallies {
			if !inMembers[name] {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		order = append(order, extra...)
	}

	balances := make(Balances, len(order))
	for i, name := range order {
		t := tallies[name]
		balances[i] = Balance{
			Member: name,
			Net:    t.paid.Sub(t.owed).InexactFloat64(),
			Paid:   t.paid.InexactFloat64(),
			Owed:   t.owed.InexactFloat64(),
		}
	}
	return balances, nil
}

// MyBalance returns a single member's net balance: their payer share of every
// expense they paid minus their participant share of every expense they took part in.
func MyBalance(member string, expenses []Expense) (float64, error) {
	balances, err := ComputeBalances([]string{member}, expenses)
	if err != nil {
		return 0, err
	}
	return balances.Get(member), nil
}
