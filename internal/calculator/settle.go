package calculator

import (
	"fmt"
	"sort"
)

// SettlementTitlePrefix marks expenses that record a settlement payment.
const SettlementTitlePrefix = "Settlement: "

// Transfer is a payment instruction: From should pay To the given Amount.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount float64
}

// AsExpense converts the transfer into the expense that records it as paid.
// The payer fronts the money and the receiver is the only participant, so the
// pairwise debt is zeroed going forward.
func (t Transfer) AsExpense(id string) Expense {
	return Expense{
		ID:           id,
		Amount:       t.Amount,
		PaidBy:       []string{t.From},
		Participants: []string{t.To},
	}
}

// Title is the human readable title used when the transfer is recorded.
func (t Transfer) Title() string {
	return fmt.Sprintf("%s%s → %s", SettlementTitlePrefix, t.From, t.To)
}

// Settler produces settlement transfers with a configurable tolerance.
// The zero value uses Epsilon.
type Settler struct {
	// Epsilon is the amount below which a balance counts as settled.
	Epsilon float64
}

// Simplify returns the transfers that settle balances using the default tolerance.
func Simplify(balances Balances) ([]Transfer, error) {
	return Settler{}.Simplify(balances)
}

func (s Settler) epsilon() float64 {
	if s.Epsilon > 0 {
		return s.Epsilon
	}
	return Epsilon
}

// IsSettled reports whether v is within the settler's tolerance of zero.
func (s Settler) IsSettled(v float64) bool {
	return withinTolerance(v, s.epsilon())
}

type position struct {
	name      string
	remaining float64
}

// Simplify derives a short list of debtor to creditor transfers that drives
// every balance to zero.
//
// Greedy algorithm: match largest debts with largest credits.
// - Debtors have balance < -epsilon, creditors > +epsilon
// - Both lists are sorted by magnitude, largest first; equal magnitudes keep
//   their order in balances
// - Each step transfers min(debtor remaining, creditor remaining) and moves
//   past whichever side is (nearly) exhausted
//
// At most len(debtors)+len(creditors)-1 transfers are produced. Balances that
// hold a NaN or infinite net, or do not sum to zero, are rejected with
// ErrInvalidBalanceMap.
func (s Settler) Simplify(balances Balances) ([]Transfer, error) {
	eps := s.epsilon()
	for _, bal := range balances {
		if !isFinite(bal.Net) {
			return nil, fmt.Errorf("%w: %s has non-finite balance %v", ErrInvalidBalanceMap, bal.Member, bal.Net)
		}
	}
	if sum := balances.Sum(); !withinTolerance(sum, eps) {
		return nil, fmt.Errorf("%w: balances sum to %v", ErrInvalidBalanceMap, sum)
	}

	var debtors, creditors []position
	for _, bal := range balances {
		if bal.Net < -eps {
			debtors = append(debtors, position{name: bal.Member, remaining: -bal.Net})
		} else if bal.Net > eps {
			creditors = append(creditors, position{name: bal.Member, remaining: bal.Net})
		}
	}

	byMagnitude := func(p []position) func(i, j int) bool {
		return func(i, j int) bool { return p[i].remaining > p[j].remaining }
	}
	sort.SliceStable(debtors, byMagnitude(debtors))
	sort.SliceStable(creditors, byMagnitude(creditors))

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := min(debtor.remaining, creditor.remaining)
		if amount > eps {
			transfers = append(transfers, Transfer{
				From:   debtor.name,
				To:     creditor.name,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < eps {
			i++
		}
		if creditor.remaining < eps {
			j++
		}
	}

	return transfers, nil
}

// Apply returns a copy of balances after each transfer debits From's debt and
// credits To's claim. Members only named by a transfer are appended.
func Apply(balances Balances, transfers []Transfer) Balances {
	out := make(Balances, len(balances))
	copy(out, balances)

	index := make(map[string]int, len(out))
	for i, bal := range out {
		index[bal.Member] = i
	}
	at := func(name string) *Balance {
		i, ok := index[name]
		if !ok {
			out = append(out, Balance{Member: name})
			i = len(out) - 1
			index[name] = i
		}
		return &out[i]
	}

	for _, t := range transfers {
		at(t.From).Net += t.Amount
		at(t.To).Net -= t.Amount
	}
	return out
}
