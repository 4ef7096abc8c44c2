package calculator

import "math"

const (
	// Epsilon is the amount below which a balance counts as settled (one cent).
	Epsilon = 0.01

	// ZeroSumTolerance bounds the drift allowed in the sum of computed balances.
	ZeroSumTolerance = 1e-9
)

// IsSettled reports whether v is within Epsilon of zero.
func IsSettled(v float64) bool {
	return withinTolerance(v, Epsilon)
}

func withinTolerance(v, tol float64) bool {
	return math.Abs(v) < tol
}
