// Package ledger computes statistics and settlement plans from a project's
// transaction list. All computations are pure functions that walk the full
// list on every call; nothing is cached.
package ledger

import "math"

// Epsilon is the threshold below which a monetary value is treated as
// settled. It governs debtor/creditor classification and loop termination
// in the settlement planner.
const Epsilon = 0.01

// Round rounds v to 2 decimal places. Amounts are only rounded at the
// point of output, never mid-computation, to avoid compounding rounding
// error across sequential aggregations.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsZero reports whether v is effectively zero.
func IsZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// Share returns the equal per-person portion of amount among n
// participants. A participant count below one is treated as one.
func Share(amount float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	return amount / float64(n)
}
