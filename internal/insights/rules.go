package insights

import "math"

// rule is one predicate/effect pair. Rule tables are evaluated top to bottom and
// every matching rule contributes its result, so table order is output order.
type rule[S, R any] struct {
	name string
	when func(S) bool
	emit func(S) R
}

func evalRules[S, R any](rules []rule[S, R], s S) []R {
	var out []R
	for _, r := range rules {
		if r.when(s) {
			out = append(out, r.emit(s))
		}
	}
	return out
}

// roundUnit rounds to the nearest whole currency unit, halves rounding up.
func roundUnit(v float64) float64 {
	return math.Floor(v + 0.5)
}

// savingsRate returns (income-expenses)/income as a percentage. ok is false when
// income is zero and the rate is undefined.
func savingsRate(income, expenses float64) (rate float64, ok bool) {
	if income == 0 {
		return 0, false
	}
	return (income - expenses) / income * 100, true
}
