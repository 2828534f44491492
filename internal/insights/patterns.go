package insights

import "math"

const (
	// stableThreshold is the percentage change below which a category is stable.
	stableThreshold = 5.0
	// unusualThreshold is the percentage change above which a category is unusual.
	unusualThreshold = 30.0
	// noHistoryChange is reported when the older window is empty.
	noHistoryChange = 100.0
)

type windowTotals struct {
	recent float64
	older  float64
}

// AnalyzeSpendingPatterns compares, per category, the month up to clock.Now()
// against the month before it. Amounts are summed as recorded, regardless of
// transaction type. Patterns are returned in order of each category's first
// appearance in txns.
//
// When the older window is empty the change is reported as 100% whatever the
// recent total is, including zero.
func AnalyzeSpendingPatterns(txns []Transaction, clock Clock) []SpendingPattern {
	today := civilDate(clock.Now())
	recentStart := dayKey(addMonths(today, -1))
	olderStart := dayKey(addMonths(today, -2))

	totals := make(map[string]*windowTotals)
	var order []string
	for _, t := range txns {
		w, ok := totals[t.CategoryID]
		if !ok {
			w = &windowTotals{}
			totals[t.CategoryID] = w
			order = append(order, t.CategoryID)
		}
		switch day := dayKey(t.Date); {
		case day >= recentStart:
			w.recent += t.Amount
		case day >= olderStart:
			w.older += t.Amount
		}
	}

	patterns := make([]SpendingPattern, 0, len(order))
	for _, category := range order {
		w := totals[category]
		change := noHistoryChange
		if w.older != 0 {
			change = (w.recent - w.older) / w.older * 100
		}
		patterns = append(patterns, SpendingPattern{
			Category:         category,
			Trend:            classifyChange(change),
			PercentageChange: change,
			IsUnusual:        math.Abs(change) > unusualThreshold,
			Amount:           roundUnit(w.recent),
		})
	}
	return patterns
}

func classifyChange(change float64) Trend {
	switch {
	case math.Abs(change) < stableThreshold:
		return TrendStable
	case change > 0:
		return TrendIncreasing
	default:
		return TrendDecreasing
	}
}

// UnusualPatterns returns the patterns flagged as unusual.
func UnusualPatterns(patterns []SpendingPattern) []SpendingPattern {
	var out []SpendingPattern
	for _, p := range patterns {
		if p.IsUnusual {
			out = append(out, p)
		}
	}
	return out
}
