package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSpendingPatterns(t *testing.T) {
	clock := FixedClock(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))

	ledger := []Transaction{
		expense("f1", "food", 120, date(2025, 3, 1)),
		expense("t1", "transport", 50, date(2025, 3, 2)),
		expense("f0", "food", 100, date(2025, 1, 20)),
		expense("t0", "transport", 100, date(2025, 1, 25)),
		expense("r1", "rent", 1000, date(2025, 3, 1)),
		expense("r0", "rent", 1000, date(2025, 2, 1)),
		expense("n1", "new", 30, date(2025, 3, 10)),
		expense("x0", "dormant", 80, date(2024, 6, 1)),
	}

	patterns := AnalyzeSpendingPatterns(ledger, clock)
	require.Len(t, patterns, 5)

	byCategory := make(map[string]SpendingPattern)
	var order []string
	for _, p := range patterns {
		byCategory[p.Category] = p
		order = append(order, p.Category)
	}

	t.Run("categories follow first appearance", func(t *testing.T) {
		assert.Equal(t, []string{"food", "transport", "rent", "new", "dormant"}, order)
	})

	t.Run("moderate increase is not unusual", func(t *testing.T) {
		food := byCategory["food"]
		assert.Equal(t, TrendIncreasing, food.Trend)
		assert.InDelta(t, 20, food.PercentageChange, 1e-9)
		assert.False(t, food.IsUnusual)
		assert.Equal(t, 120.0, food.Amount)
	})

	t.Run("large decrease is unusual", func(t *testing.T) {
		transport := byCategory["transport"]
		assert.Equal(t, TrendDecreasing, transport.Trend)
		assert.InDelta(t, -50, transport.PercentageChange, 1e-9)
		assert.True(t, transport.IsUnusual)
	})

	t.Run("flat spending is stable", func(t *testing.T) {
		rent := byCategory["rent"]
		assert.Equal(t, TrendStable, rent.Trend)
		assert.Zero(t, rent.PercentageChange)
		assert.False(t, rent.IsUnusual)
	})

	t.Run("empty older window reports the 100 percent sentinel", func(t *testing.T) {
		fresh := byCategory["new"]
		assert.Equal(t, 100.0, fresh.PercentageChange)
		assert.True(t, fresh.IsUnusual)
		assert.Equal(t, TrendIncreasing, fresh.Trend)
	})

	t.Run("sentinel applies even when both windows are empty", func(t *testing.T) {
		dormant := byCategory["dormant"]
		assert.Equal(t, 100.0, dormant.PercentageChange)
		assert.True(t, dormant.IsUnusual)
		assert.Zero(t, dormant.Amount)
	})
}

func TestAnalyzeSpendingPatternsWindows(t *testing.T) {
	clock := FixedClock(time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC))

	t.Run("window boundaries compare calendar dates", func(t *testing.T) {
		ledger := []Transaction{
			expense("recent-edge", "food", 60, time.Date(2025, 2, 15, 0, 0, 1, 0, time.UTC)),
			expense("older-edge", "food", 40, date(2025, 1, 15)),
			expense("too-old", "food", 500, date(2025, 1, 14)),
		}
		patterns := AnalyzeSpendingPatterns(ledger, clock)
		require.Len(t, patterns, 1)
		assert.Equal(t, 60.0, patterns[0].Amount)
		assert.InDelta(t, 50, patterns[0].PercentageChange, 1e-9)
	})

	t.Run("income and expenses are summed alike", func(t *testing.T) {
		ledger := []Transaction{
			income("i1", "side", 200, date(2025, 3, 1)),
			expense("e1", "side", 100, date(2025, 3, 2)),
			income("i0", "side", 300, date(2025, 2, 1)),
		}
		patterns := AnalyzeSpendingPatterns(ledger, clock)
		require.Len(t, patterns, 1)
		assert.Equal(t, 300.0, patterns[0].Amount)
		assert.Equal(t, TrendStable, patterns[0].Trend)
	})

	t.Run("end of month clamps the window start", func(t *testing.T) {
		eom := FixedClock(date(2025, 3, 31))
		ledger := []Transaction{
			expense("a", "food", 10, date(2025, 2, 28)),
			expense("b", "food", 10, date(2025, 2, 27)),
		}
		patterns := AnalyzeSpendingPatterns(ledger, eom)
		require.Len(t, patterns, 1)
		assert.Equal(t, 10.0, patterns[0].Amount)
		assert.Zero(t, patterns[0].PercentageChange)
	})

	t.Run("recent amount is rounded", func(t *testing.T) {
		ledger := []Transaction{
			expense("a", "food", 10.5, date(2025, 3, 1)),
			expense("b", "food", 10, date(2025, 2, 1)),
		}
		patterns := AnalyzeSpendingPatterns(ledger, clock)
		assert.Equal(t, 11.0, patterns[0].Amount)
		assert.Equal(t, TrendIncreasing, patterns[0].Trend)
	})

	t.Run("no transactions", func(t *testing.T) {
		assert.Empty(t, AnalyzeSpendingPatterns(nil, clock))
	})
}

func TestUnusualPatterns(t *testing.T) {
	patterns := []SpendingPattern{
		{Category: "a", IsUnusual: true},
		{Category: "b"},
		{Category: "c", IsUnusual: true},
	}
	unusual := UnusualPatterns(patterns)
	require.Len(t, unusual, 2)
	assert.Equal(t, "a", unusual[0].Category)
	assert.Equal(t, "c", unusual[1].Category)
}
