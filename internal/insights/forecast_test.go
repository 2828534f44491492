package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history(pairs ...[2]float64) []MonthlyStatistics {
	stats := make([]MonthlyStatistics, len(pairs))
	for i, p := range pairs {
		stats[i] = MonthlyStatistics{Income: p[0], Expenses: p[1], Balance: p[0] - p[1]}
	}
	return stats
}

func TestGenerateForecast(t *testing.T) {
	tests := []struct {
		name            string
		stats           []MonthlyStatistics
		wantIncome      float64
		wantExpenses    float64
		wantBalance     float64
		wantRisk        RiskLevel
		wantRecommended []string
	}{
		{
			name:            "no history",
			stats:           nil,
			wantRisk:        RiskMedium,
			wantRecommended: []string{MsgInsufficientData},
		},
		{
			name:            "single month",
			stats:           history([2]float64{1000, 800}),
			wantRisk:        RiskMedium,
			wantRecommended: []string{"Not enough data for accurate forecast"},
		},
		{
			name:            "growing income and shrinking expenses",
			stats:           history([2]float64{1000, 800}, [2]float64{1200, 760}),
			wantIncome:      1400,
			wantExpenses:    720,
			wantBalance:     680,
			wantRisk:        RiskLow,
			wantRecommended: []string{MsgOnTrack},
		},
		{
			name:            "expenses close to income",
			stats:           history([2]float64{1000, 850}, [2]float64{1000, 850}),
			wantIncome:      1000,
			wantExpenses:    850,
			wantBalance:     150,
			wantRisk:        RiskMedium,
			wantRecommended: []string{MsgHighExpenseRatio},
		},
		{
			name:         "every warning fires in rule order",
			stats:        history([2]float64{1000, 900}, [2]float64{900, 1000}),
			wantIncome:   800,
			wantExpenses: 1100,
			wantBalance:  -300,
			wantRisk:     RiskHigh,
			wantRecommended: []string{
				MsgNegativeBalance,
				MsgHighExpenseRatio,
				MsgRisingExpenses,
				MsgFallingIncome,
			},
		},
		{
			name:            "zero predicted income skips the ratio check",
			stats:           history([2]float64{0, 100}, [2]float64{0, 100}),
			wantExpenses:    100,
			wantBalance:     -100,
			wantRisk:        RiskHigh,
			wantRecommended: []string{MsgNegativeBalance},
		},
		{
			name:            "trend averages over every step",
			stats:           history([2]float64{1000, 500}, [2]float64{1100, 500}, [2]float64{1300, 500}),
			wantIncome:      1450,
			wantExpenses:    500,
			wantBalance:     950,
			wantRisk:        RiskLow,
			wantRecommended: []string{MsgOnTrack},
		},
		{
			name:            "predictions round half up",
			stats:           history([2]float64{1000.4, 10}, [2]float64{1000.6, 10.5}),
			wantIncome:      1001,
			wantExpenses:    11,
			wantBalance:     990,
			wantRisk:        RiskLow,
			wantRecommended: []string{MsgRisingExpenses},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateForecast(tt.stats)
			assert.Equal(t, tt.wantIncome, got.PredictedIncome)
			assert.Equal(t, tt.wantExpenses, got.PredictedExpenses)
			assert.Equal(t, tt.wantBalance, got.PredictedBalance)
			assert.Equal(t, tt.wantRisk, got.RiskLevel)
			assert.Equal(t, tt.wantRecommended, got.Recommendations)
		})
	}
}

func TestForecastRuleOrder(t *testing.T) {
	var names []string
	for _, r := range forecastRules {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"negative-balance", "high-expense-ratio", "rising-expenses", "falling-income"}, names)
}

func TestGenerateMonthlyForecast(t *testing.T) {
	clock := FixedClock(time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC))

	t.Run("linear extrapolation labelled from now", func(t *testing.T) {
		got := GenerateMonthlyForecast(history([2]float64{1000, 800}, [2]float64{1200, 760}), 3, clock)
		assert.Equal(t, []MonthlyForecast{
			{Month: "Apr 2025", Income: 1400, Expenses: 720, Balance: 680},
			{Month: "May 2025", Income: 1600, Expenses: 680, Balance: 920},
			{Month: "Jun 2025", Income: 1800, Expenses: 640, Balance: 1160},
		}, got)
	})

	t.Run("insufficient history yields labelled zero periods", func(t *testing.T) {
		got := GenerateMonthlyForecast(history([2]float64{1000, 800}), 2, clock)
		assert.Equal(t, []MonthlyForecast{{Month: "Apr 2025"}, {Month: "May 2025"}}, got)
	})

	t.Run("labels cross the year boundary", func(t *testing.T) {
		got := GenerateMonthlyForecast(nil, 2, FixedClock(date(2025, 11, 30)))
		require.Len(t, got, 2)
		assert.Equal(t, "Dec 2025", got[0].Month)
		assert.Equal(t, "Jan 2026", got[1].Month)
	})

	t.Run("no periods requested", func(t *testing.T) {
		got := GenerateMonthlyForecast(history([2]float64{1, 1}, [2]float64{2, 2}), 0, clock)
		assert.Empty(t, got)
	})

	t.Run("each period is rounded independently", func(t *testing.T) {
		got := GenerateMonthlyForecast(history([2]float64{100, 0}, [2]float64{100.2, 0}), 2, clock)
		assert.Equal(t, 100.0, got[0].Income)
		assert.Equal(t, 101.0, got[1].Income)
	})
}
