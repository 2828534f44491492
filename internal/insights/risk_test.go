package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessFinancialRisk(t *testing.T) {
	unusual := func(n int) []SpendingPattern {
		out := make([]SpendingPattern, n)
		for i := range out {
			out[i] = SpendingPattern{Category: "c", Trend: TrendIncreasing, PercentageChange: 50, IsUnusual: true}
		}
		return out
	}

	tests := []struct {
		name        string
		current     MonthlyStatistics
		patterns    []SpendingPattern
		wantLevel   RiskLevel
		wantFactors int
	}{
		{
			name:      "healthy month",
			current:   MonthlyStatistics{Income: 1000, Expenses: 500, Savings: 5000},
			wantLevel: RiskLow,
		},
		{
			name:        "expense ratio above 70 percent",
			current:     MonthlyStatistics{Income: 1000, Expenses: 800, Savings: 10000},
			wantLevel:   RiskMedium,
			wantFactors: 1,
		},
		{
			name:        "expense ratio above 90 percent",
			current:     MonthlyStatistics{Income: 1000, Expenses: 950, Savings: 10000},
			wantLevel:   RiskHigh,
			wantFactors: 1,
		},
		{
			name:        "one unusual pattern",
			current:     MonthlyStatistics{Income: 1000, Expenses: 500, Savings: 5000},
			patterns:    unusual(1),
			wantLevel:   RiskMedium,
			wantFactors: 1,
		},
		{
			name:        "three unusual patterns",
			current:     MonthlyStatistics{Income: 1000, Expenses: 500, Savings: 5000},
			patterns:    unusual(3),
			wantLevel:   RiskHigh,
			wantFactors: 1,
		},
		{
			name:        "thin emergency fund",
			current:     MonthlyStatistics{Income: 1000, Expenses: 500, Savings: 500},
			wantLevel:   RiskHigh,
			wantFactors: 1,
		},
		{
			name:        "partial emergency fund",
			current:     MonthlyStatistics{Income: 1000, Expenses: 500, Savings: 1200},
			wantLevel:   RiskMedium,
			wantFactors: 1,
		},
		{
			name:      "empty month divides by nothing",
			current:   MonthlyStatistics{},
			wantLevel: RiskLow,
		},
		{
			name:        "expenses without income",
			current:     MonthlyStatistics{Expenses: 100, Savings: 1000},
			wantLevel:   RiskHigh,
			wantFactors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessFinancialRisk(tt.current, tt.patterns)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Len(t, got.Factors, tt.wantFactors)
			assert.Len(t, got.Mitigations, tt.wantFactors)
		})
	}
}

func TestAssessFinancialRiskNeverDowngrades(t *testing.T) {
	// High from the expense ratio, then two medium findings.
	current := MonthlyStatistics{Income: 1000, Expenses: 950, Savings: 2000}
	patterns := []SpendingPattern{{Category: "food", Trend: TrendIncreasing, PercentageChange: 40, IsUnusual: true}}

	got := AssessFinancialRisk(current, patterns)

	assert.Equal(t, RiskHigh, got.Level)
	require.Len(t, got.Factors, 3)
	assert.Equal(t, "Expenses are 95% of income", got.Factors[0])
	assert.Equal(t, "1 category shows unusual spending changes", got.Factors[1])
	assert.Equal(t, "Emergency fund covers 2.1 of 3 recommended months of expenses", got.Factors[2])
	assert.Equal(t, "Cut non-essential spending until expenses fall below 70% of income", got.Mitigations[0])
}

func TestRiskLevelRaise(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskHigh.raise(RiskLow))
	assert.Equal(t, RiskHigh, RiskHigh.raise(RiskMedium))
	assert.Equal(t, RiskMedium, RiskLow.raise(RiskMedium))
	assert.Equal(t, RiskMedium, RiskMedium.raise(RiskLow))
	assert.True(t, RiskHigh.AtLeast(RiskMedium))
	assert.False(t, RiskLow.AtLeast(RiskMedium))
}

func TestGenerateFinancialInsights(t *testing.T) {
	names := CategoryNames{"food": "Food", "fun": "Entertainment", "rent": "Rent"}

	t.Run("low savings rate warning", func(t *testing.T) {
		got := GenerateFinancialInsights(MonthlyStatistics{Income: 1000, Expenses: 900}, nil, nil, names)
		require.Len(t, got, 1)
		assert.Equal(t, InsightWarning, got[0].Type)
		assert.Equal(t, "Low Savings Rate", got[0].Title)
		assert.Equal(t, "You are saving 10% of your income this month. Aim for at least 20%.", got[0].Description)
		assert.Len(t, got[0].Actions, 3)
	})

	t.Run("healthy savings rate and no income produce nothing", func(t *testing.T) {
		assert.Empty(t, GenerateFinancialInsights(MonthlyStatistics{Income: 1000, Expenses: 500}, nil, nil, names))
		assert.Empty(t, GenerateFinancialInsights(MonthlyStatistics{Expenses: 500}, nil, []Transaction{expense("a", "food", 400, date(2025, 3, 1))}, names))
	})

	t.Run("unusual patterns carry actions only when increasing", func(t *testing.T) {
		patterns := []SpendingPattern{
			{Category: "food", Trend: TrendIncreasing, PercentageChange: 45.4, IsUnusual: true},
			{Category: "fun", Trend: TrendDecreasing, PercentageChange: -60, IsUnusual: true},
			{Category: "rent", Trend: TrendStable, PercentageChange: 0},
		}
		got := GenerateFinancialInsights(MonthlyStatistics{Income: 1000, Expenses: 500}, patterns, nil, names)
		require.Len(t, got, 2)

		assert.Equal(t, InsightInfo, got[0].Type)
		assert.Equal(t, "Unusual Food Spending", got[0].Title)
		assert.Equal(t, "Your Food spending is increasing by 45% compared to the previous month.", got[0].Description)
		assert.Equal(t, categoryActions["food"], got[0].Actions)

		assert.Equal(t, "Your Entertainment spending is decreasing by 60% compared to the previous month.", got[1].Description)
		assert.Nil(t, got[1].Actions)
	})

	t.Run("unknown category gets default actions", func(t *testing.T) {
		patterns := []SpendingPattern{{Category: "pet_care", Trend: TrendIncreasing, PercentageChange: 100, IsUnusual: true}}
		got := GenerateFinancialInsights(MonthlyStatistics{Income: 1000, Expenses: 500}, patterns, nil, names)
		require.Len(t, got, 1)
		assert.Equal(t, "Unusual Pet Care Spending", got[0].Title)
		assert.Equal(t, defaultCategoryActions, got[0].Actions)
	})

	t.Run("first three large transactions in input order", func(t *testing.T) {
		txns := []Transaction{
			expense("a", "food", 250, date(2025, 3, 3)),
			expense("b", "food", 100, date(2025, 3, 4)),
			expense("c", "rent", 300, date(2025, 3, 1)),
			expense("d", "fun", 450, date(2025, 3, 9)),
			expense("e", "fun", 500, date(2025, 3, 10)),
		}
		got := GenerateFinancialInsights(MonthlyStatistics{Income: 1000, Expenses: 500}, nil, txns, names)
		require.Len(t, got, 1)
		assert.Equal(t, "Large Transactions", got[0].Title)
		assert.Equal(t, []string{
			"Food: $250.00 on Mar 3, 2025",
			"Rent: $300.00 on Mar 1, 2025",
			"Entertainment: $450.00 on Mar 9, 2025",
		}, got[0].Actions)
	})

	t.Run("income is never a large transaction", func(t *testing.T) {
		txns := []Transaction{
			income("pay", "salary", 5000, date(2025, 3, 1)),
			income("bonus", "salary", 1500, date(2025, 3, 2)),
			expense("a", "rent", 1200, date(2025, 3, 3)),
		}
		got := GenerateFinancialInsights(MonthlyStatistics{Income: 6500, Expenses: 1200}, nil, txns, names)
		require.Len(t, got, 1)
		assert.Equal(t, "Large Transactions", got[0].Title)
		assert.Equal(t, []string{"Rent: $1,200.00 on Mar 3, 2025"}, got[0].Actions)
	})

	t.Run("checks are independent and ordered", func(t *testing.T) {
		patterns := []SpendingPattern{{Category: "food", Trend: TrendIncreasing, PercentageChange: 50, IsUnusual: true}}
		txns := []Transaction{expense("a", "food", 900, date(2025, 3, 3))}
		got := GenerateFinancialInsights(MonthlyStatistics{Income: 1000, Expenses: 900}, patterns, txns, names)
		require.Len(t, got, 3)
		assert.Equal(t, "Low Savings Rate", got[0].Title)
		assert.Equal(t, "Unusual Food Spending", got[1].Title)
		assert.Equal(t, "Large Transactions", got[2].Title)
	})
}
