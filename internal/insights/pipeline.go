package insights

import "time"

const (
	DefaultHistoryMonths  = 6
	DefaultForecastMonths = 3
)

// AnalysisInput is everything Analyze needs about one user.
type AnalysisInput struct {
	Transactions   []Transaction
	Categories     []Category
	BalanceSheet   BalanceSheet
	HistoryMonths  int
	ForecastMonths int
}

// Report is the full output of the analytics pipeline.
type Report struct {
	GeneratedAt     time.Time           `json:"generated_at"`
	MonthlyStats    []MonthlyStatistics `json:"monthly_stats"`
	Current         MonthlyStatistics   `json:"current"`
	Forecast        Forecast            `json:"forecast"`
	MonthlyForecast []MonthlyForecast   `json:"monthly_forecast"`
	Patterns        []SpendingPattern   `json:"patterns"`
	Insights        []FinancialInsight  `json:"insights"`
	Risk            RiskAssessment      `json:"risk"`
	Recommendations []Recommendation    `json:"recommendations"`
}

// Analyze runs every stage over the trailing HistoryMonths ending with the month
// of clock.Now(). The balance sheet is applied to the current month, and insights
// are computed over the current month's transactions.
func Analyze(in AnalysisInput, clock Clock) (*Report, error) {
	historyMonths := in.HistoryMonths
	if historyMonths <= 0 {
		historyMonths = DefaultHistoryMonths
	}
	forecastMonths := in.ForecastMonths
	if forecastMonths <= 0 {
		forecastMonths = DefaultForecastMonths
	}

	now := clock.Now()
	start := monthStart(now).AddDate(0, -(historyMonths - 1), 0)
	stats, err := CalculateMonthlyStats(in.Transactions, start, now)
	if err != nil {
		return nil, err
	}
	stats = FillCategoryTrends(stats)
	stats[len(stats)-1] = ApplyBalanceSheet(stats[len(stats)-1], in.BalanceSheet)
	current := stats[len(stats)-1]

	names := NewCategoryNames(in.Categories)
	patterns := AnalyzeSpendingPatterns(in.Transactions, clock)
	risk := AssessFinancialRisk(current, patterns)

	return &Report{
		GeneratedAt:     now,
		MonthlyStats:    stats,
		Current:         current,
		Forecast:        GenerateForecast(stats),
		MonthlyForecast: GenerateMonthlyForecast(stats, forecastMonths, clock),
		Patterns:        patterns,
		Insights:        GenerateFinancialInsights(current, patterns, TransactionsInMonth(in.Transactions, now), names),
		Risk:            risk,
		Recommendations: GenerateAIRecommendations(current, risk, patterns, names),
	}, nil
}

// TransactionsInMonth returns, in input order, the transactions dated in the
// calendar month of t.
func TransactionsInMonth(txns []Transaction, t time.Time) []Transaction {
	idx := monthIndex(t)
	var out []Transaction
	for _, tx := range txns {
		if monthIndex(tx.Date) == idx {
			out = append(out, tx)
		}
	}
	return out
}
