package insights

const (
	// MsgInsufficientData is the only recommendation of a forecast built from
	// fewer than two months of history.
	MsgInsufficientData = "Not enough data for accurate forecast"

	MsgNegativeBalance  = "Your expenses are projected to exceed your income. Cut back on non-essential spending."
	MsgHighExpenseRatio = "You are projected to spend more than 80% of your income. Aim to save at least 20%."
	MsgRisingExpenses   = "Your expenses are trending upward. Review recent purchases for savings opportunities."
	MsgFallingIncome    = "Your income is trending downward. Consider building a larger emergency fund."
	MsgOnTrack          = "Your finances are on track. Continue your current saving and spending habits."

	// highExpenseRatio is the expense-to-income ratio above which a forecast is
	// considered medium risk.
	highExpenseRatio = 0.8

	forecastLabelLayout = "Jan 2006"
)

// trendLine is the average month-over-month change of a history.
type trendLine struct {
	lastIncome   float64
	lastExpenses float64
	income       float64
	expenses     float64
}

func computeTrend(stats []MonthlyStatistics) trendLine {
	var incomeDelta, expenseDelta float64
	for i := 1; i < len(stats); i++ {
		incomeDelta += stats[i].Income - stats[i-1].Income
		expenseDelta += stats[i].Expenses - stats[i-1].Expenses
	}
	steps := float64(len(stats) - 1)
	last := stats[len(stats)-1]
	return trendLine{
		lastIncome:   last.Income,
		lastExpenses: last.Expenses,
		income:       incomeDelta / steps,
		expenses:     expenseDelta / steps,
	}
}

// project extrapolates k months past the last month of the history.
func (tl trendLine) project(k int) (income, expenses float64) {
	return roundUnit(tl.lastIncome + tl.income*float64(k)),
		roundUnit(tl.lastExpenses + tl.expenses*float64(k))
}

type forecastSignals struct {
	income   float64
	expenses float64
	balance  float64
	trend    trendLine
}

// expenseRatio is undefined when predicted income is zero.
func (s forecastSignals) expenseRatio() (float64, bool) {
	if s.income == 0 {
		return 0, false
	}
	return s.expenses / s.income, true
}

func (s forecastSignals) overspending() bool {
	ratio, ok := s.expenseRatio()
	return ok && ratio > highExpenseRatio
}

func fixedMessage(msg string) func(forecastSignals) string {
	return func(forecastSignals) string { return msg }
}

var forecastRules = []rule[forecastSignals, string]{
	{
		name: "negative-balance",
		when: func(s forecastSignals) bool { return s.balance < 0 },
		emit: fixedMessage(MsgNegativeBalance),
	},
	{
		name: "high-expense-ratio",
		when: forecastSignals.overspending,
		emit: fixedMessage(MsgHighExpenseRatio),
	},
	{
		name: "rising-expenses",
		when: func(s forecastSignals) bool { return s.trend.expenses > 0 },
		emit: fixedMessage(MsgRisingExpenses),
	},
	{
		name: "falling-income",
		when: func(s forecastSignals) bool { return s.trend.income < 0 },
		emit: fixedMessage(MsgFallingIncome),
	},
}

func classifyForecast(s forecastSignals) RiskLevel {
	switch {
	case s.balance < 0:
		return RiskHigh
	case s.overspending():
		return RiskMedium
	default:
		return RiskLow
	}
}

// GenerateForecast predicts the month following the last entry of stats by
// extending the average month-over-month change one step.
func GenerateForecast(stats []MonthlyStatistics) Forecast {
	if len(stats) < 2 {
		return Forecast{
			RiskLevel:       RiskMedium,
			Recommendations: []string{MsgInsufficientData},
		}
	}

	trend := computeTrend(stats)
	income, expenses := trend.project(1)
	signals := forecastSignals{
		income:   income,
		expenses: expenses,
		balance:  income - expenses,
		trend:    trend,
	}

	recommendations := evalRules(forecastRules, signals)
	if len(recommendations) == 0 {
		recommendations = []string{MsgOnTrack}
	}

	return Forecast{
		PredictedIncome:   income,
		PredictedExpenses: expenses,
		PredictedBalance:  signals.balance,
		RiskLevel:         classifyForecast(signals),
		Recommendations:   recommendations,
	}
}

// GenerateMonthlyForecast projects months periods ahead. Period k is the last
// month plus k trend steps, labelled with the month k months after clock.Now().
// With fewer than two months of history every period is zero.
func GenerateMonthlyForecast(stats []MonthlyStatistics, months int, clock Clock) []MonthlyForecast {
	if months <= 0 {
		return []MonthlyForecast{}
	}

	anchor := monthStart(clock.Now())
	out := make([]MonthlyForecast, months)
	for k := 1; k <= months; k++ {
		out[k-1].Month = anchor.AddDate(0, k, 0).Format(forecastLabelLayout)
	}
	if len(stats) < 2 {
		return out
	}

	trend := computeTrend(stats)
	for k := 1; k <= months; k++ {
		income, expenses := trend.project(k)
		out[k-1].Income = income
		out[k-1].Expenses = expenses
		out[k-1].Balance = income - expenses
	}
	return out
}
