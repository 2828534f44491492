// Package insights turns a transaction ledger into monthly statistics, forecasts,
// spending patterns, risk assessments and recommendations.
//
// Every function in this package is a pure transform of its arguments. Functions
// that depend on the current date take a Clock so results are reproducible.
package insights

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single ledger entry. Amount is a non-negative value in major
// currency units; the direction comes from Type.
type Transaction struct {
	ID          string          `json:"id" firestore:"Id"`
	UserID      string          `json:"user_id" firestore:"UserId"`
	Amount      float64         `json:"amount" firestore:"Amount"`
	Description string          `json:"description" firestore:"Description"`
	CategoryID  string          `json:"category_id" firestore:"CategoryId"`
	Type        TransactionType `json:"type" firestore:"Type"`
	Date        time.Time       `json:"date" firestore:"Date"`
	CreatedAt   time.Time       `json:"created_at" firestore:"CreatedAt"`
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// Category is a user-visible grouping for transactions.
type Category struct {
	ID     string `json:"id" firestore:"Id"`
	UserID string `json:"user_id" firestore:"UserId"`
	Name   string `json:"name" firestore:"Name"`
	Icon   string `json:"icon" firestore:"Icon"`
}

// BalanceSheet holds the account-level figures that cannot be derived from the
// transaction ledger: money set aside and money owed.
type BalanceSheet struct {
	UserID    string    `json:"user_id" firestore:"UserId"`
	Savings   float64   `json:"savings" firestore:"Savings"`
	Debt      float64   `json:"debt" firestore:"Debt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"UpdatedAt"`
}

// CategoryStat is the signed net amount of one category within a month.
// Trend is zero unless filled in by FillCategoryTrends.
type CategoryStat struct {
	Amount float64 `json:"amount"`
	Trend  float64 `json:"trend"`
}

// MonthlyStatistics aggregates one calendar month of the ledger.
type MonthlyStatistics struct {
	Month      string                  `json:"month"`
	Income     float64                 `json:"income"`
	Expenses   float64                 `json:"expenses"`
	Balance    float64                 `json:"balance"`
	Savings    float64                 `json:"savings"`
	Debt       float64                 `json:"debt"`
	Categories map[string]CategoryStat `json:"categories"`
}

// RiskLevel is a qualitative summary of financial exposure.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var riskRank = map[RiskLevel]int{
	RiskLow:    0,
	RiskMedium: 1,
	RiskHigh:   2,
}

// AtLeast reports whether r is as severe as other.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return riskRank[r] >= riskRank[other]
}

// raise returns the more severe of the two levels.
func (r RiskLevel) raise(to RiskLevel) RiskLevel {
	if to.AtLeast(r) {
		return to
	}
	return r
}

// Forecast predicts the month after the last one in a history.
type Forecast struct {
	PredictedIncome   float64   `json:"predicted_income"`
	PredictedExpenses float64   `json:"predicted_expenses"`
	PredictedBalance  float64   `json:"predicted_balance"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Recommendations   []string  `json:"recommendations"`
}

// MonthlyForecast is one projected month of a multi-period forecast.
type MonthlyForecast struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// Trend is the direction of a category's spending between two windows.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// SpendingPattern compares a category's most recent month against the month before.
type SpendingPattern struct {
	Category         string  `json:"category"`
	Trend            Trend   `json:"trend"`
	PercentageChange float64 `json:"percentage_change"`
	IsUnusual        bool    `json:"is_unusual"`
	Amount           float64 `json:"amount"`
}

// InsightType controls how an insight is presented.
type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
	InsightDanger  InsightType = "danger"
)

// FinancialInsight is a presentation-ready observation with optional actions.
type FinancialInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Actions     []string    `json:"actions,omitempty"`
}

// RiskAssessment lists what contributed to a risk level and how to reduce it.
type RiskAssessment struct {
	Level       RiskLevel `json:"level"`
	Factors     []string  `json:"factors"`
	Mitigations []string  `json:"mitigations"`
}

// RecommendationCategory groups recommendations by the kind of action.
type RecommendationCategory string

const (
	RecommendationSaving     RecommendationCategory = "saving"
	RecommendationSpending   RecommendationCategory = "spending"
	RecommendationInvestment RecommendationCategory = "investment"
	RecommendationDebt       RecommendationCategory = "debt"
)

// Difficulty rates how much effort a recommendation takes.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Recommendation is a categorized, difficulty-rated suggested action.
type Recommendation struct {
	Category        RecommendationCategory `json:"category"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	PotentialImpact string                 `json:"potential_impact"`
	Difficulty      Difficulty             `json:"difficulty"`
}
