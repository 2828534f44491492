package service

import (
	"time"

	"github.com/castlemilk/pfinsight/internal/insights"
)

// ============================================================================
// Analytics messages
// ============================================================================

type GetMonthlyStatsRequest struct {
	UserID string `json:"user_id"`
	// StartDate and EndDate default to the configured history window ending today.
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type GetMonthlyStatsResponse struct {
	Stats []insights.MonthlyStatistics `json:"stats"`
}

type GetForecastRequest struct {
	UserID string `json:"user_id"`
}

type GetForecastResponse struct {
	Forecast insights.Forecast `json:"forecast"`
}

type GetMonthlyForecastRequest struct {
	UserID string `json:"user_id"`
	// Months defaults to the configured forecast horizon.
	Months int32 `json:"months,omitempty"`
}

type GetMonthlyForecastResponse struct {
	Forecasts []insights.MonthlyForecast `json:"forecasts"`
}

type GetSpendingPatternsRequest struct {
	UserID      string `json:"user_id"`
	UnusualOnly bool   `json:"unusual_only,omitempty"`
}

type GetSpendingPatternsResponse struct {
	Patterns []insights.SpendingPattern `json:"patterns"`
}

type GetFinancialInsightsRequest struct {
	UserID string `json:"user_id"`
}

type GetFinancialInsightsResponse struct {
	Insights []insights.FinancialInsight `json:"insights"`
}

type AssessRiskRequest struct {
	UserID string `json:"user_id"`
}

type AssessRiskResponse struct {
	Assessment insights.RiskAssessment `json:"assessment"`
}

type GetRecommendationsRequest struct {
	UserID string `json:"user_id"`
}

type GetRecommendationsResponse struct {
	Recommendations []insights.Recommendation `json:"recommendations"`
}

type GetReportRequest struct {
	UserID string `json:"user_id"`
}

type GetReportResponse struct {
	Report *insights.Report `json:"report"`
}

// ============================================================================
// Ledger messages
// ============================================================================

type RecordTransactionRequest struct {
	// ID is optional. Recording again with the same id replaces the earlier entry.
	ID          string                   `json:"id,omitempty"`
	UserID      string                   `json:"user_id"`
	Amount      float64                  `json:"amount"`
	Description string                   `json:"description"`
	CategoryID  string                   `json:"category_id"`
	Type        insights.TransactionType `json:"type"`
	// Date defaults to today. Only its calendar date is kept.
	Date *time.Time `json:"date,omitempty"`
}

type RecordTransactionResponse struct {
	Transaction *insights.Transaction `json:"transaction"`
}

type UpdateBalanceSheetRequest struct {
	UserID  string  `json:"user_id"`
	Savings float64 `json:"savings"`
	Debt    float64 `json:"debt"`
}

type UpdateBalanceSheetResponse struct {
	BalanceSheet *insights.BalanceSheet `json:"balance_sheet"`
}
