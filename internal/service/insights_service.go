package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"connectrpc.com/connect"
	"github.com/castlemilk/pfinsight/internal/insights"
	"github.com/castlemilk/pfinsight/internal/metrics"
	"github.com/castlemilk/pfinsight/internal/store"
)

// maxForecastMonths bounds GetMonthlyForecast requests.
const maxForecastMonths = 24

type InsightsService struct {
	store    store.Store
	clock    insights.Clock
	recorder metrics.Recorder

	historyMonths  int
	forecastMonths int
}

// Option configures an InsightsService.
type Option func(*InsightsService)

// WithRecorder reports risk assessments to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *InsightsService) { s.recorder = r }
}

// WithHistoryMonths sets how many trailing months feed the analysis.
func WithHistoryMonths(n int) Option {
	return func(s *InsightsService) {
		if n > 0 {
			s.historyMonths = n
		}
	}
}

// WithForecastMonths sets the default monthly forecast horizon.
func WithForecastMonths(n int) Option {
	return func(s *InsightsService) {
		if n > 0 {
			s.forecastMonths = n
		}
	}
}

func NewInsightsService(st store.Store, clock insights.Clock, opts ...Option) *InsightsService {
	if clock == nil {
		clock = insights.SystemClock{}
	}
	s := &InsightsService{
		store:          st,
		clock:          clock,
		historyMonths:  insights.DefaultHistoryMonths,
		forecastMonths: insights.DefaultForecastMonths,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Analytics Handlers
// ============================================================================

// GetMonthlyStats returns per-month statistics for a date range. Boundary months
// are reported in full.
func (s *InsightsService) GetMonthlyStats(ctx context.Context, req *connect.Request[GetMonthlyStatsRequest]) (*connect.Response[GetMonthlyStatsResponse], error) {
	if err := RequireUserID(req.Msg.UserID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	end := now
	if req.Msg.EndDate != nil {
		end = *req.Msg.EndDate
	}
	start := firstOfMonth(end).AddDate(0, -(s.historyMonths - 1), 0)
	if req.Msg.StartDate != nil {
		start = *req.Msg.StartDate
	}
	if err := ValidateDateRange(start, end); err != nil {
		return nil, err
	}

	from := firstOfMonth(start)
	to := firstOfMonth(end).AddDate(0, 1, 0).Add(-time.Nanosecond)
	txns, err := s.loadTransactions(ctx, req.Msg.UserID, &from, &to)
	if err != nil {
		return nil, err
	}

	stats, err := insights.CalculateMonthlyStats(txns, start, end)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	stats = insights.FillCategoryTrends(stats)

	// Savings and debt are only known as of today, so they belong to the current month.
	current := now.Format("2006-01")
	for i := range stats {
		if stats[i].Month != current {
			continue
		}
		sheet, err := s.loadBalanceSheet(ctx, req.Msg.UserID)
		if err != nil {
			return nil, err
		}
		stats[i] = insights.ApplyBalanceSheet(stats[i], sheet)
	}

	return connect.NewResponse(&GetMonthlyStatsResponse{Stats: stats}), nil
}

// GetForecast predicts next month's income, expenses and risk.
func (s *InsightsService) GetForecast(ctx context.Context, req *connect.Request[GetForecastRequest]) (*connect.Response[GetForecastResponse], error) {
	report, err := s.report(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&GetForecastResponse{Forecast: report.Forecast}), nil
}

// GetMonthlyForecast projects income and expenses for the coming months.
func (s *InsightsService) GetMonthlyForecast(ctx context.Context, req *connect.Request[GetMonthlyForecastRequest]) (*connect.Response[GetMonthlyForecastResponse], error) {
	months := int(req.Msg.Months)
	if months < 0 || months > maxForecastMonths {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("months must be between 0 and %d", maxForecastMonths))
	}
	if months == 0 {
		months = s.forecastMonths
	}

	report, err := s.report(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	forecasts := report.MonthlyForecast
	if months != s.forecastMonths {
		forecasts = insights.GenerateMonthlyForecast(report.MonthlyStats, months, s.clock)
	}
	return connect.NewResponse(&GetMonthlyForecastResponse{Forecasts: forecasts}), nil
}

// GetSpendingPatterns compares each category's last month against the month before.
func (s *InsightsService) GetSpendingPatterns(ctx context.Context, req *connect.Request[GetSpendingPatternsRequest]) (*connect.Response[GetSpendingPatternsResponse], error) {
	report, err := s.report(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	patterns := report.Patterns
	if req.Msg.UnusualOnly {
		patterns = insights.UnusualPatterns(patterns)
	}
	if patterns == nil {
		patterns = []insights.SpendingPattern{}
	}
	return connect.NewResponse(&GetSpendingPatternsResponse{Patterns: patterns}), nil
}

// GetFinancialInsights returns presentation-ready observations for the current month.
func (s *InsightsService) GetFinancialInsights(ctx context.Context, req *connect.Request[GetFinancialInsightsRequest]) (*connect.Response[GetFinancialInsightsResponse], error) {
	report, err := s.report(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&GetFinancialInsightsResponse{Insights: report.Insights}), nil
}

// AssessRisk grades the current month's financial exposure.
func (s *InsightsService) AssessRisk(ctx context.Context, req *connect.Request[AssessRiskRequest]) (*connect.Response[AssessRiskResponse], error) {
	report, err := s.report(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	s.observeRisk(report.Risk.Level)
	return connect.NewResponse(&AssessRiskResponse{Assessment: report.Risk}), nil
}

// GetRecommendations returns categorized suggested actions.
func (s *InsightsService) GetRecommendations(ctx context.Context, req *connect.Request[GetRecommendationsRequest]) (*connect.Response[GetRecommendationsResponse], error) {
	report, err := s.report(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&GetRecommendationsResponse{Recommendations: report.Recommendations}), nil
}

// GetReport runs the full analysis in one call.
func (s *InsightsService) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	report, err := s.report(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	s.observeRisk(report.Risk.Level)
	return connect.NewResponse(&GetReportResponse{Report: report}), nil
}

// ============================================================================
// Ledger Handlers
// ============================================================================

// RecordTransaction validates and stores a ledger entry.
func (s *InsightsService) RecordTransaction(ctx context.Context, req *connect.Request[RecordTransactionRequest]) (*connect.Response[RecordTransactionResponse], error) {
	if err := RequireUserID(req.Msg.UserID); err != nil {
		return nil, err
	}

	date := s.clock.Now()
	if req.Msg.Date != nil {
		date = *req.Msg.Date
	}

	txn := &insights.Transaction{
		ID:          req.Msg.ID,
		UserID:      req.Msg.UserID,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		CategoryID:  req.Msg.CategoryID,
		Type:        req.Msg.Type,
		Date:        calendarDate(date),
	}
	if err := insights.ValidateTransaction(*txn); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if txn.ID != "" {
		existing, err := s.store.GetTransaction(ctx, txn.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return nil, WrapStoreError("get transaction", err)
		case existing.UserID != txn.UserID:
			return nil, connect.NewError(connect.CodePermissionDenied,
				fmt.Errorf("transaction %s belongs to another user", txn.ID))
		}
	}

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, WrapStoreError("create transaction", err)
	}

	return connect.NewResponse(&RecordTransactionResponse{Transaction: txn}), nil
}

// UpdateBalanceSheet replaces the user's savings and debt figures.
func (s *InsightsService) UpdateBalanceSheet(ctx context.Context, req *connect.Request[UpdateBalanceSheetRequest]) (*connect.Response[UpdateBalanceSheetResponse], error) {
	if err := RequireUserID(req.Msg.UserID); err != nil {
		return nil, err
	}
	if req.Msg.Savings < 0 || req.Msg.Debt < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("savings and debt must not be negative"))
	}

	sheet := &insights.BalanceSheet{
		UserID:    req.Msg.UserID,
		Savings:   req.Msg.Savings,
		Debt:      req.Msg.Debt,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.store.UpdateBalanceSheet(ctx, sheet); err != nil {
		return nil, WrapStoreError("update balance sheet", err)
	}

	return connect.NewResponse(&UpdateBalanceSheetResponse{BalanceSheet: sheet}), nil
}

// ============================================================================
// Helpers
// ============================================================================

// report loads everything the analysis needs for userID and runs it.
func (s *InsightsService) report(ctx context.Context, userID string) (*insights.Report, error) {
	if err := RequireUserID(userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	// Spending patterns look back two months even when the history window is shorter.
	lookback := s.historyMonths - 1
	if lookback < 2 {
		lookback = 2
	}
	from := firstOfMonth(now).AddDate(0, -lookback, 0)

	txns, err := s.loadTransactions(ctx, userID, &from, nil)
	if err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, WrapStoreError("list categories", err)
	}
	cats := make([]insights.Category, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, *c)
	}

	sheet, err := s.loadBalanceSheet(ctx, userID)
	if err != nil {
		return nil, err
	}

	report, err := insights.Analyze(insights.AnalysisInput{
		Transactions:   txns,
		Categories:     cats,
		BalanceSheet:   sheet,
		HistoryMonths:  s.historyMonths,
		ForecastMonths: s.forecastMonths,
	}, s.clock)
	if err != nil {
		log.Printf("[Insights] Analysis failed for user %s: %v", userID, err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("ledger cannot be analyzed: %w", err))
	}

	log.Printf("[Insights] Analyzed %d transactions for user %s: risk=%s", len(txns), userID, report.Risk.Level)
	return report, nil
}

// loadTransactions reads every matching transaction, following page tokens.
func (s *InsightsService) loadTransactions(ctx context.Context, userID string, start, end *time.Time) ([]insights.Transaction, error) {
	var txns []insights.Transaction
	pageToken := ""
	for {
		page, next, err := s.store.ListTransactions(ctx, userID, start, end, NormalizePageSize(ledgerPageSize), pageToken)
		if err != nil {
			return nil, WrapStoreError("list transactions", err)
		}
		for _, t := range page {
			txns = append(txns, *t)
		}
		if next == "" || next == pageToken {
			return txns, nil
		}
		pageToken = next
	}
}

// loadBalanceSheet returns the user's balance sheet, or a zero sheet if none exists.
func (s *InsightsService) loadBalanceSheet(ctx context.Context, userID string) (insights.BalanceSheet, error) {
	sheet, err := s.store.GetBalanceSheet(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return insights.BalanceSheet{UserID: userID}, nil
	}
	if err != nil {
		return insights.BalanceSheet{}, WrapStoreError("get balance sheet", err)
	}
	return *sheet, nil
}

func (s *InsightsService) observeRisk(level insights.RiskLevel) {
	if s.recorder != nil {
		s.recorder.ObserveRisk(level)
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
