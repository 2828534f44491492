package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// InsightsServiceName is the fully-qualified name of the InsightsService.
const InsightsServiceName = "pfinsight.v1.InsightsService"

// Procedure paths, in the form "/Service/Method".
const (
	InsightsServiceGetMonthlyStatsProcedure      = "/pfinsight.v1.InsightsService/GetMonthlyStats"
	InsightsServiceGetForecastProcedure          = "/pfinsight.v1.InsightsService/GetForecast"
	InsightsServiceGetMonthlyForecastProcedure   = "/pfinsight.v1.InsightsService/GetMonthlyForecast"
	InsightsServiceGetSpendingPatternsProcedure  = "/pfinsight.v1.InsightsService/GetSpendingPatterns"
	InsightsServiceGetFinancialInsightsProcedure = "/pfinsight.v1.InsightsService/GetFinancialInsights"
	InsightsServiceAssessRiskProcedure           = "/pfinsight.v1.InsightsService/AssessRisk"
	InsightsServiceGetRecommendationsProcedure   = "/pfinsight.v1.InsightsService/GetRecommendations"
	InsightsServiceGetReportProcedure            = "/pfinsight.v1.InsightsService/GetReport"
	InsightsServiceRecordTransactionProcedure    = "/pfinsight.v1.InsightsService/RecordTransaction"
	InsightsServiceUpdateBalanceSheetProcedure   = "/pfinsight.v1.InsightsService/UpdateBalanceSheet"
)

// InsightsServiceHandler is implemented by InsightsService.
type InsightsServiceHandler interface {
	GetMonthlyStats(context.Context, *connect.Request[GetMonthlyStatsRequest]) (*connect.Response[GetMonthlyStatsResponse], error)
	GetForecast(context.Context, *connect.Request[GetForecastRequest]) (*connect.Response[GetForecastResponse], error)
	GetMonthlyForecast(context.Context, *connect.Request[GetMonthlyForecastRequest]) (*connect.Response[GetMonthlyForecastResponse], error)
	GetSpendingPatterns(context.Context, *connect.Request[GetSpendingPatternsRequest]) (*connect.Response[GetSpendingPatternsResponse], error)
	GetFinancialInsights(context.Context, *connect.Request[GetFinancialInsightsRequest]) (*connect.Response[GetFinancialInsightsResponse], error)
	AssessRisk(context.Context, *connect.Request[AssessRiskRequest]) (*connect.Response[AssessRiskResponse], error)
	GetRecommendations(context.Context, *connect.Request[GetRecommendationsRequest]) (*connect.Response[GetRecommendationsResponse], error)
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error)
	RecordTransaction(context.Context, *connect.Request[RecordTransactionRequest]) (*connect.Response[RecordTransactionResponse], error)
	UpdateBalanceSheet(context.Context, *connect.Request[UpdateBalanceSheetRequest]) (*connect.Response[UpdateBalanceSheetResponse], error)
}

var _ InsightsServiceHandler = (*InsightsService)(nil)

// NewInsightsServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
//
// Messages are exchanged as JSON.
func NewInsightsServiceHandler(svc InsightsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	handlers := map[string]http.Handler{
		InsightsServiceGetMonthlyStatsProcedure:      connect.NewUnaryHandler(InsightsServiceGetMonthlyStatsProcedure, svc.GetMonthlyStats, opts...),
		InsightsServiceGetForecastProcedure:          connect.NewUnaryHandler(InsightsServiceGetForecastProcedure, svc.GetForecast, opts...),
		InsightsServiceGetMonthlyForecastProcedure:   connect.NewUnaryHandler(InsightsServiceGetMonthlyForecastProcedure, svc.GetMonthlyForecast, opts...),
		InsightsServiceGetSpendingPatternsProcedure:  connect.NewUnaryHandler(InsightsServiceGetSpendingPatternsProcedure, svc.GetSpendingPatterns, opts...),
		InsightsServiceGetFinancialInsightsProcedure: connect.NewUnaryHandler(InsightsServiceGetFinancialInsightsProcedure, svc.GetFinancialInsights, opts...),
		InsightsServiceAssessRiskProcedure:           connect.NewUnaryHandler(InsightsServiceAssessRiskProcedure, svc.AssessRisk, opts...),
		InsightsServiceGetRecommendationsProcedure:   connect.NewUnaryHandler(InsightsServiceGetRecommendationsProcedure, svc.GetRecommendations, opts...),
		InsightsServiceGetReportProcedure:            connect.NewUnaryHandler(InsightsServiceGetReportProcedure, svc.GetReport, opts...),
		InsightsServiceRecordTransactionProcedure:    connect.NewUnaryHandler(InsightsServiceRecordTransactionProcedure, svc.RecordTransaction, opts...),
		InsightsServiceUpdateBalanceSheetProcedure:   connect.NewUnaryHandler(InsightsServiceUpdateBalanceSheetProcedure, svc.UpdateBalanceSheet, opts...),
	}

	return "/" + InsightsServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// InsightsServiceClient calls the InsightsService over HTTP.
type InsightsServiceClient struct {
	getMonthlyStats      *connect.Client[GetMonthlyStatsRequest, GetMonthlyStatsResponse]
	getForecast          *connect.Client[GetForecastRequest, GetForecastResponse]
	getMonthlyForecast   *connect.Client[GetMonthlyForecastRequest, GetMonthlyForecastResponse]
	getSpendingPatterns  *connect.Client[GetSpendingPatternsRequest, GetSpendingPatternsResponse]
	getFinancialInsights *connect.Client[GetFinancialInsightsRequest, GetFinancialInsightsResponse]
	assessRisk           *connect.Client[AssessRiskRequest, AssessRiskResponse]
	getRecommendations   *connect.Client[GetRecommendationsRequest, GetRecommendationsResponse]
	getReport            *connect.Client[GetReportRequest, GetReportResponse]
	recordTransaction    *connect.Client[RecordTransactionRequest, RecordTransactionResponse]
	updateBalanceSheet   *connect.Client[UpdateBalanceSheetRequest, UpdateBalanceSheetResponse]
}

// NewInsightsServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8111).
func NewInsightsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *InsightsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &InsightsServiceClient{
		getMonthlyStats:      connect.NewClient[GetMonthlyStatsRequest, GetMonthlyStatsResponse](httpClient, baseURL+InsightsServiceGetMonthlyStatsProcedure, opts...),
		getForecast:          connect.NewClient[GetForecastRequest, GetForecastResponse](httpClient, baseURL+InsightsServiceGetForecastProcedure, opts...),
		getMonthlyForecast:   connect.NewClient[GetMonthlyForecastRequest, GetMonthlyForecastResponse](httpClient, baseURL+InsightsServiceGetMonthlyForecastProcedure, opts...),
		getSpendingPatterns:  connect.NewClient[GetSpendingPatternsRequest, GetSpendingPatternsResponse](httpClient, baseURL+InsightsServiceGetSpendingPatternsProcedure, opts...),
		getFinancialInsights: connect.NewClient[GetFinancialInsightsRequest, GetFinancialInsightsResponse](httpClient, baseURL+InsightsServiceGetFinancialInsightsProcedure, opts...),
		assessRisk:           connect.NewClient[AssessRiskRequest, AssessRiskResponse](httpClient, baseURL+InsightsServiceAssessRiskProcedure, opts...),
		getRecommendations:   connect.NewClient[GetRecommendationsRequest, GetRecommendationsResponse](httpClient, baseURL+InsightsServiceGetRecommendationsProcedure, opts...),
		getReport:            connect.NewClient[GetReportRequest, GetReportResponse](httpClient, baseURL+InsightsServiceGetReportProcedure, opts...),
		recordTransaction:    connect.NewClient[RecordTransactionRequest, RecordTransactionResponse](httpClient, baseURL+InsightsServiceRecordTransactionProcedure, opts...),
		updateBalanceSheet:   connect.NewClient[UpdateBalanceSheetRequest, UpdateBalanceSheetResponse](httpClient, baseURL+InsightsServiceUpdateBalanceSheetProcedure, opts...),
	}
}

func (c *InsightsServiceClient) GetMonthlyStats(ctx context.Context, req *connect.Request[GetMonthlyStatsRequest]) (*connect.Response[GetMonthlyStatsResponse], error) {
	return c.getMonthlyStats.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) GetForecast(ctx context.Context, req *connect.Request[GetForecastRequest]) (*connect.Response[GetForecastResponse], error) {
	return c.getForecast.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) GetMonthlyForecast(ctx context.Context, req *connect.Request[GetMonthlyForecastRequest]) (*connect.Response[GetMonthlyForecastResponse], error) {
	return c.getMonthlyForecast.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) GetSpendingPatterns(ctx context.Context, req *connect.Request[GetSpendingPatternsRequest]) (*connect.Response[GetSpendingPatternsResponse], error) {
	return c.getSpendingPatterns.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) GetFinancialInsights(ctx context.Context, req *connect.Request[GetFinancialInsightsRequest]) (*connect.Response[GetFinancialInsightsResponse], error) {
	return c.getFinancialInsights.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) AssessRisk(ctx context.Context, req *connect.Request[AssessRiskRequest]) (*connect.Response[AssessRiskResponse], error) {
	return c.assessRisk.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) GetRecommendations(ctx context.Context, req *connect.Request[GetRecommendationsRequest]) (*connect.Response[GetRecommendationsResponse], error) {
	return c.getRecommendations.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) RecordTransaction(ctx context.Context, req *connect.Request[RecordTransactionRequest]) (*connect.Response[RecordTransactionResponse], error) {
	return c.recordTransaction.CallUnary(ctx, req)
}

func (c *InsightsServiceClient) UpdateBalanceSheet(ctx context.Context, req *connect.Request[UpdateBalanceSheetRequest]) (*connect.Response[UpdateBalanceSheetResponse], error) {
	return c.updateBalanceSheet.CallUnary(ctx, req)
}
