// seed writes six months of deterministic demo data to a running insights server
// and prints the resulting report summary.
//
// Transactions keep their ledger ids, so running the seeder again replaces the
// earlier entries instead of adding to them. The API has no category endpoint;
// the server shows category ids title-cased ("eating_out" as "Eating Out").
//
// Usage:
//
//	API_URL=http://localhost:8111 SEED_USER_ID=demo-user go run ./cmd/seed
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/castlemilk/pfinsight/internal/seed"
	"github.com/castlemilk/pfinsight/internal/service"
	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8111"

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	userID := os.Getenv("SEED_USER_ID")
	if userID == "" {
		userID = seed.DemoUserID
	}

	client := service.NewInsightsServiceClient(http.DefaultClient, apiURL)
	ledger := seed.DemoLedger(userID, time.Now())

	log.Printf("[Seed] Seeding %d transactions for %s", len(ledger.Transactions), userID)
	log.Printf("[Seed] Target: %s", apiURL)

	failed := 0
	for _, txn := range ledger.Transactions {
		date := txn.Date
		_, err := client.RecordTransaction(ctx, connect.NewRequest(&service.RecordTransactionRequest{
			ID:          txn.ID,
			UserID:      userID,
			Amount:      txn.Amount,
			Description: txn.Description,
			CategoryID:  txn.CategoryID,
			Type:        txn.Type,
			Date:        &date,
		}))
		if err != nil {
			log.Printf("[Seed] Failed to record '%s': %v", txn.Description, err)
			failed++
		}
	}

	_, err := client.UpdateBalanceSheet(ctx, connect.NewRequest(&service.UpdateBalanceSheetRequest{
		UserID:  userID,
		Savings: ledger.BalanceSheet.Savings,
		Debt:    ledger.BalanceSheet.Debt,
	}))
	if err != nil {
		log.Fatalf("[Seed] Failed to update balance sheet: %v", err)
	}

	resp, err := client.GetReport(ctx, connect.NewRequest(&service.GetReportRequest{UserID: userID}))
	if err != nil {
		log.Fatalf("[Seed] Failed to fetch report: %v", err)
	}

	report := resp.Msg.Report
	log.Printf("[Seed] Recorded %d transactions (%d failed)", len(ledger.Transactions)-failed, failed)
	log.Printf("[Seed] Current month %s: income %.2f, expenses %.2f, risk %s",
		report.Current.Month, report.Current.Income, report.Current.Expenses, report.Risk.Level)
	log.Printf("[Seed] Forecast: balance %.0f (%s), %d insights, %d recommendations",
		report.Forecast.PredictedBalance, report.Forecast.RiskLevel, len(report.Insights), len(report.Recommendations))
}
