// Package seed builds a deterministic six-month demo ledger.
package seed

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/castlemilk/pfinsight/internal/insights"
	"github.com/castlemilk/pfinsight/internal/store"
	"github.com/google/uuid"
)

// DemoUserID owns the demo ledger when no user is given.
const DemoUserID = "demo-user"

// demoMonths is how many months of history the demo ledger covers.
const demoMonths = 6

// idNamespace scopes the deterministic transaction ids.
var idNamespace = uuid.MustParse("6f1c2a4e-8b7d-4c39-9e5a-2d0f4b6a8c13")

// Ledger is everything needed to analyze one user.
type Ledger struct {
	Transactions []insights.Transaction
	Categories   []insights.Category
	BalanceSheet insights.BalanceSheet
}

type template struct {
	description string
	minAmount   float64
	maxAmount   float64
	category    string
}

var categories = []insights.Category{
	{ID: "housing", Name: "Housing", Icon: "home"},
	{ID: "utilities", Name: "Utilities", Icon: "bolt"},
	{ID: "food", Name: "Food", Icon: "utensils"},
	{ID: "dining", Name: "Dining", Icon: "wine"},
	{ID: "transportation", Name: "Transportation", Icon: "car"},
	{ID: "entertainment", Name: "Entertainment", Icon: "film"},
	{ID: "shopping", Name: "Shopping", Icon: "bag"},
	{ID: "healthcare", Name: "Healthcare", Icon: "heart"},
	{ID: "salary", Name: "Salary", Icon: "briefcase"},
	{ID: "freelance", Name: "Freelance", Icon: "laptop"},
}

var monthlyExpenses = []template{
	{"Rent payment", 2200, 2200, "housing"},
	{"Electricity bill", 120, 220, "utilities"},
	{"Internet bill", 89, 89, "utilities"},
	{"Phone bill", 65, 85, "utilities"},
	{"Netflix", 22.99, 22.99, "entertainment"},
	{"Gym membership", 65, 65, "healthcare"},
}

var weeklyExpenses = []template{
	{"Grocery shopping", 80, 200, "food"},
	{"Petrol", 55, 110, "transportation"},
}

var randomExpenses = []template{
	{"Coffee", 4.5, 8, "dining"},
	{"Lunch out", 15, 35, "dining"},
	{"Dinner at restaurant", 45, 120, "dining"},
	{"Uber ride", 12, 45, "transportation"},
	{"Movie tickets", 18, 40, "entertainment"},
	{"Clothing", 40, 200, "shopping"},
	{"Amazon purchase", 20, 150, "shopping"},
	{"Pharmacy", 10, 60, "healthcare"},
}

// DemoLedger returns the demo ledger for userID covering the six months before now.
// The same userID and now always produce the same ledger.
func DemoLedger(userID string, now time.Time) Ledger {
	if userID == "" {
		userID = DemoUserID
	}
	rng := rand.New(rand.NewSource(42)) // deterministic for reproducibility
	b := &builder{userID: userID, now: now}

	start := time.Date(now.Year(), now.Month()-demoMonths, now.Day(), 9, 0, 0, 0, now.Location())

	for m := 1; m <= demoMonths; m++ {
		monthFirst := time.Date(start.Year(), start.Month()+time.Month(m), 1, 9, 0, 0, 0, now.Location())

		// Salary paid on the 15th
		b.add("Software Engineer Salary", randAmount(rng, 8400, 8600), "salary", insights.TransactionTypeIncome, monthFirst.AddDate(0, 0, 14))

		// Freelance income every other month
		if m%2 == 1 {
			b.add("Freelance project", randAmount(rng, 800, 2400), "freelance", insights.TransactionTypeIncome, monthFirst.AddDate(0, 0, 20+rng.Intn(5)))
		}

		for _, tmpl := range monthlyExpenses {
			b.add(tmpl.description, randAmount(rng, tmpl.minAmount, tmpl.maxAmount), tmpl.category, insights.TransactionTypeExpense, monthFirst.AddDate(0, 0, rng.Intn(5)))
		}
	}

	for _, tmpl := range weeklyExpenses {
		for d := start; d.Before(now); d = d.AddDate(0, 0, 6+rng.Intn(3)) { // 6-8 day intervals
			b.add(tmpl.description, randAmount(rng, tmpl.minAmount, tmpl.maxAmount), tmpl.category, insights.TransactionTypeExpense, d)
		}
	}

	for d := start; d.Before(now); d = d.AddDate(0, 0, 1) {
		n := rng.Intn(3)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			n++
		}
		for i := 0; i < n; i++ {
			tmpl := randomExpenses[rng.Intn(len(randomExpenses))]
			amount := randAmount(rng, tmpl.minAmount, tmpl.maxAmount)
			// Occasional anomaly: unusually large purchase (1 in 40)
			if rng.Intn(40) == 0 {
				amount = math.Round(amount*(3+rng.Float64()*2)*100) / 100
			}
			b.add(tmpl.description, amount, tmpl.category, insights.TransactionTypeExpense, d)
		}
	}

	cats := make([]insights.Category, len(categories))
	for i, c := range categories {
		c.UserID = userID
		cats[i] = c
	}

	return Ledger{
		Transactions: b.txns,
		Categories:   cats,
		BalanceSheet: insights.BalanceSheet{
			UserID:    userID,
			Savings:   18500,
			Debt:      4200,
			UpdatedAt: now,
		},
	}
}

// Populate writes the ledger to st.
func Populate(ctx context.Context, st store.Store, ledger Ledger) error {
	for i := range ledger.Categories {
		if err := st.UpsertCategory(ctx, &ledger.Categories[i]); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", ledger.Categories[i].ID, err)
		}
	}
	for i := range ledger.Transactions {
		txn := ledger.Transactions[i]
		if err := st.CreateTransaction(ctx, &txn); err != nil {
			return fmt.Errorf("failed to seed transaction %s: %w", txn.ID, err)
		}
	}
	sheet := ledger.BalanceSheet
	if err := st.UpdateBalanceSheet(ctx, &sheet); err != nil {
		return fmt.Errorf("failed to seed balance sheet: %w", err)
	}

	log.Printf("[Seed] Seeded %d transactions and %d categories for user %s",
		len(ledger.Transactions), len(ledger.Categories), ledger.BalanceSheet.UserID)
	return nil
}

type builder struct {
	userID string
	now    time.Time
	txns   []insights.Transaction
}

func (b *builder) add(description string, amount float64, category string, txnType insights.TransactionType, date time.Time) {
	if date.After(b.now) {
		return
	}
	id := uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s/%d", b.userID, len(b.txns)))).String()
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	b.txns = append(b.txns, insights.Transaction{
		ID:          id,
		UserID:      b.userID,
		Amount:      amount,
		Description: description,
		CategoryID:  category,
		Type:        txnType,
		Date:        date,
		CreatedAt:   date,
	})
}

func randAmount(rng *rand.Rand, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	return math.Round((lo+rng.Float64()*(hi-lo))*100) / 100
}
