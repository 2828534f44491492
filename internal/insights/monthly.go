package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

const monthLabelLayout = "2006-01"

type monthAccumulator struct {
	income     decimal.Decimal
	expenses   decimal.Decimal
	categories map[string]decimal.Decimal
}

func (a *monthAccumulator) add(t Transaction) {
	amount := decimal.NewFromFloat(t.Amount)
	signed := amount
	if t.IsIncome() {
		a.income = a.income.Add(amount)
	} else {
		a.expenses = a.expenses.Add(amount)
		signed = amount.Neg()
	}
	if t.CategoryID == "" {
		return
	}
	a.categories[t.CategoryID] = a.categories[t.CategoryID].Add(signed)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// CalculateMonthlyStats buckets txns into one MonthlyStatistics per calendar month
// from the month containing start through the month containing end. Partially
// covered boundary months are included. A transaction belongs to the month of its
// calendar date, so the first and last day of a month are both inside it.
//
// A reversed range yields no months and ErrInvalidDateRange.
func CalculateMonthlyStats(txns []Transaction, start, end time.Time) ([]MonthlyStatistics, error) {
	if dayKey(start) > dayKey(end) {
		return nil, ErrInvalidDateRange
	}
	if err := ValidateTransactions(txns); err != nil {
		return nil, err
	}

	first, last := monthIndex(start), monthIndex(end)
	accs := make([]*monthAccumulator, last-first+1)
	for i := range accs {
		accs[i] = &monthAccumulator{categories: make(map[string]decimal.Decimal)}
	}

	for _, t := range txns {
		idx := monthIndex(t.Date)
		if idx < first || idx > last {
			continue
		}
		accs[idx-first].add(t)
	}

	stats := make([]MonthlyStatistics, len(accs))
	cursor := monthStart(start)
	for i, acc := range accs {
		categories := make(map[string]CategoryStat, len(acc.categories))
		for id, amount := range acc.categories {
			categories[id] = CategoryStat{Amount: amount.InexactFloat64()}
		}
		stats[i] = MonthlyStatistics{
			Month:      cursor.AddDate(0, i, 0).Format(monthLabelLayout),
			Income:     acc.income.InexactFloat64(),
			Expenses:   acc.expenses.InexactFloat64(),
			Balance:    acc.income.Sub(acc.expenses).InexactFloat64(),
			Categories: categories,
		}
	}
	return stats, nil
}

// FillCategoryTrends returns a copy of stats where every category's Trend is the
// change in its amount from the previous month. Categories absent from the
// previous month count as zero there; the first month's trends stay zero.
func FillCategoryTrends(stats []MonthlyStatistics) []MonthlyStatistics {
	out := make([]MonthlyStatistics, len(stats))
	for i, s := range stats {
		s.Categories = copyCategories(s.Categories)
		if i > 0 {
			prev := stats[i-1].Categories
			for id, c := range s.Categories {
				c.Trend = c.Amount - prev[id].Amount
				s.Categories[id] = c
			}
		}
		out[i] = s
	}
	return out
}

// ApplyBalanceSheet returns a copy of stat carrying the sheet's savings and debt.
func ApplyBalanceSheet(stat MonthlyStatistics, sheet BalanceSheet) MonthlyStatistics {
	stat.Categories = copyCategories(stat.Categories)
	stat.Savings = sheet.Savings
	stat.Debt = sheet.Debt
	return stat
}

func copyCategories(in map[string]CategoryStat) map[string]CategoryStat {
	out := make(map[string]CategoryStat, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
