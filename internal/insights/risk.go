package insights

import (
	"fmt"
	"math"
)

const (
	lowSavingsRate        = 20.0
	largeTransactionShare = 0.2
	maxLargeTransactions  = 3

	highRiskExpenseRatio   = 0.9
	mediumRiskExpenseRatio = 0.7
	highRiskUnusualCount   = 3
	emergencyFundMonths    = 3
	highRiskFundCoverage   = 0.5
	mediumRiskFundCoverage = 1.0
)

var lowSavingsActions = []string{
	"Set up an automatic transfer to savings on payday",
	"Review subscriptions and recurring charges",
	"Follow the 50/30/20 budgeting rule",
}

type insightInput struct {
	current  MonthlyStatistics
	patterns []SpendingPattern
	txns     []Transaction
	names    CategoryNames
}

var insightRules = []rule[insightInput, []FinancialInsight]{
	{
		name: "low-savings-rate",
		when: func(in insightInput) bool {
			rate, ok := savingsRate(in.current.Income, in.current.Expenses)
			return ok && rate < lowSavingsRate
		},
		emit: func(in insightInput) []FinancialInsight {
			rate, _ := savingsRate(in.current.Income, in.current.Expenses)
			return []FinancialInsight{{
				Type:  InsightWarning,
				Title: "Low Savings Rate",
				Description: fmt.Sprintf("You are saving %.0f%% of your income this month. Aim for at least %.0f%%.",
					roundUnit(rate), lowSavingsRate),
				Actions: append([]string(nil), lowSavingsActions...),
			}}
		},
	},
	{
		name: "unusual-patterns",
		when: func(in insightInput) bool { return len(UnusualPatterns(in.patterns)) > 0 },
		emit: func(in insightInput) []FinancialInsight {
			var out []FinancialInsight
			for _, p := range UnusualPatterns(in.patterns) {
				name := in.names.Name(p.Category)
				insight := FinancialInsight{
					Type:  InsightInfo,
					Title: fmt.Sprintf("Unusual %s Spending", name),
					Description: fmt.Sprintf("Your %s spending is %s by %.0f%% compared to the previous month.",
						name, p.Trend, roundUnit(math.Abs(p.PercentageChange))),
				}
				if p.Trend == TrendIncreasing {
					insight.Actions = actionsForCategory(name)
				}
				out = append(out, insight)
			}
			return out
		},
	},
	{
		name: "large-transactions",
		when: func(in insightInput) bool { return len(largeTransactions(in.current, in.txns)) > 0 },
		emit: func(in insightInput) []FinancialInsight {
			large := largeTransactions(in.current, in.txns)
			actions := make([]string, 0, len(large))
			for _, t := range large {
				actions = append(actions, fmt.Sprintf("%s: %s on %s",
					in.names.Name(t.CategoryID), formatCurrency(t.Amount), formatDate(t.Date)))
			}
			return []FinancialInsight{{
				Type:        InsightInfo,
				Title:       "Large Transactions",
				Description: fmt.Sprintf("These transactions each exceeded %.0f%% of your monthly income.", largeTransactionShare*100),
				Actions:     actions,
			}}
		},
	},
}

// largeTransactions returns, in input order, at most the first three expenses
// whose amount exceeds a fifth of the month's income.
func largeTransactions(current MonthlyStatistics, txns []Transaction) []Transaction {
	if current.Income <= 0 {
		return nil
	}
	threshold := current.Income * largeTransactionShare
	var out []Transaction
	for _, t := range txns {
		if !t.IsIncome() && t.Amount > threshold {
			out = append(out, t)
			if len(out) == maxLargeTransactions {
				break
			}
		}
	}
	return out
}

// GenerateFinancialInsights evaluates the savings-rate, unusual-pattern and
// large-transaction checks independently and returns every insight they produce,
// in that order. txns should be the transactions of the month described by current.
func GenerateFinancialInsights(current MonthlyStatistics, patterns []SpendingPattern, txns []Transaction, names CategoryNames) []FinancialInsight {
	in := insightInput{current: current, patterns: patterns, txns: txns, names: names}
	var out []FinancialInsight
	for _, batch := range evalRules(insightRules, in) {
		out = append(out, batch...)
	}
	return out
}

type riskInput struct {
	current  MonthlyStatistics
	patterns []SpendingPattern
}

// riskFinding is the outcome of one risk check.
type riskFinding struct {
	level      RiskLevel
	factor     string
	mitigation string
}

var riskRules = []rule[riskInput, riskFinding]{
	{
		name: "expense-ratio",
		when: func(in riskInput) bool {
			_, level := expenseRatioRisk(in.current)
			return level != ""
		},
		emit: func(in riskInput) riskFinding {
			ratio, level := expenseRatioRisk(in.current)
			factor := fmt.Sprintf("Expenses are %.0f%% of income", roundUnit(ratio*100))
			if math.IsInf(ratio, 1) {
				factor = "Expenses were recorded with no income"
			}
			mitigation := "Review your budget to bring expenses below 70% of income"
			if level == RiskHigh {
				mitigation = "Cut non-essential spending until expenses fall below 70% of income"
			}
			return riskFinding{level: level, factor: factor, mitigation: mitigation}
		},
	},
	{
		name: "unusual-patterns",
		when: func(in riskInput) bool { return len(UnusualPatterns(in.patterns)) > 0 },
		emit: func(in riskInput) riskFinding {
			n := len(UnusualPatterns(in.patterns))
			level := RiskMedium
			if n >= highRiskUnusualCount {
				level = RiskHigh
			}
			factor := fmt.Sprintf("%d categories show unusual spending changes", n)
			if n == 1 {
				factor = "1 category shows unusual spending changes"
			}
			return riskFinding{
				level:      level,
				factor:     factor,
				mitigation: "Review categories with unusual spending and set limits for them",
			}
		},
	},
	{
		name: "emergency-fund",
		when: func(in riskInput) bool {
			_, level := emergencyFundRisk(in.current)
			return level != ""
		},
		emit: func(in riskInput) riskFinding {
			coverage, level := emergencyFundRisk(in.current)
			return riskFinding{
				level: level,
				factor: fmt.Sprintf("Emergency fund covers %.1f of %d recommended months of expenses",
					coverage*emergencyFundMonths, emergencyFundMonths),
				mitigation: fmt.Sprintf("Build an emergency fund covering at least %d months of expenses", emergencyFundMonths),
			}
		},
	},
}

// expenseRatioRisk returns the expense-to-income ratio and the level it implies,
// or an empty level when the ratio is unremarkable. Expenses with zero income
// count as an infinite ratio; a month with neither is not assessed.
func expenseRatioRisk(s MonthlyStatistics) (float64, RiskLevel) {
	if s.Income == 0 {
		if s.Expenses > 0 {
			return math.Inf(1), RiskHigh
		}
		return 0, ""
	}
	ratio := s.Expenses / s.Income
	switch {
	case ratio > highRiskExpenseRatio:
		return ratio, RiskHigh
	case ratio > mediumRiskExpenseRatio:
		return ratio, RiskMedium
	default:
		return ratio, ""
	}
}

// emergencyFundRisk compares savings with three months of expenses. A month
// without expenses is not assessed.
func emergencyFundRisk(s MonthlyStatistics) (float64, RiskLevel) {
	if s.Expenses <= 0 {
		return 0, ""
	}
	coverage := s.Savings / (s.Expenses * emergencyFundMonths)
	switch {
	case coverage < highRiskFundCoverage:
		return coverage, RiskHigh
	case coverage < mediumRiskFundCoverage:
		return coverage, RiskMedium
	default:
		return coverage, ""
	}
}

// AssessFinancialRisk runs the expense-ratio, unusual-pattern and emergency-fund
// checks in that order. A check can only raise the level reached so far.
func AssessFinancialRisk(current MonthlyStatistics, patterns []SpendingPattern) RiskAssessment {
	assessment := RiskAssessment{
		Level:       RiskLow,
		Factors:     []string{},
		Mitigations: []string{},
	}
	for _, f := range evalRules(riskRules, riskInput{current: current, patterns: patterns}) {
		assessment.Level = assessment.Level.raise(f.level)
		assessment.Factors = append(assessment.Factors, f.factor)
		assessment.Mitigations = append(assessment.Mitigations, f.mitigation)
	}
	return assessment
}
