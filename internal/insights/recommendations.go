package insights

import (
	"fmt"
	"strings"
)

const (
	investmentSavingsMultiple = 6.0
	highDebtShare             = 0.5
)

type recommendationInput struct {
	current  MonthlyStatistics
	risk     RiskAssessment
	patterns []SpendingPattern
	names    CategoryNames
}

func (in recommendationInput) increasingCategories() []string {
	var out []string
	for _, p := range in.patterns {
		if p.Trend == TrendIncreasing {
			out = append(out, in.names.Name(p.Category))
		}
	}
	return out
}

var recommendationRules = []rule[recommendationInput, Recommendation]{
	{
		name: "boost-savings",
		when: func(in recommendationInput) bool {
			rate, ok := savingsRate(in.current.Income, in.current.Expenses)
			return ok && rate < lowSavingsRate
		},
		emit: func(in recommendationInput) Recommendation {
			impact := fmt.Sprintf("Saving 20%% of income puts %s aside each month", formatCurrency(in.current.Income*lowSavingsRate/100))
			if in.risk.Level == RiskHigh {
				impact += " and lowers your current high risk level"
			}
			return Recommendation{
				Category:        RecommendationSaving,
				Title:           "Automate Your Savings",
				Description:     "Set up an automatic transfer of 20% of each paycheck into a savings account before you spend it.",
				PotentialImpact: impact,
				Difficulty:      DifficultyEasy,
			}
		},
	},
	{
		name: "rein-in-spending",
		when: func(in recommendationInput) bool { return len(in.increasingCategories()) > 0 },
		emit: func(in recommendationInput) Recommendation {
			return Recommendation{
				Category:        RecommendationSpending,
				Title:           "Reduce Rising Expenses",
				Description:     fmt.Sprintf("Spending is increasing in: %s. Set category limits and review these purchases.", strings.Join(in.increasingCategories(), ", ")),
				PotentialImpact: "Returning these categories to last month's level frees up cash for savings",
				Difficulty:      DifficultyMedium,
			}
		},
	},
	{
		name: "invest-surplus",
		when: func(in recommendationInput) bool {
			return in.current.Savings > in.current.Expenses*investmentSavingsMultiple
		},
		emit: func(in recommendationInput) Recommendation {
			return Recommendation{
				Category:        RecommendationInvestment,
				Title:           "Invest Your Surplus Savings",
				Description:     "Your savings exceed six months of expenses. Consider investing the surplus in a diversified portfolio.",
				PotentialImpact: fmt.Sprintf("Puts up to %s to work beyond your emergency fund", formatCurrency(in.current.Savings-in.current.Expenses*investmentSavingsMultiple)),
				Difficulty:      DifficultyHard,
			}
		},
	},
	{
		name: "pay-down-debt",
		when: func(in recommendationInput) bool {
			return in.current.Debt > in.current.Income*highDebtShare
		},
		emit: func(in recommendationInput) Recommendation {
			return Recommendation{
				Category:        RecommendationDebt,
				Title:           "Prioritize Debt Repayment",
				Description:     "Your debt is more than half of your monthly income. Pay down the highest-interest balances first.",
				PotentialImpact: "Reduces interest costs and frees up future income",
				Difficulty:      DifficultyMedium,
			}
		},
	},
}

// GenerateAIRecommendations applies the saving, spending, investment and debt
// rules in that order; each produces at most one recommendation. Categories
// are named through names.
func GenerateAIRecommendations(current MonthlyStatistics, risk RiskAssessment, patterns []SpendingPattern, names CategoryNames) []Recommendation {
	out := evalRules(recommendationRules, recommendationInput{current: current, risk: risk, patterns: patterns, names: names})
	if out == nil {
		out = []Recommendation{}
	}
	return out
}
