package insights

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CategoryNames maps category ids to display names.
type CategoryNames map[string]string

// NewCategoryNames builds a lookup from a category list.
func NewCategoryNames(categories []Category) CategoryNames {
	names := make(CategoryNames, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

var titleCaser = cases.Title(language.English)

// Name returns the display name for id. Unknown ids fall back to a title-cased
// form of the id itself; an empty id is "Uncategorized".
func (n CategoryNames) Name(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	if id == "" {
		return "Uncategorized"
	}
	return titleCaser.String(strings.NewReplacer("_", " ", "-", " ").Replace(id))
}

// categoryActions holds the suggestions shown when spending in a category rises.
// Keys are lower-case display names.
var categoryActions = map[string][]string{
	"food": {
		"Plan weekly meals and shop with a list",
		"Cook at home more often instead of ordering in",
		"Set a weekly dining-out limit",
	},
	"groceries": {
		"Plan weekly meals and shop with a list",
		"Compare unit prices and buy store brands",
		"Avoid shopping when hungry",
	},
	"dining": {
		"Set a weekly dining-out limit",
		"Choose lunch specials over dinner menus",
		"Cook at home more often instead of ordering in",
	},
	"entertainment": {
		"Review and cancel unused subscriptions",
		"Look for free local events",
		"Set a monthly entertainment budget",
	},
	"shopping": {
		"Wait 48 hours before non-essential purchases",
		"Unsubscribe from retailer marketing emails",
		"Set a monthly shopping budget",
	},
	"transportation": {
		"Combine errands into fewer trips",
		"Compare public transport costs with driving",
		"Check fuel price apps before filling up",
	},
	"utilities": {
		"Compare energy providers for a better rate",
		"Reduce standby power usage",
		"Review your internet and phone plans",
	},
}

var defaultCategoryActions = []string{
	"Review recent transactions in this category",
	"Set a monthly budget for this category",
	"Track spending in this category weekly",
}

func actionsForCategory(name string) []string {
	actions, ok := categoryActions[strings.ToLower(name)]
	if !ok {
		actions = defaultCategoryActions
	}
	return append([]string(nil), actions...)
}

var printer = message.NewPrinter(language.English)

// formatCurrency renders an amount as "$1,234.56".
func formatCurrency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
