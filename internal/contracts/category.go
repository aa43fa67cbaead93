package contracts

import (
	"strings"

	"finora/internal/core"
)

// Keyword lists for the rule classifier. Matching is a case-insensitive
// substring check against the transaction name.
var (
	insuranceKeywords = []string{"versicherung", "allianz", "insurance"}
	utilityKeywords   = []string{"strom", "gas", "wasser", "energie", "stadtwerke"}
)

// categoryRule pairs a predicate with the category it assigns.
type categoryRule struct {
	category core.Category
	matches  func(name string, amount core.Money) bool
}

// categoryRules is evaluated top-down; the first matching rule wins.
// The ordering is the classification policy: income beats every keyword,
// insurance beats utility, and subscription is the fallback below.
var categoryRules = []categoryRule{
	{core.Income, func(_ string, amount core.Money) bool {
		return amount.Cents > 0
	}},
	{core.Insurance, keywordRule(insuranceKeywords)},
	{core.Utility, keywordRule(utilityKeywords)},
}

// classifyCategory assigns a category to a series based on its
// representative transaction's name and canonical signed amount.
func classifyCategory(name string, amount core.Money) core.Category {
	folded := strings.ToLower(name)
	for _, rule := range categoryRules {
		if rule.matches(folded, amount) {
			return rule.category
		}
	}
	return core.Subscription
}

func keywordRule(keywords []string) func(string, core.Money) bool {
	return func(name string, _ core.Money) bool {
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return true
			}
		}
		return false
	}
}
