package invoice

import (
	"github.com/shopspring/decimal"
)

// AllRules returns every built-in rule in evaluation order: completeness,
// type coercion, arithmetic reconciliation, date plausibility, duplicate
// detection. The order is part of the contract: error and warning lists
// come out in this sequence.
func AllRules(tolerance decimal.Decimal, maxAgeDays int) []*BuiltinRule {
	reqRules := RequiredRules()
	fmtRules := FormatRules()
	mathRules := MathRules(tolerance)
	logRules := LogicalRules(maxAgeDays)

	all := make([]*BuiltinRule, 0, len(reqRules)+len(fmtRules)+len(mathRules)+len(logRules)+1)

	for _, r := range reqRules {
		all = append(all, &BuiltinRule{
			key: r.RuleKey(), name: r.RuleName(), severity: r.Severity(), fn: r.Check,
		})
	}
	for _, r := range fmtRules {
		all = append(all, &BuiltinRule{
			key: r.RuleKey(), name: r.RuleName(), severity: r.Severity(), fn: r.Check,
		})
	}
	for _, r := range mathRules {
		all = append(all, &BuiltinRule{
			key: r.RuleKey(), name: r.RuleName(), severity: r.Severity(), fn: r.Check,
		})
	}
	for _, r := range logRules {
		all = append(all, &BuiltinRule{
			key: r.RuleKey(), name: r.RuleName(), severity: r.Severity(), fn: r.Check,
		})
	}
	all = append(all, DuplicateRule())

	return all
}

// DefaultRules returns AllRules with the stock tolerance and age horizon.
func DefaultRules() []*BuiltinRule {
	return AllRules(DefaultTolerance, DefaultMaxAgeDays)
}
