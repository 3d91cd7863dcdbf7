package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/normalize"
)

// DefaultTolerance is the absolute tolerance for arithmetic reconciliation.
var DefaultTolerance = decimal.RequireFromString("0.05")

// mathRule checks that net_total + tax_amount reconciles with gross_total.
// The comparison is exact decimal, not floating point, and only runs when all
// three figures normalize; a mismatch is a warning, never an error.
type mathRule struct {
	tolerance decimal.Decimal
}

func (r *mathRule) RuleKey() string           { return "math.reconciliation" }
func (r *mathRule) RuleName() string          { return "Math: Totals Reconciliation" }
func (r *mathRule) Severity() domain.Severity { return domain.SeverityWarning }

func (r *mathRule) Check(_ *RuleContext, rec *domain.InvoiceRecord) []Finding {
	gross, gErr := normalize.Amount(rec.GrossTotal)
	net, nErr := normalize.Amount(rec.NetTotal)
	tax, tErr := normalize.Amount(rec.TaxAmount)
	if gErr != nil || nErr != nil || tErr != nil {
		return []Finding{{
			Passed:    true,
			FieldPath: "gross_total",
			Message:   "Math: Totals Reconciliation: not all figures available, skipping",
		}}
	}

	diff := net.Add(tax).Sub(gross).Abs()
	if diff.GreaterThan(r.tolerance) {
		return []Finding{{
			Passed:    false,
			FieldPath: "gross_total",
			Message: fmt.Sprintf("Math mismatch: Net (%s) + Tax (%s) != Gross (%s)",
				normalize.FormatAmount(net), normalize.FormatAmount(tax), normalize.FormatAmount(gross)),
		}}
	}
	return []Finding{{
		Passed:    true,
		FieldPath: "gross_total",
		Message:   "Math: Totals Reconciliation: net + tax matches gross",
	}}
}

// MathRules returns the arithmetic consistency checks.
func MathRules(tolerance decimal.Decimal) []*mathRule {
	return []*mathRule{{tolerance: tolerance}}
}
