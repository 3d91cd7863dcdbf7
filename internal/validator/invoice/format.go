package invoice

import (
	"errors"
	"fmt"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/normalize"
)

// formatRule coerces a stored field through a normalizer and flags values
// that were present but unparseable. A malformed gross_total is a hard error
// while a malformed invoice_date is only a warning; the asymmetry is a
// deliberate severity policy.
type formatRule struct {
	ruleKey     string
	ruleName    string
	fieldPath   string
	severity    domain.Severity
	failMessage string
	parse       func(*domain.InvoiceRecord) error
}

func (r *formatRule) RuleKey() string           { return r.ruleKey }
func (r *formatRule) RuleName() string          { return r.ruleName }
func (r *formatRule) Severity() domain.Severity { return r.severity }

func (r *formatRule) Check(_ *RuleContext, rec *domain.InvoiceRecord) []Finding {
	err := r.parse(rec)
	if errors.Is(err, normalize.ErrAbsent) {
		return []Finding{{
			Passed:    true,
			FieldPath: r.fieldPath,
			Message:   fmt.Sprintf("%s: field is empty, skipping format check", r.ruleName),
		}}
	}
	if err != nil {
		return []Finding{{Passed: false, FieldPath: r.fieldPath, Message: r.failMessage}}
	}
	return []Finding{{
		Passed:    true,
		FieldPath: r.fieldPath,
		Message:   fmt.Sprintf("%s: %s is well formed", r.ruleName, r.fieldPath),
	}}
}

// FormatRules returns the type-coercion checks in evaluation order.
func FormatRules() []*formatRule {
	return []*formatRule{
		{
			ruleKey: "fmt.gross_total", ruleName: "Format: Gross Total",
			fieldPath: "gross_total", severity: domain.SeverityError,
			failMessage: "Invalid format for gross_total",
			parse: func(r *domain.InvoiceRecord) error {
				_, err := normalize.Amount(r.GrossTotal)
				return err
			},
		},
		{
			ruleKey: "fmt.invoice_date", ruleName: "Format: Invoice Date",
			fieldPath: "invoice_date", severity: domain.SeverityWarning,
			failMessage: "Could not parse invoice_date",
			parse: func(r *domain.InvoiceRecord) error {
				if r.InvoiceDate == nil {
					return normalize.ErrAbsent
				}
				_, err := normalize.Date(*r.InvoiceDate, normalize.DateLayouts)
				return err
			},
		},
	}
}
