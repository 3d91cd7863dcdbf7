package invoice

import (
	"fmt"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/normalize"
)

// DefaultMaxAgeDays is the staleness horizon for invoice dates.
const DefaultMaxAgeDays = 365

// dateBoundsRule flags invoice dates that are in the future or older than
// the staleness horizon. The two conditions are mutually exclusive and only
// evaluated when the date parses; due_date deliberately gets no such check.
type dateBoundsRule struct {
	maxAgeDays int
}

func (r *dateBoundsRule) RuleKey() string           { return "logic.invoice_date.bounds" }
func (r *dateBoundsRule) RuleName() string          { return "Logical: Invoice Date Bounds" }
func (r *dateBoundsRule) Severity() domain.Severity { return domain.SeverityWarning }

func (r *dateBoundsRule) Check(rc *RuleContext, rec *domain.InvoiceRecord) []Finding {
	var raw string
	if rec.InvoiceDate != nil {
		raw = *rec.InvoiceDate
	}
	d, err := normalize.Date(raw, normalize.DateLayouts)
	if err != nil {
		return []Finding{{
			Passed:    true,
			FieldPath: "invoice_date",
			Message:   "Logical: Invoice Date Bounds: no parseable date, skipping",
		}}
	}

	today := rc.Today()
	iso := d.Format("2006-01-02")
	switch {
	case d.After(today):
		return []Finding{{
			Passed:    false,
			FieldPath: "invoice_date",
			Message:   fmt.Sprintf("Invoice date %s is in the future", iso),
		}}
	case d.Before(today.AddDate(0, 0, -r.maxAgeDays)):
		return []Finding{{
			Passed:    false,
			FieldPath: "invoice_date",
			Message:   fmt.Sprintf("Invoice date %s is older than %d days", iso, r.maxAgeDays),
		}}
	}
	return []Finding{{
		Passed:    true,
		FieldPath: "invoice_date",
		Message:   "Logical: Invoice Date Bounds: date is plausible",
	}}
}

// LogicalRules returns the date plausibility checks.
func LogicalRules(maxAgeDays int) []*dateBoundsRule {
	return []*dateBoundsRule{{maxAgeDays: maxAgeDays}}
}
