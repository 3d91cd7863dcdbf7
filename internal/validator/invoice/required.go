package invoice

import (
	"fmt"
	"strings"

	"invoiceqc/internal/domain"
)

// requiredRule checks that a field is present and non-blank. Only
// invoice_number and gross_total are strictly mandatory; the other standard
// fields downgrade to warnings.
type requiredRule struct {
	ruleKey     string
	ruleName    string
	fieldPath   string
	severity    domain.Severity
	failMessage string
	present     func(*domain.InvoiceRecord) bool
}

func (r *requiredRule) RuleKey() string           { return r.ruleKey }
func (r *requiredRule) RuleName() string          { return r.ruleName }
func (r *requiredRule) Severity() domain.Severity { return r.severity }

func (r *requiredRule) Check(_ *RuleContext, rec *domain.InvoiceRecord) []Finding {
	ok := r.present(rec)
	msg := r.failMessage
	if ok {
		msg = fmt.Sprintf("%s: %s is present", r.ruleName, r.fieldPath)
	}
	return []Finding{{Passed: ok, FieldPath: r.fieldPath, Message: msg}}
}

// RequiredRules returns the completeness checks in evaluation order.
func RequiredRules() []*requiredRule {
	return []*requiredRule{
		{
			ruleKey: "req.invoice_number", ruleName: "Required: Invoice Number",
			fieldPath: "invoice_number", severity: domain.SeverityError,
			failMessage: "Missing mandatory field: invoice_number",
			present:     func(r *domain.InvoiceRecord) bool { return r.HasInvoiceNumber() },
		},
		{
			ruleKey: "req.gross_total", ruleName: "Required: Gross Total",
			fieldPath: "gross_total", severity: domain.SeverityError,
			failMessage: "Missing mandatory field: gross_total",
			present:     func(r *domain.InvoiceRecord) bool { return r.GrossTotal.Present() },
		},
		{
			ruleKey: "req.seller_name", ruleName: "Required: Seller Name",
			fieldPath: "seller_name", severity: domain.SeverityWarning,
			failMessage: "Missing seller_name",
			present:     func(r *domain.InvoiceRecord) bool { return r.HasSellerName() },
		},
		{
			ruleKey: "req.invoice_date", ruleName: "Required: Invoice Date",
			fieldPath: "invoice_date", severity: domain.SeverityWarning,
			failMessage: "Missing invoice_date",
			present: func(r *domain.InvoiceRecord) bool {
				return r.InvoiceDate != nil && strings.TrimSpace(*r.InvoiceDate) != ""
			},
		},
	}
}
