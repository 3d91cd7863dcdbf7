package validator

import (
	"invoiceqc/internal/domain"
	"invoiceqc/internal/validator/invoice"
)

// Rule is the interface for a single built-in validation rule.
type Rule interface {
	Check(rc *invoice.RuleContext, rec *domain.InvoiceRecord) []invoice.Finding
	RuleKey() string
	RuleName() string
	Severity() domain.Severity
}
