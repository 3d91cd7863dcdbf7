package invoice_test

import (
	"time"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/validator/invoice"
)

// fixedNow is the reference clock used by every rule test.
var fixedNow = time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// validRecord builds a record that passes every built-in rule as of fixedNow.
func validRecord() *domain.InvoiceRecord {
	return &domain.InvoiceRecord{
		InvoiceNumber: strPtr("INV-001"),
		InvoiceDate:   strPtr("2023-10-01"),
		SellerName:    strPtr("Acme Corp"),
		BuyerName:     strPtr("Globex"),
		Currency:      strPtr("USD"),
		NetTotal:      domain.NewMoney("1000.00"),
		TaxAmount:     domain.NewMoney("150.00"),
		GrossTotal:    domain.NewMoney("1150.00"),
	}
}

func emptyContext() *invoice.RuleContext {
	return &invoice.RuleContext{Now: fixedNow}
}

// findRule returns the built-in rule with the given key, or nil.
func findRule(key string) *invoice.BuiltinRule {
	for _, r := range invoice.DefaultRules() {
		if r.RuleKey() == key {
			return r
		}
	}
	return nil
}

// failures filters the findings down to the failed ones.
func failures(findings []invoice.Finding) []invoice.Finding {
	var out []invoice.Finding
	for _, f := range findings {
		if !f.Passed {
			out = append(out, f)
		}
	}
	return out
}
