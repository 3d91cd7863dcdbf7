// Package invoice holds the built-in QC rules applied to invoice records.
// Rules are evaluated in registration order and every rule always runs, so a
// single record can accumulate several errors and warnings at once.
package invoice

import (
	"time"

	"invoiceqc/internal/domain"
)

// Finding is the outcome of one rule check against one record.
type Finding struct {
	Passed    bool
	FieldPath string
	Message   string
}

// RuleContext carries batch-scoped state shared by every rule during one
// validation pass: the clock and the records already accepted earlier in the
// same batch.
type RuleContext struct {
	Now     time.Time
	History []domain.InvoiceRecord
}

// Today returns the context clock truncated to a date (midnight UTC).
func (rc *RuleContext) Today() time.Time {
	return time.Date(rc.Now.Year(), rc.Now.Month(), rc.Now.Day(), 0, 0, 0, 0, time.UTC)
}

// BuiltinRule wraps a rule function and its metadata for the registry.
type BuiltinRule struct {
	key      string
	name     string
	severity domain.Severity
	fn       func(*RuleContext, *domain.InvoiceRecord) []Finding
}

func (b *BuiltinRule) Check(rc *RuleContext, rec *domain.InvoiceRecord) []Finding {
	return b.fn(rc, rec)
}
func (b *BuiltinRule) RuleKey() string           { return b.key }
func (b *BuiltinRule) RuleName() string          { return b.name }
func (b *BuiltinRule) Severity() domain.Severity { return b.severity }
