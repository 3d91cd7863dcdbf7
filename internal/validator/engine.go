package validator

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/validator/invoice"
)

// Engine orchestrates rule evaluation for single records and whole batches.
type Engine struct {
	registry *Registry
	logger   *log.Logger
	now      func() time.Time
}

// NewEngine creates a validation engine over a populated registry.
func NewEngine(registry *Registry, logger *log.Logger) *Engine {
	return &Engine{registry: registry, logger: logger, now: time.Now}
}

// NewDefaultEngine creates an engine with all built-in rules registered
// using the given reconciliation tolerance and staleness horizon.
func NewDefaultEngine(logger *log.Logger, tolerance decimal.Decimal, maxAgeDays int) *Engine {
	registry := NewRegistry()
	for _, r := range invoice.AllRules(tolerance, maxAgeDays) {
		registry.Register(r)
	}
	return NewEngine(registry, logger)
}

// WithClock overrides the engine clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ValidateInvoice runs every registered rule against one record, given the
// records already accepted earlier in the same batch. All rules are
// evaluated, never short-circuited, so one record can accumulate multiple
// errors and warnings. The inputs are not mutated.
func (e *Engine) ValidateInvoice(rec *domain.InvoiceRecord, history []domain.InvoiceRecord) *domain.ValidationResult {
	rc := &invoice.RuleContext{Now: e.now(), History: history}

	errs := []string{}
	warnings := []string{}
	for _, rule := range e.registry.All() {
		for _, f := range rule.Check(rc, rec) {
			if f.Passed {
				continue
			}
			if rule.Severity() == domain.SeverityError {
				errs = append(errs, f.Message)
			} else {
				warnings = append(warnings, f.Message)
			}
		}
	}

	status := domain.StatusApproved
	switch {
	case len(errs) > 0:
		status = domain.StatusRejected
	case len(warnings) > 0:
		status = domain.StatusWarning
	}

	return &domain.ValidationResult{
		InvoiceNumber: rec.InvoiceNumber,
		IsValid:       len(errs) == 0,
		Status:        status,
		Errors:        errs,
		Warnings:      warnings,
		OriginalData:  *rec,
	}
}

// ValidateBatch validates records strictly in input order against a history
// that starts empty for every call. A record joins the history only when
// both invoice_number and seller_name are present, so the first occurrence
// of a (seller, number) pair is never flagged, only later ones are.
func (e *Engine) ValidateBatch(records []domain.InvoiceRecord) *domain.BatchReport {
	history := make([]domain.InvoiceRecord, 0, len(records))
	details := make([]domain.ValidationResult, 0, len(records))
	var summary domain.BatchSummary

	for i := range records {
		rec := &records[i]
		result := e.ValidateInvoice(rec, history)

		if rec.HasInvoiceNumber() && rec.HasSellerName() {
			history = append(history, *rec)
		}

		details = append(details, *result)
		switch result.Status {
		case domain.StatusApproved:
			summary.Approved++
		case domain.StatusWarning:
			summary.Warnings++
		case domain.StatusRejected:
			summary.Rejected++
		}
	}
	summary.TotalProcessed = len(records)

	if e.logger != nil {
		e.logger.Printf("validator.Engine: batch validated total=%d approved=%d warnings=%d rejected=%d",
			summary.TotalProcessed, summary.Approved, summary.Warnings, summary.Rejected)
	}

	return &domain.BatchReport{Summary: summary, Details: details}
}
