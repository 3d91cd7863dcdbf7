package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/validator"
	"invoiceqc/internal/validator/invoice"
)

var fixedNow = time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newEngine() *validator.Engine {
	return validator.NewDefaultEngine(nil, invoice.DefaultTolerance, invoice.DefaultMaxAgeDays).
		WithClock(func() time.Time { return fixedNow })
}

func approvedRecord(number, seller string) domain.InvoiceRecord {
	return domain.InvoiceRecord{
		InvoiceNumber: strPtr(number),
		InvoiceDate:   strPtr("2023-10-01"),
		SellerName:    strPtr(seller),
		NetTotal:      domain.NewMoney("1000.00"),
		TaxAmount:     domain.NewMoney("150.00"),
		GrossTotal:    domain.NewMoney("1150.00"),
	}
}

func TestValidateInvoice_Approved(t *testing.T) {
	e := newEngine()
	rec := approvedRecord("INV-001", "Acme")

	res := e.ValidateInvoice(&rec, nil)
	assert.Equal(t, domain.StatusApproved, res.Status)
	assert.True(t, res.IsValid)
	assert.Equal(t, []string{}, res.Errors)
	assert.Equal(t, []string{}, res.Warnings)
	require.NotNil(t, res.InvoiceNumber)
	assert.Equal(t, "INV-001", *res.InvoiceNumber)
	assert.Equal(t, rec, res.OriginalData)
}

func TestValidateInvoice_EmptyRecordRejected(t *testing.T) {
	e := newEngine()
	rec := domain.InvoiceRecord{}

	res := e.ValidateInvoice(&rec, nil)
	assert.Equal(t, domain.StatusRejected, res.Status)
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{
		"Missing mandatory field: invoice_number",
		"Missing mandatory field: gross_total",
	}, res.Errors)
	assert.Equal(t, []string{
		"Missing seller_name",
		"Missing invoice_date",
	}, res.Warnings)
	assert.Nil(t, res.InvoiceNumber)
}

func TestValidateInvoice_MathMismatchIsWarning(t *testing.T) {
	e := newEngine()
	rec := domain.InvoiceRecord{
		InvoiceNumber: strPtr("INV-003"),
		SellerName:    strPtr("Beta Corp"),
		NetTotal:      domain.NewMoney("80.00"),
		TaxAmount:     domain.NewMoney("10.00"),
		GrossTotal:    domain.NewMoney("100.00"),
	}

	res := e.ValidateInvoice(&rec, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Contains(t, res.Warnings, "Math mismatch: Net (80.00) + Tax (10.00) != Gross (100.00)")
	// invoice_date is absent, which is itself a warning.
	assert.Contains(t, res.Warnings, "Missing invoice_date")
}

func TestValidateInvoice_AccumulatesErrorsAndWarnings(t *testing.T) {
	e := newEngine()
	rec := domain.InvoiceRecord{
		SellerName:  strPtr("Acme"),
		InvoiceDate: strPtr("not a date"),
		GrossTotal:  domain.NewMoney("abc"),
	}

	res := e.ValidateInvoice(&rec, nil)
	assert.Equal(t, domain.StatusRejected, res.Status)
	assert.Equal(t, []string{
		"Missing mandatory field: invoice_number",
		"Invalid format for gross_total",
	}, res.Errors)
	assert.Equal(t, []string{
		"Could not parse invoice_date",
	}, res.Warnings)
}

func TestValidateBatch_Summary(t *testing.T) {
	e := newEngine()
	records := []domain.InvoiceRecord{
		approvedRecord("INV-001", "Acme"),
		{
			InvoiceNumber: strPtr("INV-003"),
			SellerName:    strPtr("Beta Corp"),
			InvoiceDate:   strPtr("2023-10-01"),
			NetTotal:      domain.NewMoney("80.00"),
			TaxAmount:     domain.NewMoney("10.00"),
			GrossTotal:    domain.NewMoney("100.00"),
		},
		{},
	}

	report := e.ValidateBatch(records)
	assert.Equal(t, 3, report.Summary.TotalProcessed)
	assert.Equal(t, 1, report.Summary.Approved)
	assert.Equal(t, 1, report.Summary.Warnings)
	assert.Equal(t, 1, report.Summary.Rejected)
	require.Len(t, report.Details, 3)
	assert.Equal(t, domain.StatusApproved, report.Details[0].Status)
	assert.Equal(t, domain.StatusWarning, report.Details[1].Status)
	assert.Equal(t, domain.StatusRejected, report.Details[2].Status)
}

func TestValidateBatch_DuplicateDetection(t *testing.T) {
	e := newEngine()
	records := []domain.InvoiceRecord{
		approvedRecord("INV-001", "Acme"),
		approvedRecord("INV-001", "Acme"),
	}

	report := e.ValidateBatch(records)
	assert.Equal(t, domain.StatusApproved, report.Details[0].Status)
	assert.Equal(t, domain.StatusRejected, report.Details[1].Status)
	assert.Equal(t, []string{"Duplicate invoice detected: INV-001 from Acme"}, report.Details[1].Errors)
}

func TestValidateBatch_FirstOccurrenceWins(t *testing.T) {
	e := newEngine()
	a := approvedRecord("INV-001", "Acme")
	b := approvedRecord("INV-001", "Acme")
	b.GrossTotal = domain.NewMoney("1150.01")

	forward := e.ValidateBatch([]domain.InvoiceRecord{a, b})
	assert.Equal(t, domain.StatusApproved, forward.Details[0].Status)
	assert.Equal(t, domain.StatusRejected, forward.Details[1].Status)

	reversed := e.ValidateBatch([]domain.InvoiceRecord{b, a})
	assert.Equal(t, domain.StatusApproved, reversed.Details[0].Status)
	assert.Equal(t, domain.StatusRejected, reversed.Details[1].Status)
}

func TestValidateBatch_IncompleteKeyNeverJoinsHistory(t *testing.T) {
	e := newEngine()
	noSeller := approvedRecord("INV-001", "Acme")
	noSeller.SellerName = nil
	records := []domain.InvoiceRecord{
		noSeller,
		approvedRecord("INV-001", "Acme"),
		approvedRecord("INV-001", "Acme"),
	}

	report := e.ValidateBatch(records)
	// The first complete-keyed occurrence is never a duplicate; only the third
	// record matches history.
	assert.NotContains(t, report.Details[1].Errors, "Duplicate invoice detected: INV-001 from Acme")
	assert.Contains(t, report.Details[2].Errors, "Duplicate invoice detected: INV-001 from Acme")
}

func TestValidateBatch_HistoryResetsPerCall(t *testing.T) {
	e := newEngine()
	records := []domain.InvoiceRecord{approvedRecord("INV-001", "Acme")}

	first := e.ValidateBatch(records)
	second := e.ValidateBatch(records)
	assert.Equal(t, domain.StatusApproved, first.Details[0].Status)
	assert.Equal(t, domain.StatusApproved, second.Details[0].Status)
}

func TestValidateInvoice_SingleWarningDowngradesStatusOnly(t *testing.T) {
	e := newEngine()
	rec := approvedRecord("INV-001", "Acme")
	rec.SellerName = nil

	res := e.ValidateInvoice(&rec, nil)
	assert.Equal(t, domain.StatusWarning, res.Status)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"Missing seller_name"}, res.Warnings)
}

func TestValidateInvoice_Idempotent(t *testing.T) {
	e := newEngine()
	rec := approvedRecord("INV-001", "Acme")
	history := []domain.InvoiceRecord{approvedRecord("INV-002", "Beta")}

	first := e.ValidateInvoice(&rec, history)
	second := e.ValidateInvoice(&rec, history)
	assert.Equal(t, first, second)
	assert.Equal(t, approvedRecord("INV-001", "Acme"), rec)
}

func TestValidateBatch_Empty(t *testing.T) {
	e := newEngine()
	report := e.ValidateBatch(nil)
	assert.Equal(t, 0, report.Summary.TotalProcessed)
	assert.NotNil(t, report.Details)
	assert.Empty(t, report.Details)
}
