package export

import (
	"encoding/csv"
	"io"
	"strings"

	"invoiceqc/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Invoice Number",
	"Seller Name",
	"Invoice Date",
	"Gross Total",
	"Status",
	"Is Valid",
	"Errors",
	"Warnings",
}

// CSVWriter wraps csv.Writer for exporting validation results as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResults converts a batch of validation results to CSV rows and writes them.
func (w *CSVWriter) WriteResults(results []domain.ValidationResult) error {
	for i := range results {
		if err := w.csv.Write(resultToRow(&results[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func resultToRow(res *domain.ValidationResult) []string {
	row := make([]string, len(columns))
	row[0] = stringOrEmpty(res.OriginalData.InvoiceNumber)
	row[1] = stringOrEmpty(res.OriginalData.SellerName)
	row[2] = stringOrEmpty(res.OriginalData.InvoiceDate)
	row[3] = moneyOrEmpty(res.OriginalData.GrossTotal)
	row[4] = string(res.Status)
	row[5] = formatBool(res.IsValid)
	row[6] = strings.Join(res.Errors, "; ")
	row[7] = strings.Join(res.Warnings, "; ")
	return row
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func moneyOrEmpty(m *domain.MoneyValue) string {
	if m == nil {
		return ""
	}
	return m.Raw()
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
