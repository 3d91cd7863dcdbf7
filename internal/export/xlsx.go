package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invoiceqc/internal/domain"
)

// WriteXLSX writes a batch report as an Excel workbook with a Summary sheet
// and a Results sheet.
func WriteXLSX(w io.Writer, report *domain.BatchReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", "Summary")
	summaryRows := [][]interface{}{
		{"Total Processed", report.Summary.TotalProcessed},
		{"Approved", report.Summary.Approved},
		{"Warnings", report.Summary.Warnings},
		{"Rejected", report.Summary.Rejected},
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Results"); err != nil {
		return err
	}
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow("Results", "A1", &header); err != nil {
		return err
	}
	for i := range report.Details {
		row := resultToRow(&report.Details[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Results", cell, &cells); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
