package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"invoiceqc/internal/config"
	"invoiceqc/internal/domain"
	"invoiceqc/internal/export"
	"invoiceqc/internal/extract"
	"invoiceqc/internal/service"
	"invoiceqc/internal/validator"
)

const usage = "Usage: qc [extract|validate|full-run]"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	extractor := extract.New(logger)
	engine := validator.NewDefaultEngine(logger, cfg.QC.ToleranceDecimal(), cfg.QC.MaxAgeDays)
	qcSvc := service.NewQCService(extractor, engine, logger)

	cmd := os.Args[1]
	switch cmd {
	case "extract":
		fs := flag.NewFlagSet("extract", flag.ExitOnError)
		pdfDir := fs.String("pdf-dir", "", "directory of PDF invoices to extract")
		output := fs.String("output", "", "path for the extracted records JSON (default stdout)")
		_ = fs.Parse(os.Args[2:])
		if *pdfDir == "" {
			log.Fatal("extract requires --pdf-dir")
		}
		records, err := qcSvc.ExtractDir(*pdfDir)
		if err != nil {
			log.Fatalf("extraction failed: %v", err)
		}
		if err := writeJSON(*output, records); err != nil {
			log.Fatalf("failed to write records: %v", err)
		}
		log.Printf("extracted %d records from %s", len(records), *pdfDir)

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		input := fs.String("input", "", "path to a JSON array of invoice records")
		reportPath := fs.String("report", "", "path for the batch report JSON")
		csvPath := fs.String("csv", "", "path for a CSV export of the results")
		xlsxPath := fs.String("xlsx", "", "path for an Excel export of the report")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			log.Fatal("validate requires --input")
		}
		records, err := loadRecords(*input)
		if err != nil {
			log.Fatalf("failed to load records: %v", err)
		}
		report := qcSvc.ValidateBatch(records)
		if err := emitReport(report, *reportPath, *csvPath, *xlsxPath); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
		printSummary(report)
		if report.Summary.Rejected > 0 {
			os.Exit(1)
		}

	case "full-run":
		fs := flag.NewFlagSet("full-run", flag.ExitOnError)
		pdfDir := fs.String("pdf-dir", "", "directory of PDF invoices to extract and validate")
		reportPath := fs.String("report", "", "path for the batch report JSON")
		csvPath := fs.String("csv", "", "path for a CSV export of the results")
		xlsxPath := fs.String("xlsx", "", "path for an Excel export of the report")
		_ = fs.Parse(os.Args[2:])
		if *pdfDir == "" {
			log.Fatal("full-run requires --pdf-dir")
		}
		records, err := qcSvc.ExtractDir(*pdfDir)
		if err != nil {
			log.Fatalf("extraction failed: %v", err)
		}
		report := qcSvc.ValidateBatch(records)
		if err := emitReport(report, *reportPath, *csvPath, *xlsxPath); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
		printSummary(report)
		if report.Summary.Rejected > 0 {
			os.Exit(1)
		}

	default:
		fmt.Printf("unknown command: %s\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}
}

// loadRecords reads invoice records from a JSON file. Both a bare array and
// the HTTP request shape {"invoices": [...]} are accepted.
func loadRecords(path string) ([]domain.InvoiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []domain.InvoiceRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	var wrapped struct {
		Invoices []domain.InvoiceRecord `json:"invoices"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of invoice records: %w", path, err)
	}
	return wrapped.Invoices, nil
}

// writeJSON marshals v with indentation to path, or to stdout when path is empty.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// emitReport writes the report to any of the requested output formats.
// When no output path is given the report JSON goes to stdout.
func emitReport(report *domain.BatchReport, reportPath, csvPath, xlsxPath string) error {
	if reportPath != "" || (csvPath == "" && xlsxPath == "") {
		if err := writeJSON(reportPath, report); err != nil {
			return err
		}
	}
	if csvPath != "" {
		if err := writeCSV(csvPath, report.Details); err != nil {
			return err
		}
	}
	if xlsxPath != "" {
		f, err := os.Create(xlsxPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if err := export.WriteXLSX(f, report); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, results []domain.ValidationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(export.BOM); err != nil {
		return err
	}
	w := export.NewCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteResults(results); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// printSummary prints the batch outcome and lists every rejected invoice with
// its failure reasons.
func printSummary(report *domain.BatchReport) {
	fmt.Printf("Processed %d invoices: %d approved, %d warnings, %d rejected\n",
		report.Summary.TotalProcessed,
		report.Summary.Approved,
		report.Summary.Warnings,
		report.Summary.Rejected,
	)
	for i := range report.Details {
		res := &report.Details[i]
		if res.Status != domain.StatusRejected {
			continue
		}
		number := "(no invoice number)"
		if res.InvoiceNumber != nil && *res.InvoiceNumber != "" {
			number = *res.InvoiceNumber
		}
		fmt.Printf("  REJECTED %s\n", number)
		for _, e := range res.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
}
