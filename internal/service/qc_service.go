package service

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/extract"
	"invoiceqc/internal/pdftext"
	"invoiceqc/internal/validator"
)

// QCService ties the extraction and validation stages together for the HTTP
// and CLI adapters. Per-document extraction failures are logged and skipped;
// they never abort the rest of a batch.
type QCService interface {
	ExtractText(rawText string) domain.InvoiceRecord
	ExtractPDF(r io.Reader) (domain.InvoiceRecord, error)
	ExtractDir(dir string) ([]domain.InvoiceRecord, error)
	ValidateBatch(records []domain.InvoiceRecord) *domain.BatchReport
}

type qcService struct {
	extractor *extract.Extractor
	engine    *validator.Engine
	logger    *log.Logger
}

// NewQCService creates a QCService over an extractor and a validation engine.
func NewQCService(extractor *extract.Extractor, engine *validator.Engine, logger *log.Logger) QCService {
	return &qcService{extractor: extractor, engine: engine, logger: logger}
}

func (s *qcService) ExtractText(rawText string) domain.InvoiceRecord {
	return s.extractor.Extract(rawText)
}

// ExtractPDF flattens one PDF document and extracts a single invoice record
// from it (one invoice per document).
func (s *qcService) ExtractPDF(r io.Reader) (domain.InvoiceRecord, error) {
	text, err := pdftext.Text(r)
	if err != nil {
		return domain.InvoiceRecord{}, err
	}
	return s.extractor.Extract(text), nil
}

// ExtractDir walks dir for *.pdf files in name order and extracts a record
// from each. Unreadable documents are logged and skipped without affecting
// their siblings.
func (s *qcService) ExtractDir(dir string) ([]domain.InvoiceRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	records := make([]domain.InvoiceRecord, 0, len(entries))
	for _, entry := range entries {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".")
		if _, ok := domain.AllowedExtensions[ext]; entry.IsDir() || !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			s.logf("qcService.ExtractDir: skipping %s: %v", entry.Name(), err)
			continue
		}
		rec, err := s.ExtractPDF(f)
		_ = f.Close()
		if err != nil {
			s.logf("qcService.ExtractDir: skipping %s: %v", entry.Name(), err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *qcService) ValidateBatch(records []domain.InvoiceRecord) *domain.BatchReport {
	return s.engine.ValidateBatch(records)
}

func (s *qcService) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
