package handler

import (
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/middleware"
	"invoiceqc/internal/service"
)

// QCHandler handles invoice validation endpoints.
type QCHandler struct {
	qcService   service.QCService
	maxFileSize int64
}

// NewQCHandler creates a new QCHandler. maxFileSizeMB bounds individual
// uploads on the extract-and-validate endpoint.
func NewQCHandler(qcService service.QCService, maxFileSizeMB int64) *QCHandler {
	return &QCHandler{qcService: qcService, maxFileSize: maxFileSizeMB * 1024 * 1024}
}

// ValidateBatchRequest is the request body for POST /api/v1/invoices/validate.
type ValidateBatchRequest struct {
	Invoices []domain.InvoiceRecord `json:"invoices"`
}

// ValidateBatch handles POST /api/v1/invoices/validate
// The response body is the batch report itself, not an envelope, so the same
// JSON shape works for the HTTP API and the CLI report files.
func (h *QCHandler) ValidateBatch(c *gin.Context) {
	var req ValidateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be JSON with an 'invoices' array")
		return
	}
	if len(req.Invoices) == 0 {
		HandleError(c, domain.ErrNoInvoices)
		return
	}

	report := h.qcService.ValidateBatch(req.Invoices)
	c.JSON(http.StatusOK, report)
}

// ExtractAndValidate handles POST /api/v1/invoices/extract-and-validate
// Accepts PDF uploads in the 'files' multipart field, extracts a record from
// each, and validates the batch. Unsupported, oversized, and unreadable files
// are logged and skipped; the remaining documents are still validated.
func (h *QCHandler) ExtractAndValidate(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart form is required")
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		HandleError(c, domain.ErrNoFiles)
		return
	}

	requestID := c.GetString(middleware.ContextKeyRequestID)
	records := make([]domain.InvoiceRecord, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			log.Printf("[%s] skipping %s: %v", requestID, fh.Filename, domain.ErrUnsupportedFileType)
			continue
		}
		if fh.Size > h.maxFileSize {
			log.Printf("[%s] skipping %s: %v", requestID, fh.Filename, domain.ErrFileTooLarge)
			continue
		}
		rec, err := h.extractOne(fh)
		if err != nil {
			log.Printf("[%s] skipping %s: %v", requestID, fh.Filename, err)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		HandleError(c, domain.ErrUnreadableDocument)
		return
	}

	report := h.qcService.ValidateBatch(records)
	c.JSON(http.StatusOK, report)
}

func (h *QCHandler) extractOne(fh *multipart.FileHeader) (domain.InvoiceRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.InvoiceRecord{}, err
	}
	defer func() { _ = f.Close() }()
	return h.qcService.ExtractPDF(f)
}
