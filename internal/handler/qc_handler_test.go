package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/internal/config"
	"invoiceqc/internal/domain"
	"invoiceqc/internal/extract"
	"invoiceqc/internal/handler"
	"invoiceqc/internal/router"
	"invoiceqc/internal/service"
	"invoiceqc/internal/validator"
	"invoiceqc/internal/validator/invoice"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	extractor := extract.New(nil)
	engine := validator.NewDefaultEngine(nil, invoice.DefaultTolerance, invoice.DefaultMaxAgeDays)
	svc := service.NewQCService(extractor, engine, nil)

	qcH := handler.NewQCHandler(svc, 1)
	healthH := handler.NewHealthHandler()
	return router.Setup(cfg, nil, qcH, healthH)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	}
}

func TestValidateBatch_OK(t *testing.T) {
	r := newTestRouter()
	body := `{"invoices":[
		{"invoice_number":"INV-001","seller_name":"Acme","invoice_date":"2023-10-27","gross_total":"1150.00","net_total":"1000.00","tax_amount":"150.00"},
		{"invoice_number":"INV-001","seller_name":"Acme","invoice_date":"2023-10-27","gross_total":"1150.00","net_total":"1000.00","tax_amount":"150.00"}
	]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var report domain.BatchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Summary.TotalProcessed)
	assert.Equal(t, 1, report.Summary.Rejected)
	require.Len(t, report.Details, 2)
	assert.Contains(t, report.Details[1].Errors, "Duplicate invoice detected: INV-001 from Acme")
}

func TestValidateBatch_ReportIsNotEnveloped(t *testing.T) {
	r := newTestRouter()
	body := `{"invoices":[{"invoice_number":"INV-001","gross_total":"10.00"}]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Contains(t, m, "summary")
	assert.Contains(t, m, "details")
	assert.NotContains(t, m, "success")
}

func TestValidateBatch_EmptyInvoices(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", strings.NewReader(`{"invoices":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_INVOICES")
}

func TestValidateBatch_MalformedJSON(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestExtractAndValidate_NoMultipart(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/extract-and-validate", strings.NewReader("plain body"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestExtractAndValidate_NoFiles(t *testing.T) {
	r := newTestRouter()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no files here"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/extract-and-validate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_FILES")
}

func TestExtractAndValidate_AllFilesSkipped(t *testing.T) {
	r := newTestRouter()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	// Wrong extension, skipped before reading.
	part, err := mw.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an invoice"))
	require.NoError(t, err)

	// Right extension but unreadable content, skipped on extraction.
	part, err = mw.CreateFormFile("files", "broken.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a real pdf"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/extract-and-validate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "UNREADABLE_DOCUMENT")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/invoices/validate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
