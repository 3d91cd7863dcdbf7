package domain

// Status classifies the outcome of validating one invoice record.
type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusWarning  Status = "WARNING"
	StatusRejected Status = "REJECTED"
)

// Severity grades a failed validation rule. Errors reject the record,
// warnings only flag it for review.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FileType represents the allowed file types for extraction uploads.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}
