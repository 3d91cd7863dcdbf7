package domain

import "errors"

var (
	ErrNoInvoices          = errors.New("no invoices provided")
	ErrNoFiles             = errors.New("no files uploaded")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnreadableDocument  = errors.New("document yielded no readable text")
)
