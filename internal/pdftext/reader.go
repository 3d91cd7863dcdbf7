// Package pdftext flattens PDF documents into plain page text. It carries no
// decision logic: callers feed the flattened text to the extractor and skip
// documents that cannot be read.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text reads a whole PDF and returns its flattened text, all pages
// concatenated with page breaks as newlines. Documents with no extractable
// text return an empty string, not an error. The pdf library panics on some
// malformed documents; those surface as errors too.
func Text(r io.Reader) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reading malformed pdf: %v", p)
		}
	}()
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", pageNum, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
				sb.WriteString(" ")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
