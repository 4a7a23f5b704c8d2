// Package pdfextract turns PDF bytes into plain text and validates PDF
// structure. Every failure is reported as a *parsererror.DocumentReadError.
package pdfextract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxTextBytes caps the text kept from one document.
const DefaultMaxTextBytes = 100 * 1024

// TextExtractor extracts the plain text of a PDF document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// LedongthucExtractor extracts text page by page with github.com/ledongthuc/pdf.
type LedongthucExtractor struct {
	maxBytes int
	logger   logging.Logger
}

// NewLedongthucExtractor creates an extractor keeping at most maxBytes of
// text. A non-positive maxBytes selects DefaultMaxTextBytes.
func NewLedongthucExtractor(maxBytes int, logger logging.Logger) *LedongthucExtractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTextBytes
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LedongthucExtractor{maxBytes: maxBytes, logger: logger}
}

// ExtractText returns the text of every page in order, joined by newlines
// and trimmed.
func (e *LedongthucExtractor) ExtractText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", &parsererror.DocumentReadError{Err: errors.New("empty document")}
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &parsererror.DocumentReadError{Err: fmt.Errorf("panic while reading PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &parsererror.DocumentReadError{Err: fmt.Errorf("open PDF reader: %w", err)}
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &parsererror.DocumentReadError{Err: fmt.Errorf("extract text of page %d: %w", i, err)}
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(content)
		if sb.Len() >= e.maxBytes {
			e.logger.Warn("Extracted text truncated",
				logging.Field{Key: logging.FieldPages, Value: pages},
				logging.Field{Key: "max_bytes", Value: e.maxBytes})
			break
		}
	}

	out := sb.String()
	if len(out) > e.maxBytes {
		out = truncateUTF8(out, e.maxBytes)
	}
	return strings.TrimSpace(out), nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// ValidateFilename rejects uploads whose name does not end in .pdf.
func ValidateFilename(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: ".pdf",
			Msg:            "only PDF files are supported",
		}
	}
	return nil
}
