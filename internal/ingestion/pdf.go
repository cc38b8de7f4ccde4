package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMinTextLength is the shortest extracted resume text accepted for analysis.
const DefaultMinTextLength = 50

var (
	// ErrUnreadableUpload is the sentinel for an uploaded PDF that yields no usable text.
	ErrUnreadableUpload = errors.New("unreadable upload")
	// ErrTextTooShort marks a PDF that parsed but held too little text.
	ErrTextTooShort = errors.New("extracted text too short")
)

// ExtractError describes why text could not be taken from an uploaded PDF.
type ExtractError struct {
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf extraction error: %s", e.Message)
}

// Unwrap exposes the parser error when there is one, and ErrUnreadableUpload otherwise.
func (e *ExtractError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrUnreadableUpload, e.Cause}
	}
	return []error{ErrUnreadableUpload}
}

// ExtractPDFText returns the plain text of the PDF in r. Parser panics on malformed input
// are reported as an *ExtractError.
func ExtractPDFText(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &ExtractError{Message: "failed to extract text from PDF", Cause: fmt.Errorf("parser panic: %v", rec)}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", &ExtractError{Message: "failed to open PDF", Cause: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractError{Message: "failed to extract text from PDF", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", &ExtractError{Message: "failed to read extracted text", Cause: err}
	}
	return buf.String(), nil
}

// Policy decides whether extracted resume text is usable.
type Policy struct {
	MinTextLength int
}

// DefaultPolicy returns the policy with DefaultMinTextLength.
func DefaultPolicy() Policy {
	return Policy{MinTextLength: DefaultMinTextLength}
}

// ResumeText extracts, cleans and checks the text of an uploaded resume PDF.
func (p Policy) ResumeText(r io.ReaderAt, size int64) (string, error) {
	raw, err := ExtractPDFText(r, size)
	if err != nil {
		return "", err
	}
	text := CleanText(raw)
	if n := len([]rune(strings.TrimSpace(text))); n < p.MinTextLength {
		return "", &ExtractError{
			Message: fmt.Sprintf("got %d characters, need %d", n, p.MinTextLength),
			Cause:   ErrTextTooShort,
		}
	}
	return text, nil
}
