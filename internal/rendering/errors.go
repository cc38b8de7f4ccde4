package rendering

import "fmt"

// RenderError reports a failure while turning a plan into PDF bytes.
// Page is 1-based and zero when the failure is not tied to a page.
type RenderError struct {
	Page    int
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	msg := "render error"
	if e.Page > 0 {
		msg += fmt.Sprintf(" on page %d", e.Page)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Cause }
