package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInput is returned when the job description or resume text is blank.
var ErrMissingInput = errors.New("job description and resume text are required")

// Attempt records one failed model call.
type Attempt struct {
	Model   string
	Attempt int
	Err     error
}

// ConfigError means the provider rejected our credentials; no further models are tried.
type ConfigError struct {
	Model string
	Cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("oracle config error: model %s rejected the API key: %v", e.Model, e.Cause)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// UnavailableError means every candidate model failed.
type UnavailableError struct {
	Attempts []Attempt
}

func (e *UnavailableError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Model, a.Err))
	}
	return fmt.Sprintf("oracle unavailable: all %d model attempts failed (%s)", len(e.Attempts), strings.Join(parts, "; "))
}

// Unwrap exposes every attempt error.
func (e *UnavailableError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errs
}

// ParseError means a model answered but no JSON object could be recovered from the reply.
type ParseError struct {
	Model string
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("oracle parse error: reply from %s is not a JSON object: %v", e.Model, e.Cause)
	}
	return fmt.Sprintf("oracle parse error: reply from %s is not a JSON object", e.Model)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// authSignals are substrings of provider errors that mean the key itself is bad.
var authSignals = []string{"API key not valid", "API_KEY_INVALID", "401", "403"}

func isAuthFailure(err error) bool {
	msg := err.Error()
	for _, signal := range authSignals {
		if strings.Contains(msg, signal) {
			return true
		}
	}
	return false
}
