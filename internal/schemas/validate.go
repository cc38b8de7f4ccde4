// Package schemas holds the JSON Schemas model replies are checked against.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analysis.schema.json
var analysisSchema string

// FieldError is one schema violation. Field is a dotted path, "(root)" for the document.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// SchemaLoadError means the schema or the document could not be read as JSON.
type SchemaLoadError struct {
	Schema string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error { return e.Cause }

// Validator checks documents against one compiled schema.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schema source. name only labels errors.
func Compile(name, source string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Cause: err}
	}
	return &Validator{name: name, schema: schema}, nil
}

// Validate returns nil, a *ValidationError, or a *SchemaLoadError for malformed JSON.
func (v *Validator) Validate(document string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return &SchemaLoadError{Schema: v.name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: v.name}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// AnalysisSchema returns the JSON Schema an ATS analysis reply must satisfy.
func AnalysisSchema() string {
	return analysisSchema
}

var analysisValidator = sync.OnceValues(func() (*Validator, error) {
	return Compile("analysis", analysisSchema)
})

// ValidateAnalysis checks a model reply against the analysis schema.
func ValidateAnalysis(document string) error {
	v, err := analysisValidator()
	if err != nil {
		return err
	}
	return v.Validate(document)
}
