// Package schemas validates imported resume documents against an embedded JSON Schema.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed files/resume.schema.json
var resumeSchemaJSON []byte

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	resumeSchema     *gojsonschema.Schema
	resumeSchemaErr  error
	resumeSchemaOnce sync.Once
)

func loadResumeSchema() (*gojsonschema.Schema, error) {
	resumeSchemaOnce.Do(func() {
		resumeSchema, resumeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchemaJSON))
		if resumeSchemaErr != nil {
			resumeSchemaErr = &SchemaLoadError{Path: "resume.schema.json", Message: "invalid embedded schema", Cause: resumeSchemaErr}
		}
	})
	return resumeSchema, resumeSchemaErr
}

// ResumeSchema returns the embedded resume schema document.
func ResumeSchema() []byte {
	return append([]byte(nil), resumeSchemaJSON...)
}

// ValidateResume checks a JSON document against the resume schema.
func ValidateResume(data []byte) error {
	schema, err := loadResumeSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is not valid JSON"}}}
	}
	return fromResult(result)
}

// DecodeResume validates data and decodes it into a model. Entry ids must be
// unique within the document, which JSON Schema cannot express.
func DecodeResume(data []byte) (*resume.Resume, error) {
	if err := ValidateResume(data); err != nil {
		return nil, err
	}

	var r resume.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	// Ids only need to be unique within their own list.
	var dupes []FieldError
	for _, section := range []resume.Section{resume.SectionExperience, resume.SectionEducation, resume.SectionSkills} {
		seen := make(map[string]bool)
		for _, id := range r.IDs(section) {
			if seen[id] {
				dupes = append(dupes, FieldError{
					Field:   string(section),
					Message: fmt.Sprintf("id %q is used more than once", id),
				})
				continue
			}
			seen[id] = true
		}
	}
	if len(dupes) > 0 {
		return nil, &ValidationError{Errors: dupes}
	}
	return &r, nil
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return fromResult(result)
}

func fromResult(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
