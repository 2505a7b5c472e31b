package schemas

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResume = `{
  "templateId": "modern",
  "personalInfo": {"name": "Alex Lee", "email": "alex@example.com", "summary": "Engineer."},
  "experiences": [
    {"id": "x1", "title": "Engineer", "company": "Acme", "startDate": "2021-03", "endDate": "", "current": true, "description": "Built things."}
  ],
  "education": [{"id": "d1", "degree": "BSc", "school": "State", "graduationDate": "2018-05", "gpa": "3.8"}],
  "skills": [{"id": "s1", "name": "Go", "level": "Expert"}]
}`

func TestValidateResume_Valid(t *testing.T) {
	assert.NoError(t, ValidateResume([]byte(validResume)))
}

func TestValidateResume_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"missing personal info", `{"experiences": []}`, "(root)"},
		{"current must be bool", `{"personalInfo": {}, "experiences": [{"id": "x1", "current": "yes"}]}`, "experiences.0.current"},
		{"bad month", `{"personalInfo": {}, "experiences": [{"id": "x1", "startDate": "June 2023"}]}`, "experiences.0.startDate"},
		{"missing id", `{"personalInfo": {}, "skills": [{"name": "Go"}]}`, "skills.0"},
		{"unknown field", `{"personalInfo": {"nickname": "Al"}}`, "personalInfo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := []string{}
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateResume_MalformedJSON(t *testing.T) {
	err := ValidateResume([]byte(`{"personalInfo": `))
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDecodeResume(t *testing.T) {
	r, err := DecodeResume([]byte(validResume))
	require.NoError(t, err)

	assert.Equal(t, "Alex Lee", r.PersonalInfo.Name)
	require.Len(t, r.Experiences, 1)
	assert.True(t, r.Experiences[0].Current)
	assert.Equal(t, "3.8", r.Education[0].GPA)
}

func TestDecodeResume_DuplicateIDs(t *testing.T) {
	doc := `{"personalInfo": {}, "experiences": [{"id": "a"}], "skills": [{"id": "b"}, {"id": "b"}]}`
	_, err := DecodeResume([]byte(doc))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "skills", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Errors[0].Message, `"b"`)
}

func TestDecodeResume_SameIDAcrossLists(t *testing.T) {
	doc := `{
		"personalInfo": {},
		"experiences": [{"id": "1"}],
		"education": [{"id": "1"}],
		"skills": [{"id": "1", "level": "Intermediate"}]
	}`
	r, err := DecodeResume([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, r.IDs(resume.SectionExperience))
	assert.Equal(t, []string{"1"}, r.IDs(resume.SectionEducation))
	assert.Equal(t, []string{"1"}, r.IDs(resume.SectionSkills))
}

func TestResumeSchemaIsCopied(t *testing.T) {
	a := ResumeSchema()
	a[0] = 'x'
	assert.Equal(t, byte('{'), ResumeSchema()[0])
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "ok"}`))

	err := ValidateJSONString(schema, `{"name": 5}`)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "name", Message: "is required"}}}
	assert.Contains(t, err.Error(), "1. name: is required")
}
