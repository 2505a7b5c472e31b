package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	book, err := Open(EnhanceFile)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"system-education", "system-experience", "system-general",
		"system-projects", "system-skills", "system-summary", "user",
	}, book.Keys())

	again, err := Open(EnhanceFile)
	require.NoError(t, err)
	assert.Equal(t, book, again)
}

func TestOpen_InvalidFile(t *testing.T) {
	_, err := Open("nonexistent.json")
	assert.ErrorContains(t, err, "failed to read prompt file")
}

func TestBook_Lookup(t *testing.T) {
	book := Book{"a": "first", "b": "second"}

	got, err := book.Lookup("missing", "b", "a")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	_, err = book.Lookup("x", "y")
	assert.ErrorContains(t, err, `"x" or "y" not found`)
}

func TestFill(t *testing.T) {
	result := Fill("Enhance this {{.Section}} section: {{.Text}} {{.Other}}", map[string]string{
		"Section": "summary",
		"Text":    "uses {{.Section}} literally",
	})
	assert.Equal(t, "Enhance this summary section: uses {{.Section}} literally {{.Other}}", result)
}

func TestEnhancement(t *testing.T) {
	system, user, err := Enhancement("summary", "  i am a developer  ")
	require.NoError(t, err)
	assert.Contains(t, system, "professional summary")
	assert.Contains(t, user, "Enhance this summary section")
	assert.Contains(t, user, "\"\"\"\ni am a developer\n\"\"\"")
	assert.Contains(t, user, `{"enhancedText": "..."}`)
}

func TestEnhancement_UnknownSectionUsesGeneral(t *testing.T) {
	general, _, err := Enhancement("general", "x")
	require.NoError(t, err)

	system, _, err := Enhancement("cover-letter", "x")
	require.NoError(t, err)
	assert.Equal(t, general, system)
}
