// Package prompts holds the LLM prompt texts, embedded at compile time.
// A prompt file is a JSON object of key -> text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// EnhanceFile holds the system prompt per resume section and the shared user prompt.
const EnhanceFile = "enhance.json"

//go:embed *.json
var promptFiles embed.FS

// Book is one parsed prompt file.
type Book map[string]string

var books sync.Map // filename -> Book

// Open parses an embedded prompt file. Files are parsed once and cached.
func Open(filename string) (Book, error) {
	if cached, ok := books.Load(filename); ok {
		return cached.(Book), nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var book Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := books.LoadOrStore(filename, book)
	return actual.(Book), nil
}

// Lookup returns the first of keys present in the book.
func (b Book) Lookup(keys ...string) (string, error) {
	for _, key := range keys {
		if prompt, ok := b[key]; ok {
			return prompt, nil
		}
	}
	quoted := make([]string, len(keys))
	for i, key := range keys {
		quoted[i] = strconv.Quote(key)
	}
	return "", fmt.Errorf("prompt key %s not found", strings.Join(quoted, " or "))
}

// Keys returns the prompt keys, sorted.
func (b Book) Keys() []string {
	keys := make([]string, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Fill replaces placeholders in the form {{.Key}} with values from data.
// Values are inserted as-is and never re-expanded; unknown placeholders stay.
func Fill(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Enhancement returns the system and user prompts for rewriting text of the
// given section. Sections without their own system prompt use "general".
func Enhancement(section, text string) (system, user string, err error) {
	book, err := Open(EnhanceFile)
	if err != nil {
		return "", "", err
	}
	if system, err = book.Lookup("system-"+section, "system-general"); err != nil {
		return "", "", err
	}
	template, err := book.Lookup("user")
	if err != nil {
		return "", "", err
	}
	user = Fill(template, map[string]string{
		"Section": section,
		"Text":    strings.TrimSpace(text),
	})
	return system, user, nil
}
