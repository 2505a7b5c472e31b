// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

// CleanJSONBlock strips markdown fences and any chatter around the first JSON
// object or array in text. Text without JSON is returned trimmed.
func CleanJSONBlock(text string) string {
	text = stripFence(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(text, closer)
	if end < start {
		return text
	}
	return text[start : end+1]
}

var preamble = regexp.MustCompile(`(?i)^(sure[,!.]?\s*)?(here(?:'s| is)[^:\n]*:|enhanced (?:text|version|section):)\s*`)

// CleanText removes fences, a leading "Here is the enhanced text:" style
// preamble and wrapping quotes from a plain-text answer.
func CleanText(text string) string {
	text = stripFence(strings.TrimSpace(text))
	text = strings.TrimSpace(preamble.ReplaceAllString(text, ""))
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.ContainsAny(first, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
