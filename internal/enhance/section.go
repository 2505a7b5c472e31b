// Package enhance rewrites resume text into more professional prose.
//
// A RuleEnhancer applies deterministic rewrites per section. An LLMEnhancer
// asks Gemini. FallbackEnhancer combines the two so the endpoint always answers.
package enhance

import (
	"context"
	"strings"
)

// SectionType names the kind of resume text being enhanced.
type SectionType string

const (
	General    SectionType = "general"
	Summary    SectionType = "summary"
	Experience SectionType = "experience"
	Skills     SectionType = "skills"
	Education  SectionType = "education"
	Projects   SectionType = "projects"
)

// ResumeSections are the section types accepted by the resume-section endpoint.
var ResumeSections = []SectionType{Summary, Experience, Skills, Education, Projects}

// IsResumeSection reports whether s is one of ResumeSections.
func (s SectionType) IsResumeSection() bool {
	for _, known := range ResumeSections {
		if s == known {
			return true
		}
	}
	return false
}

// normalize maps unknown or empty types to General.
func normalize(s SectionType) SectionType {
	s = SectionType(strings.ToLower(strings.TrimSpace(string(s))))
	if s.IsResumeSection() {
		return s
	}
	return General
}

// Enhancer rewrites text for a section.
type Enhancer interface {
	Enhance(ctx context.Context, text string, section SectionType) (string, error)
}

// EnhancerFunc adapts a function to Enhancer.
type EnhancerFunc func(ctx context.Context, text string, section SectionType) (string, error)

func (f EnhancerFunc) Enhance(ctx context.Context, text string, section SectionType) (string, error) {
	return f(ctx, text, section)
}
