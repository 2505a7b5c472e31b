package resume

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// RemovalPolicy decides whether the builder lets a section become empty.
type RemovalPolicy int

const (
	// AllowEmpty lets every entry be removed.
	AllowEmpty RemovalPolicy = iota
	// KeepLastEntry refuses to remove the only remaining entry of a section.
	KeepLastEntry
)

// Enhancer is a remote text transform. A response with Success=false is a
// rejection; a non-nil error is a transport failure. Either way the model is not touched.
type Enhancer interface {
	Enhance(ctx context.Context, text, sectionType string) (*types.EnhanceResponse, error)
}

// Builder is the form controller. It owns one Resume and serializes every
// mutation; readers get deep-copy snapshots.
type Builder struct {
	mu     sync.Mutex
	resume *Resume
	ids    IDGenerator
	policy RemovalPolicy
}

// NewBuilder wraps r. If r is nil a default model is created with New.
func NewBuilder(r *Resume, ids IDGenerator, policy RemovalPolicy) *Builder {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if r == nil {
		r = New(ids, "")
	}
	return &Builder{resume: r, ids: ids, policy: policy}
}

// Snapshot returns a deep copy of the current model.
func (b *Builder) Snapshot() *Resume {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resume.Clone()
}

// Replace swaps in a whole model, e.g. one imported from JSON.
// A nil model resets the builder to a blank resume.
func (b *Builder) Replace(r *Resume) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r == nil {
		b.resume = New(b.ids, "")
		return
	}
	b.resume = r.Clone()
}

// SetTemplate changes the visual template. The id is not checked here.
func (b *Builder) SetTemplate(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resume.TemplateID = id
}

// AddEntry appends a blank entry with a fresh id to a list section.
func (b *Builder) AddEntry(section Section) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := ""
	switch section {
	case SectionExperience:
		id = b.ids.Next()
		b.resume.Experiences = append(b.resume.Experiences, newExperience(id))
	case SectionEducation:
		id = b.ids.Next()
		b.resume.Education = append(b.resume.Education, newEducation(id))
	case SectionSkills:
		id = b.ids.Next()
		b.resume.Skills = append(b.resume.Skills, newSkill(id))
	default:
		return "", ErrUnknownSection
	}
	return id, nil
}

// RemoveEntry deletes the entry with the given id. An unknown id is a no-op.
func (b *Builder) RemoveEntry(section Section, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexOf(section, id)
	if idx == -2 {
		return ErrUnknownSection
	}
	if idx < 0 {
		return nil
	}
	if b.policy == KeepLastEntry && b.resume.Len(section) <= 1 {
		return ErrLastEntry
	}

	switch section {
	case SectionExperience:
		b.resume.Experiences = append(b.resume.Experiences[:idx:idx], b.resume.Experiences[idx+1:]...)
	case SectionEducation:
		b.resume.Education = append(b.resume.Education[:idx:idx], b.resume.Education[idx+1:]...)
	case SectionSkills:
		b.resume.Skills = append(b.resume.Skills[:idx:idx], b.resume.Skills[idx+1:]...)
	}
	return nil
}

// UpdateField sets one field of the entry with the given id. Field names are
// the JSON names of the entry type. An unknown id is a no-op; an unknown field
// or a value of the wrong type is a ValidationError and changes nothing.
func (b *Builder) UpdateField(section Section, id, field string, value any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexOf(section, id)
	if idx == -2 {
		return ErrUnknownSection
	}
	if idx < 0 {
		return nil
	}

	switch section {
	case SectionExperience:
		e := b.resume.Experiences[idx]
		if err := setExperienceField(&e, field, value); err != nil {
			return err
		}
		b.resume.Experiences[idx] = e
	case SectionEducation:
		e := b.resume.Education[idx]
		if err := setEducationField(&e, field, value); err != nil {
			return err
		}
		b.resume.Education[idx] = e
	case SectionSkills:
		s := b.resume.Skills[idx]
		if err := setSkillField(&s, field, value); err != nil {
			return err
		}
		b.resume.Skills[idx] = s
	}
	return nil
}

// UpdatePersonalInfo sets one field of the personal info block.
func (b *Builder) UpdatePersonalInfo(field, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := &b.resume.PersonalInfo
	switch field {
	case "name":
		p.Name = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "summary":
		p.Summary = value
	default:
		return unknownField(SectionPersonal, field)
	}
	return nil
}

// EnhanceSummary sends the professional summary through enh and stores the result.
func (b *Builder) EnhanceSummary(ctx context.Context, enh Enhancer) (string, error) {
	original := b.Snapshot().PersonalInfo.Summary
	if strings.TrimSpace(original) == "" {
		return "", &ValidationError{Field: "summary", Message: "enter some text in the Professional Summary before enhancing"}
	}

	enhanced, err := callEnhancer(ctx, enh, original, "summary")
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.resume.PersonalInfo.Summary != original {
		return "", ErrStaleEnhancement
	}
	b.resume.PersonalInfo.Summary = enhanced
	return enhanced, nil
}

// EnhanceDescription sends an experience description through enh and stores the result.
func (b *Builder) EnhanceDescription(ctx context.Context, enh Enhancer, id string) (string, error) {
	snap := b.Snapshot()
	original := ""
	found := false
	for _, e := range snap.Experiences {
		if e.ID == id {
			original, found = e.Description, true
			break
		}
	}
	if !found {
		return "", &ValidationError{Field: "id", Message: fmt.Sprintf("experience %q not found", id)}
	}
	if strings.TrimSpace(original) == "" {
		return "", &ValidationError{Field: "description", Message: "enter a description before enhancing"}
	}

	enhanced, err := callEnhancer(ctx, enh, original, "experience")
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexOf(SectionExperience, id)
	if idx < 0 || b.resume.Experiences[idx].Description != original {
		return "", ErrStaleEnhancement
	}
	b.resume.Experiences[idx].Description = enhanced
	return enhanced, nil
}

// callEnhancer runs the remote transform without holding the lock.
func callEnhancer(ctx context.Context, enh Enhancer, text, sectionType string) (string, error) {
	resp, err := enh.Enhance(ctx, text, sectionType)
	if err != nil {
		return "", &EnhancementError{Message: "Failed to enhance text. Please try again.", Cause: err}
	}
	if resp == nil || !resp.Success {
		msg := "Enhancement failed. Please try again."
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return "", &EnhancementError{Message: msg}
	}
	if strings.TrimSpace(resp.EnhancedText) == "" {
		return "", &EnhancementError{Message: "Enhancement returned no text."}
	}
	return resp.EnhancedText, nil
}

// indexOf returns the position of id in section, -1 if absent, -2 if the
// section is not a list section. Callers must hold b.mu.
func (b *Builder) indexOf(section Section, id string) int {
	switch section {
	case SectionExperience:
		for i := range b.resume.Experiences {
			if b.resume.Experiences[i].ID == id {
				return i
			}
		}
	case SectionEducation:
		for i := range b.resume.Education {
			if b.resume.Education[i].ID == id {
				return i
			}
		}
	case SectionSkills:
		for i := range b.resume.Skills {
			if b.resume.Skills[i].ID == id {
				return i
			}
		}
	default:
		return -2
	}
	return -1
}
