// Package rendering projects a resume model into a preview document and renders it as HTML or text.
package rendering

import (
	"github.com/jonathan/resume-builder/internal/resume"
)

// EmptyMessage is shown instead of any content when the resume has nothing to show.
const EmptyMessage = "Start filling out your information to see the preview"

// SectionKind identifies a rendered section.
type SectionKind string

// Rendered sections, in display order
const (
	KindSummary    SectionKind = "summary"
	KindExperience SectionKind = "experience"
	KindEducation  SectionKind = "education"
	KindSkills     SectionKind = "skills"
)

var sectionTitles = map[SectionKind]string{
	KindSummary:    "Professional Summary",
	KindExperience: "Work Experience",
	KindEducation:  "Education",
	KindSkills:     "Skills",
}

// Document is the rendered view of a resume.
type Document struct {
	TemplateID   string    `json:"templateId,omitempty"`
	Empty        bool      `json:"empty"`
	EmptyMessage string    `json:"emptyMessage,omitempty"`
	Header       *Header   `json:"header,omitempty"`
	Sections     []Section `json:"sections,omitempty"`
}

// Header is the name and contact line.
type Header struct {
	Name     string    `json:"name"`
	Contacts []Contact `json:"contacts,omitempty"`
}

// Contact is one item of the contact line.
type Contact struct {
	Kind  string `json:"kind"` // email, phone, location
	Value string `json:"value"`
}

// Section is a titled group of items.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Title string      `json:"title"`
	Body  string      `json:"body,omitempty"`
	Items []Item      `json:"items,omitempty"`
}

// Item is one entry of a section. Fields that do not apply to the section are empty.
type Item struct {
	ID           string `json:"id"`
	Heading      string `json:"heading"`
	Subheading   string `json:"subheading,omitempty"`
	Location     string `json:"location,omitempty"`
	Dates        string `json:"dates,omitempty"`
	Detail       string `json:"detail,omitempty"`
	Body         string `json:"body,omitempty"`
	Level        string `json:"level,omitempty"`
	LevelPercent int    `json:"levelPercent,omitempty"`
}

// Render projects r into a Document. It has no side effects and the same
// model always yields the same document.
func Render(r *resume.Resume) *Document {
	if r == nil {
		return &Document{Empty: true, EmptyMessage: EmptyMessage}
	}

	var sections []Section
	if present(r.PersonalInfo.Summary) {
		sections = append(sections, Section{
			Kind:  KindSummary,
			Title: sectionTitles[KindSummary],
			Body:  r.PersonalInfo.Summary,
		})
	}
	if items := experienceItems(r.Experiences); len(items) > 0 {
		sections = append(sections, Section{Kind: KindExperience, Title: sectionTitles[KindExperience], Items: items})
	}
	if items := educationItems(r.Education); len(items) > 0 {
		sections = append(sections, Section{Kind: KindEducation, Title: sectionTitles[KindEducation], Items: items})
	}
	if items := skillItems(r.Skills); len(items) > 0 {
		sections = append(sections, Section{Kind: KindSkills, Title: sectionTitles[KindSkills], Items: items})
	}

	if !present(r.PersonalInfo.Name) && len(sections) == 0 {
		return &Document{TemplateID: r.TemplateID, Empty: true, EmptyMessage: EmptyMessage}
	}

	return &Document{
		TemplateID: r.TemplateID,
		Header: &Header{
			Name:     headerPresence(r.PersonalInfo),
			Contacts: contacts(r.PersonalInfo),
		},
		Sections: sections,
	}
}

func contacts(p resume.PersonalInfo) []Contact {
	var out []Contact
	if present(p.Email) {
		out = append(out, Contact{Kind: "email", Value: p.Email})
	}
	if present(p.Phone) {
		out = append(out, Contact{Kind: "phone", Value: p.Phone})
	}
	if present(p.Location) {
		out = append(out, Contact{Kind: "location", Value: p.Location})
	}
	return out
}

func experienceItems(entries []resume.Experience) []Item {
	var items []Item
	for _, e := range entries {
		ok, title, company := experiencePresence(e)
		if !ok {
			continue
		}
		items = append(items, Item{
			ID:         e.ID,
			Heading:    title,
			Subheading: company,
			Location:   e.Location,
			Dates:      dateRange(e.StartDate, e.EndDate, e.Current),
			Body:       e.Description,
		})
	}
	return items
}

func educationItems(entries []resume.Education) []Item {
	var items []Item
	for _, e := range entries {
		ok, degree, school := educationPresence(e)
		if !ok {
			continue
		}
		item := Item{
			ID:         e.ID,
			Heading:    degree,
			Subheading: school,
			Location:   e.Location,
			Dates:      FormatMonth(e.GraduationDate),
		}
		if present(e.GPA) {
			item.Detail = "GPA: " + e.GPA
		}
		items = append(items, item)
	}
	return items
}

func skillItems(entries []resume.Skill) []Item {
	var items []Item
	for _, s := range entries {
		if !skillPresence(s) {
			continue
		}
		items = append(items, Item{
			ID:           s.ID,
			Heading:      s.Name,
			Level:        string(s.Level),
			LevelPercent: SkillPercent(s.Level),
		})
	}
	return items
}
