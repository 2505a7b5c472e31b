// Package resume provides the in-memory resume model and the form controller that edits it.
package resume

// Section identifies a part of the resume that the builder can edit.
type Section string

// Editable sections
const (
	SectionPersonal   Section = "personal"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// ParseSection converts a string to a Section, returning ErrUnknownSection for anything else.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionPersonal, SectionExperience, SectionEducation, SectionSkills:
		return Section(s), nil
	default:
		return "", ErrUnknownSection
	}
}

// SkillLevel is the self-assessed proficiency of a skill.
type SkillLevel string

// Skill levels offered by the form
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// DefaultSkillLevel is assigned to newly created skills.
const DefaultSkillLevel = LevelIntermediate

// PersonalInfo holds the contact block and summary. There is exactly one per resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// Experience is one employment entry. Dates are stored as "YYYY-MM".
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is one degree entry.
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	School         string `json:"school"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa,omitempty"`
}

// Skill is one named skill with a level.
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// Resume is the whole model for one builder view.
// List order is insertion order and is significant for display.
type Resume struct {
	TemplateID   string       `json:"templateId,omitempty"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experiences  []Experience `json:"experiences"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
}

// New returns the model a fresh builder view starts with: blank personal
// info and one blank row in every list section.
func New(ids IDGenerator, templateID string) *Resume {
	return &Resume{
		TemplateID:  templateID,
		Experiences: []Experience{newExperience(ids.Next())},
		Education:   []Education{newEducation(ids.Next())},
		Skills:      []Skill{newSkill(ids.Next())},
	}
}

// Clone returns a deep copy of the resume.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	out := *r
	out.Experiences = append([]Experience(nil), r.Experiences...)
	out.Education = append([]Education(nil), r.Education...)
	out.Skills = append([]Skill(nil), r.Skills...)
	return &out
}

// Len returns the number of entries in a list section.
func (r *Resume) Len(section Section) int {
	switch section {
	case SectionExperience:
		return len(r.Experiences)
	case SectionEducation:
		return len(r.Education)
	case SectionSkills:
		return len(r.Skills)
	default:
		return 0
	}
}

// IDs returns the entry ids of a list section in display order.
func (r *Resume) IDs(section Section) []string {
	var ids []string
	switch section {
	case SectionExperience:
		for _, e := range r.Experiences {
			ids = append(ids, e.ID)
		}
	case SectionEducation:
		for _, e := range r.Education {
			ids = append(ids, e.ID)
		}
	case SectionSkills:
		for _, s := range r.Skills {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func newExperience(id string) Experience {
	return Experience{ID: id}
}

func newEducation(id string) Education {
	return Education{ID: id}
}

func newSkill(id string) Skill {
	return Skill{ID: id, Level: DefaultSkillLevel}
}
