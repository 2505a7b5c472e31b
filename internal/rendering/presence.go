package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/resume"
)

// Placeholders shown in place of missing identifying fields.
const (
	PlaceholderName    = "Your Name"
	PlaceholderTitle   = "Job Title"
	PlaceholderCompany = "Company Name"
	PlaceholderDegree  = "Degree"
	PlaceholderSchool  = "School Name"
)

// orPlaceholder returns value unless it is blank.
func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func present(value string) bool {
	return strings.TrimSpace(value) != ""
}

// experiencePresence reports whether an experience has anything identifying
// and returns its display title and company.
func experiencePresence(e resume.Experience) (ok bool, title, company string) {
	if !present(e.Title) && !present(e.Company) {
		return false, "", ""
	}
	return true, orPlaceholder(e.Title, PlaceholderTitle), orPlaceholder(e.Company, PlaceholderCompany)
}

func educationPresence(e resume.Education) (ok bool, degree, school string) {
	if !present(e.Degree) && !present(e.School) {
		return false, "", ""
	}
	return true, orPlaceholder(e.Degree, PlaceholderDegree), orPlaceholder(e.School, PlaceholderSchool)
}

func skillPresence(s resume.Skill) bool {
	return present(s.Name)
}

func headerPresence(p resume.PersonalInfo) (name string) {
	return orPlaceholder(p.Name, PlaceholderName)
}
