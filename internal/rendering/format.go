package rendering

import (
	"time"

	"github.com/jonathan/resume-builder/internal/resume"
)

// FormatMonth turns a "YYYY-MM" value into "Mon YYYY". Anything that does not
// parse, including the empty string, renders as "".
func FormatMonth(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", value+"-01")
	if err != nil {
		return ""
	}
	return t.Format("Jan 2006")
}

// SkillPercent maps a skill level to the width of its level bar.
// Unknown levels get the same width as Intermediate.
func SkillPercent(level resume.SkillLevel) int {
	switch level {
	case resume.LevelBeginner:
		return 25
	case resume.LevelIntermediate:
		return 50
	case resume.LevelAdvanced:
		return 75
	case resume.LevelExpert:
		return 100
	default:
		return 50
	}
}

// dateRange renders "Start - End", "Start - Present" or fragments of it
// depending on which values are present.
func dateRange(start, end string, current bool) string {
	from, to := FormatMonth(start), FormatMonth(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " - " + to
}
