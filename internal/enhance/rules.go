package enhance

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RuleEnhancer rewrites text with fixed per-section rules. It never fails.
type RuleEnhancer struct{}

// NewRuleEnhancer returns the deterministic enhancer.
func NewRuleEnhancer() *RuleEnhancer {
	return &RuleEnhancer{}
}

// Enhance implements Enhancer.
func (RuleEnhancer) Enhance(_ context.Context, text string, section SectionType) (string, error) {
	return Rewrite(text, section), nil
}

const summaryClosing = "Passionate about delivering high-quality solutions and contributing to team success."

var (
	whitespace      = regexp.MustCompile(`\s+`)
	sentenceBreak   = regexp.MustCompile(`[.!?]+`)
	listSeparator   = regexp.MustCompile(`[,;]+`)
	iAm             = regexp.MustCompile(`(?i)\bi am\b`)
	iHave           = regexp.MustCompile(`(?i)\bi have\b`)
	pronounI        = regexp.MustCompile(`(?i)\bi\b`)
	workedOn        = regexp.MustCompile(`(?i)\bworked on\b`)
	did             = regexp.MustCompile(`(?i)\bdid\b`)
	made            = regexp.MustCompile(`(?i)\bmade\b`)
	built           = regexp.MustCompile(`(?i)\bbuilt\b`)
	created         = regexp.MustCompile(`(?i)\bcreated\b`)
	educationTerms  = regexp.MustCompile(`(?i)\b(bachelor|master|phd|degree|university|college)\b`)
	summaryStrength = regexp.MustCompile(`(?i)\b(experienced|skilled)\b`)
	summaryGoal     = regexp.MustCompile(`(?i)\b(seeking|looking|passionate)\b`)
)

// Rewrite applies the rules for section to text. Unknown sections get the general rules.
func Rewrite(text string, section SectionType) string {
	text = strings.TrimSpace(text)
	switch normalize(section) {
	case Summary:
		return rewriteSummary(text)
	case Experience:
		return rewriteExperience(text)
	case Skills:
		return rewriteSkills(text)
	case Education:
		return rewriteEducation(text)
	case Projects:
		return rewriteProjects(text)
	default:
		return rewriteGeneral(text)
	}
}

func rewriteSummary(text string) string {
	text = capitalizeFirst(text)
	if !summaryStrength.MatchString(text) {
		text = iAm.ReplaceAllString(text, "Experienced")
		text = iHave.ReplaceAllString(text, "Possessing")
	}
	text = pronounI.ReplaceAllString(text, "")
	text = collapse(text)
	if !summaryGoal.MatchString(text) {
		text = strings.TrimSpace(text + " " + summaryClosing)
	}
	return text
}

func rewriteExperience(text string) string {
	text = bullets(text)
	text = workedOn.ReplaceAllString(text, "Developed")
	text = did.ReplaceAllString(text, "Executed")
	return made.ReplaceAllString(text, "Created")
}

func rewriteSkills(text string) string {
	var skills []string
	for _, s := range listSeparator.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) > 1 {
		return strings.Join(skills, ", ")
	}
	return text
}

func rewriteEducation(text string) string {
	return educationTerms.ReplaceAllStringFunc(text, func(term string) string {
		return capitalizeFirst(strings.ToLower(term))
	})
}

func rewriteProjects(text string) string {
	text = bullets(text)
	text = built.ReplaceAllString(text, "Developed")
	return created.ReplaceAllString(text, "Engineered")
}

func rewriteGeneral(text string) string {
	text = collapse(capitalizeFirst(text))
	if text != "" && !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return text
}

// bullets splits prose into one "• " line per sentence unless it is already a list.
func bullets(text string) string {
	if strings.Contains(text, "•") || strings.Contains(text, "-") {
		return text
	}
	var lines []string
	for _, s := range sentenceBreak.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, "• "+s)
		}
	}
	return strings.Join(lines, "\n")
}

func collapse(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

func capitalizeFirst(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}
