package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankResume() *resume.Resume {
	return resume.New(resume.NewSequenceGenerator("e"), "")
}

func fullResume() *resume.Resume {
	return &resume.Resume{
		TemplateID: "executive",
		PersonalInfo: resume.PersonalInfo{
			Name:     "Alex Lee",
			Email:    "alex@example.com",
			Phone:    "(555) 123-4567",
			Location: "Austin, TX",
			Summary:  "Backend engineer.",
		},
		Experiences: []resume.Experience{
			{ID: "x1", Title: "Senior Engineer", Company: "Acme", Location: "Remote", StartDate: "2021-03", EndDate: "2022-01", Current: true, Description: "Built things."},
			{ID: "x2", Company: "Globex", StartDate: "2019-01", EndDate: "2021-02"},
			{ID: "x3"},
		},
		Education: []resume.Education{
			{ID: "d1", School: "State University", GraduationDate: "2018-05", GPA: "3.8"},
		},
		Skills: []resume.Skill{
			{ID: "s1", Name: "Go", Level: resume.LevelExpert},
			{ID: "s2", Name: "", Level: resume.LevelBeginner},
			{ID: "s3", Name: "SQL", Level: "Guru"},
		},
	}
}

func TestFormatMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2023-06", "Jun 2023"},
		{"2020-12", "Dec 2020"},
		{"", ""},
		{"June 2023", ""},
		{"2023-13", ""},
		{"2023-06-15", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMonth(tt.in))
		})
	}
}

func TestSkillPercent(t *testing.T) {
	assert.Equal(t, 25, SkillPercent(resume.LevelBeginner))
	assert.Equal(t, 50, SkillPercent(resume.LevelIntermediate))
	assert.Equal(t, 75, SkillPercent(resume.LevelAdvanced))
	assert.Equal(t, 100, SkillPercent(resume.LevelExpert))
	assert.Equal(t, 50, SkillPercent("Ninja"))
	assert.Equal(t, 50, SkillPercent(""))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "Mar 2021 - Jan 2022", dateRange("2021-03", "2022-01", false))
	assert.Equal(t, "Mar 2021 - Present", dateRange("2021-03", "2022-01", true))
	assert.Equal(t, "Mar 2021", dateRange("2021-03", "", false))
	assert.Equal(t, "Present", dateRange("", "", true))
	assert.Equal(t, "Jan 2022", dateRange("", "2022-01", false))
	assert.Equal(t, "", dateRange("bad", "worse", false), "malformed dates degrade to empty text")
	assert.Equal(t, "Present", dateRange("2023-13", "", true))
	assert.Equal(t, "Mar 2021", dateRange("2021-03", "June", false))
}

func TestRender_EmptyState(t *testing.T) {
	doc := Render(blankResume())

	assert.True(t, doc.Empty)
	assert.Equal(t, EmptyMessage, doc.EmptyMessage)
	assert.Nil(t, doc.Header)
	assert.Empty(t, doc.Sections)

	page, err := HTML(doc, A4Page)
	require.NoError(t, err)
	q, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 0, q.Find("h2").Length(), "no section headers in the empty state")
	assert.Equal(t, EmptyMessage, strings.TrimSpace(q.Find(".empty").Text()))
}

func TestRender_NilResume(t *testing.T) {
	assert.True(t, Render(nil).Empty)
}

func TestRender_NameOnly(t *testing.T) {
	r := blankResume()
	r.PersonalInfo.Name = "Alex Lee"

	doc := Render(r)
	assert.False(t, doc.Empty)
	require.NotNil(t, doc.Header)
	assert.Equal(t, "Alex Lee", doc.Header.Name)
	assert.Empty(t, doc.Sections)
}

func TestRender_Placeholders(t *testing.T) {
	r := blankResume()
	r.PersonalInfo.Summary = "Summary without a name."
	r.Experiences[0].Company = "Acme"
	r.Education[0].Degree = "BSc"

	doc := Render(r)
	require.NotNil(t, doc.Header)
	assert.Equal(t, PlaceholderName, doc.Header.Name)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, PlaceholderTitle, doc.Sections[1].Items[0].Heading)
	assert.Equal(t, "Acme", doc.Sections[1].Items[0].Subheading)
	assert.Equal(t, "BSc", doc.Sections[2].Items[0].Heading)
	assert.Equal(t, PlaceholderSchool, doc.Sections[2].Items[0].Subheading)
}

func TestRender_FullResume(t *testing.T) {
	doc := Render(fullResume())

	require.NotNil(t, doc.Header)
	assert.Equal(t, []Contact{
		{Kind: "email", Value: "alex@example.com"},
		{Kind: "phone", Value: "(555) 123-4567"},
		{Kind: "location", Value: "Austin, TX"},
	}, doc.Header.Contacts)

	require.Len(t, doc.Sections, 4)
	kinds := []SectionKind{}
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SectionKind{KindSummary, KindExperience, KindEducation, KindSkills}, kinds)
	assert.Equal(t, "Professional Summary", doc.Sections[0].Title)

	exp := doc.Sections[1].Items
	require.Len(t, exp, 2, "entries without title or company are skipped")
	assert.Equal(t, "Mar 2021 - Present", exp[0].Dates, "current hides the end date")
	assert.Equal(t, PlaceholderTitle, exp[1].Heading)
	assert.Equal(t, "Jan 2019 - Feb 2021", exp[1].Dates)

	edu := doc.Sections[2].Items
	require.Len(t, edu, 1)
	assert.Equal(t, PlaceholderDegree, edu[0].Heading)
	assert.Equal(t, "May 2018", edu[0].Dates)
	assert.Equal(t, "GPA: 3.8", edu[0].Detail)

	skills := doc.Sections[3].Items
	require.Len(t, skills, 2)
	assert.Equal(t, 100, skills[0].LevelPercent)
	assert.Equal(t, "Guru", skills[1].Level)
	assert.Equal(t, 50, skills[1].LevelPercent)
}

func TestRender_IsIdempotent(t *testing.T) {
	r := fullResume()
	first := Render(r)
	second := Render(r)
	assert.Equal(t, first, second)

	html1, err := HTML(first, A4Page)
	require.NoError(t, err)
	html2, err := HTML(second, A4Page)
	require.NoError(t, err)
	assert.Equal(t, html1, html2)

	assert.Equal(t, fullResume(), r, "rendering does not modify the model")
}

func TestHTML_Structure(t *testing.T) {
	page, err := HTML(Render(fullResume()), A4Page)
	require.NoError(t, err)

	q, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Alex Lee", q.Find("header h1").Text())
	assert.Equal(t, 3, q.Find(".contact").Length())
	assert.Equal(t, 4, q.Find("section h2").Length())
	assert.Equal(t, "executive", q.Find(".page").AttrOr("data-template", ""))
	assert.Equal(t, "width: 100%;", q.Find(".skill[data-id=s1] .bar-fill").AttrOr("style", ""))
	assert.Contains(t, q.Find(".item[data-id=x1] .sub").Text(), "Acme • Remote")
	assert.Contains(t, page, "width: 794px")
}

func TestHTML_EscapesUserInput(t *testing.T) {
	r := fullResume()
	r.PersonalInfo.Name = `<script>alert("x")</script>`

	page, err := HTML(Render(r), A4Page)
	require.NoError(t, err)
	assert.NotContains(t, page, "<script>")
}

func TestHTML_InvalidInput(t *testing.T) {
	_, err := HTML(nil, A4Page)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)

	_, err = HTML(Render(fullResume()), PageOptions{})
	assert.ErrorAs(t, err, &renderErr)
}

func TestExtractText(t *testing.T) {
	page, err := HTML(Render(fullResume()), A4Page)
	require.NoError(t, err)

	text, err := ExtractText(page)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Alex Lee"))
	assert.Contains(t, text, "WORK EXPERIENCE")
	assert.Contains(t, text, "Senior Engineer")
	assert.Contains(t, text, "- Go (Expert)")

	empty, err := HTML(Render(blankResume()), A4Page)
	require.NoError(t, err)
	text, err = ExtractText(empty)
	require.NoError(t, err)
	assert.Equal(t, EmptyMessage, text)
}

func TestLookupTemplate(t *testing.T) {
	assert.Equal(t, "creative", LookupTemplate("creative").ID)
	assert.Equal(t, DefaultTemplateID, LookupTemplate("nope").ID)
	assert.Len(t, Templates(), 6)
}
