package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

// PageOptions describes the fixed virtual page the HTML is laid out on.
type PageOptions struct {
	WidthPx   int // page width at 96 dpi
	HeightPx  int // minimum page height at 96 dpi
	PaddingMM int
}

// A4Page is an A4 sheet at 96 dpi with 20mm margins.
var A4Page = PageOptions{WidthPx: 794, HeightPx: 1123, PaddingMM: 20}

type htmlData struct {
	Doc        *Document
	Page       PageOptions
	TemplateID string
	Accent     template.CSS
}

var (
	pageTmpl     *template.Template
	pageTmplErr  error
	pageTmplOnce sync.Once
)

func loadPageTemplate() (*template.Template, error) {
	pageTmplOnce.Do(func() {
		content, err := templateFS.ReadFile("templates/resume.html.tmpl")
		if err != nil {
			pageTmplErr = &TemplateError{Message: "failed to read embedded page template", Cause: err}
			return
		}
		pageTmpl, err = template.New("resume").Parse(string(content))
		if err != nil {
			pageTmplErr = &TemplateError{Message: "failed to parse page template", Cause: err}
		}
	})
	return pageTmpl, pageTmplErr
}

// HTML renders doc as a standalone HTML page laid out on page.
func HTML(doc *Document, page PageOptions) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "document is nil"}
	}
	if page.WidthPx <= 0 || page.HeightPx <= 0 {
		return "", &RenderError{Message: "page size must be positive"}
	}

	tmpl, err := loadPageTemplate()
	if err != nil {
		return "", err
	}

	tpl := LookupTemplate(doc.TemplateID)
	data := htmlData{
		Doc:        doc,
		Page:       page,
		TemplateID: tpl.ID,
		Accent:     template.CSS(tpl.Accent),
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", &TemplateError{Message: "failed to execute page template", Cause: err}
	}
	return sb.String(), nil
}
