package export

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
)

// NameRequiredMessage is returned when exporting a resume without a name.
const NameRequiredMessage = "Please enter your name before downloading."

// Result is a finished export.
type Result struct {
	FileName string
	PDF      []byte
	Pages    int
}

// Pipeline renders, rasterizes and paginates resumes into PDFs.
type Pipeline struct {
	Rasterizer Rasterizer
	Page       rendering.PageOptions
	Spec       PageSpec
	Verbose    bool
}

// NewPipeline returns a pipeline exporting A4 pages through r.
func NewPipeline(r Rasterizer, verbose bool) *Pipeline {
	return &Pipeline{
		Rasterizer: r,
		Page:       rendering.A4Page,
		Spec:       A4,
		Verbose:    verbose,
	}
}

// Export runs a fresh export of r.
func (p *Pipeline) Export(ctx context.Context, r *resume.Resume) (*Result, error) {
	return p.Execute(ctx, NewRun(), r)
}

// Execute exports r, recording progress on run. run must be Idle.
// r is never modified; the pipeline works on a copy.
func (p *Pipeline) Execute(ctx context.Context, run *Run, r *resume.Resume) (*Result, error) {
	if r == nil || strings.TrimSpace(r.PersonalInfo.Name) == "" {
		return nil, &ValidationError{Message: NameRequiredMessage}
	}
	snapshot := r.Clone()

	run.advance(Rendering)
	page, err := rendering.HTML(rendering.Render(snapshot), p.Page)
	if err != nil {
		return nil, p.fail(run, err)
	}

	run.advance(Rasterizing)
	img, err := p.Rasterizer.Rasterize(ctx, page, p.Page)
	if err != nil {
		return nil, p.fail(run, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, p.fail(run, fmt.Errorf("rasterizer returned an empty bitmap"))
	}

	run.advance(Paginating)
	bands := Paginate(img, p.Spec)
	data, err := Assemble(bands, p.Spec)
	if err != nil {
		return nil, p.fail(run, err)
	}
	pages, err := CountPages(data)
	if err != nil {
		return nil, p.fail(run, err)
	}
	if pages != len(bands) {
		return nil, p.fail(run, fmt.Errorf("pdf has %d pages, expected %d", pages, len(bands)))
	}

	run.advance(Downloaded)
	if p.Verbose {
		log.Printf("[export] %d page(s), %d bytes", pages, len(data))
	}
	return &Result{
		FileName: FileName(snapshot.PersonalInfo.Name),
		PDF:      data,
		Pages:    pages,
	}, nil
}

func (p *Pipeline) fail(run *Run, cause error) error {
	stage := run.State()
	run.advance(Failed)
	log.Printf("[export] failed while %s: %v", stage, cause)
	return &Failure{Stage: stage, Cause: cause}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)
)

// FileName returns the download name for a resume belonging to name.
func FileName(name string) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	base = unsafeChars.ReplaceAllString(base, "")
	base = strings.Trim(base, "._")
	if base == "" {
		return "Resume.pdf"
	}
	return base + "_Resume.pdf"
}
