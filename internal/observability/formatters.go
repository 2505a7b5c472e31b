// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the inner box width, counting runes.
func pad(line string) string {
	width := boxWidth - 4
	if utf8.RuneCountInString(line) > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-utf8.RuneCountInString(line))
}

// PrintResume outputs a summary of the resume being edited.
func (p *Printer) PrintResume(r *resume.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	name := r.PersonalInfo.Name
	if strings.TrimSpace(name) == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:       %s\n", name))
	sb.WriteString(fmt.Sprintf("Template:   %s\n", rendering.LookupTemplate(r.TemplateID).Name))
	sb.WriteString(fmt.Sprintf("Experience: %d entr%s\n", len(r.Experiences), plural(len(r.Experiences), "y", "ies")))
	sb.WriteString(fmt.Sprintf("Education:  %d entr%s\n", len(r.Education), plural(len(r.Education), "y", "ies")))
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", len(r.Skills)))

	p.printBox("RESUME", sb.String())
}

// PrintDocument outputs the sections a preview will show.
func (p *Printer) PrintDocument(doc *rendering.Document) {
	if doc == nil {
		return
	}
	if doc.Empty {
		p.printBox("PREVIEW", doc.EmptyMessage)
		return
	}

	var sb strings.Builder
	if doc.Header != nil {
		sb.WriteString(doc.Header.Name + "\n")
		for _, c := range doc.Header.Contacts {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", c.Kind, c.Value))
		}
		sb.WriteString("\n")
	}

	for _, section := range doc.Sections {
		if len(section.Items) == 0 {
			sb.WriteString(section.Title + "\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d)\n", section.Title, len(section.Items)))
		count := min(len(section.Items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", section.Items[i].Heading))
		}
		if len(section.Items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(section.Items)-maxItemsToShow))
		}
	}

	p.printBox("PREVIEW", sb.String())
}

// PrintExport outputs the outcome of an export run.
func (p *Printer) PrintExport(result *export.Result, run *export.Run) {
	if result == nil && run == nil {
		return
	}

	var sb strings.Builder
	if result != nil {
		sb.WriteString(fmt.Sprintf("File:   %s\n", result.FileName))
		sb.WriteString(fmt.Sprintf("Pages:  %d\n", result.Pages))
		sb.WriteString(fmt.Sprintf("Size:   %s\n", byteSize(len(result.PDF))))
	}
	if run != nil {
		states := make([]string, 0, len(run.History()))
		for _, s := range run.History() {
			states = append(states, s.String())
		}
		sb.WriteString(fmt.Sprintf("Stages: %s\n", strings.Join(states, " → ")))
	}

	title := "EXPORT COMPLETE"
	switch {
	case run != nil && run.State() == export.Failed:
		title = "EXPORT FAILED"
	case result == nil:
		title = "EXPORT NOT STARTED"
	}
	p.printBox(title, sb.String())
}

// PrintEnhancement outputs the original and enhanced text side by side.
func (p *Printer) PrintEnhancement(resp *types.EnhanceResponse) {
	if resp == nil {
		return
	}
	if !resp.Success {
		p.printBox("ENHANCEMENT FAILED", resp.Message)
		return
	}

	var sb strings.Builder
	if resp.SectionType != "" {
		sb.WriteString(fmt.Sprintf("Section: %s\n\n", resp.SectionType))
	}
	sb.WriteString("Before:\n")
	sb.WriteString(indent(resp.OriginalText))
	sb.WriteString("\nAfter:\n")
	sb.WriteString(indent(resp.EnhancedText))

	p.printBox("ENHANCED TEXT", sb.String())
}

func indent(text string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func byteSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
