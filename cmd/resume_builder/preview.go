package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a resume as an HTML page or plain text",
	Long:  "Renders a resume JSON document with the same A4 page layout the exporter uses. Writes to stdout unless --out is given.",
	RunE:  runPreview,
}

var (
	previewInput    string
	previewOutput   string
	previewTemplate string
	previewText     bool
)

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "in", "i", "", "Path to resume JSON file, or - for stdin (required)")
	previewCmd.Flags().StringVarP(&previewOutput, "out", "o", "", "Path to output file (default stdout)")
	previewCmd.Flags().StringVarP(&previewTemplate, "template", "t", "", "Template id overriding the document's templateId")
	previewCmd.Flags().BoolVar(&previewText, "text", false, "Print plain text instead of HTML")

	if err := previewCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	r, err := loadResume(cmd, previewInput)
	if err != nil {
		return err
	}
	if previewTemplate != "" {
		if rendering.LookupTemplate(previewTemplate).ID != previewTemplate {
			return fmt.Errorf("unknown template: %s", previewTemplate)
		}
		r.TemplateID = previewTemplate
	}

	doc := rendering.Render(r)
	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResume(r)
		printer.PrintDocument(doc)
	}

	content, err := rendering.HTML(doc, rendering.A4Page)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	if previewText {
		if content, err = rendering.ExtractText(content); err != nil {
			return fmt.Errorf("failed to extract preview text: %w", err)
		}
		content += "\n"
	}

	if previewOutput == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(previewOutput, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote preview to %s\n", previewOutput)
	return nil
}
