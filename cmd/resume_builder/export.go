package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume as a paginated A4 PDF",
	Long: `Renders a resume, screenshots it with headless Chrome and slices the bitmap into A4 pages.
Requires Chrome/Chromium; set CHROME_PATH or chrome_path when it is not on the PATH.`,
	RunE: runExport,
}

var (
	exportInput  string
	exportOutput string
)

// newRasterizer builds the browser rasterizer; tests replace it.
var newRasterizer = func(cfg config.Config) export.Rasterizer {
	r := export.NewChromeRasterizer(config.Duration(cfg.ExportTimeout, export.DefaultTimeout), cfg.Verbose)
	if cfg.ChromePath != "" {
		r.ExecPath = cfg.ChromePath
	}
	return r
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to resume JSON file, or - for stdin (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output PDF path or directory (default <Name>_Resume.pdf)")

	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := loadResume(cmd, exportInput)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if cfg.Verbose {
		printer.PrintResume(r)
	}

	start := time.Now()
	run := export.NewRun()
	result, err := export.NewPipeline(newRasterizer(cfg), cfg.Verbose).Execute(cmd.Context(), run, r)
	if cfg.Verbose {
		printer.PrintExport(result, run)
	}
	if err != nil {
		return err
	}

	path := exportPath(exportOutput, result.FileName)
	if err := os.WriteFile(path, result.PDF, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d page(s) to %s in %s\n", result.Pages, path, time.Since(start).Round(time.Millisecond))
	return nil
}

// exportPath resolves --out: empty means the suggested name in the working
// directory, an existing directory receives the suggested name.
func exportPath(out, suggested string) string {
	if out == "" {
		return suggested
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, suggested)
	}
	return out
}
