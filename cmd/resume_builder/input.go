package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// loadResume reads and schema-validates a resume document.
func loadResume(cmd *cobra.Command, path string) (*resume.Resume, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	r, err := schemas.DecodeResume(data)
	if err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	return r, nil
}
