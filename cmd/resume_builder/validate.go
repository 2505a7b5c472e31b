package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume JSON document against the resume schema",
	Long:  "Checks a resume document against the embedded JSON schema and for duplicate entry ids, listing every problem found.",
	RunE:  runValidate,
}

var (
	validateInput string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to resume JSON file, or - for stdin (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd, validateInput)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, err = schemas.DecodeResume(data)
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &schemaErr):
		_, _ = fmt.Fprintf(out, "✗ %s is invalid (%d problem(s))\n", validateInput, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("validation failed")
	case err != nil:
		return err
	}

	_, _ = fmt.Fprintf(out, "✓ %s is a valid resume\n", validateInput)
	return nil
}
