package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sampleResume = `{
  "templateId": "modern",
  "personalInfo": {"name": "Alex Lee", "email": "alex@example.com", "phone": "", "location": "Austin, TX", "summary": "Backend engineer."},
  "experiences": [
    {"id": "x1", "title": "Senior Engineer", "company": "Acme", "location": "", "startDate": "2021-03", "endDate": "", "current": true, "description": "Built billing APIs."}
  ],
  "education": [{"id": "d1", "degree": "BSc Computer Science", "school": "State University", "location": "", "graduationDate": "2018-05"}],
  "skills": [{"id": "s1", "name": "Go", "level": "Expert"}]
}`

// cliResult holds what a command wrote.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the CLI in-process with fresh flag values.
func execute(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ENHANCER_URL", "")
	t.Setenv("CHROME_PATH", "")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// resetFlags restores every flag of cmd and its children to its default value.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// writeFile writes content into a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
