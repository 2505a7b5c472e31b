package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available resume templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRATING")
		for _, t := range rendering.Templates() {
			marker := ""
			if t.ID == rendering.DefaultTemplateID {
				marker = " (default)"
			}
			_, _ = fmt.Fprintf(w, "%s%s\t%s\t%s\t%.1f\n", t.ID, marker, t.Name, t.Category, t.Rating)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
