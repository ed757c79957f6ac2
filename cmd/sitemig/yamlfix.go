package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitemig/internal/contentfs"
	"sitemig/internal/formatter"
)

func newYAMLFixCmd(a *app) *cobra.Command {
	var alignTables bool

	cmd := &cobra.Command{
		Use:   "yamlfix",
		Short: "Fix three-space indentation in folded excerpt blocks of blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runYAMLFix(cmd, a, alignTables)
		},
	}

	cmd.Flags().BoolVar(&alignTables, "align-tables", false, "also pad markdown pipe tables to aligned columns")

	return cmd
}

func runYAMLFix(cmd *cobra.Command, a *app, alignTables bool) error {
	out := cmd.OutOrStdout()

	files, err := contentfs.List(a.path(a.cfg.Content.BlogDir), ".md")
	if err != nil {
		return fmt.Errorf("failed to list blog posts: %w", err)
	}

	fmt.Fprintf(out, "🔍 Checking %d markdown files for YAML indentation issues...\n", len(files))
	a.printMode(out)

	w := a.writer()
	failed := 0

	verb := "Fixed"
	if w.DryRun() {
		verb = "Would fix"
	}

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			a.log.Error("failed to read post", "file", f.Name, "error", err)
			failed++

			continue
		}

		content, changed := formatter.FixExcerptIndentation(string(data))
		if alignTables {
			if aligned := formatter.FormatMarkdown(content); aligned != content {
				content, changed = aligned, true
			}
		}

		if !changed {
			continue
		}

		if err := w.WriteFile(f.Path, []byte(content)); err != nil {
			a.log.Error("failed to write post", "file", f.Name, "error", err)
			failed++

			continue
		}

		fmt.Fprintf(out, "✓ %s: %s\n", verb, f.Name)
	}

	fmt.Fprintf(out, "\n%s %d files", verb, len(w.Written()))

	if failed > 0 {
		fmt.Fprintf(out, ", %d errors", failed)
	}

	fmt.Fprintln(out)

	return nil
}
