package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitemig/internal/contentfs"
	"sitemig/internal/jekyll"
)

func newJekyllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "jekyll",
		Short: "Remove Kramdown attribute lists from blog posts and document the removals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJekyll(cmd, a)
		},
	}
}

func runJekyll(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	dir := a.path(a.cfg.Content.BlogDir)

	files, err := contentfs.List(dir, ".md")
	if err != nil {
		return fmt.Errorf("failed to list blog posts: %w", err)
	}

	fmt.Fprintf(out, "📂 Found %d markdown files in %s\n", len(files), dir)
	a.printMode(out)

	w := a.writer()
	report := jekyll.NewRunner(a.log, w).Run(files)

	verb := "Modified"
	if w.DryRun() {
		verb = "Would modify"
	}

	for _, name := range report.Modified {
		fmt.Fprintf(out, "✓ %s: %s\n", verb, name)
	}

	for _, f := range report.Failed {
		fmt.Fprintf(out, "❌ Failed to process %s: %v\n", f.File, f.Err)
	}

	notesPath := a.path(a.cfg.Content.MigrationNotes)
	if err := w.WriteFile(notesPath, []byte(jekyll.RenderNotes(report, a.now()))); err != nil {
		return fmt.Errorf("failed to write migration notes: %w", err)
	}

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  Processed: %d files\n", report.Processed)
	fmt.Fprintf(out, "  %s: %d files\n", verb, len(report.Modified))
	fmt.Fprintf(out, "  Removals:  %d\n", report.Total())
	fmt.Fprintf(out, "  Errors:    %d\n", len(report.Failed))

	if a.dryRun {
		fmt.Fprintf(out, "\n📝 Would write notes to: %s\n", notesPath)
	} else {
		fmt.Fprintf(out, "\n✅ Generated: %s\n", notesPath)
	}

	return nil
}
