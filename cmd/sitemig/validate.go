package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sitemig/internal/contentfs"
	"sitemig/internal/formatter"
	"sitemig/internal/people"
	"sitemig/internal/validator"
)

// ErrValidationFailed is returned when at least one article has an error.
var ErrValidationFailed = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check migrated articles against the collection schema and people registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list warnings of every file")

	return cmd
}

func runValidate(cmd *cobra.Command, a *app, verbose bool) error {
	out := cmd.OutOrStdout()

	registry, err := people.Load(a.path(a.cfg.Content.PeopleDir))
	if err != nil {
		return err
	}

	for _, p := range registry.Problems {
		a.log.Warn("invalid person record", "file", p.File, "error", p.Err)
	}

	files, err := contentfs.List(a.path(a.cfg.Content.ArticlesDir), ".md", ".mdx")
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	fmt.Fprintf(out, "🔍 Validating %d articles against %d people\n\n", len(files), registry.Len())

	v := validator.NewArticleValidator(a.cfg.Migration.Categories, registry)
	report := v.ValidateFiles(files)

	for _, res := range report.Results {
		if len(res.Errors) == 0 && (!verbose || len(res.Warnings) == 0) {
			continue
		}

		fmt.Fprintln(out, res.String())
		res.PrintErrors(out)

		if verbose {
			res.PrintWarnings(out)
		}
	}

	s := report.Stats

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  Total files:        %d\n", s.TotalFiles)
	fmt.Fprintf(out, "  ✅ Clean:           %d\n", s.CleanFiles)
	fmt.Fprintf(out, "  ⚠️  With warnings:   %d\n", s.FilesWithWarnings)
	fmt.Fprintf(out, "  ❌ With errors:     %d\n", s.FilesWithErrors)
	fmt.Fprintf(out, "  Total errors:       %d\n", s.TotalErrors)
	fmt.Fprintf(out, "  Total warnings:     %d\n", s.TotalWarnings)
	fmt.Fprintf(out, "  Excerpt coverage:   %d%% (%d/%d)\n", s.ExcerptCoverage(), s.WithExcerpt, s.TotalFiles)

	rows := make([][]string, 0, len(report.Categories))
	for _, c := range report.Categories {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.Count)})
	}

	fmt.Fprintln(out, "\n📊 Categories:")
	fmt.Fprint(out, formatter.FormatTable([]string{"Category", "Articles"}, rows))

	if report.Failed() {
		return fmt.Errorf("%w: %d files with errors", ErrValidationFailed, s.FilesWithErrors)
	}

	fmt.Fprintln(out, "\n✅ All articles passed validation")

	return nil
}
