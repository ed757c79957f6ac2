package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"sitemig/internal/formatter"
	"sitemig/internal/publications"
)

func newPublicationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publications",
		Short: "Split the legacy publications document into one record per publication",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublications(cmd, a)
		},
	}
}

func runPublications(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	doc := a.path(a.cfg.Content.PublicationsDoc)

	content, err := os.ReadFile(doc)
	if err != nil {
		return fmt.Errorf("failed to read publications document: %w", err)
	}

	schema, err := publications.NewSchemaValidator()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📂 Reading: %s (%d bytes)\n", doc, len(content))
	a.printMode(out)

	parsed := publications.NewParser(a.log).Parse(string(content))

	writer := publications.NewWriter(a.log, a.writer(), schema, a.path(a.cfg.Content.PublicationsDir))

	result, err := writer.Write(parsed.Publications)
	if err != nil {
		return err
	}

	counts := parsed.CategoryCounts()
	categories := make([]string, 0, len(counts))

	for c := range counts {
		categories = append(categories, c)
	}

	sort.Strings(categories)

	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c, strconv.Itoa(counts[c])})
	}

	fmt.Fprintf(out, "\n📊 Parsed %d publications\n\n", len(parsed.Publications))

	if len(rows) > 0 {
		fmt.Fprint(out, formatter.FormatTable([]string{"Category", "Publications"}, rows))
	}

	for _, s := range parsed.Skipped {
		fmt.Fprintf(out, "⚠️  Skipped %s: %s\n", s.ID, s.Reason)
	}

	for _, s := range result.Invalid {
		fmt.Fprintf(out, "❌ Invalid %s: %s\n", s.ID, s.Reason)
	}

	for _, u := range parsed.Unclear {
		fmt.Fprintf(out, "❓ Unclear link: %s\n", u)
	}

	verb := "Written"
	if a.dryRun {
		verb = "Would write"
	}

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  %s: %d\n", verb, len(result.Written))
	fmt.Fprintf(out, "  Existing: %d\n", len(result.Existing))
	fmt.Fprintf(out, "  Skipped:  %d\n", len(parsed.Skipped))
	fmt.Fprintf(out, "  Invalid:  %d\n", len(result.Invalid))
	fmt.Fprintf(out, "  Unclear links: %d\n", len(parsed.Unclear))

	return nil
}
