package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sitemig/internal/authors"
	"sitemig/internal/contentfs"
	"sitemig/internal/formatter"
)

func newAuthorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "Build the author name to person id mapping from legacy articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthors(cmd, a)
		},
	}
}

func runAuthors(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	dir := a.path(a.cfg.Content.ArticlesDir)

	files, err := contentfs.List(dir, ".md")
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	fmt.Fprintf(out, "📂 Scanning %d articles in %s\n", len(files), dir)
	a.printMode(out)

	result := authors.NewGenerator(a.log).Scan(files)

	rows := make([][]string, 0, len(result.Stats))
	for _, s := range result.Stats {
		rows = append(rows, []string{s.Name, s.ID, strconv.Itoa(s.Count)})
	}

	fmt.Fprintf(out, "\n👥 Found %d unique authors\n\n", len(result.Stats))

	if len(rows) > 0 {
		fmt.Fprint(out, formatter.FormatTable([]string{"Author", "ID", "Articles"}, rows))
	}

	mappingPath := a.path(a.cfg.Content.AuthorMapping)
	if err := authors.SaveMapping(a.writer(), mappingPath, result.Mapping()); err != nil {
		return fmt.Errorf("failed to save author mapping: %w", err)
	}

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  Scanned: %d files\n", result.Files)
	fmt.Fprintf(out, "  Authors: %d\n", len(result.Stats))
	fmt.Fprintf(out, "  Errors:  %d\n", len(result.Failed))

	if a.dryRun {
		fmt.Fprintf(out, "\n📝 Would save mapping to: %s\n", mappingPath)
	} else {
		fmt.Fprintf(out, "\n✅ Saved mapping to: %s\n", mappingPath)
	}

	return nil
}
