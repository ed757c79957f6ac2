package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sitemig/internal/authors"
	"sitemig/internal/contentfs"
	"sitemig/internal/normalizer"
	"sitemig/pkg/frontmatter"
)

func newArticlesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "articles",
		Short: "Rewrite legacy article front matter in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticles(cmd, a)
		},
	}
}

func runArticles(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	mapping, err := authors.LoadMapping(a.path(a.cfg.Content.AuthorMapping))
	if err != nil {
		return err
	}

	dir := a.path(a.cfg.Content.ArticlesDir)

	files, err := contentfs.List(dir, ".md")
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	fmt.Fprintf(out, "📂 Migrating %d articles in %s\n", len(files), dir)
	a.printMode(out)

	processor := normalizer.NewProcessor(normalizer.TransformOptions{
		Mapping:       mapping,
		ExcerptMarker: a.cfg.Migration.ExcerptMarker,
		ExcerptMax:    a.cfg.Migration.ExcerptMaxLength,
		TeamID:        a.cfg.Migration.TeamID,
	})

	result := normalizer.NewBatch(processor, a.writer(), a.log).Run(files)

	for _, f := range result.Files {
		switch {
		case f.Err != nil:
			fmt.Fprintf(out, "❌ Failed to migrate %s: %v\n", f.File, f.Err)
		case a.dryRun:
			printPreview(out, f)
		default:
			fmt.Fprintf(out, "✅ Migrated: %s\n", f.File)
		}
	}

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  Total:    %d files\n", result.Stats.Total)
	fmt.Fprintf(out, "  Migrated: %d files\n", result.Stats.Succeeded)
	fmt.Fprintf(out, "  Errors:   %d\n", result.Stats.Failed)

	if a.dryRun {
		fmt.Fprintln(out, "\n💡 Run without --dry-run to apply changes.")
	}

	return nil
}

func printPreview(out io.Writer, f normalizer.FileResult) {
	fmt.Fprintf(out, "\n📝 %s\n", f.File)
	fmt.Fprintln(out, "OLD:")
	fmt.Fprint(out, normalizer.LegacyPreview(f.Legacy))
	fmt.Fprintln(out, "NEW:")
	fmt.Fprint(out, frontmatter.Dump(f.Article.FrontMatter))
}
