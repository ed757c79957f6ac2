package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitemig/internal/authors"
	"sitemig/internal/contentfs"
)

func newPeopleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "people",
		Short: "Create person files for every mapped author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeople(cmd, a)
		},
	}
}

func runPeople(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	mapping, err := authors.LoadMapping(a.path(a.cfg.Content.AuthorMapping))
	if err != nil {
		return err
	}

	files, err := contentfs.List(a.path(a.cfg.Content.ArticlesDir), ".md")
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	a.printMode(out)

	scan := authors.NewGenerator(a.log).Scan(files)
	counts := authors.CountArticles(scan.Articles, mapping)

	creator := authors.NewProfileCreator(a.log, a.writer(), authors.ProfileOptions{
		PeopleDir: a.path(a.cfg.Content.PeopleDir),
		Headshot:  a.cfg.Migration.DefaultHeadshot,
		Sections:  a.cfg.Migration.DefaultSections,
	})

	result, err := creator.Create(mapping, counts)
	if err != nil {
		return err
	}

	verb := "Created"
	if a.dryRun {
		verb = "Would create"
	}

	for _, e := range result.Created {
		fmt.Fprintf(out, "✓ %s %s.json (%s, %s, %d articles)\n", verb, e.ID, e.Name, e.Title, e.Articles)
	}

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  %s: %d profiles\n", verb, len(result.Created))
	fmt.Fprintf(out, "  Skipped: %d\n", len(result.Skipped))

	return nil
}
