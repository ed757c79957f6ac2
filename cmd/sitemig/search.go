package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitemig/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search pages, people and blog posts",
		Long: `Fuzzy search pages, people and blog posts by title or name.

Prefix the query with a modifier to search a single category:
  #  pages
  >  people
  @  blog posts

A modifier on its own lists the whole category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, a, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum hits per category (0 for no limit)")

	return cmd
}

func runSearch(cmd *cobra.Command, a *app, query string, limit int) error {
	out := cmd.OutOrStdout()

	idx, err := search.NewLoader(a.log).Load(search.Sources{
		PagesDir:  a.path(a.cfg.Content.PagesDir),
		PeopleDir: a.path(a.cfg.Content.PeopleDir),
		BlogDir:   a.path(a.cfg.Content.BlogDir),
	})
	if err != nil {
		return err
	}

	found := 0

	for _, r := range idx.Search(query) {
		if len(r.Hits) == 0 {
			continue
		}

		hits := r.Hits
		if limit > 0 && len(hits) > limit {
			hits = hits[:limit]
		}

		fmt.Fprintf(out, "%s %s (%d)\n", r.Category.Modifier, r.Category.Name, len(r.Hits))

		for _, h := range hits {
			fmt.Fprintf(out, "  %s  %s\n", h.Name, h.URL)
		}

		found += len(r.Hits)
	}

	if found == 0 {
		fmt.Fprintln(out, "No results found.")
	}

	return nil
}
