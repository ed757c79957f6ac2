package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitemig/internal/contentfs"
	"sitemig/internal/contributors"
	"sitemig/internal/people"
)

func newContributorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contributors",
		Short: "Link publication authors to people and record them as contributors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContributors(cmd, a)
		},
	}
}

func runContributors(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	registry, err := people.Load(a.path(a.cfg.Content.PeopleDir))
	if err != nil {
		return err
	}

	files, err := contentfs.List(a.path(a.cfg.Content.PublicationsDir), ".json")
	if err != nil {
		return fmt.Errorf("failed to list publications: %w", err)
	}

	fmt.Fprintf(out, "🔍 Matching %d publications against %d people\n", len(files), registry.Len())
	a.printMode(out)

	runner := contributors.NewRunner(a.log, a.writer(), contributors.NewMatcher(registry.All()))
	result := runner.Run(files)

	if len(result.Matches) > 0 {
		fmt.Fprintln(out)
	}

	for _, m := range result.Matches {
		person, _ := registry.Get(m.ID)
		fmt.Fprintf(out, "✓ %s: %q → %s [%s] (%s)\n", m.Publication, m.Author, m.ID, person.Name, m.Rule)
	}

	for _, f := range result.Failed {
		fmt.Fprintf(out, "❌ Failed to process %s: %v\n", f.File, f.Err)
	}

	verb := "Updated"
	if a.dryRun {
		verb = "Would update"
	}

	fmt.Fprintln(out, "\n"+ruler)
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  Publications:      %d\n", result.TotalPublications)
	fmt.Fprintf(out, "  With matches:      %d\n", result.PublicationsWithMatches)
	fmt.Fprintf(out, "  Total matches:     %d\n", result.TotalMatches)
	fmt.Fprintf(out, "  %s: %d files\n", verb, len(result.Updated))
	fmt.Fprintf(out, "  Errors:            %d\n", len(result.Failed))

	return nil
}
