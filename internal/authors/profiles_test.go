package authors

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
	"sitemig/internal/models"
)

func TestDetermineTitle(t *testing.T) {
	tests := []struct {
		name     string
		author   string
		articles int
		want     string
	}{
		{"team by name", "Measurement Lab", 40, TitleTeam},
		{"mlab spelled", "MLab Ops", 1, TitleTeam},
		{"senior", "Matt Mathis", 10, TitleSenior},
		{"researcher", "Chris Ritzo", 5, TitleResearcher},
		{"contributor", "Someone", 4, TitleContributor},
		{"no articles", "Someone", 0, TitleContributor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineTitle(tt.author, tt.articles); got != tt.want {
				t.Errorf("DetermineTitle(%q, %d) = %q, want %q", tt.author, tt.articles, got, tt.want)
			}
		})
	}
}

func TestCountArticles(t *testing.T) {
	mapping := models.AuthorMapping{
		"Matt Mathis": "matt-mathis",
		"M. Mathis":   "matt-mathis",
		"Chris Ritzo": "chris-ritzo",
	}

	articles := []*models.LegacyArticle{
		{Author: "Matt Mathis, M. Mathis"},
		{Author: "Chris Ritzo, Matt Mathis"},
		{Author: "Unknown Person"},
	}

	counts := CountArticles(articles, mapping)
	assert.Equal(t, map[string]int{"matt-mathis": 2, "chris-ritzo": 1}, counts)
}

func TestProfileCreator_Create(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "chris-ritzo.json")
	require.NoError(t, os.WriteFile(existing, []byte("{\"keep\": true}\n"), 0o644))

	mapping := models.AuthorMapping{
		"Matt Mathis": "matt-mathis",
		"M. Mathis":   "matt-mathis",
		"Chris Ritzo": "chris-ritzo",
	}
	counts := map[string]int{"matt-mathis": 12, "chris-ritzo": 3}

	creator := NewProfileCreator(logger.NewNop(), contentfs.NewWriter(false), ProfileOptions{
		PeopleDir: dir,
		Headshot:  "/src/assets/people/placeholder.png",
		Sections:  []string{"Community"},
	})

	result, err := creator.Create(mapping, counts)
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "matt-mathis", result.Created[0].ID)
	assert.Len(t, result.Skipped, 2)

	data, err := os.ReadFile(filepath.Join(dir, "matt-mathis.json"))
	require.NoError(t, err)

	var p models.Person
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, models.Person{
		ID:       "matt-mathis",
		Name:     "M. Mathis",
		Headshot: "/src/assets/people/placeholder.png",
		Title:    TitleSenior,
		Sections: []string{"Community"},
	}, p)

	kept, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "{\"keep\": true}\n", string(kept))
}

func TestProfileCreator_DryRunMatchesRealRun(t *testing.T) {
	mapping := models.AuthorMapping{"Matt Mathis": "matt-mathis", "M. Mathis": "matt-mathis"}
	opts := ProfileOptions{Headshot: "h.png", Sections: []string{"Community"}}

	opts.PeopleDir = t.TempDir()
	dry, err := NewProfileCreator(logger.NewNop(), contentfs.NewWriter(true), opts).Create(mapping, nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(opts.PeopleDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	opts.PeopleDir = t.TempDir()
	live, err := NewProfileCreator(logger.NewNop(), contentfs.NewWriter(false), opts).Create(mapping, nil)
	require.NoError(t, err)

	assert.Equal(t, len(live.Created), len(dry.Created))
	assert.Equal(t, len(live.Skipped), len(dry.Skipped))
}
