package authors

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
	"sitemig/internal/models"
	"sitemig/pkg/utils"
)

// Profile titles by article count.
const (
	TitleTeam        = "M-Lab Team"
	TitleSenior      = "Senior Researcher"
	TitleResearcher  = "Researcher"
	TitleContributor = "Research Contributor"
)

// DetermineTitle picks a person title from the name and the number of
// articles attributed to them.
func DetermineTitle(name string, articles int) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "mlab") || strings.Contains(lower, "measurement lab") {
		return TitleTeam
	}

	switch {
	case articles >= 10:
		return TitleSenior
	case articles >= 5:
		return TitleResearcher
	default:
		return TitleContributor
	}
}

// CountArticles counts, per person id, the articles whose author field
// resolves to that id. An article counts once per id.
func CountArticles(articles []*models.LegacyArticle, mapping models.AuthorMapping) map[string]int {
	helper := utils.NewStringHelper()
	counts := map[string]int{}

	for _, a := range articles {
		seen := map[string]bool{}

		for _, name := range helper.SplitList(a.Author, ",") {
			id, ok := mapping[name]
			if !ok || seen[id] {
				continue
			}

			seen[id] = true
			counts[id]++
		}
	}

	return counts
}

// ProfileOptions controls where and how person files are created.
type ProfileOptions struct {
	PeopleDir string
	Headshot  string
	Sections  []string
}

// ProfileEntry describes one person file considered by CreateProfiles.
type ProfileEntry struct {
	Name     string
	ID       string
	Title    string
	Articles int
}

// ProfileResult lists created and skipped person files.
type ProfileResult struct {
	Created []ProfileEntry
	Skipped []ProfileEntry
}

// ProfileCreator seeds the people registry from an author mapping.
type ProfileCreator struct {
	log    *logger.Logger
	writer *contentfs.Writer
	opts   ProfileOptions
}

// NewProfileCreator creates a profile creator writing through w.
func NewProfileCreator(log *logger.Logger, w *contentfs.Writer, opts ProfileOptions) *ProfileCreator {
	return &ProfileCreator{log: log, writer: w, opts: opts}
}

// Create writes one person file per distinct id in mapping. Existing files
// are never overwritten. Entries are processed by article count, then name.
func (c *ProfileCreator) Create(mapping models.AuthorMapping, counts map[string]int) (*ProfileResult, error) {
	entries := make([]ProfileEntry, 0, len(mapping))
	for name, id := range mapping {
		entries = append(entries, ProfileEntry{
			Name:     name,
			ID:       id,
			Articles: counts[id],
			Title:    DetermineTitle(name, counts[id]),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Articles != entries[j].Articles {
			return entries[i].Articles > entries[j].Articles
		}

		return entries[i].Name < entries[j].Name
	})

	result := &ProfileResult{}
	handled := map[string]bool{}

	for _, e := range entries {
		path := filepath.Join(c.opts.PeopleDir, e.ID+".json")

		if handled[e.ID] || contentfs.Exists(path) {
			c.log.Debug("person file exists, skipping", "id", e.ID, "name", e.Name)
			result.Skipped = append(result.Skipped, e)

			continue
		}

		data, err := c.encode(e)
		if err != nil {
			return result, err
		}

		if err := c.writer.WriteFile(path, data); err != nil {
			return result, fmt.Errorf("failed to write person %s: %w", e.ID, err)
		}

		handled[e.ID] = true
		result.Created = append(result.Created, e)
	}

	return result, nil
}

func (c *ProfileCreator) encode(e ProfileEntry) ([]byte, error) {
	p := models.Person{
		ID:       e.ID,
		Name:     e.Name,
		Headshot: c.opts.Headshot,
		Title:    e.Title,
		Sections: c.opts.Sections,
	}

	data, err := contentfs.MarshalJSON(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal person %s: %w", e.ID, err)
	}

	return data, nil
}
