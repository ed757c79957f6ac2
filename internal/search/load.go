package search

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
	"sitemig/internal/people"
	"sitemig/pkg/frontmatter"
)

// Published is the status of a blog post that is listed in search.
const Published = "published"

// Sources locates the collections the index is built from.
type Sources struct {
	PagesDir  string
	PeopleDir string
	BlogDir   string
}

// Loader builds an index from the content collections.
type Loader struct {
	log *logger.Logger
}

// NewLoader creates a loader.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: log}
}

// Load indexes pages, people and published blog posts. Files that cannot be
// read are logged and skipped; a missing collection is an error.
func (l *Loader) Load(src Sources) (*Index, error) {
	idx := NewIndex()

	if err := l.loadPages(idx, src.PagesDir); err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}

	if err := l.loadPeople(idx, src.PeopleDir); err != nil {
		return nil, fmt.Errorf("failed to load people: %w", err)
	}

	if err := l.loadBlog(idx, src.BlogDir); err != nil {
		return nil, fmt.Errorf("failed to load blog: %w", err)
	}

	return idx, nil
}

func (l *Loader) loadPages(idx *Index, dir string) error {
	files, err := contentfs.List(dir, ".yaml", ".yml")
	if err != nil {
		return err
	}

	for _, f := range files {
		var page struct {
			Title string `yaml:"title"`
		}

		data, err := os.ReadFile(f.Path)
		if err == nil {
			err = yaml.Unmarshal(data, &page)
		}

		if err != nil {
			l.log.Warn("skipping page", "file", f.Name, "error", err)
			continue
		}

		id := contentfs.Stem(f.Name)
		idx.Add(Item{ID: id, Name: page.Title, URL: "/" + id, Category: Pages.Name})
	}

	return nil
}

func (l *Loader) loadPeople(idx *Index, dir string) error {
	reg, err := people.Load(dir)
	if err != nil {
		return err
	}

	for _, p := range reg.All() {
		idx.Add(Item{ID: p.ID, Name: p.Name, URL: "/people/" + p.ID, Category: People.Name})
	}

	return nil
}

func (l *Loader) loadBlog(idx *Index, dir string) error {
	files, err := contentfs.List(dir, ".md", ".mdx")
	if err != nil {
		return err
	}

	for _, f := range files {
		var post struct {
			Title     string `yaml:"title"`
			Published string `yaml:"published"`
		}

		data, err := os.ReadFile(f.Path)
		if err == nil {
			_, err = frontmatter.Parse(string(data), &post)
		}

		if err != nil {
			l.log.Warn("skipping post", "file", f.Name, "error", err)
			continue
		}

		if post.Published != Published {
			continue
		}

		slug := contentfs.Stem(f.Name)
		idx.Add(Item{ID: slug, Name: post.Title, URL: "/blog/" + slug, Category: Blog.Name})
	}

	return nil
}
