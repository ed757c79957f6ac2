// Package search ranks site pages, people and blog posts against a query.
// A leading modifier restricts the query to one category.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Category groups searchable items behind a query modifier.
type Category struct {
	Name     string
	Modifier string
}

// Search categories in display order.
var (
	Pages  = Category{Name: "Pages", Modifier: "#"}
	People = Category{Name: "People", Modifier: ">"}
	Blog   = Category{Name: "Blog", Modifier: "@"}

	Categories = []Category{Pages, People, Blog}
)

// Item is a searchable entry.
type Item struct {
	ID       string
	Name     string
	URL      string
	Category string
}

// Hit is a ranked search result.
type Hit struct {
	Item
	Score int
}

// Results holds the hits of one category.
type Results struct {
	Category Category
	Hits     []Hit
}

// Index holds the searchable items per category.
type Index struct {
	items map[string][]Item
}

// NewIndex builds an index from items. Items keep their insertion order
// within a category.
func NewIndex(items ...Item) *Index {
	idx := &Index{items: make(map[string][]Item)}
	for _, it := range items {
		idx.Add(it)
	}

	return idx
}

// Add appends an item to its category.
func (idx *Index) Add(it Item) {
	idx.items[it.Category] = append(idx.items[it.Category], it)
}

// Items returns the items of a category.
func (idx *Index) Items(category string) []Item {
	return idx.items[category]
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	n := 0
	for _, items := range idx.items {
		n += len(items)
	}

	return n
}

// Search returns the results for every category, in category order.
func (idx *Index) Search(rawQuery string) []Results {
	query := strings.ToLower(rawQuery)
	for _, c := range Categories {
		if strings.HasPrefix(query, c.Modifier) {
			query = strings.TrimPrefix(query, c.Modifier)
			break
		}
	}

	out := make([]Results, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, Results{Category: c, Hits: idx.searchCategory(c, rawQuery, query)})
	}

	return out
}

func (idx *Index) searchCategory(c Category, rawQuery, query string) []Hit {
	items := idx.Items(c.Name)

	if rawQuery == c.Modifier {
		hits := make([]Hit, len(items))
		for i, it := range items {
			hits[i] = Hit{Item: it}
		}

		return hits
	}

	if query == "" {
		return nil
	}

	for _, other := range Categories {
		if other.Modifier != c.Modifier && strings.HasPrefix(rawQuery, other.Modifier) {
			return nil
		}
	}

	matches := fuzzy.FindFrom(query, names(items))

	// Ties keep index order.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}

		return matches[i].Index < matches[j].Index
	})

	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, Hit{Item: items[m.Index], Score: m.Score})
	}

	return hits
}

type names []Item

func (n names) String(i int) string { return n[i].Name }

func (n names) Len() int { return len(n) }
