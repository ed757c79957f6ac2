// Package models defines the content records read and written by the migration tools.
package models

// Publication states accepted by the article collection.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ArticleCategories is the closed set of blog categories, in display order.
var ArticleCategories = []string{
	"Technology",
	"Development",
	"Design",
	"Product",
	"Business",
	"Tutorial",
	"News",
	"Opinion",
}

// LegacyArticle is an article in the old front matter format. It is read once
// and discarded after transformation.
type LegacyArticle struct {
	// Date holds either a time.Time or a string, depending on how the YAML was written.
	Date       any
	Filename   string
	Title      string
	Author     string
	Layout     string
	Breadcrumb string
	Body       string
	Categories []string
}

// ArticleFrontMatter is the front matter of a migrated article. Field order is
// the order written to disk.
type ArticleFrontMatter struct {
	Permalink     string   `yaml:"permalink"`
	Title         string   `yaml:"title"`
	Excerpt       string   `yaml:"excerpt,omitempty"`
	Authors       []string `yaml:"authors"`
	Published     string   `yaml:"published"`
	Tags          []string `yaml:"tags"`
	Categories    []string `yaml:"categories,omitempty"`
	PublishedDate Date     `yaml:"publishedDate"`
}

// Article is a migrated article: new front matter plus cleaned body.
type Article struct {
	FrontMatter ArticleFrontMatter
	Filename    string
	Body        string
}
