// Package normalizer converts legacy articles into the migrated article format.
package normalizer

import (
	"fmt"

	"sitemig/internal/models"
	"sitemig/pkg/frontmatter"
)

// Result is the outcome of processing one legacy file.
type Result struct {
	Legacy  *models.LegacyArticle
	Article *models.Article
	Content string
}

// Processor parses, validates, transforms and renders legacy articles.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor(opts TransformOptions) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(opts),
	}
}

// Process transforms the content of a legacy file into migrated file content.
func (p *Processor) Process(filename, content string) (*Result, error) {
	legacy, err := ParseLegacy(filename, content)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	if err := p.validator.Validate(legacy); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	article, err := p.transformer.Transform(legacy)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	rendered, err := Render(article)
	if err != nil {
		return nil, err
	}

	return &Result{Legacy: legacy, Article: article, Content: rendered}, nil
}

// Render produces the migrated file content of an article.
func Render(article *models.Article) (string, error) {
	return frontmatter.Compose(article.FrontMatter, article.Body)
}

// LegacyPreview renders the legacy front matter fields for dry-run output.
func LegacyPreview(a *models.LegacyArticle) string {
	type preview struct {
		Layout     string   `yaml:"layout,omitempty"`
		Title      string   `yaml:"title"`
		Author     string   `yaml:"author,omitempty"`
		Date       any      `yaml:"date"`
		Breadcrumb string   `yaml:"breadcrumb,omitempty"`
		Categories []string `yaml:"categories,omitempty"`
	}

	return frontmatter.Dump(preview{
		Layout:     a.Layout,
		Title:      a.Title,
		Author:     a.Author,
		Date:       a.Date,
		Breadcrumb: a.Breadcrumb,
		Categories: a.Categories,
	})
}
