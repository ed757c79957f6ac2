package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"sitemig/internal/models"
	"sitemig/pkg/utils"
)

// Transform errors.
var (
	ErrMissingDate = errors.New("legacy article has no date")
	ErrInvalidDate = errors.New("date has no YYYY-MM-DD prefix")
)

var (
	permalinkDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)
	datePrefix          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	markdownImage       = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	markdownLink        = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	emptyLink           = regexp.MustCompile(`\[\s*\]\([^)]*\)`)
	tagWhitespace       = regexp.MustCompile(`\s+`)
)

// TransformOptions configures a Transformer.
type TransformOptions struct {
	Mapping       models.AuthorMapping
	ExcerptMarker string
	ExcerptMax    int
	TeamID        string
}

// Transformer converts legacy articles into migrated articles.
type Transformer struct {
	strings *utils.StringHelper
	opts    TransformOptions
}

// NewTransformer creates a new transformer instance.
func NewTransformer(opts TransformOptions) *Transformer {
	if opts.TeamID == "" {
		opts.TeamID = models.TeamID
	}

	return &Transformer{strings: utils.NewStringHelper(), opts: opts}
}

// Transform builds the new front matter and cleaned body of a legacy article.
func (t *Transformer) Transform(legacy *models.LegacyArticle) (*models.Article, error) {
	date, err := NormalizeDate(legacy.Date)
	if err != nil {
		return nil, err
	}

	excerpt, body := t.ExtractExcerpt(legacy.Body)
	tags := NormalizeTags(legacy.Categories)

	return &models.Article{
		Filename: legacy.Filename,
		Body:     body,
		FrontMatter: models.ArticleFrontMatter{
			Permalink:     GeneratePermalink(legacy.Filename),
			Title:         legacy.Title,
			Excerpt:       excerpt,
			Authors:       t.MapAuthors(legacy.Author),
			Published:     models.StatusPublished,
			Tags:          tags,
			Categories:    []string{Classify(legacy.Title, tags)},
			PublishedDate: date,
		},
	}, nil
}

// GeneratePermalink strips the leading date and the .md extension from a
// legacy filename.
func GeneratePermalink(filename string) string {
	return strings.TrimSuffix(permalinkDatePrefix.ReplaceAllString(filename, ""), ".md")
}

// ExtractExcerpt returns the plain-text summary before the excerpt marker and
// the body with the marker removed. Without a marker the excerpt is empty and
// the body is returned unchanged.
func (t *Transformer) ExtractExcerpt(body string) (string, string) {
	before, _, found := strings.Cut(body, t.opts.ExcerptMarker)
	if !found || t.opts.ExcerptMarker == "" {
		return "", body
	}

	excerpt := strings.TrimSpace(before)
	excerpt = markdownImage.ReplaceAllString(excerpt, "")
	// A linked image leaves a link with no label behind.
	excerpt = emptyLink.ReplaceAllString(excerpt, "")
	excerpt = markdownLink.ReplaceAllString(excerpt, "$1")
	excerpt = t.strings.NormalizeWhitespace(excerpt)

	if t.opts.ExcerptMax > 0 {
		excerpt = t.strings.TruncateString(excerpt, t.opts.ExcerptMax)
	}

	cleaned := strings.TrimSpace(strings.Replace(body, t.opts.ExcerptMarker, "", 1))

	return excerpt, cleaned
}

// MapAuthors resolves a comma-separated author field to person ids. Names
// missing from the mapping are dropped; if none resolve the team id is used.
func (t *Transformer) MapAuthors(author string) []string {
	var ids []string

	for _, name := range t.strings.SplitList(author, ",") {
		if id, ok := t.opts.Mapping[name]; ok && id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return []string{t.opts.TeamID}
	}

	return ids
}

// NormalizeTags turns legacy categories into lowercase hyphenated tags.
// The result is never nil.
func NormalizeTags(categories []string) []string {
	tags := make([]string, 0, len(categories))

	for _, c := range categories {
		tag := strings.ReplaceAll(strings.ToLower(c), "_", "-")
		tags = append(tags, tagWhitespace.ReplaceAllString(tag, "-"))
	}

	return tags
}

// NormalizeDate reduces a legacy date value to YYYY-MM-DD. Time values are
// formatted in UTC; strings must start with a calendar date.
func NormalizeDate(v any) (models.Date, error) {
	switch val := v.(type) {
	case nil:
		return "", ErrMissingDate
	case time.Time:
		return models.Date(val.UTC().Format(time.DateOnly)), nil
	case string:
		if strings.TrimSpace(val) == "" {
			return "", ErrMissingDate
		}

		prefix := datePrefix.FindString(strings.TrimSpace(val))
		if prefix == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidDate, val)
		}

		return models.Date(prefix), nil
	default:
		return NormalizeDate(fmt.Sprint(val))
	}
}
