// Package validator checks migrated articles against the content collection
// schema and the people registry.
package validator

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/goliatone/go-slug"

	"sitemig/internal/models"
	"sitemig/pkg/frontmatter"
)

// RequiredFields must be present and non-empty in every migrated article.
var RequiredFields = []string{"permalink", "title", "authors", "published", "tags", "publishedDate"}

var publishedDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// AuthorIndex reports whether a person id exists.
type AuthorIndex interface {
	Has(id string) bool
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationResult contains the findings for one article.
type ValidationResult struct {
	File       string
	Errors     []ValidationError
	Warnings   []string
	Categories []string
	HasExcerpt bool
	IsValid    bool
}

func (r *ValidationResult) addError(field, value, format string, args ...any) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ArticleValidator validates migrated article front matter.
type ArticleValidator struct {
	authors    AuthorIndex
	categories []string
}

// NewArticleValidator creates a validator accepting the given categories and
// the author ids known to authors.
func NewArticleValidator(categories []string, authors AuthorIndex) *ArticleValidator {
	if len(categories) == 0 {
		categories = models.ArticleCategories
	}

	return &ArticleValidator{authors: authors, categories: categories}
}

// ValidateArticle checks the front matter of one migrated article.
func (v *ArticleValidator) ValidateArticle(filename, content string) *ValidationResult {
	result := &ValidationResult{File: filename, IsValid: true}

	data, _, err := frontmatter.Fields(content)
	if err != nil {
		result.addError("", "", "failed to parse: %v", err)
		return result
	}

	for _, field := range RequiredFields {
		if !present(data[field]) {
			result.addError(field, "", "missing required field: %s", field)
		}
	}

	v.checkStrings(result, data)
	v.checkAuthors(result, data["authors"])
	v.checkPublished(result, data["published"])
	v.checkTags(result, data["tags"])
	v.checkCategories(result, data["categories"])
	v.checkPublishedDate(result, data["publishedDate"])
	v.checkLegacyFields(result, data)

	if present(data["excerpt"]) {
		result.HasExcerpt = true
	} else {
		result.addWarning("no excerpt field (may be optional)")
	}

	return result
}

func (v *ArticleValidator) checkStrings(result *ValidationResult, data map[string]any) {
	for _, field := range []string{"permalink", "title", "excerpt"} {
		val := data[field]
		if !present(val) {
			continue
		}

		if _, ok := val.(string); !ok {
			result.addError(field, fmt.Sprint(val), "%s must be a string", field)
		}
	}

	if permalink, ok := data["permalink"].(string); ok && permalink != "" && !slug.IsValid(permalink) {
		result.addWarning("permalink %q is not a canonical slug", permalink)
	}
}

func (v *ArticleValidator) checkAuthors(result *ValidationResult, val any) {
	if !present(val) {
		return
	}

	list, ok := val.([]any)
	if !ok {
		result.addError("authors", fmt.Sprint(val), "authors must be an array")
		return
	}

	if len(list) == 0 {
		result.addError("authors", "", "authors array cannot be empty")
	}

	for _, item := range list {
		id := fmt.Sprint(item)
		if v.authors == nil || !v.authors.Has(id) {
			result.addError("authors", id, "invalid author reference: %s", id)
		}
	}
}

func (v *ArticleValidator) checkPublished(result *ValidationResult, val any) {
	if !present(val) {
		return
	}

	if val != models.StatusDraft && val != models.StatusPublished {
		result.addError("published", fmt.Sprint(val), "published must be '%s' or '%s'",
			models.StatusDraft, models.StatusPublished)
	}
}

func (v *ArticleValidator) checkTags(result *ValidationResult, val any) {
	if !present(val) {
		return
	}

	list, ok := val.([]any)
	if !ok {
		result.addError("tags", fmt.Sprint(val), "tags must be an array")
		return
	}

	if len(list) == 0 {
		result.addWarning("tags array is empty")
	}
}

func (v *ArticleValidator) checkCategories(result *ValidationResult, val any) {
	if !present(val) {
		result.addWarning("no categories assigned")
		return
	}

	list, ok := val.([]any)
	if !ok {
		result.addError("categories", fmt.Sprint(val), "categories must be an array")
		return
	}

	for _, item := range list {
		cat := fmt.Sprint(item)
		result.Categories = append(result.Categories, cat)

		if !slices.Contains(v.categories, cat) {
			result.addError("categories", cat, "invalid category: %s", cat)
		}
	}

	if len(list) > 1 {
		result.addWarning("has %d categories (recommended: 1)", len(list))
	}
}

func (v *ArticleValidator) checkPublishedDate(result *ValidationResult, val any) {
	if !present(val) {
		return
	}

	if s := fmt.Sprint(val); !publishedDatePattern.MatchString(s) {
		result.addError("publishedDate", s, "publishedDate must be in YYYY-MM-DD format")
	}
}

// checkLegacyFields reports fields left over from the old format. A legacy
// field without its replacement means the article was never migrated.
func (v *ArticleValidator) checkLegacyFields(result *ValidationResult, data map[string]any) {
	if present(data["layout"]) {
		result.addWarning(`old field "layout" still present`)
	}

	if present(data["breadcrumb"]) {
		result.addWarning(`old field "breadcrumb" still present`)
	}

	legacy := []struct{ old, replacement string }{
		{"author", "authors"},
		{"date", "publishedDate"},
	}

	for _, l := range legacy {
		if !present(data[l.old]) {
			continue
		}

		if present(data[l.replacement]) {
			result.addWarning("old field %q kept alongside %q", l.old, l.replacement)
		} else {
			result.addError(l.old, "", "old field %q found instead of %q", l.old, l.replacement)
		}
	}
}

// present reports whether a decoded front matter value counts as set. Empty
// arrays are set; empty strings, zero and false are not.
func present(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
