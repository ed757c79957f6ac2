package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sitemig/internal/models"
	"sitemig/pkg/frontmatter"
)

// ErrInvalidAuthor reports an author field that is not a single string.
var ErrInvalidAuthor = errors.New("author must be a comma-separated string")

// ParseLegacy reads a legacy article: old-style front matter plus markdown body.
func ParseLegacy(filename, content string) (*models.LegacyArticle, error) {
	fields, body, err := frontmatter.Fields(content)
	if err != nil {
		return nil, err
	}

	switch author := fields["author"].(type) {
	case []any, map[string]any, map[any]any:
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAuthor, author)
	}

	return &models.LegacyArticle{
		Filename:   filename,
		Title:      scalarString(fields["title"]),
		Author:     scalarString(fields["author"]),
		Date:       fields["date"],
		Layout:     scalarString(fields["layout"]),
		Breadcrumb: scalarString(fields["breadcrumb"]),
		Categories: stringList(fields["categories"]),
		Body:       body,
	}, nil
}

// scalarString renders a YAML scalar as text. Missing values become "".
func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case time.Time:
		return val.Format(time.DateOnly)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// stringList accepts a YAML sequence or a single scalar.
func stringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}

		return out
	case []string:
		return append([]string(nil), val...)
	default:
		if s := scalarString(val); s != "" {
			return []string{s}
		}

		return nil
	}
}
