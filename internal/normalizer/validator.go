package normalizer

import (
	"errors"

	"sitemig/internal/models"
)

// Validation errors.
var (
	ErrNilArticle   = errors.New("legacy article is nil")
	ErrMissingTitle = errors.New("legacy article has no title")
)

// Validator checks that a legacy article carries what the transform needs.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a legacy article before transformation. Date problems are
// reported by NormalizeDate.
func (v *Validator) Validate(article *models.LegacyArticle) error {
	if article == nil {
		return ErrNilArticle
	}

	if article.Title == "" {
		return ErrMissingTitle
	}

	if article.Date == nil {
		return ErrMissingDate
	}

	return nil
}
