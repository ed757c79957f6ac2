package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemig/internal/contentfs"
	"sitemig/internal/models"
	"sitemig/internal/people"
)

const validArticle = `---
permalink: ndt7-launch
title: Introducing NDT7
excerpt: NDT7 is here.
authors:
  - matt-mathis
published: published
tags:
  - ndt
categories:
  - News
publishedDate: 2020-01-05
---
Body.
`

func newTestValidator() *ArticleValidator {
	registry := people.NewRegistry(
		models.Person{ID: "matt-mathis"},
		models.Person{ID: models.TeamID},
	)

	return NewArticleValidator(models.ArticleCategories, registry)
}

func hasMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}

	return false
}

func errorMessages(r *ValidationResult) []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}

	return out
}

func TestValidateArticle_Valid(t *testing.T) {
	res := newTestValidator().ValidateArticle("a.md", validArticle)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.HasExcerpt)
	assert.Equal(t, []string{"News"}, res.Categories)
}

func TestValidateArticle_MissingAuthorsIsError(t *testing.T) {
	content := strings.Replace(validArticle, "authors:\n  - matt-mathis\n", "", 1)
	res := newTestValidator().ValidateArticle("a.md", content)

	assert.False(t, res.IsValid)
	assert.True(t, hasMessage(errorMessages(res), "missing required field: authors"), errorMessages(res))
}

func TestValidateArticle_EmptyTagsIsWarningOnly(t *testing.T) {
	content := strings.Replace(validArticle, "tags:\n  - ndt\n", "tags: []\n", 1)
	res := newTestValidator().ValidateArticle("a.md", content)

	assert.True(t, res.IsValid, errorMessages(res))
	assert.Empty(t, res.Errors)
	assert.True(t, hasMessage(res.Warnings, "tags array is empty"))
}

func TestValidateArticle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		message string
	}{
		{"empty authors", "authors:\n  - matt-mathis\n", "authors: []\n", "authors array cannot be empty"},
		{"unknown author", "- matt-mathis", "- nobody", "invalid author reference: nobody"},
		{"authors not array", "authors:\n  - matt-mathis\n", "authors: matt-mathis\n", "authors must be an array"},
		{"bad status", "published: published", "published: live", "published must be"},
		{"bad category", "- News", "- Gossip", "invalid category: Gossip"},
		{"bad date", "publishedDate: 2020-01-05", "publishedDate: Jan 5", "publishedDate must be in YYYY-MM-DD format"},
		{"title type", "title: Introducing NDT7", "title: 2020", "title must be a string"},
		{"legacy author", "authors:\n  - matt-mathis\n", "author: Matt Mathis\n", `old field "author" found instead of "authors"`},
		{"legacy date", "publishedDate: 2020-01-05", "date: 2020-01-05", `old field "date" found instead of "publishedDate"`},
		{"missing title", "title: Introducing NDT7\n", "title: \"\"\n", "missing required field: title"},
	}

	v := newTestValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(validArticle, tt.old, tt.new, 1)
			require.NotEqual(t, validArticle, content, "replacement did not apply")

			res := v.ValidateArticle("a.md", content)
			if res.IsValid {
				t.Fatalf("expected errors for %s", tt.name)
			}

			if !hasMessage(errorMessages(res), tt.message) {
				t.Errorf("errors %v do not contain %q", errorMessages(res), tt.message)
			}
		})
	}
}

func TestValidateArticle_Warnings(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		warning string
	}{
		{"no excerpt", "excerpt: NDT7 is here.\n", "", "no excerpt field"},
		{"no categories", "categories:\n  - News\n", "", "no categories assigned"},
		{"many categories", "  - News\n", "  - News\n  - Opinion\n", "has 2 categories"},
		{"layout", "title:", "layout: blog\ntitle:", `old field "layout" still present`},
		{"breadcrumb", "title:", "breadcrumb: blog\ntitle:", `old field "breadcrumb" still present`},
		{"stale author", "title:", "author: Matt Mathis\ntitle:", `old field "author" kept alongside "authors"`},
		{"stale date", "title:", "date: 2020-01-05\ntitle:", `old field "date" kept alongside "publishedDate"`},
		{"non slug permalink", "permalink: ndt7-launch", "permalink: NDT7 Launch!", "not a canonical slug"},
	}

	v := newTestValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(validArticle, tt.old, tt.new, 1)
			res := v.ValidateArticle("a.md", content)

			assert.True(t, res.IsValid, errorMessages(res))
			assert.True(t, hasMessage(res.Warnings, tt.warning), res.Warnings)
		})
	}
}

func TestValidateArticle_Unparseable(t *testing.T) {
	res := newTestValidator().ValidateArticle("a.md", "no front matter here\n")

	assert.False(t, res.IsValid)
	assert.True(t, hasMessage(errorMessages(res), "failed to parse"))
}

func TestValidateFiles_Report(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("a.md", validArticle)
	write("b.md", strings.Replace(validArticle, "excerpt: NDT7 is here.\n", "", 1))
	write("c.md", strings.Replace(validArticle, "- matt-mathis", "- nobody", 1))

	files, err := contentfs.List(dir, ".md")
	require.NoError(t, err)

	report := newTestValidator().ValidateFiles(files)

	assert.Equal(t, ValidationStats{
		TotalFiles:        3,
		CleanFiles:        1,
		FilesWithWarnings: 1,
		FilesWithErrors:   1,
		TotalErrors:       1,
		TotalWarnings:     1,
		WithExcerpt:       2,
	}, report.Stats)
	assert.True(t, report.Failed())
	assert.Equal(t, 67, report.Stats.ExcerptCoverage())

	require.Len(t, report.Categories, len(models.ArticleCategories))
	assert.Equal(t, CategoryCount{Category: "Technology", Count: 0}, report.Categories[0])
	assert.Equal(t, CategoryCount{Category: "News", Count: 3}, report.Categories[6])
}

func TestReport_WarningsNeverFail(t *testing.T) {
	v := newTestValidator()
	res := v.ValidateArticle("a.md", strings.Replace(validArticle, "tags:\n  - ndt\n", "tags: []\n", 1))

	report := v.Aggregate([]*ValidationResult{res})
	assert.False(t, report.Failed())
	assert.Equal(t, 1, report.Stats.FilesWithWarnings)
}

func TestValidationResult_Print(t *testing.T) {
	res := &ValidationResult{File: "a.md", IsValid: false}
	res.addError("title", "", "missing required field: title")
	res.addWarning("tags array is empty")

	var sb strings.Builder
	res.PrintErrors(&sb)
	res.PrintWarnings(&sb)

	assert.Contains(t, sb.String(), "❌ ERROR: missing required field: title")
	assert.Contains(t, sb.String(), "⚠️  WARNING: tags array is empty")
	assert.Contains(t, res.String(), "❌ INVALID")
}
