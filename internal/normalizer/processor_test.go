package normalizer

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
	"sitemig/internal/models"
	"sitemig/pkg/frontmatter"
)

const legacyPost = `---
layout: blog
title: Introducing NDT7
author: Matt Mathis, Unknown Writer
date: 2020-01-05 09:00:00
breadcrumb: blog
categories:
  - ndt
  - Data_Pipeline
---
NDT7 is here. [Read more](https://example.org).
<!--more-->
Full text.
`

func newTestProcessor() *Processor {
	return NewProcessor(TransformOptions{
		Mapping:       models.AuthorMapping{"Matt Mathis": "matt-mathis"},
		ExcerptMarker: "<!--more-->",
		ExcerptMax:    300,
	})
}

func TestProcessor_Process(t *testing.T) {
	res, err := newTestProcessor().Process("2020-01-05-ndt7.md", legacyPost)
	require.NoError(t, err)

	assert.Equal(t, "Introducing NDT7", res.Legacy.Title)
	assert.Equal(t, "blog", res.Legacy.Layout)

	fm := res.Article.FrontMatter
	assert.Equal(t, "ndt7", fm.Permalink)
	assert.Equal(t, []string{"matt-mathis"}, fm.Authors)
	assert.Equal(t, []string{"ndt", "data-pipeline"}, fm.Tags)
	assert.Equal(t, []string{"News"}, fm.Categories)
	assert.Equal(t, models.Date("2020-01-05"), fm.PublishedDate)
	assert.Equal(t, "NDT7 is here. Read more.", fm.Excerpt)

	assert.True(t, strings.HasPrefix(res.Content, "---\npermalink: ndt7\n"), res.Content)
	assert.Regexp(t, regexp.MustCompile(`(?m)^publishedDate: 2020-01-05$`), res.Content)
	assert.NotContains(t, res.Content, "<!--more-->")
	assert.NotContains(t, res.Content, "layout:")
}

func TestProcessor_Process_FieldOrder(t *testing.T) {
	res, err := newTestProcessor().Process("2020-01-05-ndt7.md", legacyPost)
	require.NoError(t, err)

	keys := []string{"permalink:", "title:", "excerpt:", "authors:", "published:", "tags:", "categories:", "publishedDate:"}
	last := -1

	for _, k := range keys {
		idx := strings.Index(res.Content, "\n"+k)
		require.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}
}

func TestProcessor_Process_RoundTrip(t *testing.T) {
	res, err := newTestProcessor().Process("2020-01-05-ndt7.md", legacyPost)
	require.NoError(t, err)

	var fm models.ArticleFrontMatter

	body, err := frontmatter.Parse(res.Content, &fm)
	require.NoError(t, err)
	assert.Equal(t, res.Article.FrontMatter, fm)
	assert.Equal(t, "NDT7 is here. [Read more](https://example.org).\n\nFull text.\n", body)
}

func TestProcessor_Process_Errors(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"no front matter", "just text\n", frontmatter.ErrNoFrontMatter},
		{"no title", "---\nauthor: A\ndate: 2020-01-01\n---\nbody\n", ErrMissingTitle},
		{"no date", "---\ntitle: T\n---\nbody\n", ErrMissingDate},
		{"bad date", "---\ntitle: T\ndate: someday\n---\nbody\n", ErrInvalidDate},
		{"author list", "---\ntitle: T\nauthor:\n  - Matt Mathis\n  - Chris Ritzo\ndate: 2020-01-01\n---\nbody\n", ErrInvalidAuthor},
		{"author map", "---\ntitle: T\nauthor: {name: Matt Mathis}\ndate: 2020-01-01\n---\nbody\n", ErrInvalidAuthor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Process("2020-01-01-x.md", tt.content)
			if !errors.Is(err, tt.want) {
				t.Errorf("Process error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProcessor_NeverEmptyAuthors(t *testing.T) {
	p := newTestProcessor()

	for _, author := range []string{"Nobody", "", "Matt Mathis", ", ,"} {
		content := "---\ntitle: T\nauthor: \"" + author + "\"\ndate: 2020-01-01\n---\nbody\n"

		res, err := p.Process("2020-01-01-x.md", content)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Article.FrontMatter.Authors, "author %q", author)
	}
}

func TestLegacyPreview(t *testing.T) {
	preview := LegacyPreview(&models.LegacyArticle{Title: "T", Author: "A", Date: "2020-01-01"})
	assert.Contains(t, preview, "title: T")
	assert.Contains(t, preview, "author: A")
	assert.NotContains(t, preview, "layout")
}

func writeLegacy(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2020-01-05-ndt7.md"), []byte(legacyPost), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2020-01-06-broken.md"), []byte("---\nauthor: X\n---\n"), 0o644))
}

func TestBatch_Run(t *testing.T) {
	dir := t.TempDir()
	writeLegacy(t, dir)

	files, err := contentfs.List(dir, ".md")
	require.NoError(t, err)

	result := NewBatch(newTestProcessor(), contentfs.NewWriter(false), logger.NewNop()).Run(files)

	assert.Equal(t, BatchStats{Total: 2, Succeeded: 1, Failed: 1}, result.Stats)
	require.Len(t, result.Errors(), 1)
	assert.Equal(t, "2020-01-06-broken.md", result.Errors()[0].File)

	data, err := os.ReadFile(filepath.Join(dir, "2020-01-05-ndt7.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "permalink: ndt7")
}

func TestBatch_DryRun(t *testing.T) {
	dryDir, liveDir := t.TempDir(), t.TempDir()
	writeLegacy(t, dryDir)
	writeLegacy(t, liveDir)

	dryFiles, err := contentfs.List(dryDir, ".md")
	require.NoError(t, err)

	liveFiles, err := contentfs.List(liveDir, ".md")
	require.NoError(t, err)

	dry := NewBatch(newTestProcessor(), contentfs.NewWriter(true), logger.NewNop()).Run(dryFiles)
	live := NewBatch(newTestProcessor(), contentfs.NewWriter(false), logger.NewNop()).Run(liveFiles)

	assert.Equal(t, live.Stats, dry.Stats)

	data, err := os.ReadFile(filepath.Join(dryDir, "2020-01-05-ndt7.md"))
	require.NoError(t, err)
	assert.Equal(t, legacyPost, string(data))
}
