package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemig/internal/authors"
	"sitemig/internal/models"
)

var fixedNow = time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)

// site lays out a legacy repository under a temp dir and returns the config path.
func site(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	root := t.TempDir()

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := "content:\n  root: " + root + "\nlogging:\n  level: error\n"
	cfgPath := filepath.Join(root, "sitemig.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return root, cfgPath
}

func execute(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(&app{now: func() time.Time { return fixedNow }})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()

	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

var legacySite = map[string]string{
	"src/content/articles/2019-01-15-ndt-update.md": `---
layout: blog
title: NDT Update
author: Matt Mathis, Chris Ritzo
date: 2019-01-15
categories:
  - ndt
  - research
---
An update on NDT.
<!--more-->
The rest of the post.
`,
	"src/content/articles/2020-02-01-platform-news.md": `---
layout: blog
title: Platform News
author: Measurement Lab
date: 2020-02-01 10:00:00 -0500
categories: [news]
---
Body only.
`,
	"publications.md": `# Papers

## 2019

### Measuring Broadband
{:.paper-author}
Matt Mathis, Chris Ritzo
[PDF](https://example.org/measuring.pdf)
`,
	"src/content/publications/EXAMPLE-template.json": `{"id":"2000-x","title":"X","year":2000,"category":"paper"}`,
}

func TestPipeline(t *testing.T) {
	root, cfgPath := site(t, legacySite)

	out, err := execute(t, cfgPath, "authors")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 3 unique authors")

	mapping, err := authors.LoadMapping(filepath.Join(root, "scripts/author-mapping.json"))
	require.NoError(t, err)
	assert.Equal(t, models.AuthorMapping{
		"Chris Ritzo":     "chris-ritzo",
		"Matt Mathis":     "matt-mathis",
		"Measurement Lab": "mlab-team",
	}, mapping)

	out, err = execute(t, cfgPath, "people")
	require.NoError(t, err)
	assert.Contains(t, out, "Created: 3 profiles")

	for _, id := range []string{"chris-ritzo", "matt-mathis", "mlab-team"} {
		assert.FileExists(t, filepath.Join(root, "src/content/people", id+".json"))
	}

	_, err = execute(t, cfgPath, "articles")
	require.NoError(t, err)

	article := readFile(t, filepath.Join(root, "src/content/articles/2019-01-15-ndt-update.md"))
	assert.Contains(t, article, "permalink: ndt-update\n")
	assert.Contains(t, article, "- matt-mathis\n")
	assert.Contains(t, article, "publishedDate: 2019-01-15\n")
	assert.Contains(t, article, "excerpt: An update on NDT.\n")
	assert.NotContains(t, article, "layout:")
	assert.NotContains(t, article, "<!--more-->")

	out, err = execute(t, cfgPath, "validate")
	require.NoError(t, err, out)
	assert.Contains(t, out, "All articles passed validation")

	out, err = execute(t, cfgPath, "publications")
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed 1 publications")

	pubPath := filepath.Join(root, "src/content/publications/2019-measuring-broadband.json")
	assert.FileExists(t, pubPath)

	out, err = execute(t, cfgPath, "contributors")
	require.NoError(t, err)
	assert.Contains(t, out, "Total matches:     2")
	assert.Contains(t, out, `"Matt Mathis" → matt-mathis [Matt Mathis] (exact)`)

	var pub models.Publication
	require.NoError(t, json.Unmarshal([]byte(readFile(t, pubPath)), &pub))
	assert.Equal(t, []string{"matt-mathis", "chris-ritzo"}, pub.Contributors)
}

func TestYAMLFix_AlignTables(t *testing.T) {
	root, cfgPath := site(t, map[string]string{
		"src/content/blog/table.md": "---\ntitle: Table\n---\n| A | Long header |\n| --- | --- |\n| x | y |\n",
		"src/content/blog/plain.md": "---\ntitle: Plain\n---\nBody\n",
	})

	post := filepath.Join(root, "src/content/blog/table.md")

	out, err := execute(t, cfgPath, "yamlfix")
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed 0 files")

	out, err = execute(t, cfgPath, "--dry-run", "yamlfix", "--align-tables")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Would fix: table.md")
	assert.Contains(t, out, "Would fix 1 files")
	assert.Contains(t, readFile(t, post), "| A | Long header |")

	out, err = execute(t, cfgPath, "yamlfix", "--align-tables")
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed 1 files")
	assert.Contains(t, readFile(t, post), "| A   | Long header |\n| --- | ----------- |\n| x   | y           |\n")
}

func TestConfig_ShowAndWrite(t *testing.T) {
	root, cfgPath := site(t, nil)
	saved := filepath.Join(root, "saved.yaml")

	out, err := execute(t, cfgPath, "--log-level", "debug", "config", "--write", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "Config{Root: "+root)
	assert.Contains(t, out, "Log level: debug")
	assert.Contains(t, out, "Saved config to: "+saved)

	out, err = execute(t, saved, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Config{Root: "+root)
	assert.Contains(t, out, "Log level: debug")
}

func TestAuthors_DryRun(t *testing.T) {
	root, cfgPath := site(t, legacySite)

	out, err := execute(t, cfgPath, "--dry-run", "authors")
	require.NoError(t, err)
	assert.Contains(t, out, "Would save mapping")
	assert.NoFileExists(t, filepath.Join(root, "scripts/author-mapping.json"))
}

func TestArticles_MissingMapping(t *testing.T) {
	_, cfgPath := site(t, legacySite)

	_, err := execute(t, cfgPath, "articles")
	require.Error(t, err)
	assert.True(t, errors.Is(err, authors.ErrMappingNotFound))
}

func TestValidate_Fails(t *testing.T) {
	files := map[string]string{
		"src/content/articles/2019-01-15-ndt-update.md": legacySite["src/content/articles/2019-01-15-ndt-update.md"],
		"src/content/people/.keep":                      "",
	}
	_, cfgPath := site(t, files)

	out, err := execute(t, cfgPath, "validate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Contains(t, out, "missing required field: permalink")
}

func TestBlogCommands(t *testing.T) {
	root, cfgPath := site(t, map[string]string{
		"src/content/blog/hello.md": "---\ntitle: Hello World\npublished: published\nexcerpt: >-\n   An intro\n---\n" +
			"See [x](http://x){:target=\"_blank\"}\n",
		"src/content/blog/draft.md":    "---\ntitle: Hello Draft\npublished: draft\n---\nBody\n",
		"src/content/pages/about.yaml": "title: About Us\n",
		"src/content/people/jane.json": `{"id":"jane","name":"Jane Doe","headshot":"x.png","title":"Researcher"}`,
	})

	post := filepath.Join(root, "src/content/blog/hello.md")

	out, err := execute(t, cfgPath, "jekyll")
	require.NoError(t, err)
	assert.Contains(t, out, "Modified: hello.md")
	assert.NotContains(t, readFile(t, post), "{:target")

	notes := readFile(t, filepath.Join(root, "MIGRATION_NOTES.md"))
	assert.Contains(t, notes, "**Migration Date:** 2025-10-20")
	assert.Contains(t, notes, "- hello.md: 1 instance\n")

	out, err = execute(t, cfgPath, "yamlfix")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Fixed: hello.md")
	assert.Contains(t, readFile(t, post), "excerpt: >-\n  An intro\n")

	out, err = execute(t, cfgPath, "search", "@hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello World  /blog/hello")
	assert.NotContains(t, out, "Hello Draft")
	assert.NotContains(t, out, "About Us")

	out, err = execute(t, cfgPath, "search", ">")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe  /people/jane")
}
