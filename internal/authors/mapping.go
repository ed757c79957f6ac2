// Package authors derives canonical person ids from the free-text author
// field of legacy articles and seeds the people registry from them.
package authors

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
	"sitemig/internal/models"
	"sitemig/internal/normalizer"
	"sitemig/pkg/utils"
)

// Mapping errors.
var (
	ErrMappingNotFound = errors.New("author mapping not found; run the authors command first")
	ErrMappingInvalid  = errors.New("author mapping is not valid JSON")
)

var (
	orgMarker  = regexp.MustCompile(`\s*\([^)]*\)`)
	nonIDChars = regexp.MustCompile(`[^a-z0-9-]`)
)

// teamAliases all collapse to the team id.
var teamAliases = map[string]struct{}{
	"measurement lab": {},
	"m-lab team":      {},
	"mlab team":       {},
	"the m-lab team":  {},
}

// GenerateID derives a stable person id from a display name.
func GenerateID(fullName string) string {
	cleaned := strings.Join(strings.Fields(orgMarker.ReplaceAllString(fullName, " ")), " ")

	if _, ok := teamAliases[strings.ToLower(cleaned)]; ok {
		return models.TeamID
	}

	id := strings.ToLower(strings.Join(strings.Fields(cleaned), "-"))

	return nonIDChars.ReplaceAllString(id, "")
}

// FileError records a file that could not be processed.
type FileError struct {
	Err  error
	File string
}

// ScanResult is the outcome of scanning legacy articles for authors.
type ScanResult struct {
	Stats    []models.AuthorStat
	Articles []*models.LegacyArticle
	Failed   []FileError
	Files    int
}

// Mapping returns the name to id mapping of the scan.
func (r *ScanResult) Mapping() models.AuthorMapping {
	m := make(models.AuthorMapping, len(r.Stats))
	for _, s := range r.Stats {
		m[s.Name] = s.ID
	}

	return m
}

// Generator scans legacy articles for author names.
type Generator struct {
	log     *logger.Logger
	strings *utils.StringHelper
}

// NewGenerator creates a generator.
func NewGenerator(log *logger.Logger) *Generator {
	return &Generator{log: log, strings: utils.NewStringHelper()}
}

// Scan reads every file, splits its author field on commas and counts each
// name. A file that cannot be read or parsed is logged and skipped.
func (g *Generator) Scan(files []contentfs.File) *ScanResult {
	result := &ScanResult{Files: len(files)}
	byName := map[string]*models.AuthorStat{}

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			g.fail(result, f, err)
			continue
		}

		article, err := normalizer.ParseLegacy(f.Name, string(data))
		if err != nil {
			g.fail(result, f, err)
			continue
		}

		result.Articles = append(result.Articles, article)

		for _, name := range g.strings.SplitList(article.Author, ",") {
			stat, ok := byName[name]
			if !ok {
				id := GenerateID(name)
				if id == "" {
					g.log.Warn("author name yields empty id", "file", f.Name, "author", name)
					continue
				}

				stat = &models.AuthorStat{Name: name, ID: id}
				byName[name] = stat
			}

			stat.Count++
		}
	}

	for _, s := range byName {
		result.Stats = append(result.Stats, *s)
	}

	sort.Slice(result.Stats, func(i, j int) bool {
		if result.Stats[i].Count != result.Stats[j].Count {
			return result.Stats[i].Count > result.Stats[j].Count
		}

		return result.Stats[i].Name < result.Stats[j].Name
	})

	return result
}

func (g *Generator) fail(result *ScanResult, f contentfs.File, err error) {
	g.log.Error("failed to process article", "file", f.Name, "error", err)
	result.Failed = append(result.Failed, FileError{File: f.Name, Err: err})
}

// EncodeMapping renders the mapping as indented JSON with sorted keys.
func EncodeMapping(m models.AuthorMapping) ([]byte, error) {
	data, err := contentfs.MarshalJSON(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal author mapping: %w", err)
	}

	return data, nil
}

// SaveMapping persists the mapping through w.
func SaveMapping(w *contentfs.Writer, path string, m models.AuthorMapping) error {
	data, err := EncodeMapping(m)
	if err != nil {
		return err
	}

	return w.WriteFile(path, data)
}

// LoadMapping reads a mapping produced by SaveMapping.
func LoadMapping(path string) (models.AuthorMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if contentfs.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMappingNotFound, path)
		}

		return nil, fmt.Errorf("failed to read author mapping: %w", err)
	}

	var m models.AuthorMapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingInvalid, err)
	}

	return m, nil
}
