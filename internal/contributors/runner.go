package contributors

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
	"sitemig/internal/models"
)

// ExamplePrefix marks template files that are never processed.
const ExamplePrefix = "EXAMPLE"

// Match records one author resolved for a publication.
type Match struct {
	Publication string
	Author      string
	Person      string
	ID          string
	Rule        string
}

// FileError records a publication file that could not be processed.
type FileError struct {
	Err  error
	File string
}

// Result summarizes a matching run.
type Result struct {
	Matches                 []Match
	Updated                 []string
	Failed                  []FileError
	TotalPublications       int
	PublicationsWithMatches int
	TotalMatches            int
}

// Runner annotates publication files with contributors.
type Runner struct {
	log     *logger.Logger
	writer  *contentfs.Writer
	matcher *Matcher
}

// NewRunner creates a runner.
func NewRunner(log *logger.Logger, w *contentfs.Writer, m *Matcher) *Runner {
	return &Runner{log: log, writer: w, matcher: m}
}

// Run matches the authors of every publication file and writes back the
// contributors of files with at least one match.
func (r *Runner) Run(files []contentfs.File) *Result {
	result := &Result{}

	for _, f := range files {
		if strings.HasPrefix(f.Name, ExamplePrefix) {
			continue
		}

		result.TotalPublications++

		if err := r.processFile(f, result); err != nil {
			r.log.Error("failed to process publication", "file", f.Name, "error", err)
			result.Failed = append(result.Failed, FileError{File: f.Name, Err: err})
		}
	}

	return result
}

func (r *Runner) processFile(f contentfs.File, result *Result) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}

	var pub models.Publication
	if err := json.Unmarshal(data, &pub); err != nil {
		return fmt.Errorf("failed to decode publication: %w", err)
	}

	if pub.Authors == "" {
		return nil
	}

	contributors := r.Contributors(&pub, result)
	if len(contributors) == 0 {
		return nil
	}

	result.PublicationsWithMatches++

	out, err := setField(data, "contributors", contributors)
	if err != nil {
		return fmt.Errorf("failed to encode publication: %w", err)
	}

	if err := r.writer.WriteFile(f.Path, out); err != nil {
		return err
	}

	result.Updated = append(result.Updated, f.Name)

	return nil
}

// Contributors resolves the authors of pub to unique person ids, recording
// each match in result.
func (r *Runner) Contributors(pub *models.Publication, result *Result) []string {
	var ids []string

	for _, author := range ParseAuthors(pub.Authors) {
		res, ok := r.matcher.Match(author)
		if !ok || slices.Contains(ids, res.ID) {
			continue
		}

		ids = append(ids, res.ID)
		result.TotalMatches++
		result.Matches = append(result.Matches, Match{
			Publication: pub.Title,
			Author:      author,
			Person:      res.Name,
			ID:          res.ID,
			Rule:        res.Rule,
		})

		r.log.Debug("matched author", "publication", pub.ID, "author", author, "id", res.ID, "rule", res.Rule)
	}

	return ids
}

// setField replaces one top-level field of a JSON object and keeps every
// other field as it was.
func setField(data []byte, key string, value any) ([]byte, error) {
	var record map[string]json.RawMessage
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	record[key] = raw

	return contentfs.MarshalJSON(record)
}
