package publications

import (
	"fmt"
	"path/filepath"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
	"sitemig/internal/models"
)

// WriteResult reports what happened to each parsed publication.
type WriteResult struct {
	Written  []string
	Existing []string
	Invalid  []Skipped
}

// Writer stores publications as one JSON file per id.
type Writer struct {
	log    *logger.Logger
	files  *contentfs.Writer
	schema *SchemaValidator
	dir    string
}

// NewWriter creates a writer for dir.
func NewWriter(log *logger.Logger, files *contentfs.Writer, schema *SchemaValidator, dir string) *Writer {
	return &Writer{log: log, files: files, schema: schema, dir: dir}
}

// Path returns the file path of the publication with the given id.
func (w *Writer) Path(id string) string {
	return filepath.Join(w.dir, id+".json")
}

// Write stores every publication that passes the schema. Existing files are
// never overwritten.
func (w *Writer) Write(pubs []models.Publication) (*WriteResult, error) {
	result := &WriteResult{}

	for _, pub := range pubs {
		if err := w.schema.Validate(pub); err != nil {
			w.log.Warn("publication fails schema", "id", pub.ID, "error", err)
			result.Invalid = append(result.Invalid, Skipped{ID: pub.ID, Title: pub.Title, Reason: err.Error()})

			continue
		}

		path := w.Path(pub.ID)

		if contentfs.Exists(path) {
			w.log.Warn("file already exists, skipping", "file", filepath.Base(path))
			result.Existing = append(result.Existing, pub.ID)

			continue
		}

		data, err := contentfs.MarshalJSON(pub)
		if err != nil {
			return result, fmt.Errorf("failed to marshal publication %s: %w", pub.ID, err)
		}

		if err := w.files.WriteFile(path, data); err != nil {
			return result, err
		}

		result.Written = append(result.Written, pub.ID)
	}

	return result, nil
}
