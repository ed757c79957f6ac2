// Package contentfs lists content collection files and writes them back with
// whole-file replace semantics. A dry-run Writer performs no writes but keeps
// the same bookkeeping, so reports match a real run.
package contentfs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotDirectory is returned when a collection path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// File is a collection file discovered on disk.
type File struct {
	Path string
	Name string
}

// List returns the files directly inside dir whose extension is one of exts,
// sorted by name. Hidden files are skipped.
func List(dir string, exts ...string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []File

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		if !hasExt(e.Name(), exts) {
			continue
		}

		out = append(out, File{Path: filepath.Join(dir, e.Name()), Name: e.Name()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func hasExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}

	return false
}

// Stem returns the file name without its extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Writer writes whole files. In dry-run mode it records what would have been
// written and leaves the disk untouched.
type Writer struct {
	written []string
	dryRun  bool
	permF   os.FileMode
	permD   os.FileMode
}

// NewWriter creates a writer.
func NewWriter(dryRun bool) *Writer {
	return &Writer{dryRun: dryRun, permF: 0o644, permD: 0o755}
}

// DryRun reports whether writes are suppressed.
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// Written returns the paths written successfully, or that would have been
// written, so far.
func (w *Writer) Written() []string {
	return append([]string(nil), w.written...)
}

// WriteFile replaces path with data. The file is written to a temporary file in
// the same directory and renamed into place.
func (w *Writer) WriteFile(path string, data []byte) error {
	if w.dryRun {
		w.written = append(w.written, path)
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, w.permD); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if err := os.Chmod(tmpName, w.permF); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	w.written = append(w.written, path)

	return nil
}

// IsNotExist reports whether err means a file or directory is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// MarshalJSON encodes v the way collection files are stored: two-space
// indent, no HTML escaping, trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
