package normalizer

import (
	"os"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
)

// FileResult is the per-file outcome of a batch run.
type FileResult struct {
	*Result
	Err  error
	File string
}

// BatchStats summarizes a batch run.
type BatchStats struct {
	Total     int
	Succeeded int
	Failed    int
}

// BatchResult holds the per-file outcomes of a batch run in input order.
type BatchResult struct {
	Files []FileResult
	Stats BatchStats
}

// Errors returns the failed files.
func (r *BatchResult) Errors() []FileResult {
	var out []FileResult

	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}

	return out
}

// Batch migrates a set of legacy files in place.
type Batch struct {
	processor *Processor
	writer    *contentfs.Writer
	log       *logger.Logger
}

// NewBatch creates a batch runner.
func NewBatch(p *Processor, w *contentfs.Writer, log *logger.Logger) *Batch {
	return &Batch{processor: p, writer: w, log: log}
}

// Run processes every file. A failing file is recorded and the run continues.
func (b *Batch) Run(files []contentfs.File) *BatchResult {
	result := &BatchResult{Stats: BatchStats{Total: len(files)}}

	for _, f := range files {
		fr := FileResult{File: f.Name}
		fr.Result, fr.Err = b.processFile(f)

		if fr.Err != nil {
			b.log.Error("failed to migrate article", "file", f.Name, "error", fr.Err)
			result.Stats.Failed++
		} else {
			b.log.Debug("migrated article", "file", f.Name, "permalink", fr.Article.FrontMatter.Permalink)
			result.Stats.Succeeded++
		}

		result.Files = append(result.Files, fr)
	}

	return result
}

func (b *Batch) processFile(f contentfs.File) (*Result, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}

	res, err := b.processor.Process(f.Name, string(data))
	if err != nil {
		return nil, err
	}

	if err := b.writer.WriteFile(f.Path, []byte(res.Content)); err != nil {
		return nil, err
	}

	return res, nil
}
