package jekyll

import (
	"os"

	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
)

// FileError records a post that could not be processed.
type FileError struct {
	Err  error
	File string
}

// Report aggregates the removals of a run across all files.
type Report struct {
	Files         map[string]Removals
	ImageSizing   []ImageSizing
	LayoutStyling []LayoutStyling
	LinkTargets   []LinkTarget
	Other         []OtherRemoval
	Modified      []string
	Failed        []FileError
	Processed     int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Files: make(map[string]Removals)}
}

// Add merges the removals found in one file.
func (r *Report) Add(file string, rm Removals) {
	r.Files[file] = rm
	r.ImageSizing = append(r.ImageSizing, rm.ImageSizing...)
	r.LayoutStyling = append(r.LayoutStyling, rm.LayoutStyling...)
	r.Other = append(r.Other, rm.Other...)

	if rm.LinkTargets > 0 {
		r.LinkTargets = append(r.LinkTargets, LinkTarget{File: file, Count: rm.LinkTargets})
	}
}

// LinkTargetCount returns the number of link target attributes removed.
func (r *Report) LinkTargetCount() int {
	n := 0
	for _, lt := range r.LinkTargets {
		n += lt.Count
	}

	return n
}

// Total returns the number of recorded removals.
func (r *Report) Total() int {
	return r.LinkTargetCount() + len(r.ImageSizing) + len(r.LayoutStyling) + len(r.Other)
}

// Runner strips attribute lists from a set of posts.
type Runner struct {
	log    *logger.Logger
	writer *contentfs.Writer
}

// NewRunner creates a runner.
func NewRunner(log *logger.Logger, w *contentfs.Writer) *Runner {
	return &Runner{log: log, writer: w}
}

// Run analyzes and strips every file, rewriting the ones that changed.
func (r *Runner) Run(files []contentfs.File) *Report {
	report := NewReport()

	for _, f := range files {
		changed, err := r.processFile(f, report)
		if err != nil {
			r.log.Error("failed to process post", "file", f.Name, "error", err)
			report.Failed = append(report.Failed, FileError{File: f.Name, Err: err})

			continue
		}

		report.Processed++

		if changed {
			r.log.Debug("removed attribute lists", "file", f.Name)
			report.Modified = append(report.Modified, f.Name)
		}
	}

	return report
}

func (r *Runner) processFile(f contentfs.File, report *Report) (bool, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return false, err
	}

	original := string(data)
	report.Add(f.Name, Analyze(f.Name, original))

	cleaned := Strip(original)
	if cleaned == original {
		return false, nil
	}

	if err := r.writer.WriteFile(f.Path, []byte(cleaned)); err != nil {
		return false, err
	}

	return true, nil
}
