package validator

import (
	"fmt"
	"io"
	"math"
	"os"

	"sitemig/internal/contentfs"
)

// ValidationStats contains run-wide validation statistics.
type ValidationStats struct {
	TotalFiles        int
	CleanFiles        int
	FilesWithWarnings int
	FilesWithErrors   int
	TotalErrors       int
	TotalWarnings     int
	WithExcerpt       int
}

// ExcerptCoverage returns the rounded percentage of files with an excerpt.
func (s ValidationStats) ExcerptCoverage() int {
	if s.TotalFiles == 0 {
		return 0
	}

	return int(math.Round(float64(s.WithExcerpt) / float64(s.TotalFiles) * 100))
}

// CategoryCount is one row of the category histogram.
type CategoryCount struct {
	Category string
	Count    int
}

// Report aggregates the results of a validation run.
type Report struct {
	Results    []*ValidationResult
	Categories []CategoryCount
	Stats      ValidationStats
}

// Failed reports whether any file has an error. Warnings never fail a run.
func (r *Report) Failed() bool {
	return r.Stats.FilesWithErrors > 0
}

// Aggregate builds the run report from per-file results.
func (v *ArticleValidator) Aggregate(results []*ValidationResult) *Report {
	report := &Report{Results: results}
	counts := map[string]int{}

	for _, res := range results {
		report.Stats.TotalFiles++
		report.Stats.TotalErrors += len(res.Errors)
		report.Stats.TotalWarnings += len(res.Warnings)

		switch {
		case len(res.Errors) == 0 && len(res.Warnings) == 0:
			report.Stats.CleanFiles++
		case len(res.Errors) > 0:
			report.Stats.FilesWithErrors++
		}

		if len(res.Warnings) > 0 {
			report.Stats.FilesWithWarnings++
		}

		if res.HasExcerpt {
			report.Stats.WithExcerpt++
		}

		for _, c := range res.Categories {
			counts[c]++
		}
	}

	for _, c := range v.categories {
		report.Categories = append(report.Categories, CategoryCount{Category: c, Count: counts[c]})
	}

	return report
}

// ValidateFiles reads and validates each file. Unreadable files are reported
// as errors of that file.
func (v *ArticleValidator) ValidateFiles(files []contentfs.File) *Report {
	results := make([]*ValidationResult, 0, len(files))

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			res := &ValidationResult{File: f.Name, IsValid: true}
			res.addError("", "", "failed to read: %v", err)
			results = append(results, res)

			continue
		}

		results = append(results, v.ValidateArticle(f.Name, string(data)))
	}

	return v.Aggregate(results)
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf("%s | %s | Errors: %d | Warnings: %d", status, r.File, len(r.Errors), len(r.Warnings))
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	for _, err := range r.Errors {
		fmt.Fprintf(w, "  ❌ ERROR: %s\n", err.Message)
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings(w io.Writer) {
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  ⚠️  WARNING: %s\n", warn)
	}
}
