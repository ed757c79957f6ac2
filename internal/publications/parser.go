// Package publications converts the legacy publications document into one
// JSON record per publication.
package publications

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"sitemig/internal/logger"
	"sitemig/internal/models"
)

// NoTOCMarker marks headings that carry no year.
const NoTOCMarker = "{:.no_toc}"

// TeamTag tags publications authored by the team.
const TeamTag = "mlab-team"

// categoryHeadings maps category heading text to the category enum, in
// matching order.
var categoryHeadings = []struct {
	heading  string
	category string
}{
	{"Papers", models.CategoryPaper},
	{"Government / Regulatory Filings", models.CategoryRegulatoryFiling},
	{"Presentations", models.CategoryPresentation},
	{"Other M-Lab Documentation", models.CategoryDocumentation},
}

var (
	level1      = regexp.MustCompile(`(?m)^# `)
	level2      = regexp.MustCompile(`(?m)^## `)
	level3      = regexp.MustCompile(`(?m)^### `)
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	venueLine   = regexp.MustCompile(`^[A-Z]{2,}.*\d{4}`)
	urlLine     = regexp.MustCompile(`^https?://`)
	titlePrefix = regexp.MustCompile(`^###\s*`)
	teamMarkers = []*regexp.Regexp{
		regexp.MustCompile(`\s*\\\*\s*$`),
		regexp.MustCompile(`\s*\(\*\)\s*$`),
	}
)

// Skipped records a publication block that produced no record.
type Skipped struct {
	ID     string
	Title  string
	Reason string
}

// ParseResult is the outcome of parsing the publications document.
type ParseResult struct {
	Publications []models.Publication
	Skipped      []Skipped
	Unclear      []string
}

// CategoryCounts returns the number of publications per category.
func (r *ParseResult) CategoryCounts() map[string]int {
	counts := map[string]int{}
	for _, p := range r.Publications {
		counts[p.Category]++
	}

	return counts
}

// Parser extracts publications from the legacy document.
type Parser struct {
	log   *logger.Logger
	links *LinkExtractor
	now   func() time.Time
}

// NewParser creates a parser.
func NewParser(log *logger.Logger) *Parser {
	return &Parser{log: log, links: NewLinkExtractor(), now: time.Now}
}

// CategoryFor maps a level-1 heading to a category, or "" if none matches.
func CategoryFor(heading string) string {
	for _, c := range categoryHeadings {
		if strings.Contains(heading, c.heading) {
			return c.category
		}
	}

	return ""
}

// Parse splits the document into category, year and publication sections
// and extracts one record per publication block. Ids are unique in the
// result; later duplicates are skipped.
func (p *Parser) Parse(content string) *ParseResult {
	result := &ParseResult{}
	seen := map[string]bool{}
	lastYear := 0

	for _, section := range splitSections(level1, content) {
		heading, body := firstLine(section)

		category := CategoryFor(heading)
		if category == "" {
			p.log.Debug("skipping section without category", "heading", heading)
			continue
		}

		for _, yearSection := range splitSections(level2, body) {
			header, _ := firstLine(yearSection)

			year, ok := p.yearFor(header, lastYear)
			if !ok {
				continue
			}

			if yearPattern.MatchString(header) {
				lastYear = year
			}

			blocks := splitSections(level3, yearSection)
			if len(blocks) < 2 {
				continue
			}

			for _, block := range blocks[1:] {
				pub, unclear := p.parseEntry("### "+block, category, year)
				result.Unclear = append(result.Unclear, unclear...)

				if pub.Title == "" || pub.Year == 0 || pub.Category == "" {
					p.log.Warn("skipping publication with missing required fields", "title", pub.Title)
					result.Skipped = append(result.Skipped, Skipped{ID: pub.ID, Title: pub.Title, Reason: "missing required fields"})

					continue
				}

				if seen[pub.ID] {
					p.log.Warn("duplicate publication id", "id", pub.ID)
					result.Skipped = append(result.Skipped, Skipped{ID: pub.ID, Title: pub.Title, Reason: "duplicate id"})

					continue
				}

				seen[pub.ID] = true
				result.Publications = append(result.Publications, pub)
			}
		}
	}

	return result
}

// yearFor reads the year of a level-2 heading. Marker headings are skipped;
// other headings without a year fall back to lastYear or the current year.
func (p *Parser) yearFor(header string, lastYear int) (int, bool) {
	if m := yearPattern.FindString(header); m != "" {
		year, err := strconv.Atoi(m)
		if err == nil {
			return year, true
		}
	}

	if strings.Contains(header, NoTOCMarker) {
		return 0, false
	}

	if lastYear != 0 {
		return lastYear, true
	}

	return p.now().Year(), true
}

// entry accumulates the fields of one publication block.
type entry struct {
	title       string
	description string
	authors     string
	venue       string
	linkLines   []string
	team        bool
	inAuthors   bool
}

// lineRule consumes a line when it applies. Rules run in order and the first
// one that applies wins.
type lineRule struct {
	name  string
	apply func(e *entry, line string) bool
}

var entryRules = []lineRule{
	{"title", func(e *entry, line string) bool {
		if e.title != "" || !strings.HasPrefix(line, "###") {
			return false
		}

		e.title = CleanLegacySyntax(titlePrefix.ReplaceAllString(line, ""))

		if strings.Contains(e.title, `\*`) || strings.Contains(e.title, "(*)") {
			e.team = true
			for _, re := range teamMarkers {
				e.title = re.ReplaceAllString(e.title, "")
			}
		}

		return true
	}},
	{"description marker", func(_ *entry, line string) bool {
		return strings.Contains(line, "{:.paper-description}")
	}},
	{"author marker", func(e *entry, line string) bool {
		if !strings.Contains(line, "{:.paper-author}") {
			return false
		}

		e.inAuthors = true

		return true
	}},
	{"description", func(e *entry, line string) bool {
		if e.description != "" || utf8.RuneCountInString(line) <= 100 || strings.HasPrefix(line, "[") {
			return false
		}

		e.description = CleanLegacySyntax(line)

		return true
	}},
	{"marked authors", func(e *entry, line string) bool {
		if !e.inAuthors || e.authors != "" {
			return false
		}

		e.authors = CleanLegacySyntax(line)
		e.inAuthors = false

		return true
	}},
	{"inferred authors", func(e *entry, line string) bool {
		if e.authors != "" || e.description == "" || strings.HasPrefix(line, "[") {
			return false
		}

		n := utf8.RuneCountInString(line)
		if n >= 200 || n <= 10 {
			return false
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, "download") || strings.HasPrefix(lower, "measurement lab") || urlLine.MatchString(line) {
			return false
		}

		e.authors = CleanLegacySyntax(line)

		return true
	}},
	{"venue", func(e *entry, line string) bool {
		if e.venue != "" || !venueLine.MatchString(line) {
			return false
		}

		e.venue = CleanLegacySyntax(line)

		return true
	}},
	{"links", func(e *entry, line string) bool {
		if !strings.Contains(line, "[") || !strings.Contains(line, "](") {
			return false
		}

		e.linkLines = append(e.linkLines, line)

		return true
	}},
}

// parseEntry extracts one publication from its block. It also returns the
// URLs whose link class could not be determined.
func (p *Parser) parseEntry(block, category string, year int) (models.Publication, []string) {
	e := &entry{}

	for raw := range strings.SplitSeq(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line == NoTOCMarker {
			continue
		}

		for _, r := range entryRules {
			if r.apply(e, line) {
				break
			}
		}
	}

	links := p.links.Extract(strings.Join(e.linkLines, " "))
	for _, u := range links.Unclear {
		p.log.Warn("unclear link type", "url", u, "title", e.title)
	}

	pub := models.Publication{
		ID:            fmt.Sprintf("%d-%s", year, Slugify(e.title)),
		Title:         e.title,
		Description:   e.description,
		Authors:       e.authors,
		Year:          year,
		Category:      category,
		InternalLinks: links.Internal,
		ExternalLinks: links.External,
		VideoLinks:    links.Video,
		Venue:         e.venue,
	}

	if e.team {
		pub.Tags = []string{TeamTag}
	}

	return pub, links.Unclear
}

// splitSections splits content at every heading matched by re, dropping
// blank pieces. The heading marker itself is removed.
func splitSections(re *regexp.Regexp, content string) []string {
	var out []string

	for _, part := range re.Split(content, -1) {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}

	return out
}

func firstLine(s string) (string, string) {
	head, rest, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(head), rest
}
