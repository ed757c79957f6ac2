package publications

import (
	"regexp"
	"strings"
)

// MaxSlugLength bounds the title part of a publication id.
const MaxSlugLength = 80

var legacySyntax = []*regexp.Regexp{
	regexp.MustCompile(`\{\{\s*site\.baseurl\s*\}\}`),
	regexp.MustCompile(`\{:target=["']_blank["']\}`),
	regexp.MustCompile(`\{:\.[\w-]+(?:\s+\.[\w-]+)*(?:\s+target=["']_blank["'])?\}`),
	regexp.MustCompile(`\{:\.no_toc\}`),
}

var (
	slugInvalid    = regexp.MustCompile(`[^\w\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// CleanLegacySyntax removes Liquid and Kramdown attribute syntax and
// collapses whitespace.
func CleanLegacySyntax(text string) string {
	for _, re := range legacySyntax {
		text = re.ReplaceAllString(text, "")
	}

	return strings.Join(strings.Fields(text), " ")
}

// Slugify derives the id part of a title.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")

	if len(s) > MaxSlugLength {
		s = s[:MaxSlugLength]
	}

	return s
}
