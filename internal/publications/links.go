package publications

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"sitemig/internal/models"
)

// spacedDestination matches an inline link destination that contains
// whitespace, which CommonMark only accepts inside angle brackets.
var spacedDestination = regexp.MustCompile(`\]\(([^()<>"\n]*\s[^()<>"\n]*)\)`)

// Links holds the classified links of one publication.
type Links struct {
	Internal []models.InternalLink
	External []models.ExternalLink
	Video    []models.VideoLink
	// Unclear lists URLs that match no link class. They are not stored.
	Unclear []string
}

// LinkExtractor finds markdown links and sorts them by URL shape.
type LinkExtractor struct {
	md goldmark.Markdown
}

// NewLinkExtractor creates a link extractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{md: goldmark.New()}
}

// Extract parses src as markdown and classifies every inline link. Legacy
// attribute syntax is removed first so destinations parse cleanly.
func (e *LinkExtractor) Extract(src string) Links {
	var links Links

	source := []byte(bracketDestinations(CleanLegacySyntax(src)))
	doc := e.md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		label := CleanLegacySyntax(nodeText(link, source))
		url := strings.TrimSpace(string(link.Destination))

		if label != "" && url != "" {
			links.add(label, url)
		}

		return ast.WalkSkipChildren, nil
	})

	return links
}

// bracketDestinations wraps destinations containing spaces in angle brackets
// so they still parse as links.
func bracketDestinations(src string) string {
	return spacedDestination.ReplaceAllStringFunc(src, func(m string) string {
		dest := strings.TrimSpace(m[2 : len(m)-1])
		if !strings.ContainsAny(dest, " \t") {
			return "](" + dest + ")"
		}

		return "](<" + dest + ">)"
	})
}

func (l *Links) add(label, url string) {
	switch {
	case strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be"):
		l.Video = append(l.Video, models.VideoLink{Label: label, URL: url, Platform: models.PlatformYouTube})
	case strings.Contains(url, "vimeo.com"):
		l.Video = append(l.Video, models.VideoLink{Label: label, URL: url, Platform: models.PlatformVimeo})
	case strings.Contains(url, "livestream.com"):
		l.Video = append(l.Video, models.VideoLink{Label: label, URL: url, Platform: models.PlatformLivestream})
	case strings.HasPrefix(url, "/publications/"):
		l.Internal = append(l.Internal, models.InternalLink{Label: label, Path: strings.TrimPrefix(url, "/")})
	case strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://"):
		l.External = append(l.External, models.ExternalLink{Label: label, URL: url})
	default:
		l.Unclear = append(l.Unclear, url)
	}
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))

			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}

		return ast.WalkContinue, nil
	})

	return buf.String()
}
