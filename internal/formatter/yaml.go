package formatter

import (
	"regexp"
	"strings"
)

var (
	foldedExcerpt = regexp.MustCompile(`^excerpt:\s*>-`)
	topLevelKey   = regexp.MustCompile(`^[a-z]`)
)

// FixExcerptIndentation re-indents the folded excerpt block of a front
// matter block from three spaces to two. Only the front matter at the top of
// the document is touched. It reports whether anything changed.
func FixExcerptIndentation(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || lines[0] != "---" {
		return content, false
	}

	changed := false
	inExcerpt := false

	for i := 1; i < len(lines); i++ {
		line := lines[i]

		if line == "---" {
			break
		}

		if foldedExcerpt.MatchString(line) {
			inExcerpt = true
			continue
		}

		if inExcerpt && topLevelKey.MatchString(line) {
			inExcerpt = false
		}

		if inExcerpt && strings.HasPrefix(line, "   ") {
			lines[i] = "  " + strings.TrimPrefix(line, "   ")
			changed = true
		}
	}

	if !changed {
		return content, false
	}

	return strings.Join(lines, "\n"), true
}
