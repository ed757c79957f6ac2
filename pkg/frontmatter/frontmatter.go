// Package frontmatter reads and writes the YAML block at the top of markdown content files.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a front matter block.
const Delimiter = "---"

// Front matter errors.
var (
	ErrNoFrontMatter      = errors.New("no front matter block found")
	ErrInvalidFrontMatter = errors.New("invalid front matter")
)

// Parse decodes the front matter of content into v and returns the body that
// follows the closing delimiter.
func Parse(content string, v any) (string, error) {
	body, err := adrg.MustParse(strings.NewReader(content), v)
	if err != nil {
		if errors.Is(err, adrg.ErrNotFound) {
			return "", ErrNoFrontMatter
		}

		return "", fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}

	return string(body), nil
}

// Fields decodes the front matter into a generic map, keeping values as YAML
// produced them. Dates written without quotes decode as strings.
func Fields(content string) (map[string]any, string, error) {
	fields := map[string]any{}

	body, err := Parse(content, &fields)
	if err != nil {
		return nil, "", err
	}

	return fields, body, nil
}

// Compose renders v as a front matter block followed by body.
func Compose(v any, body string) (string, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}

	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}

	var sb strings.Builder

	sb.WriteString(Delimiter + "\n")
	sb.Write(buf.Bytes())
	sb.WriteString(Delimiter + "\n")
	sb.WriteString(body)

	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// Dump renders v as plain YAML without delimiters, for previews.
func Dump(v any) string {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("<unencodable: %v>\n", err)
	}

	_ = enc.Close()

	return buf.String()
}
