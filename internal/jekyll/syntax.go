// Package jekyll removes Kramdown attribute lists such as {:target="_blank"}
// from blog posts and documents what was removed.
package jekyll

import (
	"regexp"
	"strings"
)

// Removal types recorded under Other.
const (
	TypeInlineStyle = "inline-style"
	TypeIDSelector  = "id-selector"
)

var (
	targetBlank = regexp.MustCompile(`(?i)\{:target="[_\\]*blank"?\}`)
	imageSize   = regexp.MustCompile(`(?i)\{:\s*width="(\d+)"(?:\s*height="(\d+)")?\}`)
	cssClass    = regexp.MustCompile(`(?i)\{:\.([a-z-]+)(?:\s+[^}]*)?\}`)
	inlineStyle = regexp.MustCompile(`(?i)\{:style="([^"]+)"\}`)
	idSelector  = regexp.MustCompile(`(?i)\{:#([a-z-]+)\}`)
	anyJekyll   = regexp.MustCompile(`\{:[^}]+\}`)
)

// ImageSizing is a removed width/height attribute.
type ImageSizing struct {
	File    string
	Content string
	Width   string
	Height  string
	Line    int
}

// LayoutStyling is a removed CSS class attribute.
type LayoutStyling struct {
	File    string
	Content string
	Classes string
	Line    int
}

// LinkTarget counts the link target attributes removed from one file.
type LinkTarget struct {
	File  string
	Count int
}

// OtherRemoval is a removed inline style or id selector.
type OtherRemoval struct {
	File    string
	Content string
	Type    string
	Value   string
	Line    int
}

// Removals is everything Analyze found in one file.
type Removals struct {
	ImageSizing   []ImageSizing
	LayoutStyling []LayoutStyling
	Other         []OtherRemoval
	LinkTargets   int
}

// Count returns the number of recorded removals.
func (r Removals) Count() int {
	return r.LinkTargets + len(r.ImageSizing) + len(r.LayoutStyling) + len(r.Other)
}

// Analyze records the attribute lists in content. Line numbers start at 1.
func Analyze(file, content string) Removals {
	var r Removals

	for i, line := range strings.Split(content, "\n") {
		lineNum := i + 1

		r.LinkTargets += len(targetBlank.FindAllString(line, -1))

		for _, m := range imageSize.FindAllStringSubmatch(line, -1) {
			height := m[2]
			if height == "" {
				height = "auto"
			}

			r.ImageSizing = append(r.ImageSizing, ImageSizing{
				File: file, Line: lineNum, Content: m[0], Width: m[1], Height: height,
			})
		}

		for _, m := range cssClass.FindAllStringSubmatch(line, -1) {
			r.LayoutStyling = append(r.LayoutStyling, LayoutStyling{
				File: file, Line: lineNum, Content: m[0], Classes: m[1],
			})
		}

		for _, m := range inlineStyle.FindAllStringSubmatch(line, -1) {
			r.Other = append(r.Other, OtherRemoval{
				File: file, Line: lineNum, Content: m[0], Type: TypeInlineStyle, Value: m[1],
			})
		}

		for _, m := range idSelector.FindAllStringSubmatch(line, -1) {
			r.Other = append(r.Other, OtherRemoval{
				File: file, Line: lineNum, Content: m[0], Type: TypeIDSelector, Value: m[1],
			})
		}
	}

	return r
}

// Strip removes every attribute list from content.
func Strip(content string) string {
	return anyJekyll.ReplaceAllString(content, "")
}
