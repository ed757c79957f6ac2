package jekyll

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"sitemig/internal/formatter"
)

const notesRule = "\n---\n\n"

// RenderNotes renders the migration notes document for a run.
func RenderNotes(r *Report, date time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Jekyll Syntax Migration Notes\n\n")
	sb.WriteString("This document tracks the removal of legacy Jekyll/Kramdown syntax from blog markdown files.\n\n")
	fmt.Fprintf(&sb, "**Migration Date:** %s\n", date.UTC().Format(time.DateOnly))
	fmt.Fprintf(&sb, "**Total Removals:** %d instances across %d files\n", r.Total(), len(r.Modified))

	sb.WriteString(notesRule)
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Link Targets Removed:** %d instances\n", r.LinkTargetCount())
	fmt.Fprintf(&sb, "- **Image Sizing Removed:** %d instances\n", len(r.ImageSizing))
	fmt.Fprintf(&sb, "- **Layout Styling Removed:** %d instances\n", len(r.LayoutStyling))
	fmt.Fprintf(&sb, "- **Other Removals:** %d instances\n", len(r.Other))

	if table := fileTable(r); table != "" {
		sb.WriteString("\n**Files with non-link changes:**\n\n")
		sb.WriteString(table)
	}

	sb.WriteString(notesRule)
	writeImageSizing(&sb, r.ImageSizing)

	sb.WriteString(notesRule)
	writeLayoutStyling(&sb, r.LayoutStyling)

	sb.WriteString(notesRule)
	writeLinkTargets(&sb, r)

	sb.WriteString(notesRule)
	writeOther(&sb, r.Other)

	sb.WriteString(notesRule)
	sb.WriteString(`## Next Steps

1. ✅ All Jekyll syntax has been removed
2. ⏭️ Build the site to verify no markdown parsing errors
3. ⏭️ Manually review sample blog posts to check rendering
4. ⏭️ If layout issues occur, refer to this document to restore specific styling
`)
	sb.WriteString(notesRule)
	sb.WriteString("**Note:** This migration was performed automatically by `sitemig jekyll`. " +
		"The original Jekyll syntax is documented above for reference if any styling needs to be restored.\n")

	return sb.String()
}

// fileTable lists the files with removals other than link targets.
func fileTable(r *Report) string {
	var rows [][]string

	for _, f := range sortedKeys(r.Files) {
		rm := r.Files[f]

		var styles, ids int

		for _, o := range rm.Other {
			switch o.Type {
			case TypeInlineStyle:
				styles++
			case TypeIDSelector:
				ids++
			}
		}

		if len(rm.ImageSizing)+len(rm.LayoutStyling)+styles+ids == 0 {
			continue
		}

		rows = append(rows, []string{
			f,
			countCell(len(rm.ImageSizing)),
			countCell(len(rm.LayoutStyling)),
			countCell(styles),
			countCell(ids),
		})
	}

	if len(rows) == 0 {
		return ""
	}

	return formatter.FormatTable(
		[]string{"File", "Image Sizing", "Layout Styling", "Inline Styles", "ID Selectors"},
		rows,
	)
}

func countCell(n int) string {
	if n == 0 {
		return "-"
	}

	return strconv.Itoa(n)
}

func writeImageSizing(sb *strings.Builder, items []ImageSizing) {
	sb.WriteString("## Section 1: Image Sizing Removals\n\n")
	fmt.Fprintf(sb, "**Total:** %d instances\n\n", len(items))
	sb.WriteString("The following image sizing attributes were removed. " +
		"These can be re-added using HTML `<img>` tags if needed:\n\n")

	if len(items) == 0 {
		sb.WriteString("\n*No image sizing attributes found.*\n")
		return
	}

	byFile := make(map[string][]ImageSizing)
	for _, it := range items {
		byFile[it.File] = append(byFile[it.File], it)
	}

	for _, file := range sortedKeys(byFile) {
		fmt.Fprintf(sb, "\n### %s\n\n", file)

		for _, it := range byFile[file] {
			fmt.Fprintf(sb, "- Line %d: `%s` → width=%q height=%q\n", it.Line, it.Content, it.Width, it.Height)
		}
	}
}

func writeLayoutStyling(sb *strings.Builder, items []LayoutStyling) {
	sb.WriteString("## Section 2: Layout Styling Removals\n\n")
	fmt.Fprintf(sb, "**Total:** %d instances\n\n", len(items))
	sb.WriteString("The following CSS class applications were removed (`.pull-left`, `.pull-right`, etc.):\n\n")

	if len(items) == 0 {
		sb.WriteString("\n*No layout styling classes found.*\n")
		return
	}

	byFile := make(map[string][]LayoutStyling)
	for _, it := range items {
		byFile[it.File] = append(byFile[it.File], it)
	}

	for _, file := range sortedKeys(byFile) {
		fmt.Fprintf(sb, "\n### %s\n\n", file)

		for _, it := range byFile[file] {
			fmt.Fprintf(sb, "- Line %d: `%s` → class=%q\n", it.Line, it.Content, it.Classes)
		}
	}
}

func writeLinkTargets(sb *strings.Builder, r *Report) {
	sb.WriteString("## Section 3: Link Target Removals\n\n")
	fmt.Fprintf(sb, "**Total:** %d instances\n\n", r.LinkTargetCount())
	sb.WriteString("All `{:target=\"_blank\"}` and variant patterns were removed. " +
		"External links are expected to open in new tabs through the site's markdown pipeline.\n\n")
	sb.WriteString("**Files affected:**\n\n")

	if len(r.LinkTargets) == 0 {
		sb.WriteString("\n*No link target attributes found.*\n")
		return
	}

	targets := slices.Clone(r.LinkTargets)
	sort.SliceStable(targets, func(i, j int) bool { return targets[i].Count > targets[j].Count })

	for _, lt := range targets {
		suffix := ""
		if lt.Count > 1 {
			suffix = "s"
		}

		fmt.Fprintf(sb, "- %s: %d instance%s\n", lt.File, lt.Count, suffix)
	}
}

func writeOther(sb *strings.Builder, items []OtherRemoval) {
	sb.WriteString("## Section 4: Other Removals\n\n")
	fmt.Fprintf(sb, "**Total:** %d instances\n\n", len(items))

	if len(items) == 0 {
		sb.WriteString("\n*No other removals.*\n")
		return
	}

	byType := make(map[string][]OtherRemoval)

	var order []string

	for _, it := range items {
		if _, ok := byType[it.Type]; !ok {
			order = append(order, it.Type)
		}

		byType[it.Type] = append(byType[it.Type], it)
	}

	for _, typ := range order {
		fmt.Fprintf(sb, "\n### %s\n\n", typ)

		for _, it := range byType[typ] {
			fmt.Fprintf(sb, "- %s:%d → `%s` (value: %q)\n", it.File, it.Line, it.Content, it.Value)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
