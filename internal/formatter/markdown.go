// Package formatter provides markdown and front matter formatting utilities.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatMarkdown aligns every pipe table in a markdown document.
func FormatMarkdown(content string) string {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		// Simple heuristic: starts and ends with |
		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n")
}

// FormatTable renders an aligned markdown table from a header and rows.
// Pipes inside cells are escaped.
func FormatTable(header []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+2)
	table = append(table, escapeCells(header))
	table = append(table, make([]string, len(header)))

	for _, row := range rows {
		table = append(table, escapeCells(row))
	}

	return strings.Join(renderTable(table, 1), "\n") + "\n"
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(strings.TrimSpace(c), "|", `\|`)
	}

	return out
}

func processTable(rows []string) []string {
	// A single line is not a table (needs header+separator)
	if len(rows) < 2 {
		return rows
	}

	var table [][]string

	for _, row := range rows {
		parts := splitRow(row)

		// The split leaves empty strings at start/end when the line starts/ends with a pipe
		if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
			parts = parts[1:]
		}

		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}

		var cells []string
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}

		table = append(table, cells)
	}

	separatorRowIdx := -1

	isSep := true

	for _, cell := range table[1] {
		trim := strings.ReplaceAll(cell, "-", "")
		trim = strings.ReplaceAll(trim, ":", "") // alignment :--- or ---:
		trim = strings.ReplaceAll(trim, " ", "")

		if trim != "" {
			isSep = false
			break
		}
	}

	if isSep {
		separatorRowIdx = 1
	}

	return renderTable(table, separatorRowIdx)
}

// splitRow splits a table row on pipes that are not escaped.
func splitRow(row string) []string {
	var (
		parts []string
		cell  strings.Builder
	)

	for i := 0; i < len(row); i++ {
		switch {
		case row[i] == '\\' && i+1 < len(row) && row[i+1] == '|':
			cell.WriteString(`\|`)
			i++
		case row[i] == '|':
			parts = append(parts, cell.String())
			cell.Reset()
		default:
			cell.WriteByte(row[i])
		}
	}

	return append(parts, cell.String())
}

// renderTable pads every cell to its column's display width.
func renderTable(table [][]string, separatorRowIdx int) []string {
	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Minimum width for the "---" separator
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := range colCount {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
				sb.WriteString(" |")

				continue
			}

			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
