package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxTitleWidth caps the title column so long titles do not wrap the terminal.
const maxTitleWidth = 48

// ReportRow is one created entry in the run report.
type ReportRow struct {
	Index    int
	ID       string
	Category string
	Severity string
	Title    string
}

// RenderReport lays the rows out as an aligned markdown-style table.
// Widths are measured in terminal cells so Hebrew and emoji titles line up.
func RenderReport(rows []ReportRow) string {
	if len(rows) == 0 {
		return ""
	}

	table := [][]string{{"#", "ID", "Category", "Severity", "Title"}}
	for _, r := range rows {
		table = append(table, []string{
			strconv.Itoa(r.Index),
			r.ID,
			r.Category,
			r.Severity,
			runewidth.Truncate(r.Title, maxTitleWidth, "…"),
		})
	}

	return strings.Join(renderTable(table), "\n")
}

// renderTable pads every cell to its column width and inserts a separator row
// after the header.
func renderTable(table [][]string) []string {
	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range table {
		for i := 0; i < len(row); i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Separator needs at least "---".
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table)+1)

	for i, row := range table {
		result = append(result, renderRow(row, colWidths))

		if i == 0 {
			var sb strings.Builder

			sb.WriteString("|")

			for _, w := range colWidths {
				sb.WriteString(" " + strings.Repeat("-", w) + " |")
			}

			result = append(result, sb.String())
		}
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(content)

		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
