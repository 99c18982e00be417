package mdx

import (
	"fmt"
	"regexp"
	"strings"
)

// Table issue types.
const (
	IssueHeaderDelimiterMismatch = "header-delimiter-mismatch"
	IssueRowColumnMismatch       = "row-column-mismatch"
)

// TableIssue is a malformed GFM table row.
type TableIssue struct {
	Line    int // 1-based
	Type    string
	Message string
}

func (i TableIssue) String() string {
	return fmt.Sprintf("%d [%s] %s", i.Line, i.Type, i.Message)
}

var (
	fenceOpener   = regexp.MustCompile("^(`{3,}|~{3,})")
	delimiterCell = regexp.MustCompile(`^:?-{3,}:?$`)
	lineBreak     = regexp.MustCompile(`\r?\n`)
)

// CheckTables reports tables whose rows do not have as many cells as the
// header. Tables inside fenced code are ignored.
func CheckTables(content string) []TableIssue {
	lines := lineBreak.Split(content, -1)
	inFence := fenceMask(lines)

	var issues []TableIssue
	for i := 0; i < len(lines)-1; i++ {
		if inFence[i] || inFence[i+1] {
			continue
		}

		header := strings.TrimSpace(lines[i])
		delimiter := strings.TrimSpace(lines[i+1])
		if !strings.HasPrefix(header, "|") || !strings.HasPrefix(delimiter, "|") {
			continue
		}
		if !isDelimiterRow(delimiter) {
			continue
		}

		headerCells := splitRowCells(header)
		delimiterCells := splitRowCells(delimiter)
		if len(headerCells) != len(delimiterCells) {
			issues = append(issues, TableIssue{
				Line:    i + 2,
				Type:    IssueHeaderDelimiterMismatch,
				Message: fmt.Sprintf("header has %d columns, delimiter has %d", len(headerCells), len(delimiterCells)),
			})
		}

		row := i + 2
		for ; row < len(lines) && !inFence[row]; row++ {
			line := strings.TrimSpace(lines[row])
			if !strings.HasPrefix(line, "|") || isDelimiterRow(line) {
				break
			}
			if cells := splitRowCells(line); len(cells) != len(headerCells) {
				issues = append(issues, TableIssue{
					Line:    row + 1,
					Type:    IssueRowColumnMismatch,
					Message: fmt.Sprintf("header has %d columns, row has %d", len(headerCells), len(cells)),
				})
			}
		}
		i = row - 1
	}
	return issues
}

// fenceMask marks the lines that belong to ``` or ~~~ fenced blocks,
// fence lines included.
func fenceMask(lines []string) []bool {
	mask := make([]bool, len(lines))

	var (
		open   bool
		marker byte
		size   int
	)
	for i, line := range lines {
		if m := fenceOpener.FindString(strings.TrimSpace(line)); m != "" {
			if open && m[0] == marker && len(m) >= size {
				mask[i] = true
				open = false
				continue
			}
			if !open {
				mask[i] = true
				open, marker, size = true, m[0], len(m)
				continue
			}
		}
		mask[i] = open
	}
	return mask
}

// splitRowCells splits a trimmed table row on unescaped pipes outside
// code spans. It returns nil for lines that do not start with a pipe.
func splitRowCells(line string) []string {
	text := strings.TrimSpace(line)
	if !strings.HasPrefix(text, "|") {
		return nil
	}
	text = strings.TrimPrefix(text, "|")
	text = strings.TrimSuffix(text, "|")

	var (
		cells   []string
		current strings.Builder
		escaped bool
		ticks   int
	)
	for i := 0; i < len(text); i++ {
		c := text[i]

		if escaped {
			current.WriteByte(c)
			escaped = false
			continue
		}

		switch {
		case c == '`':
			n := 1
			for i+n < len(text) && text[i+n] == '`' {
				n++
			}
			if ticks == 0 {
				ticks = n
			} else if ticks == n {
				ticks = 0
			}
			current.WriteString(text[i : i+n])
			i += n - 1
		case c == '\\' && ticks == 0:
			current.WriteByte(c)
			escaped = true
		case c == '|' && ticks == 0:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	return append(cells, strings.TrimSpace(current.String()))
}

func isDelimiterRow(line string) bool {
	cells := splitRowCells(line)
	if len(cells) < 2 {
		return false
	}
	for _, cell := range cells {
		if !delimiterCell.MatchString(strings.Join(strings.Fields(cell), "")) {
			return false
		}
	}
	return true
}
