package mdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTables(t *testing.T) {
	content := "| A | B |\n" +
		"| --- | --- |\n" +
		"| 1 | 2 |\n" +
		"| 1 | 2 | 3 |\n" +
		"| `a|b` | c |\n" +
		"| x \\| y | z |\n" +
		"\n" +
		"```md\n" +
		"| a | b |\n" +
		"| --- |\n" +
		"```\n" +
		"\n" +
		"| H1 | H2 | H3 |\n" +
		"| :--- | ---: |\n" +
		"| 1 | 2 | 3 |\n"

	issues := CheckTables(content)

	require.Len(t, issues, 2)
	assert.Equal(t, TableIssue{Line: 4, Type: IssueRowColumnMismatch, Message: "header has 2 columns, row has 3"}, issues[0])
	assert.Equal(t, TableIssue{Line: 14, Type: IssueHeaderDelimiterMismatch, Message: "header has 3 columns, delimiter has 2"}, issues[1])
	assert.Equal(t, "4 [row-column-mismatch] header has 2 columns, row has 3", issues[0].String())
}

func TestCheckTables_Clean(t *testing.T) {
	assert.Empty(t, CheckTables("no tables\n\n| just | a row |\n"))
	assert.Empty(t, CheckTables("~~~\n| a | b |\n| --- | --- |\n| 1 |\n~~~\n"))
	assert.Empty(t, CheckTables("| a | b |\r\n|---|---|\r\n| 1 | 2 |\r\n"))
}

func TestSplitRowCells(t *testing.T) {
	assert.Nil(t, splitRowCells("not a row"))
	assert.Equal(t, []string{"a", "b"}, splitRowCells("  | a | b |  "))
	assert.Equal(t, []string{"``x|y``", "z"}, splitRowCells("| ``x|y`` | z"))
	assert.Equal(t, []string{`a \| b`}, splitRowCells(`| a \| b |`))
}

func TestFenceMask(t *testing.T) {
	lines := []string{"a", "````", "```", "still code", "````", "b"}
	assert.Equal(t, []bool{false, true, true, true, true, false}, fenceMask(lines))
}
