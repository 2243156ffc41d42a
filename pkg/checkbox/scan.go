// Package checkbox turns "[ ]" and "[x]" markers inside rendered Markdown
// table cells into interactive controls and writes toggles back to the
// source line they came from.
//
// Every checkbox in a table row is addressed by its global index: the
// left-to-right ordinal of the marker across all cells of the row's
// source line. Indexes are derived from the line text on demand and are
// re-resolved against the live document whenever a toggle is applied.
package checkbox

import (
	"regexp"
	"strings"
)

// Wire forms of a checkbox. Only a lowercase x counts as checked.
const (
	Unchecked = "[ ]"
	Checked   = "[x]"
)

// tokenLen is the byte length of both wire forms.
const tokenLen = 3

var tokenPattern = regexp.MustCompile(`\[( |x)\]`)

// Token is one checkbox occurrence within a source line.
type Token struct {
	Offset  int  // byte offset of '[' within the line
	Checked bool // true for "[x]"
}

// Bracket returns the wire form for the given state.
func Bracket(checked bool) string {
	if checked {
		return Checked
	}
	return Unchecked
}

// Scan returns the checkbox tokens of line in left-to-right order.
func Scan(line string) []Token {
	locs := tokenPattern.FindAllStringIndex(line, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, Token{
			Offset:  loc[0],
			Checked: line[loc[0]+1] == 'x',
		})
	}
	return tokens
}

// CountsPerCell splits a table row on '|' and counts the checkbox tokens in
// each cell. A blank segment before the first or after the last delimiter is
// dropped, so both "|a|b|" and "a|b" yield two cells. An empty line is one
// empty cell: []int{0}.
func CountsPerCell(line string) []int {
	cells := strings.Split(line, "|")
	if len(cells) > 1 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 1 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}

	counts := make([]int, len(cells))
	for i, cell := range cells {
		counts[i] = len(tokenPattern.FindAllStringIndex(cell, -1))
	}
	return counts
}

// SourceLine returns the idx-th line of content. Lines are separated by
// "\n" or "\r\n"; the separator is not part of the returned line.
func SourceLine(content string, idx int) (string, bool) {
	start, end, ok := lineSpan(content, idx)
	if !ok {
		return "", false
	}
	return content[start:end], true
}

// lineSpan returns the byte range of line idx within content, excluding
// its line terminator.
func lineSpan(content string, idx int) (int, int, bool) {
	if idx < 0 {
		return 0, 0, false
	}

	start := 0
	for i := 0; i < idx; i++ {
		nl := strings.IndexByte(content[start:], '\n')
		if nl < 0 {
			return 0, 0, false
		}
		start += nl + 1
	}

	end := len(content)
	if nl := strings.IndexByte(content[start:], '\n'); nl >= 0 {
		end = start + nl
		if end > start && content[end-1] == '\r' {
			end--
		}
	}
	return start, end, true
}
