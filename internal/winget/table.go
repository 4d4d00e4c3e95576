// Package winget parses the human-readable table output of the winget
// command line tool into typed package records.
//
// winget prints whitespace-aligned tables whose column widths shift with
// the active locale, so nothing here slices by column offset. Rows are
// split into tokens and classified instead.
package winget

import "strings"

// headerTokens identify the header row of a winget table. winget localizes
// its column headers; "Name" covers English output and "名前" the Japanese
// locale.
var headerTokens = []string{"Name", "名前"}

// separatorPrefix is the rule-of-dashes ruler winget prints under the
// header row.
const separatorPrefix = "-"

// DataLines extracts the data rows from raw column-aligned command output.
// It locates the header row, skips the dash ruler underneath it, and
// returns every following line that is neither blank nor a separator.
//
// Output with no recognizable header (empty listing, warning banner only)
// yields nil rather than an error: the tool produced no usable table and
// the caller should treat that as an empty result.
func DataLines(raw string) []string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	headerIdx := -1
scan:
	for i, line := range lines {
		for _, tok := range headerTokens {
			if strings.Contains(line, tok) {
				headerIdx = i
				break scan
			}
		}
	}
	if headerIdx == -1 || headerIdx+1 >= len(lines) {
		return nil
	}

	start := headerIdx + 1
	if strings.HasPrefix(lines[start], separatorPrefix) {
		start++ // column ruler, not data
	}

	var data []string
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, separatorPrefix) {
			continue
		}
		data = append(data, line)
	}
	return data
}
