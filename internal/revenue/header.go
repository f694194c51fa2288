package revenue

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	placeholderPattern = regexp.MustCompile(`^Unnamed: \d+_level_\d+$`)
	// 平坦化後に残る "Unnamed: 0_level_0 " のような断片
	placeholderFragment = regexp.MustCompile(`Unnamed: \d+_level_\d+ `)
)

// Placeholder returns the label given to an empty header cell.
func Placeholder(col, level int) string {
	return fmt.Sprintf("Unnamed: %d_level_%d", col, level)
}

// IsPlaceholder reports whether label carries no header text.
func IsPlaceholder(label string) bool {
	label = strings.TrimSpace(label)
	return label == "" || placeholderPattern.MatchString(label)
}

// FlattenColumn collapses the header levels of one column into a single label.
// levels[0] is the outer level and levels[len(levels)-1] the inner one.
//
// The inner label wins unless it is a placeholder, then the outer label, and
// when both are placeholders the non-placeholder levels are joined with a
// space. If nothing is left the inner label is returned.
func FlattenColumn(levels []string) string {
	if len(levels) == 0 {
		return ""
	}
	inner := levels[len(levels)-1]
	outer := levels[0]
	if len(levels) > 1 && !IsPlaceholder(inner) {
		return inner
	}
	if !IsPlaceholder(outer) {
		return outer
	}

	var parts []string
	for _, l := range levels {
		if !IsPlaceholder(l) {
			parts = append(parts, l)
		}
	}
	if len(parts) == 0 {
		return inner
	}
	return strings.Join(parts, " ")
}

// CleanColumnName removes leftover placeholder fragments and surrounding space.
func CleanColumnName(label string) string {
	return strings.TrimSpace(placeholderFragment.ReplaceAllString(label, ""))
}

// FlattenHeader flattens a multi-level header into one clean label per column.
func FlattenHeader(header [][]string) []string {
	columns := make([]string, len(header))
	for i, levels := range header {
		columns[i] = CleanColumnName(FlattenColumn(levels))
	}
	return columns
}
