package analyzer

import "strings"

// SplitLines splits source text into lines without their terminators.
func SplitLines(source []byte) []string {
	return strings.Split(strings.ReplaceAll(string(source), "\r\n", "\n"), "\n")
}

// LogicalLines counts the logical lines of code in the 1-based inclusive
// range [start, end]: lines that are non-empty after trimming and that do not
// start with a line comment or a block comment marker. The range is counted
// once against the source text, so nested or overlapping member ranges inside
// it can never double-count.
func LogicalLines(lines []string, start, end int) int {
	if start < 1 || end < start || start > len(lines) {
		return 0
	}
	if end > len(lines) {
		end = len(lines)
	}

	count := 0
	for i := start - 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "/*") ||
			strings.HasPrefix(trimmed, "*") {
			continue
		}
		count++
	}
	return count
}

// FallbackLOC estimates logical lines from a token count when the source
// text is unavailable, roughly seven tokens per line with a floor of one.
func FallbackLOC(totalTokens int) int {
	loc := totalTokens / 7
	if loc < 1 {
		return 1
	}
	return loc
}
