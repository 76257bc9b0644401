package extract

import "strings"

// NormalizeLines splits raw recognized text into trimmed, non-empty lines,
// preserving the original order. Empty input yields an empty slice; downstream
// components treat that as nothing extractable.
func NormalizeLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
