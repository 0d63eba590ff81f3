package schedule

import "strings"

const DefaultMarker = "**schedule**"

// ExtractLines returns the block of lines that follows the first line containing marker,
// up to the first blank line. It returns nil when the marker is not found.
func ExtractLines(message, marker string) []string {
	if marker == "" {
		marker = DefaultMarker
	}
	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, marker) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var block []string
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		block = append(block, line)
	}
	return block
}
