package parser

import "strings"

const (
	fence     = "```"
	eofMarker = "---EOF---"
)

// isFenceOpen reports whether line opens an inline content block: a fence,
// optionally followed by an info string such as "tsx".
func isFenceOpen(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, fence) {
		return false
	}
	return !strings.Contains(t[len(fence):], "`")
}

// isFenceClose reports whether line ends an inline content block.
func isFenceClose(line string) bool {
	t := strings.TrimSpace(line)
	return t == fence || t == eofMarker
}

// captureBlock collects lines after the opener at lines[open] up to the
// closer. It returns the block text and the index of the last consumed line
// (the closer, or the final line when the block is never closed).
func captureBlock(lines []string, open int) (string, int) {
	var block []string
	i := open + 1
	for ; i < len(lines); i++ {
		if isFenceClose(lines[i]) {
			return strings.Join(block, "\n"), i
		}
		block = append(block, lines[i])
	}
	return strings.Join(block, "\n"), len(lines) - 1
}
