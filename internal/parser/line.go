package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// columnsPerLevel is the nominal width of one nesting step. The level is
	// the leading width (branch glyph included) divided by 3, rounded up.
	// That is exact for 3-column renderings and strictly increasing with
	// depth for 4-column ones ("│   "), which skip a level number past the
	// third; parent lookup walks down to the nearest registered level, so
	// the gaps are harmless.
	columnsPerLevel = 3

	// tabColumns is the width a leading tab contributes.
	tabColumns = 4
)

const (
	glyphTee      = '├'
	glyphCorner   = '└'
	glyphPipe     = '│'
	glyphDash     = '─'
	nonBreakSpace = '\u00a0'
)

// isStructural reports whether the line carries any tree glyph.
func isStructural(line string) bool {
	return strings.ContainsAny(line, "├└│")
}

// isComment reports whether a trimmed line is a // or # comment.
func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#")
}

// rootSegments returns the directory segments of a bare root line such as
// "app/" or "src/app/". ok is false when the line is not a root line.
func rootSegments(trimmed string) (segments []string, ok bool) {
	if trimmed == "" || !strings.Contains(trimmed, "/") {
		return nil, false
	}
	if strings.IndexFunc(trimmed, unicode.IsSpace) >= 0 {
		return nil, false
	}
	segments, ok = splitName(trimmed)
	if !ok || len(segments) == 0 {
		return nil, false
	}
	return segments, true
}

// entry is one branch line decoded into its level and path segments.
type entry struct {
	level    int
	segments []string
	isDir    bool
}

// name returns the last segment, the entry's own name.
func (e entry) name() string {
	return e.segments[len(e.segments)-1]
}

// decodeEntry extracts level and name from a structural line. ok is false
// for lines without a branch glyph (pure "│" continuation) and for lines
// whose name cannot be extracted.
func decodeEntry(line string) (e entry, ok bool) {
	columns := 0
	rest := ""
	found := false
scan:
	for i, r := range line {
		switch r {
		case ' ', nonBreakSpace, glyphPipe:
			columns++
		case '\t':
			columns += tabColumns
		case glyphTee, glyphCorner:
			columns++
			rest = line[i+utf8.RuneLen(r):]
			found = true
			break scan
		default:
			break scan
		}
	}
	if !found {
		return entry{}, false
	}

	rest = strings.TrimLeft(rest, string(glyphDash))
	name := rest
	if i := strings.Index(name, " //"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)

	isDir := strings.HasSuffix(name, "/")
	segments, valid := splitName(name)
	if !valid || len(segments) == 0 {
		return entry{}, false
	}

	return entry{
		level:    (columns + columnsPerLevel - 1) / columnsPerLevel,
		segments: segments,
		isDir:    isDir,
	}, true
}

// splitName splits a slash path into NFC-normalized segments. Empty
// segments (from leading, doubled or trailing slashes) are dropped; "." and
// ".." make the whole name invalid so nothing can escape the base directory.
func splitName(name string) ([]string, bool) {
	var segments []string
	for _, s := range strings.Split(name, "/") {
		s = strings.TrimSpace(s)
		switch s {
		case "":
			continue
		case ".", "..":
			return nil, false
		}
		segments = append(segments, norm.NFC.String(s))
	}
	return segments, true
}
