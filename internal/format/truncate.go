package format

import (
	"fmt"
	"strings"
)

const (
	maxDiagnosticLines = 200
	maxDiagnosticBytes = 16 * 1024
)

// tailLines returns the end of s: at most maxLines lines and, unless the
// last line alone is longer, at most maxBytes bytes. Formatters report
// errors last, so the head is what gets dropped.
func tailLines(s string, maxLines, maxBytes int) string {
	lines := strings.Split(s, "\n")
	start, size := len(lines), 0
	for start > 0 && len(lines)-start < maxLines {
		n := len(lines[start-1]) + 1
		if size+n-1 > maxBytes && start < len(lines) {
			break
		}
		size += n
		start--
	}

	kept := strings.Join(lines[start:], "\n")
	if len(kept) > maxBytes {
		kept = kept[len(kept)-maxBytes:]
	}
	switch {
	case start > 0:
		return fmt.Sprintf("[%d earlier lines omitted]\n%s", start, kept)
	case kept != s:
		return "[truncated]\n" + kept
	}
	return s
}
