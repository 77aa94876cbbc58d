// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in … when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRightVisual pads s with spaces to width columns, truncating if it is wider.
func PadRightVisual(s string, width int) string {
	if VisualWidth(s) >= width {
		return Truncate(s, width)
	}
	return runewidth.FillRight(s, width)
}

// Wrap breaks s into lines of at most width columns at word boundaries.
// Words wider than width are truncated. Existing newlines are kept.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			w = Truncate(w, width)
			switch {
			case line == "":
				line = w
			case VisualWidth(line)+1+VisualWidth(w) <= width:
				line += " " + w
			default:
				lines = append(lines, line)
				line = w
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// Clamp wraps s to width and keeps at most maxLines lines, marking the last
// kept line with … when text was dropped.
func Clamp(s string, width, maxLines int) []string {
	lines := Wrap(s, width)
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if VisualWidth(last)+VisualWidth(TruncateEllipsis) > width {
		last = runewidth.Truncate(last, width-VisualWidth(TruncateEllipsis), "")
	}
	lines[maxLines-1] = last + TruncateEllipsis
	return lines
}
