package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// RuneWidth is the column width of r; combining runes report zero.
func RuneWidth(r rune) int {
	return max(0, runewidth.RuneWidth(r))
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, r := range text {
		width += RuneWidth(r)
	}
	return width
}

// TruncateRight cuts text to maxWidth columns, ending with an ellipsis when
// anything was dropped.
func TruncateRight(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return ellipsis
	}

	var b strings.Builder
	width := 0
	for _, r := range text {
		w := RuneWidth(r)
		if width+w > maxWidth-1 {
			break
		}
		b.WriteRune(r)
		width += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// TruncateLeft keeps the tail of text, which for paths is the useful end.
func TruncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return ellipsis
	}

	runes := []rune(text)
	width := 0
	start := len(runes)
	for start > 0 {
		w := RuneWidth(runes[start-1])
		if width+w > maxWidth-1 {
			break
		}
		width += w
		start--
	}
	return ellipsis + string(runes[start:])
}
