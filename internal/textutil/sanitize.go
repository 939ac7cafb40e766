// Package textutil prepares file names for display on a terminal.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Invisible bidi and zero-width runes are shown by name so a file called
// "evil‮txt.exe" cannot disguise itself.
var invisibleRuneNames = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x180E: "MVS",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x2028: "LSEP",
	0x2029: "PSEP",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0xFEFF: "BOM",
}

// DisplayName returns name composed to NFC with unsafe runes replaced. The
// result is for drawing only; lookups keep using the raw name.
func DisplayName(name string) string {
	return SanitizeTerminalText(norm.NFC.String(name))
}

// SanitizeTerminalText replaces control characters so user-controlled text cannot
// inject terminal escape sequences when rendered.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, unsafeRune) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if name, ok := invisibleRuneNames[r]; ok {
			b.WriteString("⟪" + name + "⟫")
			continue
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unsafeRune(r rune) bool {
	if _, ok := invisibleRuneNames[r]; ok {
		return true
	}
	return r < 0x20 || r == 0x7f
}
