package state

import (
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/asfb/internal/fs"
)

// ApplyFilter returns the entries of raw that pass filter, in their original
// order. raw itself is never modified.
func ApplyFilter(raw []FileEntry, filter FilterState) []FileEntry {
	out := make([]FileEntry, 0, len(raw))
	for _, entry := range raw {
		if fsutil.IsDotLink(entry.Name) {
			continue
		}
		if filter.HideDotfiles && entry.IsHidden() {
			continue
		}
		if !fsutil.MatchName(entry.Name, filter.Pattern, filter.CaseSensitive) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// narrowPattern appends ch when it is printable and fits, reporting whether
// the pattern changed.
func narrowPattern(pattern string, ch rune) (string, bool) {
	if ch < 0x20 || ch == 0x7f || !utf8.ValidRune(ch) {
		return pattern, false
	}
	if len(pattern)+utf8.RuneLen(ch) > MaxPatternLength {
		return pattern, false
	}
	return pattern + string(ch), true
}

// widenPattern drops the last rune of pattern.
func widenPattern(pattern string) (string, bool) {
	if pattern == "" {
		return pattern, false
	}
	_, size := utf8.DecodeLastRuneInString(pattern)
	return pattern[:len(pattern)-size], true
}
