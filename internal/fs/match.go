package fs

import "strings"

// MatchName reports whether pattern occurs in name. An empty pattern matches
// everything. Without caseSensitive only ASCII letters are folded.
func MatchName(name, pattern string, caseSensitive bool) bool {
	return IndexName(name, pattern, caseSensitive) >= 0
}

// IndexName returns the byte offset of the first occurrence of pattern in
// name under the same folding rule as MatchName, or -1.
func IndexName(name, pattern string, caseSensitive bool) int {
	if pattern == "" {
		return 0
	}
	if caseSensitive {
		return strings.Index(name, pattern)
	}
	return indexFoldASCII(name, pattern)
}

func indexFoldASCII(s, substr string) int {
	n := len(substr)
	for start := 0; start+n <= len(s); start++ {
		i := 0
		for i < n && foldASCII(s[start+i]) == foldASCII(substr[i]) {
			i++
		}
		if i == n {
			return start
		}
	}
	return -1
}
