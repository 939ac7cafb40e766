package fs

import "sort"

// SortEntries orders entries in place: directories before files, each group
// by CompareNames.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return CompareNames(entries[i].Name, entries[j].Name) < 0
	})
}

// CompareNames compares two names byte by byte with ASCII letters folded to
// upper case. Bytes outside ASCII compare by raw value, so non-Latin names
// do not get locale-aware ordering.
func CompareNames(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := foldASCII(a[i]), foldASCII(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func foldASCII(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// FoldRune folds an ASCII letter to upper case and returns other runes as is.
func FoldRune(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// FirstFileIndex returns the index of the first file in a sorted listing, or
// len(entries) when there is none.
func FirstFileIndex(entries []Entry) int {
	for i, e := range entries {
		if e.Kind == KindFile {
			return i
		}
	}
	return len(entries)
}
