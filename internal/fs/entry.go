package fs

import (
	"os"
	"strings"
)

// MaxNameLength is the longest entry name, in bytes, that a listing stores.
const MaxNameLength = 255

// Kind classifies a directory entry. The order of the constants is the
// listing order: directories first, then files.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Entry represents a single file or directory on disk.
type Entry struct {
	Name string
	Kind Kind
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Name)
}

// IsHidden reports whether name is a dotfile.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// IsDotLink reports whether name is one of the "." and ".." links.
func IsDotLink(name string) bool {
	return name == "." || name == ".."
}

func validName(name string) bool {
	return name != "" && len(name) <= MaxNameLength && strings.IndexByte(name, 0) < 0
}

// kindFromMode maps a file mode to a Kind. Only regular files and
// directories are known; everything else (sockets, devices, unresolved
// symlinks) is KindUnknown.
func kindFromMode(mode os.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindUnknown
	}
}

// IsExecutable reports whether path is a regular file with the owner
// execute bit set.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o100 != 0
}
