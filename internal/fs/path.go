package fs

import (
	"path/filepath"
	"strings"
)

// DirPath is an absolute directory path that always ends in "/".
type DirPath string

// RootPath is the filesystem root.
const RootPath DirPath = "/"

// NewDirPath cleans p and adds the trailing slash.
func NewDirPath(p string) DirPath {
	clean := filepath.ToSlash(filepath.Clean(p))
	if clean == "/" || clean == "." || clean == "" {
		return RootPath
	}
	return DirPath(clean + "/")
}

func (p DirPath) String() string {
	return string(p)
}

// IsRoot reports whether p is the filesystem root.
func (p DirPath) IsRoot() bool {
	return p == RootPath || p == ""
}

// Child returns the path of the subdirectory name.
func (p DirPath) Child(name string) DirPath {
	return p + DirPath(name) + "/"
}

// Join returns the full path of the entry name inside p.
func (p DirPath) Join(name string) string {
	return string(p) + name
}

// Parent returns the enclosing directory; the root is its own parent.
func (p DirPath) Parent() DirPath {
	if p.IsRoot() {
		return RootPath
	}
	trimmed := strings.TrimSuffix(string(p), "/")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return RootPath
	}
	return DirPath(trimmed[:idx+1])
}

// Base returns the last path component, or "" for the root.
func (p DirPath) Base() string {
	if p.IsRoot() {
		return ""
	}
	trimmed := strings.TrimSuffix(string(p), "/")
	return trimmed[strings.LastIndexByte(trimmed, '/')+1:]
}
