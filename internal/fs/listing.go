package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/gobwas/glob"
)

// DefaultCapacity bounds how many entries a single listing keeps.
const DefaultCapacity = 32768

var (
	ErrDirectoryUnreadable = errors.New("directory unreadable")
	ErrEntryNameTooLong    = errors.New("entry name too long")
	ErrCapacityExceeded    = errors.New("entry capacity exceeded")
)

// DirectoryError is returned when a directory cannot be opened or enumerated.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrDirectoryUnreadable.
func (e *DirectoryError) Is(target error) bool {
	return target == ErrDirectoryUnreadable
}

// LoadOptions controls which entries a Loader keeps.
type LoadOptions struct {
	HideDotfiles   bool
	FollowSymlinks bool
	// Capacity caps the number of stored entries; zero means DefaultCapacity.
	Capacity int
	Ignore   []glob.Glob
}

func (o LoadOptions) capacity() int {
	if o.Capacity <= 0 {
		return DefaultCapacity
	}
	return o.Capacity
}

// admit reports whether name is stored. tooLong is set only for names that
// would have been stored but exceed MaxNameLength.
func (o LoadOptions) admit(name string) (ok, tooLong bool) {
	if IsDotLink(name) {
		return false, false
	}
	if o.HideDotfiles && IsHidden(name) {
		return false, false
	}
	if !validName(name) {
		return false, true
	}
	return !o.ignored(name), false
}

func (o LoadOptions) ignored(name string) bool {
	for _, g := range o.Ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// LoadResult is a sorted listing plus what was left out of it.
type LoadResult struct {
	Entries []Entry
	// Truncated is set when entries were dropped because Capacity was reached.
	Truncated bool
	// SkippedNames counts entries dropped for exceeding MaxNameLength.
	SkippedNames int
}

// Err summarises the recoverable problems of a load, or nil.
func (r LoadResult) Err() error {
	var errs []error
	if r.Truncated {
		errs = append(errs, ErrCapacityExceeded)
	}
	if r.SkippedNames > 0 {
		errs = append(errs, fmt.Errorf("%w (%d skipped)", ErrEntryNameTooLong, r.SkippedNames))
	}
	return errors.Join(errs...)
}

// Loader reads a directory into a fresh, sorted entry list.
type Loader interface {
	Load(dir DirPath, opts LoadOptions) (LoadResult, error)
}

// DiskLoader reads directories from the local filesystem.
type DiskLoader struct{}

// Load enumerates dir. The returned slice is always newly allocated, so a
// failed load never touches a listing the caller already holds.
func (DiskLoader) Load(dir DirPath, opts LoadOptions) (LoadResult, error) {
	dirEntries, err := os.ReadDir(dir.String())
	if err != nil {
		return LoadResult{}, &DirectoryError{Path: dir.String(), Err: err}
	}

	limit := opts.capacity()
	result := LoadResult{Entries: make([]Entry, 0, min(len(dirEntries), limit))}

	for _, d := range dirEntries {
		name := d.Name()
		if ok, tooLong := opts.admit(name); !ok {
			if tooLong {
				result.SkippedNames++
			}
			continue
		}

		kind := kindFromMode(d.Type())
		if d.Type()&os.ModeSymlink != 0 && opts.FollowSymlinks {
			if info, err := os.Stat(dir.Join(name)); err == nil {
				kind = kindFromMode(info.Mode())
			}
		}
		if kind == KindUnknown {
			continue
		}

		if len(result.Entries) >= limit {
			result.Truncated = true
			continue
		}
		result.Entries = append(result.Entries, Entry{Name: name, Kind: kind})
	}

	SortEntries(result.Entries)
	return result, nil
}
