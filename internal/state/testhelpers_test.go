package state

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	fsutil "github.com/kk-code-lab/asfb/internal/fs"
	"github.com/kk-code-lab/asfb/internal/launch"
)

// memLoader serves listings from memory and counts loads.
type memLoader struct {
	dirs  map[fsutil.DirPath][]FileEntry
	loads int
}

func newMemLoader() *memLoader {
	return &memLoader{dirs: make(map[fsutil.DirPath][]FileEntry)}
}

func (m *memLoader) set(dir string, entries ...FileEntry) {
	m.dirs[fsutil.NewDirPath(dir)] = entries
}

func (m *memLoader) Load(dir fsutil.DirPath, opts fsutil.LoadOptions) (fsutil.LoadResult, error) {
	m.loads++
	raw, ok := m.dirs[dir]
	if !ok {
		return fsutil.LoadResult{}, &fsutil.DirectoryError{Path: dir.String(), Err: os.ErrNotExist}
	}
	out := make([]FileEntry, 0, len(raw))
	for _, e := range raw {
		if opts.HideDotfiles && e.IsHidden() {
			continue
		}
		out = append(out, e)
	}
	fsutil.SortEntries(out)
	return fsutil.LoadResult{Entries: out}, nil
}

func dir(name string) FileEntry {
	return FileEntry{Name: name, Kind: fsutil.KindDirectory}
}

func file(name string) FileEntry {
	return FileEntry{Name: name, Kind: fsutil.KindFile}
}

func numberedFiles(n int) []FileEntry {
	out := make([]FileEntry, n)
	for i := range out {
		out[i] = file(fmt.Sprintf("file%03d.txt", i))
	}
	return out
}

// recordingLauncher records requests and fails those whose strategy is in fail.
type recordingLauncher struct {
	requests []launch.Request
	fail     map[launch.Strategy]error
}

func (l *recordingLauncher) Launch(req launch.Request) error {
	l.requests = append(l.requests, req)
	if err, ok := l.fail[req.Strategy]; ok {
		return err
	}
	return nil
}

func newLoadedState(t *testing.T, r *StateReducer, path string, height int) *AppState {
	t.Helper()
	state := NewAppState(fsutil.NewDirPath(path), false)
	state.ScreenWidth = 80
	state.ScreenHeight = height
	if err := r.LoadInitial(state); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	return state
}

func mustReduce(t *testing.T, r *StateReducer, state *AppState, actions ...Action) {
	t.Helper()
	for _, action := range actions {
		if _, err := r.Reduce(state, action); err != nil {
			t.Fatalf("reduce %T: %v", action, err)
		}
	}
}

func fileNames(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func tempTree(t *testing.T, dirs, files []string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		mkdir(t, filepath.Join(root, d))
	}
	for _, f := range files {
		touch(t, filepath.Join(root, f))
	}
	return root
}
