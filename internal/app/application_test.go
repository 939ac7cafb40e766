package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/asfb/internal/fs"
	statepkg "github.com/kk-code-lab/asfb/internal/state"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(func() {
		screen.Fini()
	})
	return screen
}

func withClipboard(t *testing.T, clip clipboardWriter) {
	t.Helper()
	orig := systemClipboard
	systemClipboard = func() clipboardWriter { return clip }
	t.Cleanup(func() {
		systemClipboard = orig
	})
}

// newTestApplication builds an application over a temp directory holding the
// given files. Names ending in "/" are created as directories.
func newTestApplication(t *testing.T, clip clipboardWriter, names ...string) *Application {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return newTestApplicationIn(t, clip, Options{StartDir: dir})
}

func newTestApplicationIn(t *testing.T, clip clipboardWriter, opts Options) *Application {
	t.Helper()
	withClipboard(t, clip)
	app, err := newApplication(newTestScreen(t), opts)
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	if app.watcher != nil {
		t.Cleanup(func() {
			_ = app.watcher.Close()
		})
	}
	return app
}

func fileNames(state *statepkg.AppState) string {
	names := make([]string, len(state.Files))
	for i, f := range state.Files {
		names[i] = f.Name
	}
	return strings.Join(names, ",")
}

func TestNewApplicationLoadsStartDirectory(t *testing.T) {
	app := newTestApplication(t, &fakeClipboard{available: true}, "b.txt", "sub/", "A.md", ".hidden")

	if got := fileNames(app.state); got != "sub,.hidden,A.md,b.txt" {
		t.Fatalf("unexpected listing %q", got)
	}
	if app.state.SelectedIndex != 0 || app.state.ScrollOffset != 0 {
		t.Fatalf("expected selection at top, got sel=%d top=%d", app.state.SelectedIndex, app.state.ScrollOffset)
	}
	if app.state.ScreenWidth != 80 || app.state.ScreenHeight != 24 {
		t.Fatalf("screen size not copied: %dx%d", app.state.ScreenWidth, app.state.ScreenHeight)
	}
	if !app.state.ClipboardAvailable {
		t.Fatalf("clipboard availability should come from the clipboard")
	}
}

func TestNewApplicationHidesDotfilesWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".env", "main.go"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	app := newTestApplicationIn(t, &fakeClipboard{}, Options{
		StartDir:    dir,
		LoadOptions: fsutil.LoadOptions{HideDotfiles: true},
	})

	if got := fileNames(app.state); got != "main.go" {
		t.Fatalf("unexpected listing %q", got)
	}
}

func TestNewApplicationFailsOnMissingDirectory(t *testing.T) {
	withClipboard(t, &fakeClipboard{})
	_, err := newApplication(newTestScreen(t), Options{StartDir: filepath.Join(t.TempDir(), "gone")})
	if err == nil {
		t.Fatalf("expected error for missing start directory")
	}
}

func TestKeyEventsDriveReducer(t *testing.T) {
	app := newTestApplication(t, &fakeClipboard{}, "sub/", "sub/inner.txt", "file.txt")

	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone))
	app.processActions()
	if app.state.SelectedIndex != 1 {
		t.Fatalf("expected j to move selection, got %d", app.state.SelectedIndex)
	}

	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	app.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	app.processActions()

	if base := app.state.CurrentPath.Base(); base != "sub" {
		t.Fatalf("expected to enter sub, now in %q", app.state.CurrentPath)
	}
	if got := fileNames(app.state); got != "inner.txt" {
		t.Fatalf("unexpected listing %q", got)
	}
}

func TestQuitKeyStopsLoop(t *testing.T) {
	app := newTestApplication(t, &fakeClipboard{}, "a")

	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !app.shouldQuit {
		t.Fatalf("expected q to request quit")
	}
	// Actions queued after quit are dropped.
	if app.handleAction(statepkg.NavigateDownAction{}) {
		t.Fatalf("no actions should be handled after quit")
	}
}

func TestResizeEventUpdatesState(t *testing.T) {
	app := newTestApplication(t, &fakeClipboard{}, "a")

	app.handleEvent(tcell.NewEventResize(100, 40))
	app.processActions()

	if app.state.ScreenWidth != 100 || app.state.ScreenHeight != 40 {
		t.Fatalf("expected 100x40, got %dx%d", app.state.ScreenWidth, app.state.ScreenHeight)
	}
}

func TestRunProcessesInjectedKeys(t *testing.T) {
	app := newTestApplication(t, &fakeClipboard{}, "a", "b", "c")
	screen := app.screen.(tcell.SimulationScreen)

	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if app.state.SelectedIndex != 2 {
		t.Fatalf("expected selection 2 after two j presses, got %d", app.state.SelectedIndex)
	}
}

func TestAutoRefreshFollowsCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	app := newTestApplicationIn(t, &fakeClipboard{}, Options{StartDir: dir, AutoRefresh: true})
	if app.watcher == nil {
		t.Skip("fsnotify unavailable")
	}
	if got := app.watcher.Dir(); got != dir {
		t.Fatalf("watcher should follow start dir, got %q", got)
	}

	app.handleAction(statepkg.OpenSelectedAction{})
	if got := app.watcher.Dir(); got != filepath.Join(dir, "sub") {
		t.Fatalf("watcher should follow into sub, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "sub", "new.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-app.watchChanges():
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}
	app.handleAction(statepkg.RefreshDirectoryAction{})
	if got := fileNames(app.state); got != "new.txt" {
		t.Fatalf("refresh should pick up new file, got %q", got)
	}
}
