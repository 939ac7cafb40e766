package app

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/asfb/internal/fs"
	"github.com/kk-code-lab/asfb/internal/launch"
	statepkg "github.com/kk-code-lab/asfb/internal/state"
	inputui "github.com/kk-code-lab/asfb/internal/ui/input"
	renderui "github.com/kk-code-lab/asfb/internal/ui/render"
	"github.com/kk-code-lab/asfb/internal/watch"
	"github.com/sirupsen/logrus"
)

// Options configures a new Application.
type Options struct {
	// StartDir is the absolute directory shown first.
	StartDir    string
	LoadOptions fsutil.LoadOptions
	Handlers    launch.HandlerTable
	// AutoRefresh reloads the listing when the directory changes on disk.
	AutoRefresh bool
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	watcher    *watch.Watcher
	clipboard  clipboardWriter
	shouldQuit bool
}

// NewApplication initialises the terminal and loads the start directory.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApplication wires the components around an initialised screen.
func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	clip := systemClipboard()

	state := statepkg.NewAppState(fsutil.NewDirPath(opts.StartDir), opts.LoadOptions.HideDotfiles)
	state.ClipboardAvailable = clip.Available()
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)

	launcher := launch.ExecLauncher{
		Suspend: screen.Suspend,
		Resume: func() error {
			if err := screen.Resume(); err != nil {
				return err
			}
			screen.Sync()
			return nil
		},
	}

	reducer := statepkg.NewStateReducer(
		statepkg.WithLoadOptions(opts.LoadOptions),
		statepkg.WithHandlers(opts.Handlers),
		statepkg.WithLauncher(launcher),
	)
	if err := reducer.LoadInitial(state); err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", opts.StartDir, err)
	}

	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:    screen,
		state:     state,
		reducer:   reducer,
		renderer:  renderui.NewRenderer(screen),
		input:     inputHandler,
		actionCh:  actionCh,
		clipboard: clip,
	}

	if opts.AutoRefresh {
		watcher, err := watch.New(watch.DefaultDebounce)
		if err != nil {
			logrus.WithError(err).Warn("auto refresh disabled")
		} else {
			app.watcher = watcher
			app.followCurrentDir()
		}
	}

	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
	}
	app.screen.Fini()
	return err
}

// State exposes the current state for the caller after Run returns.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// followCurrentDir points the watcher at the directory being shown.
func (app *Application) followCurrentDir() {
	if app.watcher == nil {
		return
	}
	dir := filepath.Clean(app.state.CurrentPath.String())
	if err := app.watcher.Watch(dir); err != nil {
		logrus.WithField("path", dir).WithError(err).Warn("cannot watch directory")
	}
}

func (app *Application) watchChanges() <-chan struct{} {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Changes()
}
