package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/asfb/internal/state"
	"github.com/sirupsen/logrus"
)

const flashInterval = 100 * time.Millisecond

// Run processes events until the user quits. Each event is handled to
// completion before the screen is redrawn.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	stopPolling := make(chan struct{})
	defer close(stopPolling)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-stopPolling:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var sigQuitCh chan os.Signal
	if sigs := quitSignals(); len(sigs) > 0 {
		sigQuitCh = make(chan os.Signal, 1)
		signal.Notify(sigQuitCh, sigs...)
		defer signal.Stop(sigQuitCh)
	}

	// The yank flash needs one extra frame once it expires.
	var flashCh <-chan time.Time

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-app.watchChanges():
			if app.handleAction(statepkg.RefreshDirectoryAction{}) {
				renderPending = true
			}
		case <-flashCh:
			flashCh = nil
			renderPending = true
		case sig := <-sigQuitCh:
			logrus.WithField("signal", sig.String()).Info("quitting on signal")
			app.shouldQuit = true
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
		if app.flashing() && flashCh == nil {
			flashCh = time.After(flashInterval)
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) flashing() bool {
	return !app.state.LastYankTime.IsZero() && time.Since(app.state.LastYankTime) < flashInterval
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil || app.shouldQuit {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		return app.handleClipboard()
	}

	prevPath := app.state.CurrentPath
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
	if app.state.CurrentPath != prevPath {
		app.followCurrentDir()
	}
	return true
}
