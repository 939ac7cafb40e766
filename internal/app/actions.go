package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

type clipboardWriter interface {
	Available() bool
	WriteAll(text string) error
}

type atottoClipboard struct{}

func (atottoClipboard) Available() bool {
	return !clipboard.Unsupported
}

func (atottoClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// systemClipboard is swapped in tests.
var systemClipboard = func() clipboardWriter {
	return atottoClipboard{}
}

func (app *Application) handleClipboard() bool {
	if app.clipboard == nil || !app.state.ClipboardAvailable {
		return false
	}

	path := filepath.Clean(app.state.CurrentFilePath())
	if err := app.clipboard.WriteAll(path); err != nil {
		app.state.LastError = fmt.Errorf("copy to clipboard: %w", err)
		logrus.WithError(err).Warn("clipboard write failed")
		return true
	}
	app.state.LastError = nil
	app.state.LastYankTime = time.Now()
	logrus.WithField("path", path).Debug("yanked path")
	return true
}
