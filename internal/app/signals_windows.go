//go:build windows

package app

import "os"

func contSignals() []os.Signal {
	return nil
}

func quitSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
