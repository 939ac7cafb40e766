package launch

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

var commandBuilder = exec.Command

// ExecLauncher starts programs with os/exec. Suspend and Resume hand the
// terminal to the child and take it back; either may be nil.
type ExecLauncher struct {
	Suspend func() error
	Resume  func() error
}

// Launch implements Launcher.
func (l ExecLauncher) Launch(req Request) error {
	log := logrus.WithFields(logrus.Fields{
		"program":  req.Program,
		"strategy": req.Strategy.String(),
		"dir":      req.Dir,
	})
	log.Debug("launching")

	var err error
	switch req.Strategy {
	case ReplaceSelf:
		err = l.replaceSelf(req)
	case SpawnBlocking:
		err = l.runBlocking(req)
	case SpawnDetached:
		err = startDetached(req)
	default:
		err = fmt.Errorf("unknown launch strategy %v", req.Strategy)
	}
	if err != nil {
		log.WithError(err).Warn("launch failed")
	}
	return err
}

func (l ExecLauncher) suspend() error {
	if l.Suspend == nil {
		return nil
	}
	if err := l.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	return nil
}

func (l ExecLauncher) resume() error {
	if l.Resume == nil {
		return nil
	}
	if err := l.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	return nil
}

func spawnError(program string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSpawnFailed, program, err)
}

func (l ExecLauncher) runBlocking(req Request) (err error) {
	cmd := commandBuilder(req.Program, req.Args...)
	cmd.Dir = req.Dir

	tty, ttyErr := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if ttyErr == nil {
		defer func() {
			_ = tty.Close()
		}()
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := l.suspend(); err != nil {
		return err
	}
	defer func() {
		if resumeErr := l.resume(); resumeErr != nil && err == nil {
			err = resumeErr
		}
	}()

	if runErr := cmd.Run(); runErr != nil {
		return spawnError(req.Program, runErr)
	}
	return nil
}

// startDetached starts req in a new session with its standard streams on the
// null device and reaps it in the background.
func startDetached(req Request) error {
	cmd := commandBuilder(req.Program, req.Args...)
	cmd.Dir = req.Dir
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return spawnError(req.Program, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logrus.WithField("program", req.Program).WithError(err).Debug("detached program exited")
		}
	}()
	return nil
}
