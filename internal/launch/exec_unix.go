//go:build !windows

package launch

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

var execFn = unix.Exec

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// replaceSelf only returns on failure, with the terminal restored.
func (l ExecLauncher) replaceSelf(req Request) error {
	if err := l.suspend(); err != nil {
		return err
	}
	if req.Dir != "" {
		if prev, err := os.Getwd(); err == nil {
			defer func() {
				_ = os.Chdir(prev)
			}()
		}
		_ = os.Chdir(req.Dir)
	}
	argv := append([]string{filepath.Base(req.Program)}, req.Args...)
	err := execFn(req.Program, argv, os.Environ())
	if resumeErr := l.resume(); resumeErr != nil {
		return resumeErr
	}
	return spawnError(req.Program, err)
}
