//go:build windows

package launch

import (
	"errors"
	"os/exec"
)

func detach(*exec.Cmd) {}

func (l ExecLauncher) replaceSelf(req Request) error {
	return spawnError(req.Program, errors.New("replacing the process is not supported on windows"))
}
