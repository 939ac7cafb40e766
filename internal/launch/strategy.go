package launch

import (
	"errors"
	"fmt"

	fsutil "github.com/kk-code-lab/asfb/internal/fs"
)

var (
	ErrNoHandler   = errors.New("no handler configured")
	ErrSpawnFailed = errors.New("spawn failed")
)

// Strategy says how a program is started relative to the browser.
type Strategy int

const (
	// ReplaceSelf execs the selected file in place of the browser.
	ReplaceSelf Strategy = iota
	// SpawnBlocking runs a console program on the terminal and waits for it.
	SpawnBlocking
	// SpawnDetached starts a graphical program in its own session.
	SpawnDetached
)

func (s Strategy) String() string {
	switch s {
	case ReplaceSelf:
		return "replace"
	case SpawnBlocking:
		return "blocking"
	case SpawnDetached:
		return "detached"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Request is a fully resolved launch.
type Request struct {
	Strategy Strategy
	Program  string
	Args     []string
	// Dir is the working directory of the started program.
	Dir string
}

// Launcher starts programs. A successful ReplaceSelf never returns.
type Launcher interface {
	Launch(req Request) error
}

// ExecRequest builds the ReplaceSelf request for an executable entry.
func ExecRequest(dir fsutil.DirPath, name string) Request {
	return Request{
		Strategy: ReplaceSelf,
		Program:  dir.Join(name),
		Dir:      dir.String(),
	}
}

// Resolve looks up the handler for name and builds the matching request.
func Resolve(table HandlerTable, dir fsutil.DirPath, name string) (Request, error) {
	h, ok := table.Lookup(name)
	if !ok || len(h.Command) == 0 {
		return Request{}, fmt.Errorf("%w for %s", ErrNoHandler, name)
	}
	strategy := SpawnDetached
	if h.Console {
		strategy = SpawnBlocking
	}
	args := make([]string, 0, len(h.Command))
	args = append(args, h.Command[1:]...)
	args = append(args, name)
	return Request{
		Strategy: strategy,
		Program:  h.Command[0],
		Args:     args,
		Dir:      dir.String(),
	}, nil
}
