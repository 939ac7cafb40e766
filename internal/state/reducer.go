package state

import (
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/asfb/internal/fs"
	"github.com/kk-code-lab/asfb/internal/launch"
	"github.com/sirupsen/logrus"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	loader       fsutil.Loader
	loadOptions  fsutil.LoadOptions
	launcher     launch.Launcher
	handlers     launch.HandlerTable
	isExecutable func(path string) bool
}

// ReducerOption configures a StateReducer.
type ReducerOption func(*StateReducer)

// WithLoader replaces the filesystem loader.
func WithLoader(loader fsutil.Loader) ReducerOption {
	return func(r *StateReducer) {
		r.loader = loader
	}
}

// WithLoadOptions sets capacity, symlink and ignore settings for every load.
// HideDotfiles is always taken from the state's filter.
func WithLoadOptions(opts fsutil.LoadOptions) ReducerOption {
	return func(r *StateReducer) {
		r.loadOptions = opts
	}
}

// WithLauncher sets the launcher used to open files.
func WithLauncher(l launch.Launcher) ReducerOption {
	return func(r *StateReducer) {
		r.launcher = l
	}
}

// WithHandlers sets the extension handler table. An empty table keeps the
// built-in one.
func WithHandlers(table launch.HandlerTable) ReducerOption {
	return func(r *StateReducer) {
		if len(table) > 0 {
			r.handlers = table
		}
	}
}

// WithExecutableCheck overrides how executable files are detected.
func WithExecutableCheck(fn func(path string) bool) ReducerOption {
	return func(r *StateReducer) {
		r.isExecutable = fn
	}
}

// NewStateReducer creates a new reducer
func NewStateReducer(opts ...ReducerOption) *StateReducer {
	r := &StateReducer{
		loader:       fsutil.DiskLoader{},
		handlers:     launch.DefaultHandlers(nil),
		isExecutable: fsutil.IsExecutable,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadInitial reads state.CurrentPath for the first time.
func (r *StateReducer) LoadInitial(state *AppState) error {
	if err := r.rederive(state, state.Filter, ""); err != nil {
		return err
	}
	state.SelectedIndex = 0
	state.ScrollOffset = InitialScroll(0, len(state.Files), state.VisibleRows())
	return nil
}

// Reduce applies an action to state and returns the same, mutated state.
// Errors leave the listing, selection and scroll as they were.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if _, ok := action.(ResizeAction); !ok {
		state.LastError = nil
	}

	switch state.Mode {
	case ModeAwaitingJump:
		return r.reduceAwaitingJump(state, action)
	case ModeSearch:
		return r.reduceSearch(state, action)
	default:
		return r.reduceBrowsing(state, action)
	}
}

func (r *StateReducer) reduceBrowsing(state *AppState, action Action) (*AppState, error) {
	rows := state.VisibleRows()
	total := len(state.Files)

	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		if total == 0 {
			return state, nil
		}
		state.SelectedIndex = min(total-1, state.SelectedIndex+1)
		state.ScrollOffset = StepScrollDown(state.SelectedIndex, state.ScrollOffset, total, rows)
		return state, nil

	case NavigateUpAction:
		if total == 0 {
			return state, nil
		}
		state.SelectedIndex = max(0, state.SelectedIndex-1)
		state.ScrollOffset = StepScrollUp(state.SelectedIndex, state.ScrollOffset, total, rows)
		return state, nil

	case OpenSelectedAction:
		return state, r.openSelected(state)

	case GoUpAction:
		if state.CurrentPath.IsRoot() {
			return state, nil
		}
		left := state.CurrentPath.Base()
		return state, r.changeDirectory(state, state.CurrentPath.Parent(), left)

	case JumpTopAction:
		state.SelectedIndex = 0
		state.ScrollOffset = 0
		return state, nil

	case JumpFirstFileAction:
		if total == 0 {
			return state, nil
		}
		idx := clamp(fsutil.FirstFileIndex(state.Files), 0, total-1)
		if IsOffscreen(idx, state.ScrollOffset, rows) {
			state.ScrollOffset = Recenter(idx, total, rows)
		}
		state.SelectedIndex = idx
		return state, nil

	case JumpEndAction:
		if total == 0 {
			return state, nil
		}
		state.SelectedIndex = total - 1
		state.ScrollOffset = maxScroll(total, rows)
		return state, nil

	case ScrollPageDownAction:
		r.pageDown(state)
		return state, nil

	case ScrollPageUpAction:
		r.pageUp(state)
		return state, nil

	// ===== MODES =====

	case StartJumpAction:
		state.Mode = ModeAwaitingJump
		return state, nil

	case FilterStartAction:
		filter := state.Filter
		filter.Pattern = ""
		filter.CaseSensitive = a.CaseSensitive
		if err := r.rederive(state, filter, selectedName(state)); err != nil {
			return state, err
		}
		state.Mode = ModeSearch
		return state, nil

	case FilterClearAction:
		return state, r.clearPattern(state)

	// ===== VIEW =====

	case ToggleHiddenFilesAction:
		filter := state.Filter
		filter.HideDotfiles = !filter.HideDotfiles
		return state, r.rederive(state, filter, selectedName(state))

	case RefreshDirectoryAction:
		return state, r.rederive(state, state.Filter, selectedName(state))

	case ResizeAction:
		r.resize(state, a)
		return state, nil
	}

	return state, nil
}

func (r *StateReducer) reduceAwaitingJump(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {
	case JumpToCharAction:
		state.Mode = ModeBrowsing
		r.jumpToChar(state, a.Char)
		return state, nil
	case ResizeAction:
		r.resize(state, a)
		return state, nil
	case RefreshDirectoryAction:
		return state, r.rederive(state, state.Filter, selectedName(state))
	}
	// Any other key consumes the jump without moving.
	state.Mode = ModeBrowsing
	return state, nil
}

func (r *StateReducer) reduceSearch(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {
	case FilterCharAction:
		pattern, ok := narrowPattern(state.Filter.Pattern, a.Char)
		if !ok {
			return state, nil
		}
		return state, r.setPattern(state, pattern)

	case FilterBackspaceAction:
		pattern, ok := widenPattern(state.Filter.Pattern)
		if !ok {
			return state, nil
		}
		return state, r.setPattern(state, pattern)

	case FilterResetQueryAction:
		return state, r.clearPattern(state)

	case FilterAbortAction:
		state.Mode = ModeBrowsing
		return state, r.clearPattern(state)

	case FilterConfirmAction:
		state.Mode = ModeBrowsing
		state.SelectedIndex = 0
		state.ScrollOffset = 0
		if len(state.Files) == 1 {
			return state, r.openSelected(state)
		}
		return state, nil

	case RefreshDirectoryAction:
		return state, r.rederive(state, state.Filter, selectedName(state))

	case ResizeAction:
		r.resize(state, a)
		return state, nil
	}
	return state, nil
}

// ===== PRIVATE HELPER METHODS =====

func selectedName(state *AppState) string {
	if file := state.CurrentFile(); file != nil {
		return file.Name
	}
	return ""
}

func (r *StateReducer) load(dir fsutil.DirPath, hideDotfiles bool) (fsutil.LoadResult, error) {
	opts := r.loadOptions
	opts.HideDotfiles = hideDotfiles
	result, err := r.loader.Load(dir, opts)
	if err != nil {
		logrus.WithField("path", dir.String()).WithError(err).Warn("directory load failed")
		return result, err
	}
	if loadErr := result.Err(); loadErr != nil {
		logrus.WithFields(logrus.Fields{
			"path":    dir.String(),
			"stored":  len(result.Entries),
			"skipped": result.SkippedNames,
		}).WithError(loadErr).Info("directory listing incomplete")
	}
	return result, nil
}

// rederive reloads the current directory from disk and applies filter. The
// state is only touched once the load succeeded; keepName is reselected when
// still listed, otherwise the selection falls back to the first entry.
func (r *StateReducer) rederive(state *AppState, filter FilterState, keepName string) error {
	result, err := r.load(state.CurrentPath, filter.HideDotfiles)
	if err != nil {
		return err
	}
	state.Files = ApplyFilter(result.Entries, filter)
	state.Filter = filter
	state.Truncated = result.Truncated
	if !state.selectByName(keepName) {
		state.SelectedIndex = 0
	}
	state.settleViewport()
	return nil
}

func (r *StateReducer) setPattern(state *AppState, pattern string) error {
	filter := state.Filter
	filter.Pattern = pattern
	return r.rederive(state, filter, selectedName(state))
}

func (r *StateReducer) clearPattern(state *AppState) error {
	return r.setPattern(state, "")
}

// changeDirectory moves to target with an empty pattern and selects
// selectName when present.
func (r *StateReducer) changeDirectory(state *AppState, target fsutil.DirPath, selectName string) error {
	filter := state.Filter
	filter.Pattern = ""

	result, err := r.load(target, filter.HideDotfiles)
	if err != nil {
		return err
	}

	state.CurrentPath = target
	state.Files = ApplyFilter(result.Entries, filter)
	state.Filter = filter
	state.Truncated = result.Truncated
	state.Mode = ModeBrowsing
	if !state.selectByName(selectName) {
		state.SelectedIndex = 0
	}
	state.ScrollOffset = InitialScroll(state.SelectedIndex, len(state.Files), state.VisibleRows())

	logrus.WithField("path", target.String()).Debug("changed directory")
	return nil
}

func (r *StateReducer) openSelected(state *AppState) error {
	file := state.CurrentFile()
	if file == nil {
		return nil
	}

	if file.IsDir() {
		return r.changeDirectory(state, state.CurrentPath.Child(file.Name), "")
	}
	if r.launcher == nil {
		return nil
	}

	name := file.Name
	if r.isExecutable != nil && r.isExecutable(state.CurrentPath.Join(name)) {
		err := r.launcher.Launch(launch.ExecRequest(state.CurrentPath, name))
		if err == nil {
			return nil
		}
		logrus.WithField("file", name).WithError(err).Info("exec failed, falling back to handler")
	}

	req, err := launch.Resolve(r.handlers, state.CurrentPath, name)
	if err != nil {
		return err
	}
	if err := r.launcher.Launch(req); err != nil {
		return err
	}
	if req.Strategy == launch.SpawnBlocking {
		// Console programs may have changed the directory.
		return r.rederive(state, state.Filter, name)
	}
	return nil
}

func (r *StateReducer) jumpToChar(state *AppState, ch rune) {
	target := fsutil.FoldRune(ch)
	for idx, file := range state.Files {
		first, size := utf8.DecodeRuneInString(file.Name)
		if size == 0 || fsutil.FoldRune(first) != target {
			continue
		}
		state.SelectedIndex = idx
		rows := state.VisibleRows()
		if IsOffscreen(idx, state.ScrollOffset, rows) {
			state.ScrollOffset = Recenter(idx, len(state.Files), rows)
		}
		return
	}
}

func (r *StateReducer) pageDown(state *AppState) {
	total := len(state.Files)
	if total == 0 {
		return
	}
	rows := state.VisibleRows()
	switch {
	case total-state.ScrollOffset < rows:
		state.SelectedIndex = total - 1
	case state.ScrollOffset+2*rows < total:
		state.SelectedIndex += rows
		state.ScrollOffset += rows
	default:
		state.ScrollOffset = maxScroll(total, rows)
		state.SelectedIndex = min(total-1, state.SelectedIndex+rows)
	}
	state.settleViewport()
}

func (r *StateReducer) pageUp(state *AppState) {
	if len(state.Files) == 0 {
		return
	}
	rows := state.VisibleRows()
	switch {
	case state.ScrollOffset == 0:
		state.SelectedIndex = 0
	case state.ScrollOffset-rows > 0:
		state.SelectedIndex -= rows
		state.ScrollOffset -= rows
	default:
		state.ScrollOffset = 0
		state.SelectedIndex = max(0, state.SelectedIndex-rows)
	}
	state.settleViewport()
}

func (r *StateReducer) resize(state *AppState, a ResizeAction) {
	state.ScreenWidth = a.Width
	state.ScreenHeight = a.Height
	state.settleViewport()
}
