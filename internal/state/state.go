package state

import (
	"time"

	fsutil "github.com/kk-code-lab/asfb/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// Mode selects how the next key press is interpreted.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeAwaitingJump
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeAwaitingJump:
		return "jump"
	case ModeSearch:
		return "search"
	default:
		return "browse"
	}
}

// MaxPatternLength is the longest search pattern, in bytes.
const MaxPatternLength = 254

// FilterState decides which loaded entries are visible.
type FilterState struct {
	Pattern string
	// CaseSensitive is fixed for the duration of one search session.
	CaseSensitive bool
	// HideDotfiles persists until toggled.
	HideDotfiles bool
}

// Active reports whether a non-empty pattern narrows the listing.
func (f FilterState) Active() bool {
	return f.Pattern != ""
}

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	CurrentPath fsutil.DirPath
	Files       []FileEntry // Loaded entries that pass Filter, in listing order
	Truncated   bool        // Last load hit the entry capacity

	// Selection & viewport
	SelectedIndex int
	ScrollOffset  int

	// Input mode and filtering
	Mode   Mode
	Filter FilterState

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool      // Whether the system clipboard can be written
	LastYankTime       time.Time // Time of last successful yank (for flash effect)

	// Error state
	LastError error
}

// NewAppState returns the initial Browsing state for dir.
func NewAppState(dir fsutil.DirPath, hideDotfiles bool) *AppState {
	return &AppState{
		CurrentPath: dir,
		Files:       []FileEntry{},
		Filter:      FilterState{HideDotfiles: hideDotfiles},
	}
}

// ===== HELPER METHODS =====

// VisibleRows is the number of list rows between the header and status line.
func (s *AppState) VisibleRows() int {
	return max(1, s.ScreenHeight-2)
}

func (s *AppState) getCurrentFile() *FileEntry {
	if s.SelectedIndex >= 0 && s.SelectedIndex < len(s.Files) {
		return &s.Files[s.SelectedIndex]
	}
	return nil
}

// CurrentFile returns the selected entry, or nil for an empty listing.
func (s *AppState) CurrentFile() *FileEntry {
	return s.getCurrentFile()
}

// CurrentFilePath returns the absolute path of the selected entry, or the
// current directory when nothing is selected.
func (s *AppState) CurrentFilePath() string {
	file := s.getCurrentFile()
	if file == nil {
		return s.CurrentPath.String()
	}
	return s.CurrentPath.Join(file.Name)
}

// Searching reports whether keys are currently routed to the search prompt.
func (s *AppState) Searching() bool {
	return s.Mode == ModeSearch
}

func (s *AppState) selectByName(name string) bool {
	if name == "" {
		return false
	}
	for idx, file := range s.Files {
		if file.Name == name {
			s.SelectedIndex = idx
			return true
		}
	}
	return false
}

func (s *AppState) clampSelection() {
	if len(s.Files) == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex = clamp(s.SelectedIndex, 0, len(s.Files)-1)
}
