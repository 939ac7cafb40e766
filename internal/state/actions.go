package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type OpenSelectedAction struct{} // l, Enter: enter directory or launch file
type GoUpAction struct{}         // h: leave directory
type JumpTopAction struct{}
type JumpFirstFileAction struct{}
type JumpEndAction struct{}

// ===== JUMP ACTIONS =====

type StartJumpAction struct{}
type JumpToCharAction struct {
	Char rune
}

// ===== FILTER ACTIONS =====

type FilterStartAction struct {
	CaseSensitive bool
}
type FilterCharAction struct {
	Char rune
}
type FilterBackspaceAction struct{}
type FilterResetQueryAction struct{} // Ctrl-W: clear pattern, keep searching
type FilterAbortAction struct{}      // Esc while searching
type FilterConfirmAction struct{}    // Enter while searching
type FilterClearAction struct{}      // Esc while browsing

// ===== SCROLL ACTIONS =====

type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type ToggleHiddenFilesAction struct{}
type RefreshDirectoryAction struct{}
type YankPathAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
