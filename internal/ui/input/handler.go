package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/asfb/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asks the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) mode() statepkg.Mode {
	if ih.state == nil {
		return statepkg.ModeBrowsing
	}
	return ih.state.Mode
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	// Ctrl-C quits from every mode.
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	switch ih.mode() {
	case statepkg.ModeAwaitingJump:
		return ih.processJumpKey(ev)
	case statepkg.ModeSearch:
		return ih.processSearchKey(ev)
	default:
		return ih.processBrowseKey(ev)
	}
}

// processJumpKey hands the next key to the jump, whatever it is. Keys without
// a rune still end the jump.
func (ih *InputHandler) processJumpKey(ev *tcell.EventKey) bool {
	var r rune
	if ev.Key() == tcell.KeyRune {
		r = ev.Rune()
	}
	ih.actionChan <- statepkg.JumpToCharAction{Char: r}
	return true
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.FilterBackspaceAction{}
	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.FilterResetQueryAction{}
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.FilterAbortAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.FilterConfirmAction{}
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			switch r {
			case 'h', 'H':
				ih.actionChan <- statepkg.FilterBackspaceAction{}
			case 'w', 'W':
				ih.actionChan <- statepkg.FilterResetQueryAction{}
			}
			return true
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			// Normalize shifted alphabetic runes to reflect user intent (Shift+A => 'A')
			r = unicode.ToUpper(r)
		}
		if unicode.IsPrint(r) {
			ih.actionChan <- statepkg.FilterCharAction{Char: r}
		}
	}
	return true
}

func (ih *InputHandler) processBrowseKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyRight, tcell.KeyEnter:
		ih.actionChan <- statepkg.OpenSelectedAction{}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.GoUpAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.JumpTopAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.JumpEndAction{}
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.FilterClearAction{}
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
	case tcell.KeyRune:
		return ih.processBrowseRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processBrowseRune(r rune) bool {
	switch r {
	case 'j':
		ih.actionChan <- statepkg.NavigateDownAction{}
	case 'k':
		ih.actionChan <- statepkg.NavigateUpAction{}
	case 'l':
		ih.actionChan <- statepkg.OpenSelectedAction{}
	case 'h':
		ih.actionChan <- statepkg.GoUpAction{}
	case 't', '.':
		ih.actionChan <- statepkg.ToggleHiddenFilesAction{}
	case 'r':
		ih.actionChan <- statepkg.RefreshDirectoryAction{}
	case 'd':
		ih.actionChan <- statepkg.JumpTopAction{}
	case 'f':
		ih.actionChan <- statepkg.JumpFirstFileAction{}
	case 'e':
		ih.actionChan <- statepkg.JumpEndAction{}
	case 'g':
		ih.actionChan <- statepkg.StartJumpAction{}
	case '/':
		ih.actionChan <- statepkg.FilterStartAction{CaseSensitive: false}
	case '?':
		ih.actionChan <- statepkg.FilterStartAction{CaseSensitive: true}
	case 'y':
		ih.actionChan <- statepkg.YankPathAction{}
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}
	return true
}
