package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/asfb/internal/state"
)

func newHandler(mode statepkg.Mode) (*InputHandler, chan statepkg.Action) {
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{Mode: mode})
	return handler, actionChan
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func expectAction(t *testing.T, actionChan chan statepkg.Action, want statepkg.Action) {
	t.Helper()
	select {
	case got := <-actionChan:
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %T%+v, got %T%+v", want, want, got, got)
		}
	default:
		t.Fatalf("expected %T to be emitted", want)
	}
}

func expectNoAction(t *testing.T, actionChan chan statepkg.Action) {
	t.Helper()
	select {
	case got := <-actionChan:
		t.Fatalf("expected no action, got %T", got)
	default:
	}
}

func TestBrowseKeyBindings(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"j", runeKey('j'), statepkg.NavigateDownAction{}},
		{"down", specialKey(tcell.KeyDown), statepkg.NavigateDownAction{}},
		{"k", runeKey('k'), statepkg.NavigateUpAction{}},
		{"up", specialKey(tcell.KeyUp), statepkg.NavigateUpAction{}},
		{"l", runeKey('l'), statepkg.OpenSelectedAction{}},
		{"right", specialKey(tcell.KeyRight), statepkg.OpenSelectedAction{}},
		{"enter", specialKey(tcell.KeyEnter), statepkg.OpenSelectedAction{}},
		{"h", runeKey('h'), statepkg.GoUpAction{}},
		{"left", specialKey(tcell.KeyLeft), statepkg.GoUpAction{}},
		{"t", runeKey('t'), statepkg.ToggleHiddenFilesAction{}},
		{"dot", runeKey('.'), statepkg.ToggleHiddenFilesAction{}},
		{"r", runeKey('r'), statepkg.RefreshDirectoryAction{}},
		{"d", runeKey('d'), statepkg.JumpTopAction{}},
		{"home", specialKey(tcell.KeyHome), statepkg.JumpTopAction{}},
		{"f", runeKey('f'), statepkg.JumpFirstFileAction{}},
		{"e", runeKey('e'), statepkg.JumpEndAction{}},
		{"end", specialKey(tcell.KeyEnd), statepkg.JumpEndAction{}},
		{"g", runeKey('g'), statepkg.StartJumpAction{}},
		{"slash", runeKey('/'), statepkg.FilterStartAction{CaseSensitive: false}},
		{"question", runeKey('?'), statepkg.FilterStartAction{CaseSensitive: true}},
		{"escape", specialKey(tcell.KeyEscape), statepkg.FilterClearAction{}},
		{"ctrl-f", specialKey(tcell.KeyCtrlF), statepkg.ScrollPageDownAction{}},
		{"pgdn", specialKey(tcell.KeyPgDn), statepkg.ScrollPageDownAction{}},
		{"ctrl-b", specialKey(tcell.KeyCtrlB), statepkg.ScrollPageUpAction{}},
		{"pgup", specialKey(tcell.KeyPgUp), statepkg.ScrollPageUpAction{}},
		{"y", runeKey('y'), statepkg.YankPathAction{}},
		{"ctrl-z", specialKey(tcell.KeyCtrlZ), statepkg.SuspendAction{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler, actionChan := newHandler(statepkg.ModeBrowsing)
			if !handler.ProcessEvent(tc.ev) {
				t.Fatalf("%s should not quit", tc.name)
			}
			expectAction(t, actionChan, tc.want)
		})
	}
}

func TestBrowseUnboundKeysAreIgnored(t *testing.T) {
	handler, actionChan := newHandler(statepkg.ModeBrowsing)
	for _, r := range []rune{'x', 'Z', '1', ' '} {
		if !handler.ProcessEvent(runeKey(r)) {
			t.Fatalf("%q should not quit", r)
		}
	}
	handler.ProcessEvent(specialKey(tcell.KeyTab))
	expectNoAction(t, actionChan)
}

func TestQuitKeys(t *testing.T) {
	for _, mode := range []statepkg.Mode{statepkg.ModeBrowsing, statepkg.ModeSearch, statepkg.ModeAwaitingJump} {
		handler, actionChan := newHandler(mode)
		if handler.ProcessEvent(specialKey(tcell.KeyCtrlC)) {
			t.Fatalf("ctrl-c in %s mode should quit", mode)
		}
		expectAction(t, actionChan, statepkg.QuitAction{})
	}

	handler, actionChan := newHandler(statepkg.ModeBrowsing)
	if handler.ProcessEvent(runeKey('q')) {
		t.Fatal("q while browsing should quit")
	}
	expectAction(t, actionChan, statepkg.QuitAction{})
}

func TestSearchModeTreatsLettersAsPattern(t *testing.T) {
	handler, actionChan := newHandler(statepkg.ModeSearch)

	for _, r := range []rune{'q', 'j', '/', 'é'} {
		if !handler.ProcessEvent(runeKey(r)) {
			t.Fatalf("%q in search mode should not quit", r)
		}
		expectAction(t, actionChan, statepkg.FilterCharAction{Char: r})
	}
}

func TestSearchModeShiftUppercases(t *testing.T) {
	handler, actionChan := newHandler(statepkg.ModeSearch)
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModShift))
	expectAction(t, actionChan, statepkg.FilterCharAction{Char: 'A'})
}

func TestSearchModeEditingKeys(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"backspace", specialKey(tcell.KeyBackspace), statepkg.FilterBackspaceAction{}},
		{"delete", specialKey(tcell.KeyBackspace2), statepkg.FilterBackspaceAction{}},
		{"ctrl-w", specialKey(tcell.KeyCtrlW), statepkg.FilterResetQueryAction{}},
		{"escape", specialKey(tcell.KeyEscape), statepkg.FilterAbortAction{}},
		{"enter", specialKey(tcell.KeyEnter), statepkg.FilterConfirmAction{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler, actionChan := newHandler(statepkg.ModeSearch)
			handler.ProcessEvent(tc.ev)
			expectAction(t, actionChan, tc.want)
		})
	}
}

func TestSearchModeIgnoresNavigationKeys(t *testing.T) {
	handler, actionChan := newHandler(statepkg.ModeSearch)
	handler.ProcessEvent(specialKey(tcell.KeyDown))
	handler.ProcessEvent(specialKey(tcell.KeyPgDn))
	handler.ProcessEvent(specialKey(tcell.KeyTab))
	expectNoAction(t, actionChan)
}

func TestJumpModeConsumesNextKey(t *testing.T) {
	handler, actionChan := newHandler(statepkg.ModeAwaitingJump)
	handler.ProcessEvent(runeKey('q'))
	expectAction(t, actionChan, statepkg.JumpToCharAction{Char: 'q'})

	handler.ProcessEvent(specialKey(tcell.KeyEscape))
	expectAction(t, actionChan, statepkg.JumpToCharAction{Char: 0})
}

func TestResizeEmitsResizeAction(t *testing.T) {
	handler, actionChan := newHandler(statepkg.ModeSearch)
	handler.ProcessEvent(tcell.NewEventResize(120, 40))
	expectAction(t, actionChan, statepkg.ResizeAction{Width: 120, Height: 40})
}

func TestNilStateBrowses(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.ProcessEvent(runeKey('j'))
	expectAction(t, actionChan, statepkg.NavigateDownAction{})
}
