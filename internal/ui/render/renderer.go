package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/asfb/internal/fs"
	statepkg "github.com/kk-code-lab/asfb/internal/state"
	"github.com/kk-code-lab/asfb/internal/textutil"
)

const (
	headerTitle   = "asfb"
	emptyListText = "<empty>"
	flashDuration = 100 * time.Millisecond
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state: a header row, VisibleRows list
// rows and a status row. A two-row screen gives the status row to the list.
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawFileList(state, w, h)
	if h > 2 {
		r.drawStatusLine(state, w, h-1)
	}

	r.screen.Show()
}

// drawHeader renders the title, the current directory and the position
// counter.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.HeaderFg)

	counter := ""
	if n := len(state.Files); n > 0 {
		counter = fmt.Sprintf(" %d/%d", state.SelectedIndex+1, n)
	}
	if state.Filter.HideDotfiles {
		counter += " [dotfiles hidden]"
	}

	x := r.drawTextLine(0, 0, w, headerTitle+" ", style.Bold(true))
	counterWidth := textutil.DisplayWidth(counter)
	pathWidth := w - x - counterWidth
	if pathWidth < 1 {
		counter = ""
		counterWidth = 0
		pathWidth = w - x
	}

	path := textutil.TruncateLeft(textutil.DisplayName(state.CurrentPath.String()), pathWidth)
	x = r.drawTextLine(x, 0, pathWidth, path, style)
	x = r.fill(x, 0, w-counterWidth, style)
	x = r.drawTextLine(x, 0, counterWidth, counter, style)
	r.fill(x, 0, w, style)
}

func (r *Renderer) drawFileList(state *statepkg.AppState, w, h int) {
	base := tcell.StyleDefault.Background(r.theme.Background)
	if h < 2 {
		return
	}

	if len(state.Files) == 0 {
		style := base.Foreground(r.theme.EmptyFg)
		x := r.drawTextLine(0, 1, w, emptyListText, style)
		r.fill(x, 1, w, style)
		return
	}

	rows := max(1, h-2)
	end := min(len(state.Files), state.ScrollOffset+rows)
	y := 1
	for idx := state.ScrollOffset; idx < end; idx++ {
		r.drawEntry(state, state.Files[idx], idx == state.SelectedIndex, y, w)
		y++
	}
}

func (r *Renderer) drawEntry(state *statepkg.AppState, entry statepkg.FileEntry, selected bool, y, w int) {
	style := r.theme.entryStyle(entry.Kind, selected)
	name := textutil.TruncateRight(textutil.DisplayName(entry.Name), w)

	start, end := matchSpan(name, state.Filter)
	matchStyle := style.Foreground(r.theme.MatchFg).Bold(true)
	if selected {
		matchStyle = style.Underline(true)
	}

	x := 0
	if start < end {
		x = r.drawTextLine(x, y, w, name[:start], style)
		x = r.drawTextLine(x, y, w-x, name[start:end], matchStyle)
		x = r.drawTextLine(x, y, w-x, name[end:], style)
	} else {
		x = r.drawTextLine(x, y, w, name, style)
	}
	// Selected rows are painted across the whole width.
	if selected {
		r.fill(x, y, w, style)
	}
}

// matchSpan returns the byte range of the active pattern in name, or an empty
// range when there is nothing to highlight.
func matchSpan(name string, filter statepkg.FilterState) (int, int) {
	if !filter.Active() {
		return 0, 0
	}
	idx := fsutil.IndexName(name, filter.Pattern, filter.CaseSensitive)
	if idx < 0 {
		return 0, 0
	}
	return idx, idx + len(filter.Pattern)
}

// drawStatusLine shows, in order of precedence, the last error, the search
// prompt, or the selected path with a key hint.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, y int) {
	normal := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	switch {
	case state.LastError != nil:
		style := normal.Foreground(r.theme.ErrorFg)
		text := textutil.SanitizeTerminalText(formatError(state.LastError))
		x := r.drawTextLine(0, y, w, textutil.TruncateRight(text, w), style)
		r.fill(x, y, w, normal)

	case state.Searching() || state.Filter.Active():
		prompt := textutil.SanitizeTerminalText(formatSearchPrompt(state.Filter))
		x := r.drawTextLine(0, y, w, textutil.TruncateLeft(prompt, w-1), normal)
		if state.Searching() && x < w {
			r.screen.SetContent(x, y, '█', nil, normal)
			x++
		}
		r.fill(x, y, w, normal)

	default:
		style := normal
		if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < flashDuration {
			style = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
		}

		text := textutil.DisplayName(state.CurrentFilePath())
		if state.Truncated {
			text += truncatedNotice
		}
		help := buildFooterHelpText(state)
		helpWidth := textutil.DisplayWidth(help)
		if helpWidth > w/2 {
			help = ""
			helpWidth = 0
		}

		x := r.drawTextLine(0, y, w-helpWidth, textutil.TruncateLeft(text, w-helpWidth), style)
		x = r.fill(x, y, w-helpWidth, normal)
		x = r.drawTextLine(x, y, helpWidth, help, normal.Dim(true))
		r.fill(x, y, w, normal)
	}
}

// drawTextLine draws text from startX, clipped to maxWidth columns. Zero-width
// runes are attached to the preceding cell. It returns the next free column.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		w := textutil.RuneWidth(runes[i])
		if w == 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}

		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && textutil.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) fill(x, y, maxX int, style tcell.Style) int {
	for ; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
	return x
}
