package render

import (
	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/asfb/internal/fs"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderFg    tcell.Color
	DirectoryFg tcell.Color
	FileFg      tcell.Color
	UnknownFg   tcell.Color
	// Selected rows swap to a background keyed by entry kind.
	SelectedFileBg      tcell.Color
	SelectedDirectoryBg tcell.Color
	SelectedFg          tcell.Color
	MatchFg             tcell.Color
	EmptyFg             tcell.Color
	FooterBg            tcell.Color
	FooterFg            tcell.Color
	ErrorFg             tcell.Color
	FlashBg             tcell.Color
	FlashFg             tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:          tcell.ColorDefault,
		Foreground:          tcell.ColorDefault,
		HeaderFg:            tcell.ColorDefault,
		DirectoryFg:         tcell.ColorBlue,
		FileFg:              tcell.ColorDefault,
		UnknownFg:           tcell.ColorLightSlateGray,
		SelectedFileBg:      tcell.ColorWhite,
		SelectedDirectoryBg: tcell.ColorBlue,
		SelectedFg:          tcell.ColorBlack,
		MatchFg:             tcell.ColorYellow,
		EmptyFg:             tcell.ColorBlue,
		FooterBg:            tcell.ColorDefault,
		FooterFg:            tcell.ColorDefault,
		ErrorFg:             tcell.ColorRed,
		FlashBg:             tcell.ColorGreen,
		FlashFg:             tcell.ColorBlack,
	}
}

func (t ColorTheme) entryStyle(kind fsutil.Kind, selected bool) tcell.Style {
	base := tcell.StyleDefault.Background(t.Background)
	if selected {
		bg := t.SelectedFileBg
		if kind == fsutil.KindDirectory {
			bg = t.SelectedDirectoryBg
		}
		return base.Background(bg).Foreground(t.SelectedFg)
	}
	switch kind {
	case fsutil.KindDirectory:
		return base.Foreground(t.DirectoryFg)
	case fsutil.KindUnknown:
		return base.Foreground(t.UnknownFg)
	default:
		return base.Foreground(t.FileFg)
	}
}
