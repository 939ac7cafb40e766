package render

import (
	"errors"
	"fmt"
	"strings"

	fsutil "github.com/kk-code-lab/asfb/internal/fs"
	"github.com/kk-code-lab/asfb/internal/launch"
	statepkg "github.com/kk-code-lab/asfb/internal/state"
)

const truncatedNotice = "  [listing truncated]"

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles help hints for the browsing footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.Mode != statepkg.ModeBrowsing {
		return nil
	}

	dotfiles := "hide"
	if state.Filter.HideDotfiles {
		dotfiles = "show"
	}

	segments := []string{
		"/?: search",
		"g: jump",
		fmt.Sprintf(".: %s dotfiles", dotfiles),
	}
	if state.ClipboardAvailable {
		segments = append(segments, "y: yank")
	}
	return append(segments, "q: quit")
}

func formatSearchPrompt(filter statepkg.FilterState) string {
	sensitivity := "Case insensitive"
	if filter.CaseSensitive {
		sensitivity = "Case sensitive"
	}
	return fmt.Sprintf("Search term (%s): %s", sensitivity, filter.Pattern)
}

// formatError shortens the errors the browser expects to see often.
func formatError(err error) string {
	var dirErr *fsutil.DirectoryError
	switch {
	case errors.As(err, &dirErr):
		return "cannot read " + dirErr.Path
	case errors.Is(err, launch.ErrNoHandler):
		return err.Error()
	default:
		return "error: " + err.Error()
	}
}
