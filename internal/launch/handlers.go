package launch

import "strings"

// Handler maps a file extension to the program that opens it.
type Handler struct {
	// Extension includes the leading dot; the empty extension is the default.
	Extension string
	Command   []string
	// Console handlers share the terminal and block until they exit.
	Console bool
}

// HandlerTable is an ordered list of handlers. The first entry whose
// extension equals the file's wins; the default entry is only consulted
// when nothing else matches.
type HandlerTable []Handler

// Extension returns the text from the last dot in name, or "" when name has
// no dot or its only dot is the leading one.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}
	return name[idx:]
}

// Lookup returns the handler for name.
func (t HandlerTable) Lookup(name string) (Handler, bool) {
	ext := Extension(name)
	if ext != "" {
		for _, h := range t {
			if h.Extension != "" && h.Extension == ext {
				return h, true
			}
		}
	}
	for _, h := range t {
		if h.Extension == "" {
			return h, true
		}
	}
	return Handler{}, false
}

// DefaultHandlers returns the built-in table. editor becomes the default
// console handler; when empty, vi is used.
func DefaultHandlers(editor []string) HandlerTable {
	if len(editor) == 0 {
		editor = []string{"vi"}
	}
	table := HandlerTable{{Extension: "", Command: editor, Console: true}}
	graphical := []struct {
		program string
		exts    []string
	}{
		{"zathura", []string{".pdf", ".djvu"}},
		{"feh", []string{".png", ".jpeg", ".jpg", ".gif"}},
		{"mpv", []string{".mp4", ".mkv", ".avi"}},
	}
	for _, g := range graphical {
		for _, ext := range g.exts {
			table = append(table, Handler{Extension: ext, Command: []string{g.program}})
		}
	}
	return table
}
