package tui

import (
	"vlcrc/internal/errors"
	"vlcrc/internal/keys"
	"vlcrc/pkg/types"
)

const (
	appTitle = "VLC Control Interface"

	resultsHint = "Press a key when done"
	scrollHint  = "PageUp/Down to scroll long results"
	noResults   = "No results from server"
)

var bookmarkNotes = []string{
	"1-9,0 to play bookmark 1-10",
	"Shift + 1-9,0 to set bookmarks",
	"Pause to stop frame-by-frame",
}

// statusPos is where transient messages go.
var statusPos = keys.Position{Row: 1, Col: 10}

// DrawBase paints the help layout: title, quit hint, every labeled key
// and the bookmark notes.
func DrawBase(term Terminal, layout keys.Layout, keymap types.KeyMap) error {
	quit := keymap.Quit.Help()
	term.Clear()
	term.DrawText(0, 2, appTitle, AttrBold)
	term.DrawText(0, 42, quit.Key+" "+quit.Desc, AttrNormal)
	for _, l := range layout.Labels {
		term.DrawText(l.Row, l.Col, l.Text, AttrNormal)
	}
	for i, note := range bookmarkNotes {
		term.DrawText(layout.Notes.Row+i, layout.Notes.Col, note, AttrNormal)
	}
	term.MoveCursor(0, 0)
	if err := term.Refresh(); err != nil {
		return errors.NewTerminalError("failed to draw layout", errors.TerminalInit, err)
	}
	return nil
}
