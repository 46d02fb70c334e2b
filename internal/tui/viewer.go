package tui

import (
	"strings"

	"vlcrc/internal/errors"
	"vlcrc/internal/screen"
	"vlcrc/pkg/types"

	"github.com/charmbracelet/bubbles/key"
)

// The pager window starts below the header.
const windowTop = 4

// Viewer shows a command response in a boxed, scrollable window and
// waits for the user to dismiss it.
type Viewer struct {
	term   Terminal
	keymap types.KeyMap
	// redraw repaints the base layout once the viewer is dismissed.
	redraw func() error
}

// NewViewer creates a viewer drawing on term. redraw is called on every
// exit path.
func NewViewer(term Terminal, keymap types.KeyMap, redraw func() error) *Viewer {
	return &Viewer{term: term, keymap: keymap, redraw: redraw}
}

// Show displays text under title and blocks until a key other than
// PageUp/PageDown is pressed.
func (v *Viewer) Show(title, text string) error {
	err := v.page(title, text)
	if rerr := v.redraw(); err == nil {
		err = rerr
	}
	return err
}

func (v *Viewer) page(title, text string) error {
	v.term.Clear()
	v.term.DrawText(0, 2, appTitle, AttrBold)
	v.term.DrawText(0, 40, resultsHint, AttrNormal)
	v.term.DrawText(1, 4, title, AttrNormal)
	v.term.DrawText(2, 35, scrollHint, AttrNormal)

	lines := ResultLines(text)
	if lines == nil {
		v.term.DrawText(windowTop, 4, noResults, AttrNormal)
		v.term.MoveCursor(0, 0)
		if err := v.term.Refresh(); err != nil {
			return err
		}
		// Any key, or a failed read, dismisses the notice.
		_, _ = v.term.ReadKey()
		return nil
	}
	if err := v.term.Refresh(); err != nil {
		return err
	}

	surface, height, err := newResultSurface(v.term, lines)
	if err != nil {
		return err
	}
	rows, cols := v.term.Size()
	bottom, right := rows-1, cols-1
	p := newPager(height, bottom-windowTop+1)

	for {
		v.term.MoveCursor(0, 0)
		if err := surface.Present(p.offset, 0, windowTop, 0, bottom, right); err != nil {
			return errors.NewTerminalError("failed to show results", errors.TerminalResize, err)
		}
		k, err := v.term.ReadKey()
		if err != nil {
			return nil
		}
		switch {
		case key.Matches(k, v.keymap.PageUp):
			p.pageUp()
		case key.Matches(k, v.keymap.PageDown):
			p.pageDown()
		default:
			return nil
		}
	}
}

// ResultLines splits a response into display lines. The empty line left
// by a final terminator is dropped, carriage returns are removed and
// tabs expanded. An empty response has no lines.
func ResultLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = screen.ExpandTabs(strings.TrimRight(l, "\r"))
	}
	return lines
}

// newResultSurface draws lines inside a box on a surface sized to fit
// them, and returns the surface with its height.
func newResultSurface(term Terminal, lines []string) (Surface, int, error) {
	width := 0
	for _, l := range lines {
		if w := screen.Width(l); w > width {
			width = w
		}
	}
	height := len(lines) + 2
	surface, err := term.NewSurface(height, width+2)
	if err != nil {
		return nil, 0, err
	}
	surface.Box()
	for y, l := range lines {
		surface.DrawText(y+1, 1, l)
	}
	return surface, height, nil
}

// pager is the scroll state of one paging session.
type pager struct {
	offset int
	step   int
	limit  int
}

func newPager(surfaceHeight, visibleHeight int) pager {
	step := (visibleHeight - 1) / 2
	if step < 0 {
		step = 0
	}
	limit := surfaceHeight - visibleHeight
	if limit < 0 {
		limit = 0
	}
	return pager{step: step, limit: limit}
}

func (p *pager) pageUp() {
	p.offset -= p.step
	if p.offset < 0 {
		p.offset = 0
	}
}

func (p *pager) pageDown() {
	p.offset += p.step
	if p.offset > p.limit {
		p.offset = p.limit
	}
}
