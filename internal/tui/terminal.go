// Package tui is the interactive front-end: the help layout, the result
// pager and the loop that turns keypresses into remote-control commands.
//
// It draws through the Terminal interface only, so the loop runs the same
// against the bubbletea back end and against the in-memory terminal used
// by the tests.
package tui

import (
	"context"

	"vlcrc/internal/screen"
	"vlcrc/pkg/types"
)

// Attr is a text attribute for DrawText.
type Attr = screen.Attr

const (
	AttrNormal = screen.Normal
	AttrBold   = screen.Bold
)

// Terminal is what the front-end needs from a display.
type Terminal interface {
	Clear()
	DrawText(y, x int, text string, attr Attr)
	MoveCursor(y, x int)
	Refresh() error
	// ReadKey blocks for the next keypress. An error ends the session.
	ReadKey() (types.Key, error)
	Size() (rows, cols int)
	// NewSurface creates an off-screen surface that may be larger than
	// the display.
	NewSurface(rows, cols int) (Surface, error)
}

// Surface is an off-screen area shown through a window of the display.
type Surface interface {
	Box()
	DrawText(y, x int, text string)
	// Present copies the surface, starting at (srcY, srcX), into the
	// display rectangle top..bottom × left..right and shows it.
	Present(srcY, srcX, top, left, bottom, right int) error
}

// Issuer sends one command to the remote-control endpoint and returns the
// full response.
type Issuer interface {
	Issue(ctx context.Context, command string) (string, error)
}
