package tui

import (
	"context"
	"io"
	"strings"

	"vlcrc/internal/keys"
	"vlcrc/internal/screen"
	"vlcrc/pkg/types"
)

// fakeTerminal is an in-memory Terminal. It hands out scripted keys and
// records the screen each time a key is read.
type fakeTerminal struct {
	buf        *screen.Buffer
	keys       []types.Key
	readErr    error
	frames     []string
	refreshes  int
	cursor     keys.Position
	refreshErr error
}

func newFakeTerminal(rows, cols int, ks ...types.Key) *fakeTerminal {
	return &fakeTerminal{buf: screen.NewBuffer(rows, cols), keys: ks, readErr: io.EOF}
}

func (f *fakeTerminal) Clear() { f.buf.Clear() }

func (f *fakeTerminal) DrawText(y, x int, text string, attr Attr) { f.buf.Put(y, x, text, attr) }

func (f *fakeTerminal) MoveCursor(y, x int) { f.cursor = keys.Position{Row: y, Col: x} }

func (f *fakeTerminal) Refresh() error {
	f.refreshes++
	return f.refreshErr
}

func (f *fakeTerminal) ReadKey() (types.Key, error) {
	f.frames = append(f.frames, f.buf.String())
	if len(f.keys) == 0 {
		return "", f.readErr
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeTerminal) Size() (int, int) { return f.buf.Size() }

func (f *fakeTerminal) NewSurface(rows, cols int) (Surface, error) {
	pad, err := screen.NewPad(rows, cols, f.buf, f.Refresh)
	if err != nil {
		return nil, err
	}
	return pad, nil
}

// line returns row y of a recorded frame.
func (f *fakeTerminal) line(frame, y int) string {
	return lineOf(f.frames[frame], y)
}

func lineOf(frame string, y int) string {
	lines := strings.Split(frame, "\n")
	if y < 0 || y >= len(lines) {
		return ""
	}
	return lines[y]
}

// fakeIssuer records commands and answers from a script.
type fakeIssuer struct {
	commands  []string
	responses map[string]string
	errs      []error
	onIssue   func(command string)
}

func (f *fakeIssuer) Issue(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if f.onIssue != nil {
		f.onIssue(command)
	}
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return f.responses[command], nil
}
