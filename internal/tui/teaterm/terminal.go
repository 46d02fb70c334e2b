// Package teaterm runs the front-end on a bubbletea program.
//
// bubbletea owns the tty: raw mode, the alternate screen, key decoding and
// resize events. The dispatcher draws into a cell buffer on its own
// goroutine and each Refresh hands a rendered frame to the program; keys
// come back over a buffered channel so ReadKey can block like a classic
// curses getch.
package teaterm

import (
	"io"
	"os"
	"sync"

	"vlcrc/internal/errors"
	"vlcrc/internal/log"
	"vlcrc/internal/screen"
	"vlcrc/internal/tui"
	"vlcrc/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const (
	defaultRows = 24
	defaultCols = 80
	keyBuffer   = 64
)

// frameMsg carries a rendered screen to the program.
type frameMsg string

// Terminal implements tui.Terminal on top of a bubbletea program.
type Terminal struct {
	prog *tea.Program
	buf  *screen.Buffer
	keys chan types.Key
	done chan struct{}

	mu         sync.Mutex
	rows, cols int
	runErr     error
}

// New creates the terminal. Extra program options are passed through to
// bubbletea; the alternate screen is always used.
func New(opts ...tea.ProgramOption) *Terminal {
	rows, cols := defaultRows, defaultCols
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		rows, cols = h, w
	}
	t := &Terminal{
		buf:  screen.NewBuffer(rows, cols),
		keys: make(chan types.Key, keyBuffer),
		done: make(chan struct{}),
		rows: rows,
		cols: cols,
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	t.prog = tea.NewProgram(model{t: t}, opts...)
	return t
}

// Start runs the bubbletea program in the background.
func (t *Terminal) Start() {
	go func() {
		defer close(t.done)
		if _, err := t.prog.Run(); err != nil {
			t.mu.Lock()
			t.runErr = err
			t.mu.Unlock()
		}
	}()
}

// Close stops the program, restores the tty and reports whether the
// program failed.
func (t *Terminal) Close() error {
	t.prog.Quit()
	<-t.done
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runErr != nil {
		return errors.NewTerminalError("terminal program failed", errors.TerminalInit, t.runErr)
	}
	return nil
}

// Clear blanks the screen, picking up any pending resize first.
func (t *Terminal) Clear() {
	rows, cols := t.Size()
	if r, c := t.buf.Size(); r != rows || c != cols {
		t.buf.Resize(rows, cols)
	}
	t.buf.Clear()
}

func (t *Terminal) DrawText(y, x int, text string, attr tui.Attr) {
	t.buf.Put(y, x, text, attr)
}

// MoveCursor is a no-op: the program hides the cursor.
func (t *Terminal) MoveCursor(y, x int) {}

// Refresh sends the current buffer to the program.
func (t *Terminal) Refresh() error {
	select {
	case <-t.done:
		return errors.NewTerminalError("terminal program has exited", errors.TerminalInit, io.ErrClosedPipe)
	default:
	}
	t.prog.Send(frameMsg(t.buf.Render(tui.TitleStyle)))
	return nil
}

// ReadKey blocks for the next key. Once the program has exited it
// returns io.EOF.
func (t *Terminal) ReadKey() (types.Key, error) {
	select {
	case k := <-t.keys:
		return k, nil
	case <-t.done:
		return "", io.EOF
	}
}

// Size returns the latest size reported by the program.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows, t.cols
}

func (t *Terminal) NewSurface(rows, cols int) (tui.Surface, error) {
	pad, err := screen.NewPad(rows, cols, t.buf, t.Refresh)
	if err != nil {
		return nil, err
	}
	return pad, nil
}

func (t *Terminal) resize(rows, cols int) {
	t.mu.Lock()
	t.rows, t.cols = rows, cols
	t.mu.Unlock()
}

// deliver queues a key for ReadKey, dropping it if the dispatcher has
// fallen too far behind.
func (t *Terminal) deliver(k types.Key) {
	select {
	case t.keys <- k:
	default:
		log.LogWithFields(log.F("key", k.String())).Debug("Key buffer full, key dropped")
	}
}
