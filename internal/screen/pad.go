package screen

import "vlcrc/internal/errors"

// Pad is an off-screen buffer, possibly larger than the screen, shown a
// window at a time.
type Pad struct {
	*Buffer
	target  *Buffer
	present func() error
}

// NewPad creates a pad that presents onto target and then calls present
// to push the result to the display.
func NewPad(rows, cols int, target *Buffer, present func() error) (*Pad, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.ErrSurfaceTooSmall
	}
	return &Pad{Buffer: NewBuffer(rows, cols), target: target, present: present}, nil
}

// DrawText writes text at (y, x) of the pad.
func (p *Pad) DrawText(y, x int, text string) {
	p.Put(y, x, text, Normal)
}

// Present copies the window starting at (srcY, srcX) into the target
// rectangle top..bottom × left..right and displays it.
func (p *Pad) Present(srcY, srcX, top, left, bottom, right int) error {
	p.CopyTo(p.target, srcY, srcX, top, left, bottom, right)
	if p.present == nil {
		return nil
	}
	return p.present()
}
