// Package screen provides the cell grid behind the terminal and the
// off-screen pads used to page long results.
package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Attr is a cell's text attribute.
type Attr uint8

const (
	Normal Attr = iota
	Bold
)

const tabWidth = 8

// Cell is one grid position. A zero Rune marks the right half of a
// double-width character.
type Cell struct {
	Rune rune
	Attr Attr
}

var blank = Cell{Rune: ' '}

// Buffer is a rows × cols grid of cells.
type Buffer struct {
	rows, cols int
	cells      []Cell
}

// NewBuffer creates a blank buffer. Negative sizes are treated as zero.
func NewBuffer(rows, cols int) *Buffer {
	b := &Buffer{}
	b.Resize(rows, cols)
	return b
}

// Size returns rows and columns.
func (b *Buffer) Size() (int, int) {
	return b.rows, b.cols
}

// Resize changes the dimensions, keeping whatever still fits in the
// top-left corner.
func (b *Buffer) Resize(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i] = blank
	}
	for y := 0; y < rows && y < b.rows; y++ {
		for x := 0; x < cols && x < b.cols; x++ {
			cells[y*cols+x] = b.cells[y*b.cols+x]
		}
	}
	b.rows, b.cols, b.cells = rows, cols, cells
}

// Clear blanks every cell.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = blank
	}
}

func (b *Buffer) in(y, x int) bool {
	return y >= 0 && y < b.rows && x >= 0 && x < b.cols
}

func (b *Buffer) set(y, x int, c Cell) {
	if b.in(y, x) {
		b.cells[y*b.cols+x] = c
	}
}

// Put writes text starting at (y, x), clipping at the right edge, and
// returns the number of cells advanced. Tabs expand to the next tab stop;
// other control characters are dropped.
func (b *Buffer) Put(y, x int, text string, attr Attr) int {
	if y < 0 || y >= b.rows {
		return 0
	}
	start := x
	for _, r := range text {
		if x >= b.cols {
			break
		}
		if r == '\t' {
			next := (x/tabWidth + 1) * tabWidth
			for ; x < next && x < b.cols; x++ {
				b.set(y, x, Cell{Rune: ' ', Attr: attr})
			}
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > b.cols {
			break
		}
		b.set(y, x, Cell{Rune: r, Attr: attr})
		if w == 2 {
			b.set(y, x+1, Cell{Attr: attr})
		}
		x += w
	}
	return x - start
}

// Box draws a single-line border around the buffer's edge.
func (b *Buffer) Box() {
	if b.rows < 2 || b.cols < 2 {
		return
	}
	border := lipgloss.NormalBorder()
	edge := func(s string) Cell {
		r := []rune(s)
		return Cell{Rune: r[0]}
	}
	last, right := b.rows-1, b.cols-1
	for x := 1; x < right; x++ {
		b.set(0, x, edge(border.Top))
		b.set(last, x, edge(border.Bottom))
	}
	for y := 1; y < last; y++ {
		b.set(y, 0, edge(border.Left))
		b.set(y, right, edge(border.Right))
	}
	b.set(0, 0, edge(border.TopLeft))
	b.set(0, right, edge(border.TopRight))
	b.set(last, 0, edge(border.BottomLeft))
	b.set(last, right, edge(border.BottomRight))
}

// CopyTo copies a window of b, starting at (srcY, srcX), into the
// rectangle top..bottom × left..right (inclusive) of dst. The copy is
// clipped to both buffers.
func (b *Buffer) CopyTo(dst *Buffer, srcY, srcX, top, left, bottom, right int) {
	for dy := top; dy <= bottom; dy++ {
		sy := srcY + dy - top
		if sy < 0 || sy >= b.rows {
			continue
		}
		for dx := left; dx <= right; dx++ {
			sx := srcX + dx - left
			if sx < 0 || sx >= b.cols {
				continue
			}
			dst.set(dy, dx, b.cells[sy*b.cols+sx])
		}
	}
}

// Cell returns the cell at (y, x); outside the grid it is blank.
func (b *Buffer) Cell(y, x int) Cell {
	if !b.in(y, x) {
		return blank
	}
	return b.cells[y*b.cols+x]
}

// Line returns row y as text with trailing blanks trimmed.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.cols : (y+1)*b.cols] {
		if c.Rune != 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Lines returns every row as trimmed text.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.rows)
	for y := range lines {
		lines[y] = b.Line(y)
	}
	return lines
}

// String is the whole grid as plain text.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Render draws the grid for display, styling bold runs with bold.
func (b *Buffer) Render(bold lipgloss.Style) string {
	var out strings.Builder
	for y := 0; y < b.rows; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		runAttr := Normal
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runAttr == Bold {
				out.WriteString(bold.Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for _, c := range b.cells[y*b.cols : (y+1)*b.cols] {
			if c.Rune == 0 {
				continue
			}
			if c.Attr != runAttr {
				flush()
				runAttr = c.Attr
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return out.String()
}

// ExpandTabs replaces tabs with spaces up to the next tab stop, counting
// from the start of s.
func ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// Width is the number of cells s occupies once tabs are expanded.
func Width(s string) int {
	return runewidth.StringWidth(ExpandTabs(s))
}
