package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pinball/parameter/visual"
)

// Cell is one terminal position in the compositor
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Screen is the subset of tcell.Screen the renderer writes to
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Show()
	Sync()
}

// Buffer is a frame compositor, flushed to the screen once per frame
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

var blankCell = Cell{Rune: ' ', Style: tcell.StyleDefault.Background(visual.RgbBackground)}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blank using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = blankCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y; out of bounds reads a blank cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return blankCell
	}
	return b.cells[y*b.width+x]
}

// Set writes rune and style, replacing the cell
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// SetFg writes rune and foreground while preserving the existing background
func (b *Buffer) SetFg(x, y int, r rune, fg tcell.Color) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Style = dst.Style.Foreground(fg)
}

// SetBg updates the background while preserving rune and foreground
func (b *Buffer) SetBg(x, y int, bg tcell.Color) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Style = dst.Style.Background(bg)
}

// Fill paints a rectangle, clipped to the buffer
func (b *Buffer) Fill(x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, r, style)
		}
	}
}

// DrawText writes s starting at x, y and returns the number of cells used
func (b *Buffer) DrawText(x, y int, s string, style tcell.Style) int {
	n := 0
	for _, r := range s {
		b.Set(x+n, y, r, style)
		n++
	}
	return n
}

// Flush copies the buffer to the screen and shows it
func (b *Buffer) Flush(screen Screen) {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.cells[row+x]
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	screen.Show()
}
