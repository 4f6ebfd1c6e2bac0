package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one composed terminal cell
// Width 0 marks the trailing half of a wide rune
type Cell struct {
	Rune    rune
	Fg, Bg  RGB
	Reverse bool
	Width   int

	depth float64
}

// Buffer composes a frame before flushing it to a screen
// Glyphs resolve by depth, higher wins; backgrounds paint independently
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: RgbHUD, Bg: RgbBackground, Width: 1, depth: math.Inf(-1)}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns a copy of the cell at x,y
func (b *Buffer) Cell(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Plot writes a glyph if depth is not below the glyph already there
func (b *Buffer) Plot(x, y int, r rune, fg RGB, depth float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	if depth < dst.depth {
		return
	}
	dst.Rune = r
	dst.Fg = fg
	dst.Width = 1
	dst.depth = depth
	b.touched[y*b.width+x] = true
}

// SetBg paints the background, preserving the glyph
func (b *Buffer) SetBg(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Bg = bg
}

// Highlight reverses the cell at x,y
func (b *Buffer) Highlight(x, y int) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Reverse = true
}

// Text writes s from x on row y above every glyph, returning the columns used
// Wide runes take two cells; a wide rune that would straddle the edge is dropped
func (b *Buffer) Text(x, y int, s string, fg, bg RGB) int {
	if y < 0 || y >= b.height {
		return 0
	}
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > b.width {
			break
		}
		if col >= 0 {
			idx := y*b.width + col
			b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg, Width: w, depth: math.Inf(1)}
			b.touched[idx] = true
			if w == 2 {
				b.cells[idx+1] = Cell{Fg: fg, Bg: bg, Width: 0, depth: math.Inf(1)}
				b.touched[idx+1] = true
			}
		}
		col += w
	}
	return col - x
}

// Flush writes every cell to screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			if c.Width == 0 {
				continue
			}
			st := style(c.Fg, c.Bg)
			if c.Reverse {
				st = st.Reverse(true)
			}
			screen.SetContent(x, y, c.Rune, nil, st)
		}
	}
	screen.Show()
}
