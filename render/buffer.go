package render

import "github.com/gdamore/tcell/v2"

// Cell is one composited terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs tcell.AttrMask
}

// BlendMode selects how Set composites onto the existing cell
type BlendMode uint8

const (
	BlendReplace BlendMode = iota // Dst = Src
	BlendAlpha                    // Dst = Src*a + Dst*(1-a)
	BlendAdd                      // Dst = clamp(Dst + Src*a)
	BlendMax                      // Dst = max(Dst, Src) per channel
	BlendScreen                   // Dst = 1 - (1-Dst)*(1-Src)
)

// RenderBuffer is a compositor over a flat cell array
// Untouched backgrounds are filled with RgbBackground at flush
type RenderBuffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
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

// Clear resets all cells using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Fg: RgbText, Bg: RgbBackground}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *RenderBuffer) Width() int  { return b.width }
func (b *RenderBuffer) Height() int { return b.height }

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x,y; zero Cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites rune and foreground; a zero rune keeps the existing glyph
func (b *RenderBuffer) Set(x, y int, r rune, fg RGB, mode BlendMode, alpha float64, attrs tcell.AttrMask) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	if r != 0 {
		dst.Rune = r
		dst.Attrs = attrs
	}
	dst.Fg = composite(dst.Fg, fg, mode, alpha)
}

// SetBg composites the background and marks the cell touched
func (b *RenderBuffer) SetBg(x, y int, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = composite(b.cells[idx].Bg, bg, mode, alpha)
	b.touched[idx] = true
}

// SetWithBg writes an opaque cell
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg}
	b.touched[idx] = true
}

// SetString writes text left to right, clipped at the buffer edge
// Returns the column after the last written rune
func (b *RenderBuffer) SetString(x, y int, s string, fg, bg RGB) int {
	for _, r := range s {
		b.SetWithBg(x, y, r, fg, bg)
		x++
	}
	return x
}

func composite(dst, src RGB, mode BlendMode, alpha float64) RGB {
	switch mode {
	case BlendAlpha:
		return Blend(dst, src, alpha)
	case BlendAdd:
		return Add(dst, Scale(src, alpha))
	case BlendMax:
		return Max(dst, src)
	case BlendScreen:
		return Blend(dst, Screen(dst, src), alpha)
	default:
		return src
	}
}

// FlushToScreen writes the buffer to the screen; the caller calls Show
func (b *RenderBuffer) FlushToScreen(s tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.cells[row+x]
			bg := c.Bg
			if !b.touched[row+x] {
				bg = RgbBackground
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(c.Fg.Color()).Background(bg.Color()).Attributes(c.Attrs)
			s.SetContent(x, y, r, nil, style)
		}
	}
}
