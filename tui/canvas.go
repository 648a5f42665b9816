package tui

import (
	"image"
	"strings"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/internal/grapheme"
	"github.com/mattn/go-runewidth"
)

// Geometry fits the screen bands to terminal cells.
func Geometry() editor.Geometry {
	return editor.Geometry{Margin: 1, Header: 2, Footer: 2}
}

type cell struct {
	text string
	face editor.Face
}

// Frame is one committed screen.
type Frame struct {
	Cells  [][]Cell
	Cursor image.Point
	// HasCursor is false when the cursor row is scrolled out.
	HasCursor bool
	Full      bool
	Seq       int
}

// Cell is one terminal column. Text is empty for the tail of a wide cluster.
type Cell struct {
	Text string
	Face editor.Face
}

// Lines returns the frame as plain text rows with trailing blanks trimmed.
func (f Frame) Lines() []string {
	out := make([]string, len(f.Cells))
	for i, row := range f.Cells {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteString(c.Text)
		}
		out[i] = strings.TrimRight(sb.String(), " ")
	}
	return out
}

// Canvas implements editor.Canvas on a grid of cells. Every Commit hands a
// snapshot to the send function.
type Canvas struct {
	w, h   int
	cells  [][]cell
	cursor image.Point
	hasCur bool
	seq    int
	send   func(Frame)
}

var _ editor.Canvas = (*Canvas)(nil)

// NewCanvas returns a blank cols x rows canvas.
func NewCanvas(cols, rows int, send func(Frame)) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &Canvas{w: cols, h: rows, send: send, cells: make([][]cell, rows)}
	for y := range c.cells {
		c.cells[y] = make([]cell, cols)
	}
	c.Clear(image.Rect(0, 0, cols, rows))
	return c
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

func (c *Canvas) LineHeight() int { return 1 }

// MeasureWidth counts terminal columns.
func (c *Canvas) MeasureWidth(text string, _ editor.Face) int {
	return runewidth.StringWidth(text)
}

func (c *Canvas) Clear(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, c.w, c.h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.cells[y][x] = cell{text: " "}
		}
	}
	if c.hasCur && c.cursor.In(r) {
		c.hasCur = false
	}
}

func (c *Canvas) DrawText(x, y int, text string, f editor.Face) {
	if y < 0 || y >= c.h {
		return
	}
	for _, g := range grapheme.Split(text) {
		w := runewidth.StringWidth(g)
		if w == 0 {
			continue
		}
		if x+w > c.w {
			return
		}
		if x >= 0 {
			c.cells[y][x] = cell{text: g, face: f}
			for i := 1; i < w; i++ {
				c.cells[y][x+i] = cell{face: f}
			}
		}
		x += w
	}
}

// DrawCursor marks the cell at (x, y); height is always one row here.
func (c *Canvas) DrawCursor(x, y, _ int) {
	c.cursor = image.Pt(min(max(x, 0), c.w-1), y)
	c.hasCur = y >= 0 && y < c.h
}

func (c *Canvas) Commit(full bool) error {
	c.seq++
	if c.send == nil {
		return nil
	}
	c.send(c.snapshot(full))
	return nil
}

func (c *Canvas) snapshot(full bool) Frame {
	f := Frame{Cursor: c.cursor, HasCursor: c.hasCur, Full: full, Seq: c.seq, Cells: make([][]Cell, c.h)}
	for y, row := range c.cells {
		out := make([]Cell, len(row))
		for x, cl := range row {
			out[x] = Cell{Text: cl.text, Face: cl.face}
		}
		f.Cells[y] = out
	}
	return f
}
