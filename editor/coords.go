package editor

import "github.com/iw2rmb/inkwell/buffer"

// DisplayPos is a cursor position in display space: a display row and a
// grapheme column within that row.
type DisplayPos struct {
	Row int
	Col int
}

// LogicalToDisplay maps a logical position onto the layout.
//
// Segments of one logical line are separated by one consumed space, so each
// segment after the first starts one column later than the previous segment
// ended. A column at the very end of a segment resolves to that segment; the
// end of the line resolves to the last segment. Unknown lines map to (0,0).
func LogicalToDisplay(l Layout, p buffer.Pos) DisplayPos {
	first := l.firstRow(p.Row)
	if first < 0 || p.Col < 0 {
		return DisplayPos{}
	}
	remaining := p.Col
	row := first
	for ; row < len(l.Lines) && l.Lines[row].Source == p.Row; row++ {
		seg := l.Lines[row].Len
		if remaining <= seg {
			return DisplayPos{Row: row, Col: remaining}
		}
		remaining -= seg + 1
	}
	// Past the end of the line: clamp to the end of its last segment.
	last := row - 1
	return DisplayPos{Row: last, Col: l.Lines[last].Len}
}

// DisplayToLogical maps a display position back to the document. The column
// is clamped to the segment; an out-of-range row maps to (0,0).
func DisplayToLogical(l Layout, row, col int) buffer.Pos {
	if row < 0 || row >= len(l.Lines) {
		return buffer.Pos{}
	}
	src := l.SourceMap[row]
	logical := 0
	for r := l.firstRow(src); r >= 0 && r < row; r++ {
		logical += l.Lines[r].Len + 1
	}
	logical += clampInt(col, 0, l.Lines[row].Len)
	return buffer.Pos{Row: src, Col: logical}
}

// verticalTarget returns the logical position one display row up or down
// from p, keeping the display column. ok is false at the document edges.
func verticalTarget(l Layout, p buffer.Pos, delta int) (buffer.Pos, bool) {
	dp := LogicalToDisplay(l, p)
	target := clampInt(dp.Row+delta, 0, len(l.Lines)-1)
	if target == dp.Row {
		return p, false
	}
	return DisplayToLogical(l, target, dp.Col), true
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
