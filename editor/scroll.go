package editor

// Viewport is the vertical window onto the layout, in display rows.
type Viewport struct {
	Offset int
	Rows   int
}

// deadZone returns the top and bottom margins of the typewriter band.
func deadZone(rows int) (top, bottom int) {
	top = int(0.3 * float64(rows))
	bottom = int(0.7 * float64(rows))
	if bottom < top+1 {
		bottom = top + 1
	}
	return top, bottom
}

// Center places row in the middle of the viewport, as on open.
func (v *Viewport) Center(row int) {
	v.Offset = maxInt(0, row-v.rows()/2)
}

// Follow applies the typewriter policy for a cursor on display row row of a
// layout with total rows, and reports whether the offset moved.
//
// The offset only moves when the cursor leaves the band between the top and
// bottom margins. Near the end of the document the band may leave blank rows
// below the last line; beyond that the offset never exceeds what the band
// needs, so deleting text pulls the view back.
func (v *Viewport) Follow(row, total int) bool {
	prev := v.Offset
	rows := v.rows()
	top, bottom := deadZone(rows)

	off := v.Offset
	if row < off+top {
		off = row - top
	} else if row >= off+bottom-1 {
		off = row - bottom + 2
	}

	off = minInt(off, maxInt(0, total-bottom+1))
	// The cursor row is always on screen.
	off = clampInt(off, row-rows+1, row)
	v.Offset = maxInt(0, off)
	return v.Offset != prev
}

// Visible reports whether display row row is on screen.
func (v Viewport) Visible(row int) bool {
	return row >= v.Offset && row < v.Offset+v.rows()
}

func (v Viewport) rows() int {
	if v.Rows < 1 {
		return 1
	}
	return v.Rows
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
