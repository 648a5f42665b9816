package buffer

// MoveDir is a logical cursor movement. Vertical movement lives in display
// space and is resolved by the editor through SetCursor.
type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirHome // line start
	DirEnd  // line end
)

// Move moves the cursor one step in dir. Left at column 0 goes to the end of
// the previous line; Right at the end of a line goes to the start of the next.
func (b *Buffer) Move(dir MoveDir) {
	next := b.clampPos(b.moveCursor(b.cursor, dir))
	if next == b.cursor {
		return
	}
	change := b.beginChange(ChangeCursor)
	b.cursor = next
	b.version++
	b.commitChange(change)
}

func (b *Buffer) moveCursor(p Pos, dir MoveDir) Pos {
	switch dir {
	case DirLeft:
		if p.Col > 0 {
			return Pos{Row: p.Row, Col: p.Col - 1}
		}
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: b.LineLen(p.Row - 1)}
		}
		return p
	case DirRight:
		if p.Col < b.LineLen(p.Row) {
			return Pos{Row: p.Row, Col: p.Col + 1}
		}
		if p.Row < len(b.lines)-1 {
			return Pos{Row: p.Row + 1, Col: 0}
		}
		return p
	case DirHome:
		return Pos{Row: p.Row, Col: 0}
	case DirEnd:
		return Pos{Row: p.Row, Col: b.LineLen(p.Row)}
	default:
		return p
	}
}
