package buffer

import "fmt"

// Pos is a logical cursor position: Row is the line index and Col counts
// grapheme clusters from the start of that line.
type Pos struct {
	Row int
	Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// ClampPos pulls p inside a document of rows lines, where lineLen reports the
// cluster count of a line. A document never has fewer than one line.
func ClampPos(p Pos, rows int, lineLen func(row int) int) Pos {
	row := min(max(p.Row, 0), max(rows, 1)-1)
	end := 0
	if lineLen != nil {
		end = max(lineLen(row), 0)
	}
	return Pos{Row: row, Col: min(max(p.Col, 0), end)}
}
