package buffer

import (
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// InsertText inserts text at the cursor. Embedded newlines split the line.
// The cursor advances past the inserted clusters.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	change := b.beginChange(ChangeContent)
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			b.splitAtCursor()
		}
		b.insertClusters(grapheme.Split(part))
	}
	b.version++
	b.commitChange(change)
}

// SplitLine breaks the current line at the cursor. The remainder becomes the
// next line and the cursor moves to its start.
func (b *Buffer) SplitLine() {
	change := b.beginChange(ChangeLayout)
	b.splitAtCursor()
	b.version++
	b.commitChange(change)
}

// DeleteBackward applies backspace semantics: delete the cluster left of the
// cursor, or join the line into the previous one at column 0. (0,0) is a no-op.
func (b *Buffer) DeleteBackward() {
	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		change := b.beginChange(ChangeContent)
		line := b.lines[row]
		b.lines[row] = append(line[:col-1:col-1], line[col:]...)
		b.cursor = Pos{Row: row, Col: col - 1}
		b.version++
		b.commitChange(change)
		return
	}

	// Join with previous line (delete the newline).
	change := b.beginChange(ChangeLayout)
	prev := b.lines[row-1]
	joinCol := len(prev)
	b.lines[row-1] = append(prev[:joinCol:joinCol], b.lines[row]...)
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.cursor = Pos{Row: row - 1, Col: joinCol}
	b.version++
	b.commitChange(change)
}

func (b *Buffer) insertClusters(clusters []string) {
	if len(clusters) == 0 {
		return
	}
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]
	next := make([]string, 0, len(line)+len(clusters))
	next = append(next, line[:col]...)
	next = append(next, clusters...)
	next = append(next, line[col:]...)
	b.lines[row] = next
	b.cursor.Col = col + len(clusters)
}

func (b *Buffer) splitAtCursor() {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]
	tail := append([]string(nil), line[col:]...)
	b.lines[row] = line[:col:col]

	b.lines = append(b.lines, nil)
	copy(b.lines[row+2:], b.lines[row+1:])
	b.lines[row+1] = tail
	b.cursor = Pos{Row: row + 1, Col: 0}
}
