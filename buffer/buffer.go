package buffer

import (
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
)

type Options struct {
	// CursorAtEnd places the cursor after the last cluster of the last line.
	CursorAtEnd bool
}

// Buffer is the pure document state: lines of grapheme clusters and a cursor.
type Buffer struct {
	lines   [][]string
	version uint64
	cursor  Pos

	lastChange    Change
	hasLastChange bool
}

// New builds a buffer from "\n"-joined text. Empty text yields one empty line
// and a single trailing newline is dropped.
func New(text string, opt Options) *Buffer {
	return FromLines(SplitText(text), opt)
}

// FromLines builds a buffer from already split lines, kept as given.
func FromLines(lines []string, opt Options) *Buffer {
	b := &Buffer{lines: splitLines(lines)}
	if opt.CursorAtEnd {
		last := len(b.lines) - 1
		b.cursor = Pos{Row: last, Col: len(b.lines[last])}
	}
	return b
}

// Text returns the document joined with "\n", the on-disk format.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range line {
			sb.WriteString(c)
		}
	}
	return sb.String()
}

// Lines returns a copy of the logical lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = grapheme.Join(line)
	}
	return out
}

// Line returns row as a string, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return grapheme.Join(b.lines[row])
}

// LineLen returns the cluster count of row.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

// SetCursor moves the cursor to p clamped into the document.
func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	change := b.beginChange(ChangeCursor)
	b.cursor = next
	b.version++
	b.commitChange(change)
}

// WordCount returns the number of whitespace-separated tokens in the document.
func (b *Buffer) WordCount() int {
	n := 0
	for _, line := range b.lines {
		n += grapheme.Words(line)
	}
	return n
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.LineLen)
}

// SplitText splits on-disk text into lines. "\n" terminates a line, so one
// trailing newline does not start another; a "\r" before it is dropped.
func SplitText(text string) []string {
	parts := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, s := range parts {
		parts[i] = strings.TrimSuffix(s, "\r")
	}
	return parts
}

func splitLines(lines []string) [][]string {
	out := make([][]string, 0, max(len(lines), 1))
	for _, s := range lines {
		out = append(out, grapheme.Split(s))
	}
	if len(out) == 0 {
		out = append(out, nil)
	}
	return out
}
