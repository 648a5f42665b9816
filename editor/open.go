package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/iw2rmb/inkwell/buffer"
)

// openDocument loads name from storage. A missing document starts as one
// empty line. The cursor is placed at the end of the document. dirty is true
// when onOpen rewrote the loaded lines.
func openDocument(storage Storage, name string, onOpen func([]string, bool, time.Time) []string, now time.Time) (doc *buffer.Buffer, created, dirty bool, err error) {
	text, err := storage.ReadFile(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		created = true
		text = ""
	case err != nil:
		return nil, false, false, fmt.Errorf("open %s: %w", name, err)
	}

	lines := buffer.SplitText(text)
	if onOpen != nil {
		next := onOpen(slices.Clone(lines), created, now)
		if len(next) == 0 {
			next = []string{""}
		}
		dirty = !slices.Equal(next, lines)
		lines = next
	}
	return buffer.FromLines(lines, buffer.Options{CursorAtEnd: true}), created, dirty, nil
}
