package editor

import "github.com/iw2rmb/inkwell/buffer"

// ChangeEvent describes one effective document change to Hooks.OnChange.
type ChangeEvent struct {
	Name    string
	Version uint64
	Kind    buffer.ChangeKind
	Cursor  buffer.Pos
	Lines   int
}

func buildChangeEvent(name string, b *buffer.Buffer) (ChangeEvent, bool) {
	ch, ok := b.LastChange()
	if !ok {
		return ChangeEvent{}, false
	}
	return ChangeEvent{
		Name:    name,
		Version: ch.VersionAfter,
		Kind:    ch.Kind,
		Cursor:  ch.CursorAfter,
		Lines:   ch.LinesAfter,
	}, true
}
