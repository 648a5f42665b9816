package input

import (
	"encoding/binary"

	"github.com/iw2rmb/inkwell/editor"
)

// EventSize is sizeof(struct input_event) on 64-bit Linux: a 16 byte
// timeval followed by type, code and value.
const EventSize = 24

const (
	evKey = 0x01

	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// Event is one decoded input_event record.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Decode splits buf into events and returns how many bytes it used. A
// trailing partial record is left for the next read.
func Decode(buf []byte) ([]Event, int) {
	n := len(buf) / EventSize
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		rec := buf[i*EventSize : (i+1)*EventSize]
		events = append(events, Event{
			Type:  binary.LittleEndian.Uint16(rec[16:18]),
			Code:  binary.LittleEndian.Uint16(rec[18:20]),
			Value: int32(binary.LittleEndian.Uint32(rec[20:24])),
		})
	}
	return events, n * EventSize
}

// Translator tracks modifier state across events.
type Translator struct {
	leftShift  bool
	rightShift bool
	capsLock   bool
}

// Feed consumes one event and returns the action it produces, if any.
// Presses and auto-repeats produce actions; releases only update modifiers.
func (t *Translator) Feed(ev Event) (editor.Action, bool) {
	if ev.Type != evKey {
		return editor.Action{}, false
	}
	switch ev.Code {
	case KeyLeftShift:
		t.leftShift = ev.Value != valueRelease
		return editor.Action{}, false
	case KeyRightShift:
		t.rightShift = ev.Value != valueRelease
		return editor.Action{}, false
	case KeyCapsLock:
		if ev.Value == valuePress {
			t.capsLock = !t.capsLock
		}
		return editor.Action{}, false
	}
	if ev.Value != valuePress && ev.Value != valueRepeat {
		return editor.Action{}, false
	}
	shift := t.leftShift || t.rightShift
	if t.capsLock && isLetter(ev.Code) {
		shift = !shift
	}
	return Resolve(ev.Code, shift)
}

// Shift reports whether either shift key is held.
func (t *Translator) Shift() bool { return t.leftShift || t.rightShift }
