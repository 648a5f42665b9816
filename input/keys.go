// Package input turns a raw evdev keyboard into editor actions.
package input

import "github.com/iw2rmb/inkwell/editor"

// Linux key codes from input-event-codes.h.
const (
	KeyEsc        uint16 = 1
	Key1          uint16 = 2
	Key0          uint16 = 11
	KeyMinus      uint16 = 12
	KeyEqual      uint16 = 13
	KeyBackspace  uint16 = 14
	KeyQ          uint16 = 16
	KeyLeftBrace  uint16 = 26
	KeyRightBrace uint16 = 27
	KeyEnter      uint16 = 28
	KeyA          uint16 = 30
	KeySemicolon  uint16 = 39
	KeyApostrophe uint16 = 40
	KeyGrave      uint16 = 41
	KeyLeftShift  uint16 = 42
	KeyBackslash  uint16 = 43
	KeyZ          uint16 = 44
	KeyComma      uint16 = 51
	KeyDot        uint16 = 52
	KeySlash      uint16 = 53
	KeyRightShift uint16 = 54
	KeySpace      uint16 = 57
	KeyCapsLock   uint16 = 58
	KeyF1         uint16 = 59
	KeyF2         uint16 = 60
	KeyHome       uint16 = 102
	KeyUp         uint16 = 103
	KeyPageUp     uint16 = 104
	KeyLeft       uint16 = 105
	KeyRight      uint16 = 106
	KeyEnd        uint16 = 107
	KeyDown       uint16 = 108
	KeyPageDown   uint16 = 109
)

type printable struct {
	plain, shifted string
}

var printables = buildPrintables()

func buildPrintables() map[uint16]printable {
	m := map[uint16]printable{
		KeyMinus:      {"-", "_"},
		KeyEqual:      {"=", "+"},
		KeyLeftBrace:  {"[", "{"},
		KeyRightBrace: {"]", "}"},
		KeySemicolon:  {";", ":"},
		KeyApostrophe: {"'", "\""},
		KeyGrave:      {"`", "~"},
		KeyBackslash:  {"\\", "|"},
		KeyComma:      {",", "<"},
		KeyDot:        {".", ">"},
		KeySlash:      {"/", "?"},
		KeySpace:      {" ", " "},
	}
	// Keyboard rows in code order.
	rows := []struct {
		first uint16
		keys  string
	}{
		{KeyQ, "qwertyuiop"},
		{KeyA, "asdfghjkl"},
		{KeyZ, "zxcvbnm"},
	}
	for _, row := range rows {
		for i, r := range row.keys {
			s := string(r)
			m[row.first+uint16(i)] = printable{s, string(r - 'a' + 'A')}
		}
	}
	digits, shifted := "1234567890", "!@#$%^&*()"
	for i := range digits {
		m[Key1+uint16(i)] = printable{digits[i : i+1], shifted[i : i+1]}
	}
	return m
}

var commands = map[uint16]editor.Action{
	KeyEnter:     editor.Key(editor.ActionEnter),
	KeyBackspace: editor.Key(editor.ActionBackspace),
	KeyEsc:       editor.Key(editor.ActionEscape),
	KeyF1:        editor.Key(editor.ActionWordCount),
	KeyF2:        editor.Key(editor.ActionClock),
	KeyPageUp:    editor.Key(editor.ActionPageUp),
	KeyPageDown:  editor.Key(editor.ActionPageDown),
	KeyLeft:      editor.Move(editor.DirLeft),
	KeyRight:     editor.Move(editor.DirRight),
	KeyUp:        editor.Move(editor.DirUp),
	KeyDown:      editor.Move(editor.DirDown),
	KeyHome:      editor.Move(editor.DirHome),
	KeyEnd:       editor.Move(editor.DirEnd),
}

// Resolve maps a key code to an action. Unknown codes, modifiers included,
// report false.
func Resolve(code uint16, shift bool) (editor.Action, bool) {
	if a, ok := commands[code]; ok {
		return a, true
	}
	p, ok := printables[code]
	if !ok {
		return editor.Action{}, false
	}
	if shift {
		return editor.Char(p.shifted), true
	}
	return editor.Char(p.plain), true
}

func isLetter(code uint16) bool {
	switch {
	case code >= KeyQ && code < KeyQ+10:
		return true
	case code >= KeyA && code < KeyA+9:
		return true
	case code >= KeyZ && code < KeyZ+7:
		return true
	}
	return false
}
