package editor

import "fmt"

// ActionKind is the closed set of things a key press can ask for.
type ActionKind uint8

const (
	ActionChar ActionKind = iota + 1
	ActionEnter
	ActionBackspace
	ActionEscape
	ActionWordCount
	ActionClock
	ActionPageUp
	ActionPageDown
	ActionMove
)

// Dir is the direction of an ActionMove.
type Dir uint8

const (
	DirLeft Dir = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
)

// Action is one decoded keyboard event.
type Action struct {
	Kind ActionKind
	// Text is the inserted grapheme for ActionChar.
	Text string
	// Dir is set for ActionMove.
	Dir Dir
}

// Char returns an ActionChar inserting s.
func Char(s string) Action { return Action{Kind: ActionChar, Text: s} }

// Move returns an ActionMove in d.
func Move(d Dir) Action { return Action{Kind: ActionMove, Dir: d} }

// Key returns an Action for a kind that carries no payload.
func Key(k ActionKind) Action { return Action{Kind: k} }

func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirHome:
		return "home"
	case DirEnd:
		return "end"
	default:
		return fmt.Sprintf("dir(%d)", uint8(d))
	}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionChar:
		return fmt.Sprintf("char(%q)", a.Text)
	case ActionEnter:
		return "enter"
	case ActionBackspace:
		return "backspace"
	case ActionEscape:
		return "escape"
	case ActionWordCount:
		return "wordcount"
	case ActionClock:
		return "clock"
	case ActionPageUp:
		return "pageup"
	case ActionPageDown:
		return "pagedown"
	case ActionMove:
		return "move(" + a.Dir.String() + ")"
	default:
		return fmt.Sprintf("action(%d)", uint8(a.Kind))
	}
}
