package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds terminal keys to editor actions. The appliance keyboard goes
// through the input package instead; this map serves the terminal simulator.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Home, End             key.Binding
	PageUp, PageDown      key.Binding

	Backspace key.Binding
	Enter     key.Binding
	Escape    key.Binding

	WordCount key.Binding
	Clock     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "half page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "half page down")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "save & exit")),

		WordCount: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "words")),
		Clock:     key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "time")),
	}
}

// ShortHelp lists the bindings worth showing in a hint line.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Escape, km.WordCount, km.Clock, km.PageUp, km.PageDown}
}

// Resolve maps a key message to an Action. Unbound keys report false.
func (km KeyMap) Resolve(msg tea.KeyMsg) (Action, bool) {
	switch {
	case key.Matches(msg, km.Left):
		return Move(DirLeft), true
	case key.Matches(msg, km.Right):
		return Move(DirRight), true
	case key.Matches(msg, km.Up):
		return Move(DirUp), true
	case key.Matches(msg, km.Down):
		return Move(DirDown), true
	case key.Matches(msg, km.Home):
		return Move(DirHome), true
	case key.Matches(msg, km.End):
		return Move(DirEnd), true
	case key.Matches(msg, km.PageUp):
		return Key(ActionPageUp), true
	case key.Matches(msg, km.PageDown):
		return Key(ActionPageDown), true
	case key.Matches(msg, km.Backspace):
		return Key(ActionBackspace), true
	case key.Matches(msg, km.Enter):
		return Key(ActionEnter), true
	case key.Matches(msg, km.Escape):
		return Key(ActionEscape), true
	case key.Matches(msg, km.WordCount):
		return Key(ActionWordCount), true
	case key.Matches(msg, km.Clock):
		return Key(ActionClock), true
	}

	switch msg.Type {
	case tea.KeySpace:
		return Char(" "), true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return Action{}, false
		}
		return Char(string(msg.Runes)), true
	}
	return Action{}, false
}
