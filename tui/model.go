package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iw2rmb/inkwell/editor"
)

// doneMsg reports that the editing session returned.
type doneMsg struct {
	res editor.Result
	err error
}

// Model is the Bubble Tea side of the simulator. It only queues actions and
// shows frames; the session owns the document.
type Model struct {
	queue *Queue
	keys  editor.KeyMap
	style Style

	frame  Frame
	status string
	done   bool
	result editor.Result
	err    error
}

func NewModel(q *Queue, style Style) Model {
	return Model{queue: q, keys: editor.DefaultKeyMap(), style: style}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.queue.Push(editor.Key(editor.ActionEscape))
			return m, nil
		}
		if a, ok := m.keys.Resolve(msg); ok {
			m.queue.Push(a)
		}
	case Frame:
		m.frame = msg
	case editor.ChangeEvent:
		m.status = fmt.Sprintf("Ln %d, Col %d  %d lines", msg.Cursor.Row+1, msg.Cursor.Col+1, msg.Lines)
	case doneMsg:
		m.done, m.result, m.err = true, msg.res, msg.err
		return m, tea.Quit
	}
	return m, nil
}

// Result is the session outcome once the program has quit.
func (m Model) Result() (editor.Result, error) { return m.result, m.err }

func (m Model) View() string {
	if m.done {
		return ""
	}
	panel := m.style.Panel
	if m.frame.Full {
		panel = m.style.Flash
	}
	body := panel.Render(m.renderCells())

	var help []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	info := strings.Join(help, " • ")
	if m.status != "" {
		info = m.status + "   " + info
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.style.Info.Render(info))
}

func (m Model) renderCells() string {
	if len(m.frame.Cells) == 0 {
		return ""
	}
	var sb strings.Builder
	for y, row := range m.frame.Cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		face := editor.Face(0)
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(m.faceStyle(face).Render(run.String()))
				run.Reset()
			}
		}
		for x, c := range row {
			if m.frame.HasCursor && m.frame.Cursor.Y == y && m.frame.Cursor.X == x {
				flush()
				text := c.Text
				if strings.TrimSpace(text) == "" {
					text = " "
				}
				sb.WriteString(m.style.Cursor.Render(text))
				continue
			}
			if c.Face != face {
				flush()
				face = c.Face
			}
			run.WriteString(c.Text)
		}
		flush()
	}
	return sb.String()
}

func (m Model) faceStyle(f editor.Face) lipgloss.Style {
	switch f {
	case editor.FaceTitle:
		return m.style.Title
	case editor.FaceStatus:
		return m.style.Status
	default:
		return m.style.Text
	}
}
