package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iw2rmb/inkwell/internal/grapheme"
	"pkt.systems/pslog"
)

// fakeCanvas measures one unit per grapheme and records every call.
type fakeCanvas struct {
	width, height int

	clears    []image.Rectangle
	texts     []drawnText
	cursors   []image.Point
	commits   []bool
	commitErr error
}

type drawnText struct {
	X, Y int
	Text string
	Face Face
}

func newFakeCanvas(width, height int) *fakeCanvas {
	return &fakeCanvas{width: width, height: height}
}

func (c *fakeCanvas) Size() (int, int) { return c.width, c.height }

func (c *fakeCanvas) LineHeight() int { return 1 }

func (c *fakeCanvas) MeasureWidth(text string, _ Face) int { return grapheme.Count(text) }

func (c *fakeCanvas) Clear(r image.Rectangle) { c.clears = append(c.clears, r) }

func (c *fakeCanvas) DrawText(x, y int, text string, face Face) {
	c.texts = append(c.texts, drawnText{X: x, Y: y, Text: text, Face: face})
}

func (c *fakeCanvas) DrawCursor(x, y, _ int) { c.cursors = append(c.cursors, image.Pt(x, y)) }

func (c *fakeCanvas) Commit(full bool) error {
	c.commits = append(c.commits, full)
	return c.commitErr
}

func (c *fakeCanvas) drew(text string) bool {
	for _, t := range c.texts {
		if t.Text == text {
			return true
		}
	}
	return false
}

// memStorage keeps documents in memory; failWrites makes the next writes fail.
type memStorage struct {
	files      map[string]string
	writes     int
	failWrites int
}

func newMemStorage() *memStorage { return &memStorage{files: map[string]string{}} }

func (s *memStorage) ReadFile(name string) (string, error) {
	text, ok := s.files[name]
	if !ok {
		return "", fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}
	return text, nil
}

func (s *memStorage) WriteFile(name, text string) error {
	if s.failWrites > 0 {
		s.failWrites--
		return fmt.Errorf("write %s: disk full", name)
	}
	s.writes++
	s.files[name] = text
	return nil
}

type manualClock struct{ now time.Time }

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, time.March, 9, 14, 5, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// scriptStep is either a batch of actions, an idle period or an error.
type scriptStep struct {
	actions []Action
	idle    time.Duration
	err     error
}

// scriptInput replays steps against a manual clock. Waiting without a ready
// batch advances the clock by the poll timeout.
type scriptInput struct {
	clock      *manualClock
	steps      []scriptStep
	closeAtEnd bool
}

func (in *scriptInput) Wait(timeout time.Duration) (bool, error) {
	if len(in.steps) == 0 {
		in.clock.Advance(timeout)
		if in.closeAtEnd {
			return false, ErrInputClosed
		}
		return false, nil
	}
	st := &in.steps[0]
	switch {
	case st.err != nil:
		err := st.err
		in.steps = in.steps[1:]
		return false, err
	case st.idle > 0:
		d := timeout
		if st.idle < d {
			d = st.idle
		}
		in.clock.Advance(d)
		st.idle -= d
		if st.idle <= 0 {
			in.steps = in.steps[1:]
		}
		return false, nil
	}
	return true, nil
}

func (in *scriptInput) Read() ([]Action, error) {
	if len(in.steps) == 0 {
		return nil, nil
	}
	st := in.steps[0]
	in.steps = in.steps[1:]
	return st.actions, nil
}

func typed(text string) scriptStep {
	var out []Action
	for _, g := range grapheme.Split(text) {
		out = append(out, Char(g))
	}
	return scriptStep{actions: out}
}

func press(actions ...Action) scriptStep { return scriptStep{actions: actions} }

func idle(d time.Duration) scriptStep { return scriptStep{idle: d} }

func escape() scriptStep { return press(Key(ActionEscape)) }

// logCapture collects structured log lines.
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *logCapture) entries(t *testing.T) []map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []map[string]any
	for _, line := range strings.Split(c.buf.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("parse log entry %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func (c *logCapture) hasMessage(t *testing.T, msg string) bool {
	t.Helper()
	for _, e := range c.entries(t) {
		if e["msg"] == msg || e["message"] == msg {
			return true
		}
	}
	return false
}

func newTestLogger(capture *logCapture) pslog.Logger {
	return pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.DebugLevel,
		VerboseFields: true,
	})
}

// testConfig is a 12x10 screen: header 2, footer 1, margin 1, so the text
// band is 10 wide and 7 rows tall.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Geometry = Geometry{Margin: 1, Header: 2, Footer: 1}
	cfg.Timings.IdleShutdown = 0
	return cfg
}

type harness struct {
	clock   *manualClock
	canvas  *fakeCanvas
	storage *memStorage
	input   *scriptInput
	logs    *logCapture
}

func newHarness() *harness {
	clock := newManualClock()
	return &harness{
		clock:   clock,
		canvas:  newFakeCanvas(12, 10),
		storage: newMemStorage(),
		input:   &scriptInput{clock: clock},
		logs:    &logCapture{},
	}
}

func (h *harness) deps() Deps {
	return Deps{
		Input:   h.input,
		Canvas:  h.canvas,
		Storage: h.storage,
		Clock:   h.clock,
		Logger:  newTestLogger(h.logs),
	}
}
