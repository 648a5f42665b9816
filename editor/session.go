package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/internal/logx"
	"pkt.systems/pslog"
)

// ExitReason says why a session ended.
type ExitReason uint8

const (
	// ExitEscape: the writer pressed Esc.
	ExitEscape ExitReason = iota
	// ExitIdle: no input for Timings.IdleShutdown.
	ExitIdle
	// ExitCanceled: the context was canceled.
	ExitCanceled
	// ExitInputFailure: the keyboard failed for good.
	ExitInputFailure
)

func (r ExitReason) String() string {
	switch r {
	case ExitEscape:
		return "escape"
	case ExitIdle:
		return "idle"
	case ExitCanceled:
		return "canceled"
	case ExitInputFailure:
		return "input-failure"
	default:
		return "unknown"
	}
}

// Result summarizes a finished session.
type Result struct {
	Reason ExitReason
	// Saved is true when the exit flush wrote the document.
	Saved bool
	Words int
}

// Deps are the collaborators of a Session.
type Deps struct {
	Input   Input
	Canvas  Canvas
	Storage Storage
	// Clock defaults to SystemClock.
	Clock Clock
	// Logger defaults to the logger carried by the context.
	Logger pslog.Logger
}

// Session edits one document on one screen. It is not safe for concurrent use;
// Run owns it until it returns.
type Session struct {
	name string
	cfg  Config

	input   Input
	canvas  Canvas
	storage Storage
	clock   Clock
	log     pslog.Logger

	doc     *buffer.Buffer
	created bool
	layout  Layout
	screen  screen
	view    Viewport
	refresh RefreshState
	ind     Indicators
	persist Persistence

	lastInput time.Time
	inputErrs int
}

// NewSession opens name through deps.Storage and prepares the first frame.
func NewSession(ctx context.Context, name string, cfg Config, deps Deps) (*Session, error) {
	if deps.Input == nil || deps.Canvas == nil || deps.Storage == nil {
		return nil, errors.New("editor: input, canvas and storage are required")
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger != nil {
		ctx = pslog.ContextWithLogger(ctx, deps.Logger)
	}
	log := logx.WithDocument(ctx, name)
	cfg = cfg.withDefaults(name)
	now := deps.Clock.Now()

	doc, created, dirty, err := openDocument(deps.Storage, name, cfg.Hooks.OnOpen, now)
	if err != nil {
		return nil, err
	}

	s := &Session{
		name:      name,
		cfg:       cfg,
		input:     deps.Input,
		canvas:    deps.Canvas,
		storage:   deps.Storage,
		clock:     deps.Clock,
		log:       log,
		doc:       doc,
		created:   created,
		screen:    measureScreen(deps.Canvas, cfg.Geometry),
		refresh:   RefreshState{LayoutChanged: true, ForceFullEvery: cfg.ForceFullEvery},
		ind:       NewIndicators(cfg.Timings),
		persist:   NewPersistence(cfg.Timings, now),
		lastInput: now,
	}
	if dirty {
		s.persist.MarkDirty()
	}
	s.relayout()
	s.view = Viewport{Rows: s.screen.rows}
	s.view.Center(s.cursorDisplay().Row)
	return s, nil
}

func (s *Session) Name() string { return s.name }

// Created reports whether the document did not exist when it was opened.
func (s *Session) Created() bool { return s.created }

func (s *Session) Document() *buffer.Buffer { return s.doc }

func (s *Session) Layout() Layout { return s.layout }

func (s *Session) Viewport() Viewport { return s.view }

func (s *Session) Indicators() Indicators { return s.ind }

func (s *Session) Dirty() bool { return s.persist.Dirty() }

// Run drives the poll loop until Esc, idle shutdown, cancellation or a fatal
// input error. Pending changes are always flushed before it returns.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.log.Info("editing session started", "lines", s.doc.LineCount(), "created", s.created)
	s.paint()
	for {
		if ctx.Err() != nil {
			return s.finish(ExitCanceled, nil)
		}
		reason, done, err := s.step()
		if err != nil {
			return s.finish(ExitInputFailure, err)
		}
		if done {
			return s.finish(reason, nil)
		}
	}
}

// step runs one loop iteration: input, timers, then at most one repaint.
func (s *Session) step() (ExitReason, bool, error) {
	actions, err := s.poll()
	if err != nil {
		return 0, false, err
	}

	now := s.clock.Now()
	for _, a := range actions {
		s.lastInput = now
		if a.Kind == ActionEscape {
			return ExitEscape, true, nil
		}
		s.apply(a, now)
	}

	if s.ind.Tick(now) {
		s.refresh.TimersChanged = true
	}
	if reason, ok := s.persist.Due(now, s.lastInput); ok {
		_ = s.save(reason, now)
	}
	if idle := s.cfg.Timings.IdleShutdown; idle > 0 && now.Sub(s.lastInput) >= idle {
		return ExitIdle, true, nil
	}

	s.paint()
	return 0, false, nil
}

func (s *Session) poll() ([]Action, error) {
	ready, err := s.input.Wait(s.cfg.Timings.Poll)
	var actions []Action
	if err == nil && ready {
		actions, err = s.input.Read()
	}
	if err == nil {
		s.inputErrs = 0
		return actions, nil
	}
	if errors.Is(err, ErrInputClosed) {
		return nil, err
	}
	s.inputErrs++
	s.log.Warn("keyboard read failed", "err", err, "consecutive", s.inputErrs)
	if s.inputErrs >= s.cfg.MaxInputErrors {
		return nil, fmt.Errorf("keyboard failed %d times: %w", s.inputErrs, err)
	}
	return nil, nil
}

// apply dispatches one action and records what it changed.
func (s *Session) apply(a Action, now time.Time) {
	before := s.doc.Version()
	switch a.Kind {
	case ActionChar:
		s.doc.InsertText(a.Text)
	case ActionEnter:
		s.doc.SplitLine()
	case ActionBackspace:
		s.doc.DeleteBackward()
	case ActionWordCount:
		s.ind.ShowWordCount(now, s.doc.WordCount())
		s.refresh.TimersChanged = true
		return
	case ActionClock:
		s.ind.ShowClock(now)
		s.refresh.TimersChanged = true
		return
	case ActionPageUp:
		s.moveRows(-s.pageStep())
	case ActionPageDown:
		s.moveRows(s.pageStep())
	case ActionMove:
		s.move(a.Dir)
	default:
		s.log.Debug("ignoring action", "action", a.String())
		return
	}
	if s.doc.Version() == before {
		return
	}

	ch, _ := s.doc.LastChange()
	switch ch.Kind {
	case buffer.ChangeLayout:
		s.refresh.LayoutChanged = true
		s.persist.MarkDirty()
	case buffer.ChangeContent:
		s.refresh.ContentChanged = true
		s.persist.MarkDirty()
	default:
		s.refresh.ContentChanged = true
	}
	if ch.Kind != buffer.ChangeCursor {
		s.relayout()
	}
	if s.view.Follow(s.cursorDisplay().Row, s.layout.Len()) {
		s.refresh.ContentChanged = true
	}
	if s.cfg.Hooks.OnChange != nil {
		if ev, ok := buildChangeEvent(s.name, s.doc); ok {
			s.cfg.Hooks.OnChange(ev)
		}
	}
}

func (s *Session) move(d Dir) {
	switch d {
	case DirLeft:
		s.doc.Move(buffer.DirLeft)
	case DirRight:
		s.doc.Move(buffer.DirRight)
	case DirHome:
		s.doc.Move(buffer.DirHome)
	case DirEnd:
		s.doc.Move(buffer.DirEnd)
	case DirUp:
		s.moveRows(-1)
	case DirDown:
		s.moveRows(1)
	}
}

// moveRows moves the cursor delta display rows, keeping the display column.
func (s *Session) moveRows(delta int) {
	if next, ok := verticalTarget(s.layout, s.doc.Cursor(), delta); ok {
		s.doc.SetCursor(next)
	}
}

func (s *Session) pageStep() int {
	return maxInt(1, s.view.Rows/2)
}

func (s *Session) relayout() {
	measure := func(text string) int { return s.canvas.MeasureWidth(text, FaceBody) }
	s.layout = Wrap(s.doc.Lines(), s.screen.textWidth(), measure)
}

func (s *Session) cursorDisplay() DisplayPos {
	return LogicalToDisplay(s.layout, s.doc.Cursor())
}

// save writes the document. Failures leave it dirty for the next trigger.
func (s *Session) save(reason SaveReason, now time.Time) error {
	text := s.doc.Text()
	if err := s.storage.WriteFile(s.name, text); err != nil {
		s.persist.Failed(now)
		s.ind.ShowSaveFailed(now)
		s.refresh.TimersChanged = true
		s.log.Warn("save failed", "reason", reason.String(), "attempt", s.persist.Failures(), "err", err)
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	s.persist.Saved(now)
	s.ind.ShowSaved(now)
	s.refresh.TimersChanged = true
	s.log.Debug("document saved", "reason", reason.String(), "bytes", len(text))

	if hook := s.cfg.Hooks.AfterSave; hook != nil {
		if err := hook(s.name, text, now); err != nil {
			s.log.Warn("after-save hook failed", "err", err)
		}
	}
	return nil
}

func (s *Session) finish(reason ExitReason, cause error) (Result, error) {
	res := Result{Reason: reason, Words: s.doc.WordCount()}
	var saveErr error
	if s.persist.Dirty() {
		saveErr = s.save(SaveExit, s.clock.Now())
		res.Saved = saveErr == nil
	}
	s.log.Info("editing session ended", "reason", reason.String(), "saved", res.Saved, "words", res.Words)
	return res, errors.Join(cause, saveErr)
}
