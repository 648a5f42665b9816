package tui

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/internal/appconfig"
)

type memStorage struct {
	mu    sync.Mutex
	files map[string]string
}

func (m *memStorage) ReadFile(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.files[name]
	if !ok {
		return "", fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}
	return text, nil
}

func (m *memStorage) WriteFile(name, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = text
	return nil
}

func TestSessionOverQueueAndCanvas(t *testing.T) {
	store := &memStorage{files: map[string]string{}}
	frames := make(chan Frame, 64)
	canvas := NewCanvas(30, 8, func(f Frame) {
		select {
		case frames <- f:
		default:
		}
	})
	queue := NewQueue()

	cfg := editor.DefaultConfig()
	cfg.Geometry = Geometry()
	cfg.Timings.Poll = 5 * time.Millisecond
	sess, err := editor.NewSession(context.Background(), "notes.txt", cfg, editor.Deps{
		Input:   queue,
		Canvas:  canvas,
		Storage: store,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	type outcome struct {
		res editor.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := sess.Run(context.Background())
		done <- outcome{res, err}
	}()

	for _, r := range "hello world" {
		queue.Push(editor.Char(string(r)))
	}
	queue.Push(editor.Key(editor.ActionEscape))

	var out outcome
	select {
	case out = <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not end")
	}
	if out.err != nil {
		t.Fatalf("run: %v", out.err)
	}
	if out.res.Reason != editor.ExitEscape || !out.res.Saved || out.res.Words != 2 {
		t.Fatalf("result: got %+v", out.res)
	}
	if got, _ := store.ReadFile("notes.txt"); got != "hello world" {
		t.Fatalf("saved text: got %q", got)
	}

	var last Frame
	for len(frames) > 0 {
		last = <-frames
	}
	if last.Seq == 0 {
		t.Fatalf("no frames committed")
	}
	if !strings.Contains(strings.Join(last.Lines(), "\n"), "notes.txt") {
		t.Fatalf("title missing from frame: %q", last.Lines())
	}
}

func TestSessionEndsWhenQueueCloses(t *testing.T) {
	store := &memStorage{files: map[string]string{"a.txt": "keep"}}
	queue := NewQueue()
	cfg := editor.DefaultConfig()
	cfg.Geometry = Geometry()
	cfg.Timings.Poll = 5 * time.Millisecond
	sess, err := editor.NewSession(context.Background(), "a.txt", cfg, editor.Deps{
		Input:   queue,
		Canvas:  NewCanvas(20, 6, nil),
		Storage: store,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	queue.Push(editor.Char("!"))
	queue.Close()

	res, err := sess.Run(context.Background())
	if err == nil {
		t.Fatalf("expected input-closed error")
	}
	if res.Reason != editor.ExitInputFailure || !res.Saved {
		t.Fatalf("result: got %+v", res)
	}
	if got, _ := store.ReadFile("a.txt"); got != "keep!" {
		t.Fatalf("saved text: got %q", got)
	}
}

func TestSimConfigFromAppConfigDrawsHeader(t *testing.T) {
	app, err := appconfig.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg := simConfig(app.Session())
	if cfg.Geometry != Geometry() {
		t.Fatalf("geometry: got %+v, want %+v", cfg.Geometry, Geometry())
	}
	cfg.Timings.Poll = 5 * time.Millisecond

	store := &memStorage{files: map[string]string{}}
	frames := make(chan Frame, 256)
	canvas := NewCanvas(defaultCols, defaultRows, func(f Frame) {
		select {
		case frames <- f:
		default:
		}
	})
	queue := NewQueue()
	sess, err := editor.NewSession(context.Background(), "draft.txt", cfg, editor.Deps{
		Input:   queue,
		Canvas:  canvas,
		Storage: store,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		_, err := sess.Run(context.Background())
		done <- err
	}()

	queue.Push(editor.Char("h"))
	queue.Push(editor.Char("i"))
	queue.Push(editor.Key(editor.ActionWordCount))

	var screen string
	deadline := time.After(5 * time.Second)
	for !strings.Contains(screen, "Words: 1") {
		select {
		case f := <-frames:
			screen = strings.Join(f.Lines(), "\n")
		case <-deadline:
			t.Fatalf("word count never reached the frame; last frame:\n%s", screen)
		}
	}
	if !strings.Contains(screen, "draft.txt") || !strings.Contains(screen, "hi") {
		t.Fatalf("title or text missing from the frame:\n%s", screen)
	}

	queue.Push(editor.Key(editor.ActionEscape))
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not end")
	}
}
