package tui

import (
	"sync"
	"time"

	"github.com/iw2rmb/inkwell/editor"
)

// Queue is a channel-backed editor.Input fed by the terminal program.
type Queue struct {
	mu      sync.Mutex
	pending []editor.Action
	closed  bool
	notify  chan struct{}
}

var _ editor.Input = (*Queue)(nil)

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push appends actions without blocking. Pushes after Close are dropped.
func (q *Queue) Push(actions ...editor.Action) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, actions...)
	q.mu.Unlock()
	q.wake()
}

// Close ends the input. Queued actions are still delivered first.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

func (q *Queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *Queue) ready() (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) > 0 {
		return true, nil
	}
	if q.closed {
		return false, editor.ErrInputClosed
	}
	return false, nil
}

func (q *Queue) Wait(timeout time.Duration) (bool, error) {
	if ok, err := q.ready(); ok || err != nil {
		return ok, err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-q.notify:
		return q.ready()
	case <-timer.C:
		return q.ready()
	}
}

func (q *Queue) Read() ([]editor.Action, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	if len(out) == 0 && q.closed {
		return nil, editor.ErrInputClosed
	}
	return out, nil
}
