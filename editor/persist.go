package editor

import "time"

// SaveReason says which trigger asked for a save.
type SaveReason uint8

const (
	SaveExit SaveReason = iota
	SaveInactivity
	SaveInterval
)

func (r SaveReason) String() string {
	switch r {
	case SaveExit:
		return "exit"
	case SaveInactivity:
		return "inactivity"
	case SaveInterval:
		return "interval"
	default:
		return "unknown"
	}
}

// Persistence decides when a dirty document must be written.
//
// A failed save keeps the document dirty; the failure time counts as an
// attempt so the next retry waits for the following trigger.
type Persistence struct {
	Interval   time.Duration
	Inactivity time.Duration

	dirty       bool
	lastAttempt time.Time
	failures    int
}

// NewPersistence starts the interval clock at now.
func NewPersistence(t Timings, now time.Time) Persistence {
	return Persistence{
		Interval:    t.AutosaveInterval,
		Inactivity:  t.InactivitySave,
		lastAttempt: now,
	}
}

func (p *Persistence) MarkDirty() { p.dirty = true }

func (p *Persistence) Dirty() bool { return p.dirty }

// Failures returns the number of consecutive failed saves.
func (p *Persistence) Failures() int { return p.failures }

// Due reports whether a timed save should run now.
func (p *Persistence) Due(now, lastInput time.Time) (SaveReason, bool) {
	if !p.dirty {
		return 0, false
	}
	quietSince := lastInput
	if p.lastAttempt.After(quietSince) {
		quietSince = p.lastAttempt
	}
	if p.Inactivity > 0 && now.Sub(quietSince) >= p.Inactivity {
		return SaveInactivity, true
	}
	if p.Interval > 0 && now.Sub(p.lastAttempt) >= p.Interval {
		return SaveInterval, true
	}
	return 0, false
}

// Saved records a successful write.
func (p *Persistence) Saved(now time.Time) {
	p.dirty = false
	p.lastAttempt = now
	p.failures = 0
}

// Failed records a failed write.
func (p *Persistence) Failed(now time.Time) {
	p.lastAttempt = now
	p.failures++
}
