package editor

import (
	"fmt"
	"time"
)

// Indicator is one transient status message.
type Indicator struct {
	Active      bool
	ActivatedAt time.Time
	Text        string
	Duration    time.Duration
}

func (i *Indicator) activate(now time.Time, text string) {
	i.Active = true
	i.ActivatedAt = now
	i.Text = text
}

func (i *Indicator) expire(now time.Time) bool {
	if !i.Active || now.Sub(i.ActivatedAt) <= i.Duration {
		return false
	}
	i.Active = false
	return true
}

// Indicators holds the word-count, clock and saved messages that share the
// status slot. Word count and clock exclude each other; the last one
// triggered wins. Saved shows only when neither is active.
type Indicators struct {
	WordCount Indicator
	Clock     Indicator
	Saved     Indicator
}

// ClockLayout formats the time shown by the clock indicator.
const ClockLayout = "03:04 PM"

func NewIndicators(t Timings) Indicators {
	return Indicators{
		WordCount: Indicator{Duration: t.WordCountIndicator},
		Clock:     Indicator{Duration: t.ClockIndicator},
		Saved:     Indicator{Duration: t.SavedIndicator},
	}
}

func (in *Indicators) ShowWordCount(now time.Time, words int) {
	in.Clock.Active = false
	in.WordCount.activate(now, fmt.Sprintf("Words: %d", words))
}

func (in *Indicators) ShowClock(now time.Time) {
	in.WordCount.Active = false
	in.Clock.activate(now, now.Format(ClockLayout))
}

func (in *Indicators) ShowSaved(now time.Time) {
	in.Saved.activate(now, "Saved")
}

// ShowSaveFailed reuses the saved slot to tell the writer a save did not land.
func (in *Indicators) ShowSaveFailed(now time.Time) {
	in.Saved.activate(now, "Save failed")
}

// Tick expires indicators older than their duration and reports whether any
// visibility changed.
func (in *Indicators) Tick(now time.Time) bool {
	changed := in.WordCount.expire(now)
	if in.Clock.expire(now) {
		changed = true
	}
	if in.Saved.expire(now) {
		changed = true
	}
	return changed
}

// Slot returns the text for the status slot, or "".
func (in Indicators) Slot() string {
	switch {
	case in.WordCount.Active:
		return in.WordCount.Text
	case in.Clock.Active:
		return in.Clock.Text
	case in.Saved.Active:
		return in.Saved.Text
	default:
		return ""
	}
}
