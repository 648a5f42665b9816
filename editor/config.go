package editor

import "time"

// DefaultFooter is the key hint drawn at the bottom of the screen.
const DefaultFooter = "Arrows=Move, ESC=Save & Exit, F1=Words, F2=Time"

// Geometry places the three screen bands, in canvas units.
type Geometry struct {
	Margin int
	Header int
	Footer int
}

// PanelGeometry matches the 400x300 e-ink panel.
func PanelGeometry() Geometry {
	return Geometry{Margin: 10, Header: 60, Footer: 30}
}

// Timings configures the loop and its timers.
type Timings struct {
	// Poll bounds how long the loop blocks on the keyboard.
	Poll time.Duration
	// AutosaveInterval saves a dirty document on a fixed cadence. Zero disables it.
	AutosaveInterval time.Duration
	// InactivitySave saves a dirty document after this long without input.
	// Zero disables it.
	InactivitySave time.Duration

	SavedIndicator     time.Duration
	WordCountIndicator time.Duration
	ClockIndicator     time.Duration

	// IdleShutdown ends the session after this long without input. Zero disables it.
	IdleShutdown time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		Poll:               50 * time.Millisecond,
		AutosaveInterval:   30 * time.Second,
		InactivitySave:     5 * time.Second,
		SavedIndicator:     2 * time.Second,
		WordCountIndicator: 3 * time.Second,
		ClockIndicator:     3 * time.Second,
		IdleShutdown:       10 * time.Minute,
	}
}

// Hooks let the caller attach document-specific behavior.
type Hooks struct {
	// OnOpen may rewrite the loaded lines, e.g. to stamp a journal session.
	// created is true when the document did not exist yet.
	OnOpen func(lines []string, created bool, now time.Time) []string
	// AfterSave runs after every successful save.
	AfterSave func(name, text string, now time.Time) error
	// OnChange observes every effective document change.
	OnChange func(ChangeEvent)
}

// Config configures a Session.
type Config struct {
	// Title is drawn in the header; defaults to the document name.
	Title string
	// Footer is the hint line; defaults to DefaultFooter.
	Footer string

	Geometry Geometry
	Timings  Timings

	// ForceFullEvery forces a full repaint after this many partial ones.
	ForceFullEvery int
	// MaxInputErrors ends the session after this many consecutive input failures.
	MaxInputErrors int

	Hooks Hooks
}

const (
	defaultForceFullEvery = 50
	defaultMaxInputErrors = 20
)

// DefaultConfig returns the appliance defaults.
func DefaultConfig() Config {
	return Config{
		Footer:         DefaultFooter,
		Geometry:       PanelGeometry(),
		Timings:        DefaultTimings(),
		ForceFullEvery: defaultForceFullEvery,
		MaxInputErrors: defaultMaxInputErrors,
	}
}

func (c Config) withDefaults(name string) Config {
	def := DefaultTimings()
	if c.Title == "" {
		c.Title = name
	}
	if c.Footer == "" {
		c.Footer = DefaultFooter
	}
	if c.Timings.Poll <= 0 {
		c.Timings.Poll = def.Poll
	}
	c.Timings.AutosaveInterval = max(c.Timings.AutosaveInterval, 0)
	c.Timings.InactivitySave = max(c.Timings.InactivitySave, 0)
	if c.Timings.SavedIndicator <= 0 {
		c.Timings.SavedIndicator = def.SavedIndicator
	}
	if c.Timings.WordCountIndicator <= 0 {
		c.Timings.WordCountIndicator = def.WordCountIndicator
	}
	if c.Timings.ClockIndicator <= 0 {
		c.Timings.ClockIndicator = def.ClockIndicator
	}
	if c.ForceFullEvery <= 0 {
		c.ForceFullEvery = defaultForceFullEvery
	}
	if c.MaxInputErrors <= 0 {
		c.MaxInputErrors = defaultMaxInputErrors
	}
	return c
}
