package editor

// Repaint is the kind of panel update an iteration needs.
type Repaint uint8

const (
	RepaintNone Repaint = iota
	RepaintPartial
	RepaintFull
)

func (r Repaint) String() string {
	switch r {
	case RepaintPartial:
		return "partial"
	case RepaintFull:
		return "full"
	default:
		return "none"
	}
}

// Region is a bit set of screen areas a partial repaint redraws.
type Region uint8

const (
	RegionText Region = 1 << iota
	RegionStatus

	RegionAll = RegionText | RegionStatus
)

// RefreshState accumulates what changed during one loop iteration.
type RefreshState struct {
	// ContentChanged: text edited, cursor moved or the view scrolled.
	ContentChanged bool
	// LayoutChanged: the number of logical lines changed.
	LayoutChanged bool
	// TimersChanged: an indicator appeared or disappeared.
	TimersChanged bool

	// PartialCount counts partial repaints since the last full one.
	PartialCount int
	// ForceFullEvery forces a full repaint once PartialCount reaches it.
	ForceFullEvery int
}

// Decide classifies the accumulated flags and updates PartialCount.
// The caller acts on the result and then calls Clear.
func (s *RefreshState) Decide() (Repaint, Region) {
	if s.LayoutChanged || (s.ForceFullEvery > 0 && s.PartialCount >= s.ForceFullEvery) {
		s.PartialCount = 0
		return RepaintFull, RegionAll
	}
	var regions Region
	if s.ContentChanged {
		regions |= RegionText
	}
	if s.TimersChanged {
		regions |= RegionStatus
	}
	if regions == 0 {
		return RepaintNone, 0
	}
	s.PartialCount++
	return RepaintPartial, regions
}

// Clear resets the change flags together.
func (s *RefreshState) Clear() {
	s.ContentChanged = false
	s.LayoutChanged = false
	s.TimersChanged = false
}
