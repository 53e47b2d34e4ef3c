package clip

// Selection tracks the scrubber state for a loaded source: total frame
// count, current preview position, and the chosen trim bounds. Start is an
// inclusive frame index in [0, total-1]; end stays in [start+1, total] so
// the range is never empty. All mutations clamp rather than error.
type Selection struct {
	total    int
	position int
	start    int
	end      int

	// onChange fires after every mutation (redraw); onPosition fires
	// additionally when the preview position moves (re-seek + readout).
	onChange   func()
	onPosition func(position int)
}

// NewSelection creates a selection for a source with the given frame count.
// A count below one collapses to the degenerate single-frame range.
func NewSelection(total int) *Selection {
	s := &Selection{}
	s.reset(total)
	return s
}

func (s *Selection) reset(total int) {
	if total < 1 {
		total = 1
	}
	s.total = total
	s.position = clamp(s.position, 0, total-1)
	s.start = clamp(s.start, 0, total-1)
	s.end = clamp(s.end, s.start+1, total)
}

// OnChange registers the redraw listener.
func (s *Selection) OnChange(fn func()) { s.onChange = fn }

// OnPosition registers the position listener.
func (s *Selection) OnPosition(fn func(position int)) { s.onPosition = fn }

// SetTotal resets the frame count and re-clamps position and bounds.
func (s *Selection) SetTotal(total int) {
	s.reset(total)
	s.notify(false)
}

// SetPosition moves the preview position, clamped to [0, total-1].
func (s *Selection) SetPosition(position int) {
	s.position = clamp(position, 0, s.total-1)
	s.notify(true)
}

// Step moves the preview position by delta frames.
func (s *Selection) Step(delta int) {
	s.SetPosition(s.position + delta)
}

// SetStart sets the range start, clamped to [0, total-1]. When the new
// start reaches the current end, the end is pushed forward to keep the
// range non-empty.
func (s *Selection) SetStart(start int) {
	s.start = clamp(start, 0, s.total-1)
	if s.end <= s.start {
		s.end = s.start + 1
	}
	s.notify(false)
}

// SetEnd sets the range end, clamped to [start+1, total].
func (s *Selection) SetEnd(end int) {
	s.end = clamp(end, s.start+1, s.total)
	s.notify(false)
}

// MarkStart captures the current preview position as the range start.
func (s *Selection) MarkStart() { s.SetStart(s.position) }

// MarkEnd captures the current preview position as the range end.
func (s *Selection) MarkEnd() { s.SetEnd(s.position) }

// Total returns the frame count (always ≥ 1).
func (s *Selection) Total() int { return s.total }

// Position returns the current preview frame index.
func (s *Selection) Position() int { return s.position }

// Start returns the inclusive range start.
func (s *Selection) Start() int { return s.start }

// End returns the range end.
func (s *Selection) End() int { return s.end }

// NormalizedPosition maps the position to [0, 1] for drawing the scrubber
// knob. A single-frame source maps to 0 rather than dividing by zero.
func (s *Selection) NormalizedPosition() float64 {
	if s.total <= 1 {
		return 0
	}
	return float64(s.position) / float64(s.total-1)
}

func (s *Selection) notify(positionMoved bool) {
	if s.onChange != nil {
		s.onChange()
	}
	if positionMoved && s.onPosition != nil {
		s.onPosition(s.position)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
