// Package trim implements the selection engine: the mutable time-range
// selection over a decoded audio buffer, the pointer-drag state machine,
// and export of the selected range.
//
// The selection is the single source of truth for "what is selected". Both
// input mechanisms (numeric sliders and pointer drags on the plot) funnel
// through one update path, so neither can drift from the other. During a
// gesture the range may be inverted or empty; that is a valid transient
// state and only export rejects it.
package trim

import (
	"github.com/cwbudde/algo-trim/timebase"
)

// Selection is the mutable start/end range in canonical milliseconds plus
// the current display unit. Values are clamped into [0, durationMs] on
// every write; start < end is deliberately not enforced here.
type Selection struct {
	startMs    int
	endMs      int
	durationMs int
	unit       timebase.Unit
}

// Reset replaces the range with [0, durationMs], as happens whenever a new
// buffer is loaded.
func (s *Selection) Reset(durationMs int) {
	if durationMs < 0 {
		durationMs = 0
	}
	s.durationMs = durationMs
	s.startMs = 0
	s.endMs = durationMs
}

// SetStart clamps and stores the start boundary in milliseconds.
func (s *Selection) SetStart(ms int) {
	s.startMs = s.clamp(ms)
}

// SetEnd clamps and stores the end boundary in milliseconds.
func (s *Selection) SetEnd(ms int) {
	s.endMs = s.clamp(ms)
}

// SetUnit switches the display unit. The canonical millisecond values are
// untouched; only the derived slider metadata changes.
func (s *Selection) SetUnit(u timebase.Unit) {
	s.unit = u
}

// StartMs returns the canonical start position.
func (s Selection) StartMs() int { return s.startMs }

// EndMs returns the canonical end position.
func (s Selection) EndMs() int { return s.endMs }

// DurationMs returns the buffer duration the range is clamped against.
func (s Selection) DurationMs() int { return s.durationMs }

// Unit returns the current display unit.
func (s Selection) Unit() timebase.Unit { return s.unit }

// StartDisplay returns the start boundary in the display unit.
func (s Selection) StartDisplay() float64 {
	return timebase.FromMs(s.startMs, s.unit)
}

// EndDisplay returns the end boundary in the display unit.
func (s Selection) EndDisplay() float64 {
	return timebase.FromMs(s.endMs, s.unit)
}

// SliderMax returns the slider range maximum in the display unit.
func (s Selection) SliderMax() float64 {
	return timebase.FromMs(s.durationMs, s.unit)
}

// SliderStep returns the slider resolution in the display unit.
func (s Selection) SliderStep() float64 {
	return s.unit.Step()
}

func (s *Selection) clamp(ms int) int {
	if ms < 0 {
		return 0
	}
	if ms > s.durationMs {
		return s.durationMs
	}
	return ms
}
