// Package timebase converts between display time units, canonical
// milliseconds, and sample-index space.
//
// Selections are always stored in integer milliseconds; display units only
// scale values for presentation and input. All conversions floor, so a value
// survives a unit round trip within the unit's resolution step.
package timebase

import (
	"fmt"
	"math"
	"strings"
)

// Unit identifies a display time unit. The zero value is milliseconds,
// matching the canonical storage unit.
type Unit int

const (
	UnitMilliseconds Unit = iota
	UnitSeconds
)

// String returns the lowercase unit name.
func (u Unit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitMilliseconds:
		return "milliseconds"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit resolves a unit from its name. It accepts the short forms
// "s" and "ms".
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seconds", "s", "sec":
		return UnitSeconds, nil
	case "milliseconds", "ms", "msec":
		return UnitMilliseconds, nil
	default:
		return 0, fmt.Errorf("unknown time unit: %q", name)
	}
}

// Step returns the slider resolution step in the unit's own scale:
// 0.001 for seconds, 1 for milliseconds.
func (u Unit) Step() float64 {
	if u == UnitSeconds {
		return 0.001
	}
	return 1
}

// msEpsilon absorbs the representation error of display values produced by
// FromMs (e.g. 1.001 s scales back to 1000.999... ms). It is far below the
// finest resolution step of any unit.
const msEpsilon = 1e-6

// ToMs converts a display value to canonical milliseconds, flooring.
func ToMs(value float64, u Unit) int {
	if u == UnitSeconds {
		value *= 1000
	}
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	return int(math.Floor(value + msEpsilon))
}

// FromMs re-expresses canonical milliseconds in the display unit.
func FromMs(ms int, u Unit) float64 {
	if u == UnitSeconds {
		return float64(ms) / 1000
	}
	return float64(ms)
}

// MsToSamples returns the frame index corresponding to a millisecond
// position at the given sample rate, flooring.
func MsToSamples(ms, sampleRate int) int {
	if ms <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(int64(ms) * int64(sampleRate) / 1000)
}

// SamplesToMs returns the millisecond position of a frame index at the
// given sample rate, flooring.
func SamplesToMs(frames, sampleRate int) int {
	if frames <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(int64(frames) * 1000 / int64(sampleRate))
}
