// Package offset holds the pure arithmetic behind the user-tunable sync
// offset: clamping, stepping, shifting timed sequences, and display text.
package offset

import "strconv"

const (
	// MinMs is the lowest accepted offset in milliseconds.
	MinMs = -2000
	// MaxMs is the highest accepted offset in milliseconds.
	MaxMs = 2000
	// DefaultStepMs is the increment used by the UI nudge controls.
	DefaultStepMs = 50
)

// Shifter is implemented by timed values that can produce a copy of
// themselves moved by a number of seconds.
type Shifter[T any] interface {
	Shift(seconds float64) T
}

// Clamp bounds ms to [MinMs, MaxMs].
func Clamp(ms int) int {
	return ClampRange(ms, MinMs, MaxMs)
}

// ClampRange bounds v to [lo, hi]. If lo > hi the bounds are swapped.
func ClampRange(v, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Increment raises current by DefaultStepMs, clamped.
func Increment(current int) int {
	return IncrementBy(current, DefaultStepMs)
}

// Decrement lowers current by DefaultStepMs, clamped.
func Decrement(current int) int {
	return DecrementBy(current, DefaultStepMs)
}

// IncrementBy raises current by step, clamped. Calls at the upper bound
// return the bound. Negative steps move nowhere.
func IncrementBy(current, step int) int {
	return Clamp(Clamp(current) + clampStep(step))
}

// DecrementBy lowers current by step, clamped. Calls at the lower bound
// return the bound. Negative steps move nowhere.
func DecrementBy(current, step int) int {
	return Clamp(Clamp(current) - clampStep(step))
}

// clampStep bounds step to the width of the range so the sum cannot overflow.
func clampStep(step int) int {
	return ClampRange(step, 0, MaxMs-MinMs)
}

// Nudge moves current by delta in either direction, clamped.
func Nudge(current, delta int) int {
	if delta < 0 {
		if delta < -(MaxMs - MinMs) {
			delta = -(MaxMs - MinMs)
		}
		return DecrementBy(current, -delta)
	}
	return IncrementBy(current, delta)
}

// Seconds converts an offset in milliseconds to seconds.
func Seconds(ms int) float64 {
	return float64(ms) / 1000
}

// Apply returns a new slice with every item shifted by offsetMs. The input
// is never modified; an offset of zero yields an equal copy.
func Apply[T Shifter[T]](items []T, offsetMs int) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	if offsetMs == 0 {
		copy(out, items)
		return out
	}
	delta := Seconds(offsetMs)
	for i, item := range items {
		out[i] = item.Shift(delta)
	}
	return out
}

// FormatDisplay renders ms as "+Nms", "-Nms" or "0ms".
func FormatDisplay(ms int) string {
	switch {
	case ms > 0:
		return "+" + strconv.Itoa(ms) + "ms"
	case ms < 0:
		return strconv.Itoa(ms) + "ms"
	default:
		return "0ms"
	}
}
