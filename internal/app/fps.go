package app

import "time"

// FrameRateTracker derives instantaneous frames-per-second from the
// wall-clock interval between consecutive frames. It keeps a single mutable
// slot, the previous frame timestamp, updated once per cycle.
type FrameRateTracker struct {
	prev time.Time
	last float64
}

// NewFrameRateTracker creates a tracker. Reset must be called at loop start
// before the first Tick so the first interval is not measured against a
// stale zero timestamp.
func NewFrameRateTracker() *FrameRateTracker {
	return &FrameRateTracker{}
}

// Reset sets the previous-frame timestamp to now and clears the reading.
func (t *FrameRateTracker) Reset(now time.Time) {
	t.prev = now
	t.last = 0
}

// Tick computes fps = 1 / (now - previous) and advances the previous
// timestamp. A zero or negative interval (clock resolution artifacts)
// returns the last reading instead of dividing, so the result is always
// finite and non-negative.
func (t *FrameRateTracker) Tick(now time.Time) float64 {
	delta := now.Sub(t.prev)
	t.prev = now

	if delta <= 0 {
		return t.last
	}

	t.last = 1 / delta.Seconds()
	return t.last
}
