package sim

// Clock turns a monotonically increasing time in seconds into per-frame
// deltas bounded to [0, maxDelta].
type Clock struct {
	last     float64
	maxDelta float64
}

func NewClock(maxDelta float64) *Clock {
	return &Clock{maxDelta: maxDelta}
}

// Tick records now and returns the bounded time since the previous tick.
// The first tick measures from zero.
func (c *Clock) Tick(now float64) float64 {
	dt := ClampDelta(now-c.last, c.maxDelta)
	c.last = now
	return dt
}

func ClampDelta(dt, maxDelta float64) float64 {
	return min(max(dt, 0), maxDelta)
}
