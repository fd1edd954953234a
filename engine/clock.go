// Package engine holds the per-frame game state update: it advances a
// fixed-rate game clock, turns the pressed-key set into player movement,
// and ticks every thinker. Rendering is left to the caller.
package engine

import "math"

// tickRate is the game logic rate in Hz, independent of however fast
// frames actually render.
const tickRate = 35.0

// Clock tracks elapsed game time and the integer tick count derived from
// it, so a slow or fast frame rate still produces a deterministic number
// of logic ticks.
type Clock struct {
	timestamp float64
	ticks     int
}

// Timestamp returns the total elapsed game time in seconds.
func (c *Clock) Timestamp() float64 {
	return c.timestamp
}

// Advance adds dt seconds to the clock and returns how many new ticks
// crossed as a result; callers run one game tick per returned count.
func (c *Clock) Advance(dt float64) int {
	c.timestamp += dt
	ticks := int(math.Floor(c.timestamp * tickRate))
	elapsed := ticks - c.ticks
	c.ticks = ticks
	return elapsed
}
