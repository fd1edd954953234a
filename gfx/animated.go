package gfx

import "math"

// animatedCycles is the built-in table of flat animation cycles: every
// name that appears in a cycle maps to that cycle's ordered list of
// frames.
var animatedCycles = buildAnimatedCycles([][]string{
	{"NUKAGE1", "NUKAGE2", "NUKAGE3"},
	{"FWATER1", "FWATER2", "FWATER3", "FWATER4"},
	{"LAVA1", "LAVA2", "LAVA3", "LAVA4"},
	{"BLOOD1", "BLOOD2", "BLOOD3"},
	{"RROCK05", "RROCK06", "RROCK07", "RROCK08"},
	{"SLIME01", "SLIME02", "SLIME03", "SLIME04"},
	{"SLIME09", "SLIME10", "SLIME11", "SLIME12"},
})

func buildAnimatedCycles(cycles [][]string) map[string][]string {
	table := make(map[string][]string, len(cycles)*4)
	for _, cycle := range cycles {
		for _, name := range cycle {
			table[name] = cycle
		}
	}
	return table
}

// animationRate is the cycle's tick rate in Hz.
const animationRate = 3

// GetAnimated returns the flat name that should actually be sampled for
// name at timestamp: name itself if it isn't part of an animation cycle,
// otherwise the cycle frame selected by floor(frac(timestamp)*rate).
func GetAnimated(name string, timestamp float64) string {
	cycle, ok := animatedCycles[name]
	if !ok {
		return name
	}

	_, frac := math.Modf(timestamp)
	if frac < 0 {
		frac += 1
	}
	idx := int(frac * animationRate)
	if idx >= len(cycle) {
		idx = len(cycle) - 1
	}
	return cycle[idx]
}
