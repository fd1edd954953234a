// Package think holds the 35 Hz thinkers: per-sector light animations and
// per-map-object animation-frame advance. Thinkers mutate shared map state
// in place (sector light levels, map object sprite/frame); the renderer
// reads that state without locking because ticking and rendering never
// overlap.
package think

import (
	"math/rand"

	"github.com/freewilll/doomgo/mapdata"
)

// SlowDark and FastDark are the two built-in strobe dark-phase durations
// (in 35 Hz ticks), matching the sector special types that select them.
const (
	SlowDark = 35
	FastDark = 15
)

const strobeBright = 5
const glowSpeed = 8

// findMinSurroundingLight returns the dimmest light level among sectors
// that share a linedef with sectorID, or max if sectorID has no two-sided
// neighbors.
func findMinSurroundingLight(m *mapdata.Map, sectorID int, max int) int {
	light := max

	for _, l := range m.Linedefs {
		if l.FrontSidedef != nil && l.FrontSidedef.Sector.ID == sectorID && l.BackSidedef != nil {
			if l.BackSidedef.Sector.LightLevel < light {
				light = l.BackSidedef.Sector.LightLevel
			}
		}
		if l.BackSidedef != nil && l.BackSidedef.Sector.ID == sectorID && l.FrontSidedef != nil {
			if l.FrontSidedef.Sector.LightLevel < light {
				light = l.FrontSidedef.Sector.LightLevel
			}
		}
	}

	return light
}

// LightFlash flickers a sector's light between a max and a min level,
// holding each for an independently rolled random tick count.
type LightFlash struct {
	sector             *mapdata.Sector
	rng                *rand.Rand
	minLight, maxLight int
	minTime, maxTime   int
	count              int
}

// NewLightFlash builds a LightFlash for sector, deriving its min light from
// the dimmest neighboring sector.
func NewLightFlash(m *mapdata.Map, sector *mapdata.Sector, rng *rand.Rand) *LightFlash {
	maxLight := sector.LightLevel
	minLight := findMinSurroundingLight(m, sector.ID, maxLight)
	minTime, maxTime := 7, 64

	return &LightFlash{
		sector:   sector,
		rng:      rng,
		minLight: minLight,
		maxLight: maxLight,
		minTime:  minTime,
		maxTime:  maxTime,
		count:    1 + rng.Intn(maxTime),
	}
}

// Tick advances the flash by one 35 Hz tick.
func (lf *LightFlash) Tick() {
	lf.count--
	if lf.count > 0 {
		return
	}

	if lf.sector.LightLevel == lf.maxLight {
		lf.sector.LightLevel = lf.minLight
		lf.count = 1 + lf.rng.Intn(lf.minTime)
	} else {
		lf.sector.LightLevel = lf.maxLight
		lf.count = 1 + lf.rng.Intn(lf.maxTime)
	}
}

// StrobeFlash switches a sector's light between a max and a min level on a
// fixed schedule (unlike LightFlash, which rolls random hold times).
type StrobeFlash struct {
	sector             *mapdata.Sector
	minLight, maxLight int
	darkTime           int
	brightTime         int
	count              int
}

// NewStrobeFlash builds a StrobeFlash for sector. darkTime is the number of
// ticks spent dark (SlowDark or FastDark); inSync starts every instance on
// the same phase instead of a randomly rolled offset.
func NewStrobeFlash(m *mapdata.Map, sector *mapdata.Sector, darkTime int, inSync bool, rng *rand.Rand) *StrobeFlash {
	maxLight := sector.LightLevel
	minLight := findMinSurroundingLight(m, sector.ID, maxLight)
	if minLight == maxLight {
		minLight = 0
	}

	count := 1
	if !inSync {
		count = 1 + rng.Intn(8)
	}

	return &StrobeFlash{
		sector:     sector,
		minLight:   minLight,
		maxLight:   maxLight,
		darkTime:   darkTime,
		brightTime: strobeBright,
		count:      count,
	}
}

// Tick advances the strobe by one 35 Hz tick.
func (sf *StrobeFlash) Tick() {
	sf.count--
	if sf.count > 0 {
		return
	}

	if sf.sector.LightLevel == sf.maxLight {
		sf.sector.LightLevel = sf.minLight
		sf.count = sf.darkTime
	} else {
		sf.sector.LightLevel = sf.maxLight
		sf.count = sf.brightTime
	}
}

// GlowingLight ramps a sector's light smoothly up and down between a max
// and a min level, reversing direction at each bound.
type GlowingLight struct {
	sector             *mapdata.Sector
	minLight, maxLight int
	goingUp            bool
}

// NewGlowingLight builds a GlowingLight for sector.
func NewGlowingLight(m *mapdata.Map, sector *mapdata.Sector) *GlowingLight {
	maxLight := sector.LightLevel
	minLight := findMinSurroundingLight(m, sector.ID, maxLight)

	return &GlowingLight{sector: sector, minLight: minLight, maxLight: maxLight}
}

// Tick advances the glow by one 35 Hz tick.
func (gl *GlowingLight) Tick() {
	if gl.goingUp {
		gl.sector.LightLevel += glowSpeed
		if gl.sector.LightLevel >= gl.maxLight {
			gl.sector.LightLevel -= glowSpeed
			gl.goingUp = false
		}
		return
	}

	gl.sector.LightLevel -= glowSpeed
	if gl.sector.LightLevel <= gl.minLight {
		gl.sector.LightLevel += glowSpeed
		gl.goingUp = true
	}
}

// FireFlicker spikes a sector's light to max, then randomly drops toward
// min every 4 ticks before spiking back up.
type FireFlicker struct {
	sector             *mapdata.Sector
	rng                *rand.Rand
	minLight, maxLight int
	count              int
}

// NewFireFlicker builds a FireFlicker for sector.
func NewFireFlicker(m *mapdata.Map, sector *mapdata.Sector, rng *rand.Rand) *FireFlicker {
	maxLight := sector.LightLevel
	minLight := findMinSurroundingLight(m, sector.ID, maxLight) + 16

	return &FireFlicker{sector: sector, rng: rng, minLight: minLight, maxLight: maxLight, count: 4}
}

// Tick advances the flicker by one 35 Hz tick.
func (ff *FireFlicker) Tick() {
	ff.count--
	if ff.count > 0 {
		return
	}

	amount := ff.rng.Intn(4) * 16
	if ff.sector.LightLevel-amount < ff.minLight {
		ff.sector.LightLevel = ff.minLight
	} else {
		ff.sector.LightLevel = ff.maxLight - amount
	}

	ff.count = 4
}
