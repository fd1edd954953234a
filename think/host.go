package think

import (
	"math/rand"

	"github.com/freewilll/doomgo/mapdata"
)

// Host owns every thinker for a loaded map and ticks them in a fixed
// order: sector light thinkers in sector-id order, then map-object
// thinkers in thing order. The order only matters for reproducibility
// (same wad + same tick count always yields the same light/animation
// state); thinkers never read each other's output within a tick.
type Host struct {
	thinkers []Thinker
}

// NewHost builds every sector light thinker and map-object thinker the map
// needs. rng seeds every randomized light thinker (LightFlash, FireFlicker,
// and out-of-sync StrobeFlash); pass a seeded *rand.Rand for determinism in
// tests.
func NewHost(m *mapdata.Map, objects []*MapObject, reg *Registry, rng *rand.Rand) *Host {
	h := &Host{}

	for _, sector := range m.Sectors {
		switch sector.SpecialType {
		case SectorLightFlash:
			h.thinkers = append(h.thinkers, NewLightFlash(m, sector, rng))
		case SectorStrobeFast:
			h.thinkers = append(h.thinkers, NewStrobeFlash(m, sector, FastDark, false, rng))
		case SectorStrobeSlow:
			h.thinkers = append(h.thinkers, NewStrobeFlash(m, sector, SlowDark, false, rng))
		case SectorStrobeFastDeathSlime:
			h.thinkers = append(h.thinkers, NewStrobeFlash(m, sector, FastDark, false, rng))
		case SectorGlow:
			h.thinkers = append(h.thinkers, NewGlowingLight(m, sector))
		case SectorStrobeSlowSync:
			h.thinkers = append(h.thinkers, NewStrobeFlash(m, sector, SlowDark, true, rng))
		case SectorStrobeFastSync:
			h.thinkers = append(h.thinkers, NewStrobeFlash(m, sector, FastDark, true, rng))
		case SectorFireFlicker:
			h.thinkers = append(h.thinkers, NewFireFlicker(m, sector, rng))
		}
	}

	for _, obj := range objects {
		h.thinkers = append(h.thinkers, NewMapObjectThinker(obj, reg))
	}

	return h
}

// Tick advances every thinker by one 35 Hz tick.
func (h *Host) Tick() {
	for _, t := range h.thinkers {
		t.Tick()
	}
}

// Len returns the number of active thinkers, mostly useful for tests and
// diagnostics.
func (h *Host) Len() int {
	return len(h.thinkers)
}
