package engine

import (
	"math/rand"

	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/render"
	"github.com/freewilll/doomgo/think"
)

// Engine owns the per-map game state a frame loop advances: the map graph,
// thinkers, live objects, player pose, and the 35 Hz clock driving all of
// them.
type Engine struct {
	Map     *mapdata.Map
	Host    *think.Host
	Objects []*think.MapObject
	Player  *render.Player
	Clock   Clock

	registry *think.Registry
	turbo    float64
}

// New builds an Engine for a freshly loaded map: spawns map objects, wires
// up their thinkers and the map's sector light thinkers, and seeds the
// player at pos/angle with its containing sector's floor height.
func New(m *mapdata.Map, reg *think.Registry, rng *rand.Rand, pos mapdata.Vertex, angle float32, turboPercent int) (*Engine, error) {
	objects, err := think.BuildMapObjects(m, reg)
	if err != nil {
		return nil, err
	}

	host := think.NewHost(m, objects, reg, rng)

	player := &render.Player{Position: pos, Angle: angle}
	if sector := render.GetSectorFromVertex(m, pos); sector != nil {
		player.FloorHeight = sector.FloorHeight
	}

	return &Engine{
		Map:      m,
		Host:     host,
		Objects:  objects,
		Player:   player,
		registry: reg,
		turbo:    float64(turboPercent) / 100.0,
	}, nil
}

// Advance moves the game clock forward by dt seconds and runs one game
// tick — player movement then every thinker — per elapsed 35 Hz tick.
func (e *Engine) Advance(dt float64, pressed map[Key]bool) {
	ticks := e.Clock.Advance(dt)
	for i := 0; i < ticks; i++ {
		MovePlayer(e.Map, e.Player, pressed, e.turbo)
		e.Host.Tick()
	}
}

// KillAll moves every live object to its death state.
func (e *Engine) KillAll() {
	for _, obj := range e.Objects {
		obj.Kill(e.registry)
	}
}

// ExplodeAll moves every live object to its extreme-death state.
func (e *Engine) ExplodeAll() {
	for _, obj := range e.Objects {
		obj.Explode(e.registry)
	}
}

// RespawnAll resets every object back to its spawn state.
func (e *Engine) RespawnAll() {
	for _, obj := range e.Objects {
		obj.Respawn(e.registry)
	}
}
