package engine

import (
	"math"

	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/render"
)

// Key names the handful of inputs player movement cares about. cmd/doomgo
// maps SDL keycodes onto these so engine stays independent of any
// particular input backend.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyShift
	KeyAlt
)

// perTickMs is the wall-clock duration of one 35 Hz game tick, in
// milliseconds; player movement is driven by tick count rather than raw
// frame duration, so speed is identical regardless of frame rate.
const perTickMs = 1000.0 / tickRate

const (
	baseRotatePerMs = 0.0025 // radians/ms
	baseMovePerMs   = 0.291  // map units/ms
)

// MovePlayer applies one tick's worth of movement to p from the given
// pressed-key set, turbo multiplier (1.0 = 100%), and re-resolves p's
// containing sector's floor height if it moved.
func MovePlayer(m *mapdata.Map, p *render.Player, pressed map[Key]bool, turbo float64) {
	rotateAngle := float32(perTickMs * baseRotatePerMs * turbo)
	moveLength := float32(perTickMs * baseMovePerMs * turbo)

	if pressed[KeyShift] {
		rotateAngle *= 2
		moveLength *= 2
	}

	altDown := pressed[KeyAlt]
	moved := false

	if !altDown && pressed[KeyLeft] {
		p.Angle += rotateAngle
	}
	if !altDown && pressed[KeyRight] {
		p.Angle -= rotateAngle
	}
	p.Angle = float32(math.Mod(float64(p.Angle), 2*math.Pi))

	if altDown && pressed[KeyLeft] {
		delta := mapdata.Vertex{X: moveLength, Y: 0}.Rotate(p.Angle + math.Pi/2)
		p.Position = p.Position.Add(delta)
		moved = true
	}
	if altDown && pressed[KeyRight] {
		delta := mapdata.Vertex{X: moveLength, Y: 0}.Rotate(p.Angle + math.Pi/2)
		p.Position = p.Position.Sub(delta)
		moved = true
	}

	if pressed[KeyUp] {
		delta := mapdata.Vertex{X: moveLength, Y: 0}.Rotate(p.Angle)
		p.Position = p.Position.Add(delta)
		moved = true
	}
	if pressed[KeyDown] {
		delta := mapdata.Vertex{X: moveLength, Y: 0}.Rotate(p.Angle)
		p.Position = p.Position.Sub(delta)
		moved = true
	}

	if moved {
		updatePlayerFloorHeight(m, p)
	}
}

// updatePlayerFloorHeight descends the BSP tree to find the subsector the
// player now stands in and takes its floor height from the first seg's
// sidedef sector, the same walk render.GetSectorFromVertex does.
func updatePlayerFloorHeight(m *mapdata.Map, p *render.Player) {
	sector := render.GetSectorFromVertex(m, p.Position)
	if sector == nil {
		return
	}
	p.FloorHeight = sector.FloorHeight
}
