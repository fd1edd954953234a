package render

import "github.com/freewilll/doomgo/mapdata"

// Player is the renderer's view of the camera. The engine package owns
// movement and updates one of these every tick; render only ever reads
// it.
type Player struct {
	Position    mapdata.Vertex
	Angle       float32 // radians, east = 0, counter-clockwise
	FloorHeight float32 // the floor height of the sector the player is in
}
