package think

import (
	"log"

	"github.com/freewilll/doomgo/mapdata"
)

// MapObject is a spawned, animatable thing: player starts and the
// deathmatch start never become map objects (they only seed the player's
// initial pose), so every MapObject here is something the renderer draws
// as a billboarded sprite.
type MapObject struct {
	Type     *ObjectType
	Position mapdata.Vertex
	Angle    float32 // radians, east = 0
	Flags    int16

	State      StateID
	TicsLeft   int16
	Sprite     string
	Frame      uint8
	FullBright bool
}

// newMapObject seeds a MapObject at its type's spawn state.
func newMapObject(typ *ObjectType, reg *Registry, pos mapdata.Vertex, angle float32, flags int16) (*MapObject, error) {
	st, err := reg.State(typ.SpawnState)
	if err != nil {
		return nil, err
	}

	return &MapObject{
		Type:       typ,
		Position:   pos,
		Angle:      angle,
		Flags:      flags,
		State:      typ.SpawnState,
		TicsLeft:   st.Tics,
		Sprite:     st.Sprite,
		Frame:      st.Frame,
		FullBright: st.FullBright,
	}, nil
}

// BuildMapObjects spawns one MapObject per non-player-start THINGS record
// whose type is present in reg, in thing order. An unrecognized thing type
// is logged and skipped rather than aborting the load.
func BuildMapObjects(m *mapdata.Map, reg *Registry) ([]*MapObject, error) {
	var objects []*MapObject

	for i, t := range m.Things {
		if t.IsPlayerStart() || t.Type == mapdata.ThingDeathmatch {
			continue
		}

		typ, err := reg.Type(t.Type)
		if err != nil {
			log.Printf("think: thing %d: unknown type %d, skipping", i, t.Type)
			continue
		}

		obj, err := newMapObject(&typ, reg, t.Position, t.Angle, t.Flags)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

// Alive reports whether the object still has a renderable state.
func (o *MapObject) Alive() bool {
	return o.State != NullState
}

// setState switches the object to id, pulling its sprite/frame/tics from
// reg, or despawns the object if id is NullState or unknown to reg.
func (o *MapObject) setState(reg *Registry, id StateID) {
	if id == NullState {
		o.State = NullState
		return
	}

	st, err := reg.State(id)
	if err != nil {
		log.Printf("think: map object: %v", err)
		o.State = NullState
		return
	}

	o.State = id
	o.TicsLeft = st.Tics
	o.Sprite = st.Sprite
	o.Frame = st.Frame
	o.FullBright = st.FullBright
}

// Kill moves the object to its death state. Types without a death state
// (decorations, pickups) are left alone.
func (o *MapObject) Kill(reg *Registry) {
	if !o.Alive() || o.Type.DeathState == NullState {
		return
	}
	o.setState(reg, o.Type.DeathState)
}

// Explode moves the object to its extreme-death state, falling back to a
// plain Kill for types without one.
func (o *MapObject) Explode(reg *Registry) {
	if !o.Alive() {
		return
	}
	if o.Type.XDeathState == NullState {
		o.Kill(reg)
		return
	}
	o.setState(reg, o.Type.XDeathState)
}

// Respawn resets the object back to its spawn state regardless of current
// state.
func (o *MapObject) Respawn(reg *Registry) {
	o.setState(reg, o.Type.SpawnState)
}
