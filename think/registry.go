package think

import "fmt"

// Registry is the state and object-type table a MapObjects set is built
// against. The original game generates this table (~700 states, ~137
// object types) from info.c at build time; DefaultRegistry ships a small,
// hand-written subset covering one monster, one decoration and one pickup so the
// spawn/animate/die machinery has real data to exercise without carrying
// the full generated table (see DESIGN.md).
type Registry struct {
	States map[StateID]State
	Types  map[int16]ObjectType
}

// State looks up a state by id.
func (r *Registry) State(id StateID) (State, error) {
	s, ok := r.States[id]
	if !ok {
		return State{}, fmt.Errorf("think: unknown state %q", id)
	}
	return s, nil
}

// Type looks up an object type by its THINGS type id.
func (r *Registry) Type(id int16) (ObjectType, error) {
	t, ok := r.Types[id]
	if !ok {
		return ObjectType{}, fmt.Errorf("think: unknown thing type %d", id)
	}
	return t, nil
}

// Built-in thing type ids for the registry's sample content.
const (
	ThingTypeImp        int16 = 3001
	ThingTypeBarrel     int16 = 2035
	ThingTypeGreenArmor int16 = 2018
)

// DefaultRegistry returns the built-in sample state/type table.
func DefaultRegistry() *Registry {
	r := &Registry{
		States: make(map[StateID]State),
		Types:  make(map[int16]ObjectType),
	}

	r.States["TROO_STND"] = State{Sprite: "TROO", Frame: 0, Tics: 10, Next: "TROO_STND2"}
	r.States["TROO_STND2"] = State{Sprite: "TROO", Frame: 1, Tics: 10, Next: "TROO_STND"}
	r.States["TROO_DIE1"] = State{Sprite: "TROO", Frame: 12, Tics: 8, Next: "TROO_DIE2"}
	r.States["TROO_DIE2"] = State{Sprite: "TROO", Frame: 13, Tics: 8, Next: "TROO_DIE3"}
	r.States["TROO_DIE3"] = State{Sprite: "TROO", Frame: 14, Tics: 6, Next: "TROO_DIE4"}
	r.States["TROO_DIE4"] = State{Sprite: "TROO", Frame: 15, Tics: 6, Next: "TROO_DIE5"}
	r.States["TROO_DIE5"] = State{Sprite: "TROO", Frame: 16, Tics: -1, Next: "TROO_DIE5"}

	r.States["BAR1_SPAWN"] = State{Sprite: "BAR1", Frame: 0, Tics: 6, Next: "BAR1_SPAWN2"}
	r.States["BAR1_SPAWN2"] = State{Sprite: "BAR1", Frame: 1, Tics: 6, Next: "BAR1_SPAWN"}
	r.States["BEXP_DIE1"] = State{Sprite: "BEXP", Frame: 0, FullBright: true, Tics: 5, Next: "BEXP_DIE2"}
	r.States["BEXP_DIE2"] = State{Sprite: "BEXP", Frame: 1, FullBright: true, Tics: 5, Next: "BEXP_DIE3"}
	r.States["BEXP_DIE3"] = State{Sprite: "BEXP", Frame: 2, FullBright: true, Tics: -1, Next: "BEXP_DIE3"}

	r.States["ARM2_SPAWN"] = State{Sprite: "ARM2", Frame: 0, Tics: -1, Next: "ARM2_SPAWN"}

	r.Types[ThingTypeImp] = ObjectType{
		ID: ThingTypeImp, SpawnState: "TROO_STND", DeathState: "TROO_DIE1", XDeathState: "TROO_DIE1",
		Radius: 20, Height: 56,
	}
	r.Types[ThingTypeBarrel] = ObjectType{
		ID: ThingTypeBarrel, SpawnState: "BAR1_SPAWN", DeathState: "BEXP_DIE1", XDeathState: "BEXP_DIE1",
		Radius: 10, Height: 42,
	}
	r.Types[ThingTypeGreenArmor] = ObjectType{
		ID: ThingTypeGreenArmor, SpawnState: "ARM2_SPAWN", DeathState: NullState, XDeathState: NullState,
		Radius: 20, Height: 16,
	}

	return r
}
