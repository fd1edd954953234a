package think

// StateID names one entry in the state table. The empty StateID ("") is
// the NULL state: a map object whose current state is NULL is not drawn
// and its thinker stops advancing it.
type StateID string

// NullState marks "no state" / "object removed".
const NullState StateID = ""

// State is one frame of a map object's animation: which sprite and frame
// letter to draw, how many ticks to hold it, and what state follows.
// Action is the original engine's state-change callback name; it is
// carried as data only and nothing in this renderer reads or runs it.
type State struct {
	Sprite     string
	Frame      uint8
	FullBright bool
	Tics       int16 // -1 means "hold forever", see MapObjectThinker.Tick
	Action     string
	Next       StateID
}

// ObjectType is the spawn-time descriptor for one kind of map object: the
// THINGS type id plus its geometry and the three states a map object can
// enter (spawn is the steady-state loop; death/xdeath play once and stop).
type ObjectType struct {
	ID          int16
	SpawnState  StateID
	DeathState  StateID
	XDeathState StateID
	Radius      float32
	Height      float32
}
