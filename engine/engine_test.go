package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/render"
	"github.com/freewilll/doomgo/think"
)

func TestClockAdvanceCountsTicksAtFixedRate(t *testing.T) {
	var c Clock

	// Half a tick: nothing should fire yet.
	require.Equal(t, 0, c.Advance(1.0/70.0))

	// The other half: exactly one tick should fire now.
	require.Equal(t, 1, c.Advance(1.0/70.0))
}

func TestClockAdvanceHandlesMultipleTicksInOneStep(t *testing.T) {
	var c Clock
	require.Equal(t, 3, c.Advance(3.0/tickRate))
}

func TestMovePlayerForwardMovesAlongAngle(t *testing.T) {
	m := &mapdata.Map{Root: mapdata.ChildSubSector(&mapdata.SubSector{})}
	p := &render.Player{Position: mapdata.Vertex{X: 0, Y: 0}, Angle: 0}
	pressed := map[Key]bool{KeyUp: true}

	MovePlayer(m, p, pressed, 1)

	require.Greater(t, p.Position.X, float32(0))
	require.InDelta(t, 0, p.Position.Y, 1e-3)
}

func TestMovePlayerRotatesLeftIncreasesAngle(t *testing.T) {
	m := &mapdata.Map{Root: mapdata.ChildSubSector(&mapdata.SubSector{})}
	p := &render.Player{Position: mapdata.Vertex{X: 0, Y: 0}, Angle: 0}
	pressed := map[Key]bool{KeyLeft: true}

	MovePlayer(m, p, pressed, 1)

	require.Greater(t, float64(p.Angle), 0.0)
}

func TestMovePlayerAltTurnsRotationIntoStrafe(t *testing.T) {
	m := &mapdata.Map{Root: mapdata.ChildSubSector(&mapdata.SubSector{})}
	p := &render.Player{Position: mapdata.Vertex{X: 0, Y: 0}, Angle: 0}
	pressed := map[Key]bool{KeyLeft: true, KeyAlt: true}

	MovePlayer(m, p, pressed, 1)

	require.InDelta(t, 0, p.Angle, 1e-6, "alt suppresses rotation")
	require.NotEqual(t, float32(0), p.Position.Y, "alt+left strafes instead")
}

func TestMovePlayerShiftDoublesDistance(t *testing.T) {
	m := &mapdata.Map{Root: mapdata.ChildSubSector(&mapdata.SubSector{})}

	p1 := &render.Player{Position: mapdata.Vertex{X: 0, Y: 0}, Angle: 0}
	MovePlayer(m, p1, map[Key]bool{KeyUp: true}, 1)

	p2 := &render.Player{Position: mapdata.Vertex{X: 0, Y: 0}, Angle: 0}
	MovePlayer(m, p2, map[Key]bool{KeyUp: true, KeyShift: true}, 1)

	require.InDelta(t, float64(p1.Position.X)*2, float64(p2.Position.X), 1e-3)
}

func TestMovePlayerAngleWrapsToTwoPi(t *testing.T) {
	m := &mapdata.Map{Root: mapdata.ChildSubSector(&mapdata.SubSector{})}
	p := &render.Player{Position: mapdata.Vertex{X: 0, Y: 0}, Angle: float32(2*math.Pi) - 1e-4}

	MovePlayer(m, p, map[Key]bool{KeyLeft: true}, 1)

	require.Less(t, float64(p.Angle), 2*math.Pi)
}

func TestKillAllRespectsMissingDeathStates(t *testing.T) {
	m := &mapdata.Map{
		Things: []mapdata.Thing{
			{Type: think.ThingTypeImp},
			{Type: think.ThingTypeGreenArmor},
		},
		Root: mapdata.ChildSubSector(&mapdata.SubSector{}),
	}

	e, err := New(m, think.DefaultRegistry(), rand.New(rand.NewSource(1)), mapdata.Vertex{}, 0, 100)
	require.NoError(t, err)
	require.Len(t, e.Objects, 2)

	e.KillAll()
	require.Equal(t, think.StateID("TROO_DIE1"), e.Objects[0].State)
	require.Equal(t, int16(8), e.Objects[0].TicsLeft, "counter picks up the death state's tics")
	require.Equal(t, think.StateID("ARM2_SPAWN"), e.Objects[1].State, "types without a death state stay put")

	e.RespawnAll()
	require.Equal(t, think.StateID("TROO_STND"), e.Objects[0].State)
	require.Equal(t, think.StateID("ARM2_SPAWN"), e.Objects[1].State)
}
