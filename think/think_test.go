package think

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freewilll/doomgo/mapdata"
)

func twoSectorMap(lightA, lightB int) (*mapdata.Map, *mapdata.Sector, *mapdata.Sector) {
	a := &mapdata.Sector{ID: 0, LightLevel: lightA}
	b := &mapdata.Sector{ID: 1, LightLevel: lightB}

	front := &mapdata.Sidedef{ID: 0, Sector: a}
	back := &mapdata.Sidedef{ID: 1, Sector: b}

	line := &mapdata.Linedef{
		ID:           0,
		Flags:        mapdata.LineTwoSided,
		FrontSidedef: front,
		BackSidedef:  back,
	}

	m := &mapdata.Map{
		Sectors:  []*mapdata.Sector{a, b},
		Sidedefs: []*mapdata.Sidedef{front, back},
		Linedefs: []*mapdata.Linedef{line},
	}
	return m, a, b
}

func TestFindMinSurroundingLight(t *testing.T) {
	m, a, _ := twoSectorMap(192, 96)
	require.Equal(t, 96, findMinSurroundingLight(m, a.ID, a.LightLevel))
}

func TestStrobeFlashPeriodicity(t *testing.T) {
	m, a, _ := twoSectorMap(192, 0)
	rng := rand.New(rand.NewSource(1))
	sf := NewStrobeFlash(m, a, FastDark, true, rng)

	require.Equal(t, 192, a.LightLevel)

	sf.Tick() // count was 1, now 0 -> flips to dark
	require.Equal(t, 0, a.LightLevel)

	for i := 0; i < FastDark-1; i++ {
		sf.Tick()
		require.Equal(t, 0, a.LightLevel, "stays dark for darkTime ticks")
	}

	sf.Tick() // darkTime-th tick expires -> back to bright
	require.Equal(t, 192, a.LightLevel)

	for i := 0; i < strobeBright-1; i++ {
		sf.Tick()
		require.Equal(t, 192, a.LightLevel, "stays bright for brightTime ticks")
	}
	sf.Tick()
	require.Equal(t, 0, a.LightLevel)
}

func TestGlowingLightReversesAtBounds(t *testing.T) {
	m, a, _ := twoSectorMap(100, 20)
	gl := NewGlowingLight(m, a)

	require.False(t, gl.goingUp)
	for i := 0; i < 20; i++ {
		gl.Tick()
	}
	require.True(t, a.LightLevel >= gl.minLight, "never drops below the derived min")
}

func TestFireFlickerStaysWithinBounds(t *testing.T) {
	m, a, _ := twoSectorMap(192, 96)
	rng := rand.New(rand.NewSource(7))
	ff := NewFireFlicker(m, a, rng)

	for i := 0; i < 100; i++ {
		ff.Tick()
		require.GreaterOrEqual(t, a.LightLevel, ff.minLight)
		require.LessOrEqual(t, a.LightLevel, ff.maxLight)
	}
}

func TestMapObjectThinkerCyclesSpawnStates(t *testing.T) {
	reg := DefaultRegistry()
	typ := reg.Types[ThingTypeImp]
	obj, err := newMapObject(&typ, reg, mapdata.Vertex{}, 0, 0)
	require.NoError(t, err)

	thinker := NewMapObjectThinker(obj, reg)

	require.Equal(t, StateID("TROO_STND"), obj.State)
	require.Equal(t, uint8(0), obj.Frame)

	for i := 0; i < 10; i++ {
		thinker.Tick()
	}
	require.Equal(t, StateID("TROO_STND2"), obj.State)
	require.Equal(t, uint8(1), obj.Frame)

	for i := 0; i < 10; i++ {
		thinker.Tick()
	}
	require.Equal(t, StateID("TROO_STND"), obj.State)
}

func TestMapObjectThinkerHoldsAtNegativeTics(t *testing.T) {
	reg := DefaultRegistry()
	typ := reg.Types[ThingTypeGreenArmor]
	obj, err := newMapObject(&typ, reg, mapdata.Vertex{}, 0, 0)
	require.NoError(t, err)

	thinker := NewMapObjectThinker(obj, reg)
	for i := 0; i < 50; i++ {
		thinker.Tick()
	}
	require.Equal(t, StateID("ARM2_SPAWN"), obj.State, "tics == -1 holds forever")
}

func TestBuildMapObjectsSkipsPlayerStartsAndUnknownTypes(t *testing.T) {
	m := &mapdata.Map{
		Things: []mapdata.Thing{
			{Type: mapdata.ThingPlayer1Start},
			{Type: ThingTypeImp},
			{Type: 9999}, // unknown, should be skipped with a log line
		},
	}

	reg := DefaultRegistry()
	objects, err := BuildMapObjects(m, reg)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Equal(t, ThingTypeImp, objects[0].Type.ID)
}

func TestHostTicksSectorsThenMapObjects(t *testing.T) {
	m, sector, _ := twoSectorMap(100, 20)
	sector.SpecialType = SectorGlow
	m.Sectors[1].SpecialType = 0

	reg := DefaultRegistry()
	typ := reg.Types[ThingTypeImp]
	obj, err := newMapObject(&typ, reg, mapdata.Vertex{}, 0, 0)
	require.NoError(t, err)

	host := NewHost(m, []*MapObject{obj}, reg, rand.New(rand.NewSource(1)))
	require.Equal(t, 2, host.Len())

	host.Tick()
	require.NotEqual(t, 100, sector.LightLevel)
}

func TestExplodeFallsBackToKillWhenNoXDeathState(t *testing.T) {
	reg := DefaultRegistry()

	typ := reg.Types[ThingTypeGreenArmor]
	obj, err := newMapObject(&typ, reg, mapdata.Vertex{}, 0, 0)
	require.NoError(t, err)

	// Armor has neither an xdeath nor a death state: the fallback chain
	// must leave it untouched rather than despawning it.
	obj.Explode(reg)
	require.Equal(t, StateID("ARM2_SPAWN"), obj.State)

	barrel := reg.Types[ThingTypeBarrel]
	bobj, err := newMapObject(&barrel, reg, mapdata.Vertex{}, 0, 0)
	require.NoError(t, err)

	bobj.Explode(reg)
	require.Equal(t, StateID("BEXP_DIE1"), bobj.State)
	require.Equal(t, int16(5), bobj.TicsLeft)
}
