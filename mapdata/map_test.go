package mapdata

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/freewilll/doomgo/wad"
)

const wadHeaderLen = 12

type rawLump struct {
	name string
	data []byte
}

// buildWad assembles a minimal in-memory IWAD from the given lumps, mirroring
// the wad package's own test helper since DirEntry layout isn't exported.
func buildWad(lumps []rawLump) []byte {
	var body []byte
	type placed struct {
		name   string
		offset uint32
		size   uint32
	}
	var dir []placed

	for _, l := range lumps {
		dir = append(dir, placed{name: l.name, offset: uint32(wadHeaderLen + len(body)), size: uint32(len(l.data))})
		body = append(body, l.data...)
	}

	buf := make([]byte, wadHeaderLen)
	copy(buf[0:4], []byte("IWAD"))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(dir)))
	dirOffset := wadHeaderLen + len(body)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(dirOffset))
	buf = append(buf, body...)

	for _, p := range dir {
		var rec [16]byte
		binary.LittleEndian.PutUint32(rec[0:4], p.offset)
		binary.LittleEndian.PutUint32(rec[4:8], p.size)
		name := make([]byte, 8)
		copy(name, p.name)
		copy(rec[8:16], name)
		buf = append(buf, rec[:]...)
	}

	return buf
}

func putI16(b []byte, off int, v int16) {
	binary.LittleEndian.PutUint16(b[off:off+2], uint16(v))
}

func putName8(b []byte, off int, name string) {
	n := make([]byte, 8)
	copy(n, name)
	copy(b[off:off+8], n)
}

func vertexLump(vs [][2]int16) []byte {
	out := make([]byte, len(vs)*vertexRecLen)
	for i, v := range vs {
		off := i * vertexRecLen
		putI16(out, off, v[0])
		putI16(out, off+2, v[1])
	}
	return out
}

type testSector struct {
	floor, ceiling      int16
	floorFlat, ceilFlat string
	light               int16
}

func sectorLump(secs []testSector) []byte {
	out := make([]byte, len(secs)*sectorRecLen)
	for i, s := range secs {
		off := i * sectorRecLen
		putI16(out, off, s.floor)
		putI16(out, off+2, s.ceiling)
		putName8(out, off+4, s.floorFlat)
		putName8(out, off+12, s.ceilFlat)
		putI16(out, off+20, s.light)
		putI16(out, off+22, 0)
		putI16(out, off+24, 0)
	}
	return out
}

func sidedefLump(sectorIdx []int16) []byte {
	out := make([]byte, len(sectorIdx)*sidedefRecLen)
	for i, sec := range sectorIdx {
		off := i * sidedefRecLen
		putName8(out, off+4, AbsentTexture)
		putName8(out, off+12, AbsentTexture)
		putName8(out, off+20, "WALL")
		putI16(out, off+28, sec)
	}
	return out
}

type testLinedef struct {
	start, end  int16
	front, back int16
}

func linedefLump(ls []testLinedef) []byte {
	out := make([]byte, len(ls)*linedefRecLen)
	for i, l := range ls {
		off := i * linedefRecLen
		putI16(out, off, l.start)
		putI16(out, off+2, l.end)
		putI16(out, off+4, 0)
		putI16(out, off+6, 0)
		putI16(out, off+8, 0)
		putI16(out, off+10, l.front)
		putI16(out, off+12, l.back)
	}
	return out
}

type testSeg struct {
	start, end, linedef int16
}

func segLump(segs []testSeg) []byte {
	out := make([]byte, len(segs)*segRecLen)
	for i, s := range segs {
		off := i * segRecLen
		putI16(out, off, s.start)
		putI16(out, off+2, s.end)
		putI16(out, off+4, 0)
		putI16(out, off+6, s.linedef)
		putI16(out, off+8, 0)
		putI16(out, off+10, 0)
	}
	return out
}

func subsectorLump(ranges [][2]int16) []byte {
	out := make([]byte, len(ranges)*subsectorRecLen)
	for i, r := range ranges {
		off := i * subsectorRecLen
		putI16(out, off, r[0])
		putI16(out, off+2, r[1])
	}
	return out
}

type testNode struct {
	right, left int16 // child index, high bit set externally by caller
}

// subsectorChildRaw encodes idx as a node child index pointing at a
// subsector (the high bit DOOM's node format reserves for that).
func subsectorChildRaw(idx int16) int16 {
	return int16(uint16(idx) | nodeSubsectorFlag)
}

func nodeLump(nodes []testNode) []byte {
	out := make([]byte, len(nodes)*nodeRecLen)
	for i, n := range nodes {
		off := i * nodeRecLen
		putI16(out, off+24, n.right)
		putI16(out, off+26, n.left)
	}
	return out
}

func thingLump(x, y, angle, typ int16) []byte {
	out := make([]byte, thingRecLen)
	putI16(out, 0, x)
	putI16(out, 2, y)
	putI16(out, 4, angle)
	putI16(out, 6, typ)
	putI16(out, 8, 0)
	return out
}

// squareRoomLumps builds the map marker plus the eight lumps Load reads for a single 64x64 square sector with
// no BSP split: the whole map is one subsector, exercising Load's
// no-nodes/degenerate-root path.
func squareRoomLumps() []rawLump {
	vertexes := [][2]int16{{0, 0}, {64, 0}, {64, 64}, {0, 64}}
	sectors := []testSector{{floor: 0, ceiling: 128, floorFlat: "FLOOR", ceilFlat: "CEIL", light: 192}}
	sidedefs := []int16{0, 0, 0, 0}
	linedefs := []testLinedef{
		{start: 0, end: 1, front: 0, back: -1},
		{start: 1, end: 2, front: 1, back: -1},
		{start: 2, end: 3, front: 2, back: -1},
		{start: 3, end: 0, front: 3, back: -1},
	}
	segs := []testSeg{{start: 0, end: 1, linedef: 0}, {start: 1, end: 2, linedef: 1}, {start: 2, end: 3, linedef: 2}, {start: 3, end: 0, linedef: 3}}
	subsectors := [][2]int16{{4, 0}}

	return []rawLump{
		{name: "E1M1", data: nil},
		{name: "THINGS", data: thingLump(32, 32, 0, ThingPlayer1Start)},
		{name: "LINEDEFS", data: linedefLump(linedefs)},
		{name: "SIDEDEFS", data: sidedefLump(sidedefs)},
		{name: "VERTEXES", data: vertexLump(vertexes)},
		{name: "SEGS", data: segLump(segs)},
		{name: "SSECTORS", data: subsectorLump(subsectors)},
		{name: "NODES", data: nil},
		{name: "SECTORS", data: sectorLump(sectors)},
	}
}

func TestLoadSquareRoomNoNodes(t *testing.T) {
	f, err := wad.Load(buildWad(squareRoomLumps()))
	require.NoError(t, err)

	m, err := Load(f, "E1M1")
	require.NoError(t, err)

	require.Equal(t, BoundingBox{Top: 0, Bottom: 64, Left: 0, Right: 64}, m.BoundingBox)
	require.Len(t, m.Sectors, 1)
	require.Equal(t, 192, m.Sectors[0].LightLevel)

	wantVertexes := []Vertex{{X: 0, Y: 0}, {X: 64, Y: 0}, {X: 64, Y: 64}, {X: 0, Y: 64}}
	if diff := cmp.Diff(wantVertexes, m.Vertexes); diff != "" {
		t.Errorf("decoded vertexes differ from the source square room (-want +got):\n%s", diff)
	}
	require.Len(t, m.SubSectors, 1)
	require.Len(t, m.SubSectors[0].Segs, 4)
	require.Empty(t, m.Nodes)

	require.True(t, m.Root.IsSubSector(), "a map with no nodes degenerates to a single-subsector root")
	got, ok := m.Root.SubSector()
	require.True(t, ok)
	require.Same(t, m.SubSectors[0], got)

	require.Len(t, m.Things, 1)
	require.True(t, m.Things[0].IsPlayerStart())
}

func TestLoadTwoSubSectorsWithNode(t *testing.T) {
	lumps := squareRoomLumps()

	// Split the same four segs into two subsectors and add a single
	// splitting node whose children both point at subsectors (high bit
	// set), exercising the node-child resolution path.
	for i, l := range lumps {
		if l.name == "SSECTORS" {
			lumps[i].data = subsectorLump([][2]int16{{2, 0}, {2, 2}})
		}
		if l.name == "NODES" {
			lumps[i].data = nodeLump([]testNode{{right: subsectorChildRaw(0), left: subsectorChildRaw(1)}})
		}
	}

	f, err := wad.Load(buildWad(lumps))
	require.NoError(t, err)

	m, err := Load(f, "E1M1")
	require.NoError(t, err)

	require.Len(t, m.SubSectors, 2)
	require.Len(t, m.Nodes, 1)
	require.False(t, m.Root.IsSubSector())

	root, ok := m.Root.Node()
	require.True(t, ok)

	right, ok := root.Right.SubSector()
	require.True(t, ok)
	require.Same(t, m.SubSectors[0], right)

	left, ok := root.Left.SubSector()
	require.True(t, ok)
	require.Same(t, m.SubSectors[1], left)
}

func TestLoadRejectsOutOfRangeSidedefSector(t *testing.T) {
	lumps := squareRoomLumps()
	for i, l := range lumps {
		if l.name == "SIDEDEFS" {
			lumps[i].data = sidedefLump([]int16{7, 0, 0, 0})
		}
	}

	f, err := wad.Load(buildWad(lumps))
	require.NoError(t, err)

	_, err = Load(f, "E1M1")
	require.Error(t, err)
}
