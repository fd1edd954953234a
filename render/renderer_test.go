package render

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freewilll/doomgo/gfx"
	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/wad"
)

const wadHeaderLen = 12

type rawLump struct {
	name string
	data []byte
}

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

func putU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

func putName8(b []byte, off int, name string) {
	n := make([]byte, 8)
	copy(n, name)
	copy(b[off:off+8], n)
}

// checkerPatch is a 2x2 picture-format lump with three opaque cells of
// palette index 7 and one transparent cell.
func checkerPatch() []byte {
	const headerAndCols = 8 + 2*4
	col0 := []byte{0, 2, 0, 7, 7, 0, 0xff}
	col1 := []byte{1, 1, 0, 7, 0, 0xff}

	out := make([]byte, headerAndCols+len(col0)+len(col1))
	putI16(out, 0, 2)
	putI16(out, 2, 2)
	putU32(out, 8, uint32(headerAndCols))
	putU32(out, 12, uint32(headerAndCols+len(col0)))
	copy(out[headerAndCols:], col0)
	copy(out[headerAndCols+len(col0):], col1)
	return out
}

func flatLump(fill uint8) []byte {
	out := make([]byte, gfx.FlatSize*gfx.FlatSize)
	for i := range out {
		out[i] = fill
	}
	return out
}

// squareRoomWad builds a complete minimal IWAD: one 64x64 sector whose
// linedefs are wound so every front sidedef faces inward, plus the
// graphics lumps the render pipeline resolves (palette, one composed
// texture, two flats, an empty sprite range).
func squareRoomWad() []byte {
	vertexes := make([]byte, 4*4)
	for i, v := range [][2]int16{{0, 0}, {0, 64}, {64, 64}, {64, 0}} {
		putI16(vertexes, i*4, v[0])
		putI16(vertexes, i*4+2, v[1])
	}

	sectors := make([]byte, 26)
	putI16(sectors, 0, 0)   // floor
	putI16(sectors, 2, 128) // ceiling
	putName8(sectors, 4, "FLOOR")
	putName8(sectors, 12, "CEIL")
	putI16(sectors, 20, 192) // light

	sidedefs := make([]byte, 4*30)
	for i := 0; i < 4; i++ {
		off := i * 30
		putName8(sidedefs, off+4, "-")
		putName8(sidedefs, off+12, "-")
		putName8(sidedefs, off+20, "WALL1")
		putI16(sidedefs, off+28, 0)
	}

	linedefs := make([]byte, 4*14)
	for i := 0; i < 4; i++ {
		off := i * 14
		putI16(linedefs, off, int16(i))
		putI16(linedefs, off+2, int16((i+1)%4))
		putI16(linedefs, off+10, int16(i)) // front sidedef
		putI16(linedefs, off+12, -1)       // no back sidedef
	}

	segs := make([]byte, 4*12)
	for i := 0; i < 4; i++ {
		off := i * 12
		putI16(segs, off, int16(i))
		putI16(segs, off+2, int16((i+1)%4))
		putI16(segs, off+6, int16(i)) // linedef
	}

	subsectors := make([]byte, 4)
	putI16(subsectors, 0, 4)
	putI16(subsectors, 2, 0)

	things := make([]byte, 10)
	putI16(things, 0, 32)
	putI16(things, 2, 32)
	putI16(things, 6, mapdata.ThingPlayer1Start)

	pnames := make([]byte, 4+8)
	putU32(pnames, 0, 1)
	putName8(pnames, 4, "PATCH1")

	const rec = 8
	texture1 := make([]byte, rec+32)
	putU32(texture1, 0, 1)
	putU32(texture1, 4, rec)
	putName8(texture1, rec, "WALL1")
	putI16(texture1, rec+12, 2) // width
	putI16(texture1, rec+14, 2) // height
	putI16(texture1, rec+20, 1) // patch count

	return buildWad([]rawLump{
		{name: "E1M1", data: nil},
		{name: "THINGS", data: things},
		{name: "LINEDEFS", data: linedefs},
		{name: "SIDEDEFS", data: sidedefs},
		{name: "VERTEXES", data: vertexes},
		{name: "SEGS", data: segs},
		{name: "SSECTORS", data: subsectors},
		{name: "NODES", data: nil},
		{name: "SECTORS", data: sectors},
		{name: "PLAYPAL", data: playpalLump()},
		{name: "PNAMES", data: pnames},
		{name: "TEXTURE1", data: texture1},
		{name: "PATCH1", data: checkerPatch()},
		{name: "FLOOR", data: flatLump(42)},
		{name: "CEIL", data: flatLump(43)},
		{name: "S_START", data: nil},
		{name: "S_END", data: nil},
	})
}

func playpalLump() []byte {
	out := make([]byte, 768)
	for i := 0; i < 256; i++ {
		out[i*3] = byte(i)
		out[i*3+1] = byte(i * 2)
		out[i*3+2] = byte(i * 3)
	}
	return out
}

type roomScene struct {
	m        *mapdata.Map
	palette  *gfx.Palette
	flats    *gfx.Flats
	textures *gfx.Textures
	sprites  *gfx.Sprites
	sky      *gfx.Texture
	player   *Player
}

func loadRoomScene(t *testing.T) *roomScene {
	t.Helper()

	f, err := wad.Load(squareRoomWad())
	require.NoError(t, err)

	m, err := mapdata.Load(f, "E1M1")
	require.NoError(t, err)

	palette, err := gfx.LoadPalette(f)
	require.NoError(t, err)

	pictures := gfx.NewPictures(f)
	textures, err := gfx.LoadTextures(f, pictures)
	require.NoError(t, err)

	sprites, err := gfx.BuildSprites(f, pictures)
	require.NoError(t, err)

	sky, err := textures.Get("WALL1")
	require.NoError(t, err)

	return &roomScene{
		m:        m,
		palette:  palette,
		flats:    gfx.NewFlats(f),
		textures: textures,
		sprites:  sprites,
		sky:      sky,
		player:   &Player{Position: mapdata.Vertex{X: 32, Y: 32}, Angle: 0, FloorHeight: 0},
	}
}

func (s *roomScene) render(t *testing.T) *Pixels {
	t.Helper()

	pixels := NewPixels()
	r := NewRenderer(pixels, s.m, nil, s.textures, s.sprites, s.sky, s.flats, s.palette, s.player, 0)
	require.NoError(t, r.Render())
	return pixels
}

func TestRenderSquareRoomDrawsWall(t *testing.T) {
	scene := loadRoomScene(t)
	pixels := scene.render(t)

	nonZero := 0
	for _, b := range pixels.Buf {
		if b != 0 {
			nonZero++
		}
	}
	require.Greater(t, nonZero, 0, "the facing wall must put texels on screen")
}

func TestRenderIsDeterministicWithoutThinkers(t *testing.T) {
	scene := loadRoomScene(t)

	first := scene.render(t)
	second := scene.render(t)

	require.Equal(t, first.Buf, second.Buf, "same scene, same pose, same frame")
}

func TestProcessSegTightensOcclusionMonotonically(t *testing.T) {
	scene := loadRoomScene(t)

	s := NewSegs(NewPixels(), scene.textures, scene.flats, scene.palette, scene.player, 0)

	var floorBefore [ScreenWidth]int
	var ceilingBefore [ScreenWidth]int
	copy(floorBefore[:], s.floorVerOcl[:])
	copy(ceilingBefore[:], s.ceilingVerOcl[:])

	// The east wall faces the player dead ahead and is solid, so every
	// column it covers must end up fully occluded.
	for _, seg := range scene.m.SubSectors[0].Segs {
		require.NoError(t, s.ProcessSeg(seg))
	}

	occluded := 0
	for x := 0; x < ScreenWidth; x++ {
		require.LessOrEqual(t, s.floorVerOcl[x], floorBefore[x], "floor bound only ever moves up")
		require.GreaterOrEqual(t, s.ceilingVerOcl[x], ceilingBefore[x], "ceiling bound only ever moves down")
		if s.horOcl[x] {
			occluded++
		}
	}
	require.Equal(t, ScreenWidth, occluded, "a full-width solid wall occludes every column")
}
