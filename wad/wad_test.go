package wad

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildWad assembles a minimal in-memory IWAD with the given lumps, in
// order, returning the full byte buffer.
func buildWad(t *testing.T, lumps []struct {
	name string
	data []byte
}) []byte {
	t.Helper()

	var body []byte
	type placed struct {
		name   string
		offset uint32
		size   uint32
	}
	var dir []placed

	for _, l := range lumps {
		dir = append(dir, placed{name: l.name, offset: uint32(headerLen + len(body)), size: uint32(len(l.data))})
		body = append(body, l.data...)
	}

	buf := make([]byte, headerLen)
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(dir)))
	dirOffset := headerLen + len(body)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(dirOffset))
	buf = append(buf, body...)

	for _, p := range dir {
		var rec [16]byte
		binary.LittleEndian.PutUint32(rec[0:4], p.offset)
		binary.LittleEndian.PutUint32(rec[4:8], p.size)
		copy(rec[8:16], padName(p.name))
		buf = append(buf, rec[:]...)
	}

	return buf
}

func padName(name string) []byte {
	b := make([]byte, 8)
	copy(b, name)
	return b
}

func TestLoadRejectsBadMagic(t *testing.T) {
	buf := []byte("PWAD")
	buf = append(buf, make([]byte, 8)...)
	_, err := Load(buf)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidContainer))
}

func TestLoadAndLookup(t *testing.T) {
	buf := buildWad(t, []struct {
		name string
		data []byte
	}{
		{name: "PLAYPAL", data: make([]byte, 768)},
		{name: "E1M1", data: nil},
		{name: "THINGS", data: []byte{1, 2}},
		{name: "LINEDEFS", data: []byte{3, 4}},
	})

	f, err := Load(buf)
	require.NoError(t, err)
	require.Equal(t, 4, f.NumEntries())

	e, err := f.Lookup("playpal")
	require.NoError(t, err)
	require.Equal(t, uint32(768), e.Size)

	_, err = f.Lookup("NOPE")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMapLump(t *testing.T) {
	buf := buildWad(t, []struct {
		name string
		data []byte
	}{
		{name: "E1M1", data: nil},
		{name: "THINGS", data: []byte{9}},
		{name: "LINEDEFS", data: []byte{8}},
	})

	f, err := Load(buf)
	require.NoError(t, err)

	e, err := f.MapLump("e1m1", Things)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, f.Bytes(e))

	_, err = f.MapLump("nope", Things)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingLump))
}

func TestSpriteRange(t *testing.T) {
	buf := buildWad(t, []struct {
		name string
		data []byte
	}{
		{name: "S_START", data: nil},
		{name: "TROOA1", data: []byte{1}},
		{name: "TROOA2A8", data: []byte{2}},
		{name: "S_END", data: nil},
	})

	f, err := Load(buf)
	require.NoError(t, err)

	start, end, err := f.SpriteRange()
	require.NoError(t, err)
	require.Equal(t, 1, start)
	require.Equal(t, 3, end)
}

func TestReadLumpNameNullTerminatedVsFullLength(t *testing.T) {
	require.Equal(t, "ABC", readLumpName([]byte("ABC\x00\x00\x00\x00\x00")))
	require.Equal(t, "ABCDEFGH", readLumpName([]byte("ABCDEFGH")))
}
