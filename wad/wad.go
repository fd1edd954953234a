// Package wad decodes the IWAD container format: a 12-byte header followed
// by a flat directory of 16-byte lump entries. It exposes random-access
// lookup by name and positional lookup for the lumps that follow a map
// marker.
package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const (
	headerLen  = 12
	dirEntLen  = 16
	lumpNameLn = 8
)

var magic = []byte("IWAD")

// Container/lump/record problems are all fatal at load time, distinguished
// so callers can tell them apart with errors.Is.
var (
	ErrInvalidContainer = errors.New("wad: not an IWAD container")
	ErrNotFound         = errors.New("wad: lump not found")
	ErrMissingLump      = errors.New("wad: required lump missing")
)

// MapLumpKind enumerates the ten lumps that follow a map marker, in the
// fixed order DOOM writes them.
type MapLumpKind int

const (
	Things MapLumpKind = iota + 1
	Linedefs
	Sidedefs
	Vertexes
	Segs
	Ssectors
	Nodes
	Sectors
	Reject
	Blockmap
)

// DirEntry is one 16-byte directory record: where a lump lives in the file
// and how big it is.
type DirEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// File is a decoded IWAD: the raw byte buffer plus its directory.
type File struct {
	buf     []byte
	entries []DirEntry
	index   map[string]int
}

// Load parses the 12-byte header and the lump directory out of buf. buf is
// retained, not copied; the caller owns it for the lifetime of the File.
func Load(buf []byte) (*File, error) {
	if len(buf) < headerLen {
		return nil, fmt.Errorf("wad: truncated header: %w", ErrInvalidContainer)
	}
	if !bytes.Equal(buf[0:4], magic) {
		return nil, fmt.Errorf("wad: magic %q: %w", buf[0:4], ErrInvalidContainer)
	}

	lumpCount := int(binary.LittleEndian.Uint32(buf[4:8]))
	dirOffset := int(binary.LittleEndian.Uint32(buf[8:12]))

	f := &File{
		buf:     buf,
		entries: make([]DirEntry, 0, lumpCount),
		index:   make(map[string]int, lumpCount),
	}

	for i := 0; i < lumpCount; i++ {
		off := dirOffset + i*dirEntLen
		if off+dirEntLen > len(buf) {
			return nil, fmt.Errorf("wad: directory entry %d out of range: %w", i, ErrInvalidContainer)
		}

		entry := DirEntry{
			Offset: binary.LittleEndian.Uint32(buf[off : off+4]),
			Size:   binary.LittleEndian.Uint32(buf[off+4 : off+8]),
			Name:   readLumpName(buf[off+8 : off+16]),
		}

		f.index[entry.Name] = len(f.entries)
		f.entries = append(f.entries, entry)
	}

	return f, nil
}

// readLumpName decodes an 8-byte lump name: NUL-terminated, or exactly 8
// bytes long. Canonical form is uppercase.
func readLumpName(b []byte) string {
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		n = len(b)
	}
	return string(bytes.ToUpper(b[:n:n]))
}

// Lookup returns the directory entry for the given lump name.
func (f *File) Lookup(name string) (DirEntry, error) {
	i, ok := f.index[strings.ToUpper(name)]
	if !ok {
		return DirEntry{}, fmt.Errorf("wad: lookup %q: %w", name, ErrNotFound)
	}
	return f.entries[i], nil
}

// indexOf returns the directory index of the map marker lump named
// name (a map id such as "E1M1"), or an error wrapping ErrMissingLump.
func (f *File) indexOf(name string) (int, error) {
	i, ok := f.index[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("wad: map marker %q: %w", name, ErrMissingLump)
	}
	return i, nil
}

// MapLump returns the directory entry for one of the ten lumps following
// the marker for mapName, selected by kind's fixed ordinal offset.
func (f *File) MapLump(mapName string, kind MapLumpKind) (DirEntry, error) {
	markerIdx, err := f.indexOf(mapName)
	if err != nil {
		return DirEntry{}, err
	}

	lumpIdx := markerIdx + int(kind)
	if lumpIdx >= len(f.entries) {
		return DirEntry{}, fmt.Errorf("wad: map %q lump kind %d out of range: %w", mapName, kind, ErrMissingLump)
	}

	return f.entries[lumpIdx], nil
}

// SpriteRange returns the [start, end) directory index range bounded by the
// S_START and S_END marker lumps.
func (f *File) SpriteRange() (start, end int, err error) {
	s, ok := f.index["S_START"]
	if !ok {
		return 0, 0, fmt.Errorf("wad: S_START: %w", ErrMissingLump)
	}
	e, ok := f.index["S_END"]
	if !ok {
		return 0, 0, fmt.Errorf("wad: S_END: %w", ErrMissingLump)
	}
	return s + 1, e, nil
}

// EntryAt returns the directory entry at position i.
func (f *File) EntryAt(i int) DirEntry {
	return f.entries[i]
}

// NumEntries returns the number of lumps in the directory.
func (f *File) NumEntries() int {
	return len(f.entries)
}

// DirEntries returns the whole directory, in file order. Useful for tooling
// and tests that need to list every lump without a name lookup.
func (f *File) DirEntries() []DirEntry {
	out := make([]DirEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Bytes returns the raw lump bytes for entry e.
func (f *File) Bytes(e DirEntry) []byte {
	return f.buf[e.Offset : e.Offset+e.Size]
}

// ReadI16 reads a little-endian signed 16-bit integer at byte offset off.
func (f *File) ReadI16(off int) int16 {
	return int16(binary.LittleEndian.Uint16(f.buf[off : off+2]))
}

// ReadU32 reads a little-endian unsigned 32-bit integer at byte offset off.
func (f *File) ReadU32(off int) uint32 {
	return binary.LittleEndian.Uint32(f.buf[off : off+4])
}

// ReadFixedFromI16 reads a little-endian i16 at off and promotes it to
// float32, as DOOM's map-unit fields (which are always integral) are
// consumed by the renderer's floating-point geometry.
func (f *File) ReadFixedFromI16(off int) float32 {
	return float32(f.ReadI16(off))
}

// ReadLumpName reads an 8-byte lump name at byte offset off.
func (f *File) ReadLumpName(off int) string {
	return readLumpName(f.buf[off : off+8])
}

// Slice returns the raw bytes in [off, off+n).
func (f *File) Slice(off, n int) []byte {
	return f.buf[off : off+n]
}

// Len returns the size of the underlying buffer.
func (f *File) Len() int {
	return len(f.buf)
}
