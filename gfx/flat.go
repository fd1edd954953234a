package gfx

import (
	"fmt"
	"strings"
	"sync"

	"github.com/freewilll/doomgo/wad"
)

// FlatSize is the fixed width and height of every flat.
const FlatSize = 64

// Flat is a 64x64 floor/ceiling texture: a fully opaque, row-major grid of
// palette indices.
type Flat struct {
	Name   string
	Pixels [FlatSize][FlatSize]uint8
}

// Flats is a lazy, name-keyed cache of decoded flat lumps.
type Flats struct {
	f *wad.File

	mu    sync.Mutex
	cache map[string]*Flat
}

// NewFlats returns an empty cache backed by f.
func NewFlats(f *wad.File) *Flats {
	return &Flats{f: f, cache: make(map[string]*Flat)}
}

// Get returns the flat named name, decoding and caching it on first
// request.
func (fl *Flats) Get(name string) (*Flat, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if flat, ok := fl.cache[name]; ok {
		return flat, nil
	}

	e, err := fl.f.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("gfx: flat %q: %w", name, err)
	}
	if e.Size < FlatSize*FlatSize {
		return nil, fmt.Errorf("gfx: flat %q too short (%d bytes)", name, e.Size)
	}

	flat := &Flat{Name: name}
	b := fl.f.Bytes(e)
	for y := 0; y < FlatSize; y++ {
		for x := 0; x < FlatSize; x++ {
			flat.Pixels[y][x] = b[y*FlatSize+x]
		}
	}

	fl.cache[name] = flat
	return flat, nil
}

// IsSky reports whether a flat name is drawn as sky: a case-sensitive
// substring match against the lump name, which is already stored
// uppercased.
func IsSky(flatName string) bool {
	return strings.Contains(flatName, "SKY")
}
