// Package gfx decodes the graphics lumps a map needs to be drawn: the
// palette, 64x64 flats, column-major "picture" patches, composed wall
// textures, and sprite frame/rotation tables. Everything past the palette
// is lazily decoded on first request and cached for the rest of the map's
// lifetime, mirroring the renderer's single-threaded, read-mostly access
// pattern.
package gfx

import (
	"fmt"

	"github.com/freewilll/doomgo/wad"
)

// Color is one opaque RGB triple out of a Palette.
type Color struct {
	R, G, B uint8
}

// Palette holds the 256 RGB triples that make up palette 0 of PLAYPAL.
type Palette struct {
	Colors [256]Color
}

// LoadPalette reads palette 0 (the first 768 bytes of PLAYPAL) out of f.
func LoadPalette(f *wad.File) (*Palette, error) {
	e, err := f.Lookup("PLAYPAL")
	if err != nil {
		return nil, fmt.Errorf("gfx: palette: %w", err)
	}

	b := f.Bytes(e)
	if len(b) < 768 {
		return nil, fmt.Errorf("gfx: PLAYPAL lump too short (%d bytes)", len(b))
	}

	var p Palette
	for i := range p.Colors {
		p.Colors[i] = Color{R: b[i*3], G: b[i*3+1], B: b[i*3+2]}
	}
	return &p, nil
}
