package gfx

import "github.com/freewilll/doomgo/wad"

// Store is the full graphics asset set for one loaded wad: the palette
// (eager, small, needed everywhere) plus the lazy flat/picture/texture
// caches and the up-front sprite table. Constructed once per wad and
// shared for the run's lifetime.
type Store struct {
	Palette  *Palette
	Flats    *Flats
	Pictures *Pictures
	Textures *Textures
	Sprites  *Sprites
}

// NewStore wires up a Store in the dependency order textures and sprites
// require: the palette has no dependents that must precede it, flats and
// pictures are independent lazy caches, and textures/sprites both resolve
// patches through the shared Pictures cache.
func NewStore(f *wad.File) (*Store, error) {
	palette, err := LoadPalette(f)
	if err != nil {
		return nil, err
	}

	pictures := NewPictures(f)
	flats := NewFlats(f)

	textures, err := LoadTextures(f, pictures)
	if err != nil {
		return nil, err
	}

	sprites, err := BuildSprites(f, pictures)
	if err != nil {
		return nil, err
	}

	return &Store{
		Palette:  palette,
		Flats:    flats,
		Pictures: pictures,
		Textures: textures,
		Sprites:  sprites,
	}, nil
}
