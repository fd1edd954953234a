package gfx

import (
	"fmt"
	"sync"

	"github.com/freewilll/doomgo/wad"
)

// Picture is a decoded "picture format" lump: a possibly-transparent
// bitmap plus the offsets DOOM uses to anchor it (patches onto a texture,
// sprites onto a map object's feet).
type Picture struct {
	Name       string
	Bitmap     *Bitmap
	LeftOffset int16
	TopOffset  int16
}

const pictureHeaderLen = 8

// decodePicture reads one picture-format lump at entry e out of f.
func decodePicture(f *wad.File, name string, e wad.DirEntry) (*Picture, error) {
	off := int(e.Offset)
	width := int(f.ReadI16(off))
	height := int(f.ReadI16(off + 2))
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("gfx: picture %q has negative dimensions", name)
	}

	bmp := NewBitmap(width, height)

	for col := 0; col < width; col++ {
		colOff := off + int(f.ReadU32(off+pictureHeaderLen+col*4))

		for {
			yOffset := f.Slice(colOff, 1)[0]
			if yOffset == 0xff {
				break
			}
			length := int(f.Slice(colOff+1, 1)[0])

			for row := 0; row < length; row++ {
				y := int(yOffset) + row
				if y < 0 || y >= height {
					continue
				}
				v := f.Slice(colOff+3+row, 1)[0]
				bmp.Pixels[y][col] = Cell{Index: v, Opaque: true}
			}

			colOff += length + 4
		}
	}

	return &Picture{
		Name:       name,
		Bitmap:     bmp,
		LeftOffset: f.ReadI16(off + 4),
		TopOffset:  f.ReadI16(off + 6),
	}, nil
}

// Mirror returns a new Picture with a horizontally-flipped copy of the
// bitmap; offsets and name are preserved.
func (p *Picture) Mirror() *Picture {
	return &Picture{
		Name:       p.Name,
		Bitmap:     p.Bitmap.Mirror(),
		LeftOffset: p.LeftOffset,
		TopOffset:  p.TopOffset,
	}
}

// Pictures is a lazy, name-keyed cache of decoded Picture lumps.
type Pictures struct {
	f *wad.File

	mu    sync.Mutex
	cache map[string]*Picture
}

// NewPictures returns an empty cache backed by f.
func NewPictures(f *wad.File) *Pictures {
	return &Pictures{f: f, cache: make(map[string]*Picture)}
}

// Get returns the decoded picture named name, decoding and caching it on
// first request.
func (p *Pictures) Get(name string) (*Picture, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pic, ok := p.cache[name]; ok {
		return pic, nil
	}

	e, err := p.f.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("gfx: picture %q: %w", name, err)
	}

	pic, err := decodePicture(p.f, name, e)
	if err != nil {
		return nil, err
	}

	p.cache[name] = pic
	return pic, nil
}
