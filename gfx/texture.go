package gfx

import (
	"fmt"
	"strings"
	"sync"

	"github.com/freewilll/doomgo/wad"
)

// Pname is one entry of the PNAMES lump: a patch lump name, and whether
// that lump actually exists in this wad (some IWAD patch sets reference
// names from an add-on pack that isn't loaded).
type Pname struct {
	Name    string
	Present bool
}

type patchRef struct {
	originX, originY int16
	pnameIndex       int16
}

type textureDef struct {
	width, height int16
	patches       []patchRef
	built         *Texture // memoized composition, nil until first Get
}

// Texture is a composed wall texture: a fully opaque, row-major grid of
// palette indices built by blitting each of its patches in order.
type Texture struct {
	Width, Height int
	Pixels        [][]uint8
}

// Dims returns the texture's width and height, matching the Source
// interface the render package samples textures and pictures through.
func (t *Texture) Dims() (width, height int) { return t.Width, t.Height }

// At returns the palette index of one pixel; composed textures are
// always fully opaque.
func (t *Texture) At(y, x int) (index uint8, opaque bool) { return t.Pixels[y][x], true }

// Textures is the lazy PNAMES/TEXTURE1/TEXTURE2 store. Composing a texture
// requires the Pictures cache to resolve each patch's picture lump.
type Textures struct {
	f        *wad.File
	pictures *Pictures
	pnames   []Pname

	mu   sync.Mutex
	defs map[string]*textureDef
}

// LoadTextures parses PNAMES and TEXTURE1 (and TEXTURE2, if present) out of
// f. Composition of individual textures is deferred to Get.
func LoadTextures(f *wad.File, pictures *Pictures) (*Textures, error) {
	t := &Textures{f: f, pictures: pictures, defs: make(map[string]*textureDef)}

	pnames, err := loadPnames(f)
	if err != nil {
		return nil, err
	}
	t.pnames = pnames

	t1, err := f.Lookup("TEXTURE1")
	if err != nil {
		return nil, fmt.Errorf("gfx: %w", err)
	}
	if err := t.loadTextureList(t1); err != nil {
		return nil, err
	}

	if t2, err := f.Lookup("TEXTURE2"); err == nil {
		if err := t.loadTextureList(t2); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func loadPnames(f *wad.File) ([]Pname, error) {
	e, err := f.Lookup("PNAMES")
	if err != nil {
		return nil, fmt.Errorf("gfx: %w", err)
	}

	off := int(e.Offset)
	count := int(f.ReadU32(off))

	out := make([]Pname, count)
	for i := 0; i < count; i++ {
		name := f.ReadLumpName(off + 4 + i*8)
		_, lookupErr := f.Lookup(name)
		out[i] = Pname{Name: name, Present: lookupErr == nil}
	}
	return out, nil
}

func (t *Textures) loadTextureList(e wad.DirEntry) error {
	listOff := int(e.Offset)
	count := int(t.f.ReadU32(listOff))

	for i := 0; i < count; i++ {
		recOff := listOff + int(t.f.ReadU32(listOff+4+4*i))
		name := t.f.ReadLumpName(recOff)

		width := t.f.ReadI16(recOff + 12)
		height := t.f.ReadI16(recOff + 14)
		patchCount := int(t.f.ReadI16(recOff + 20))

		patches := make([]patchRef, patchCount)
		for j := 0; j < patchCount; j++ {
			pOff := recOff + 22 + j*10
			patches[j] = patchRef{
				originX:    t.f.ReadI16(pOff),
				originY:    t.f.ReadI16(pOff + 2),
				pnameIndex: t.f.ReadI16(pOff + 4),
			}
		}

		t.defs[strings.ToUpper(name)] = &textureDef{width: width, height: height, patches: patches}
	}
	return nil
}

// Get returns the named texture, composing it from its patches on first
// request and caching the result. An unknown name is a fatal error: it
// indicates an asset set incompatible with the map.
func (t *Textures) Get(name string) (*Texture, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	def, ok := t.defs[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("gfx: unknown texture %q", name)
	}
	if def.built != nil {
		return def.built, nil
	}

	tex := &Texture{Width: int(def.width), Height: int(def.height)}
	tex.Pixels = make([][]uint8, tex.Height)
	for y := range tex.Pixels {
		tex.Pixels[y] = make([]uint8, tex.Width)
	}

	for _, patch := range def.patches {
		if int(patch.pnameIndex) < 0 || int(patch.pnameIndex) >= len(t.pnames) {
			return nil, fmt.Errorf("gfx: texture %q references out-of-range pname %d", name, patch.pnameIndex)
		}
		pname := t.pnames[patch.pnameIndex]
		if !pname.Present {
			continue
		}

		pic, err := t.pictures.Get(pname.Name)
		if err != nil {
			return nil, err
		}

		blitOpaque(tex, pic.Bitmap, int(patch.originX), int(patch.originY))
	}

	def.built = tex
	return tex, nil
}

// blitOpaque copies src onto dst at (originX, originY), clipping to dst's
// bounds. Transparent source cells do not write, so earlier patches in the
// same column show through later ones' holes.
func blitOpaque(dst *Texture, src *Bitmap, originX, originY int) {
	for y := 0; y < src.Height; y++ {
		dy := y + originY
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for x := 0; x < src.Width; x++ {
			dx := x + originX
			if dx < 0 || dx >= dst.Width {
				continue
			}
			cell := src.Pixels[y][x]
			if !cell.Opaque {
				continue
			}
			dst.Pixels[dy][dx] = cell.Index
		}
	}
}
