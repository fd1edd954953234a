package gfx

import (
	"fmt"
	"sort"

	"github.com/freewilll/doomgo/wad"
)

// SpriteFrame holds either a single non-rotated Picture, or eight,
// indexed by rotation 1..8 (stored at slice positions 0..7).
type SpriteFrame struct {
	Rotate   bool
	Pictures []*Picture
}

// Sprite is one named sprite's frame table (e.g. "TROO" for the imp),
// keyed by frame index (0 = 'A', 1 = 'B', ...).
type Sprite struct {
	Name   string
	Frames map[uint8]*SpriteFrame
}

// Sprites is the full, name-keyed sprite table built by scanning the
// S_START..S_END directory range once at load time; unlike flats and
// textures there is nothing left to lazily decode; every picture a sprite
// references is loaded up front because the range has to be scanned in
// full to discover the grouping anyway.
type Sprites struct {
	sprites map[string]*Sprite
}

const spriteNamePrefixLen = 4

// BuildSprites scans the sprite lump range, groups entries by their
// 4-letter name prefix, and decodes every picture each sprite needs
// (synthesizing mirrored rotations where the lump pairs two rotations
// under one name).
func BuildSprites(f *wad.File, pictures *Pictures) (*Sprites, error) {
	start, end, err := f.SpriteRange()
	if err != nil {
		return nil, err
	}

	type found map[uint8]map[uint8]*Picture
	groups := make(map[string]found)

	for i := start; i < end; i++ {
		e := f.EntryAt(i)
		name := e.Name
		if len(name) < 6 {
			continue
		}
		prefix := name[:spriteNamePrefixLen]

		pic, err := pictures.Get(name)
		if err != nil {
			return nil, err
		}

		if groups[prefix] == nil {
			groups[prefix] = make(found)
		}

		if err := addFrame(groups[prefix], name, 4, pic, false); err != nil {
			return nil, err
		}
		if len(name) > 6 {
			if err := addFrame(groups[prefix], name, 6, pic, true); err != nil {
				return nil, err
			}
		}
	}

	sprites := make(map[string]*Sprite, len(groups))
	for name, fr := range groups {
		sprite, err := buildSprite(name, fr)
		if err != nil {
			return nil, err
		}
		sprites[name] = sprite
	}

	return &Sprites{sprites: sprites}, nil
}

func addFrame(f map[uint8]map[uint8]*Picture, name string, at int, pic *Picture, mirrored bool) error {
	frameCh := name[at]
	rotCh := name[at+1]
	if frameCh < 'A' || frameCh > 'Z' || rotCh < '0' || rotCh > '9' {
		return fmt.Errorf("gfx: sprite lump %q has malformed frame/rotation chars", name)
	}

	frame := uint8(frameCh - 'A')
	rotation := uint8(rotCh - '0')

	if f[frame] == nil {
		f[frame] = make(map[uint8]*Picture)
	}
	if mirrored {
		f[frame][rotation] = pic.Mirror()
	} else {
		f[frame][rotation] = pic
	}
	return nil
}

func buildSprite(name string, frames map[uint8]map[uint8]*Picture) (*Sprite, error) {
	s := &Sprite{Name: name, Frames: make(map[uint8]*SpriteFrame, len(frames))}

	for frame, rotations := range frames {
		switch len(rotations) {
		case 1:
			pic, ok := rotations[0]
			if !ok {
				return nil, fmt.Errorf("gfx: sprite %q frame %d: single rotation must be index 0", name, frame)
			}
			s.Frames[frame] = &SpriteFrame{Rotate: false, Pictures: []*Picture{pic}}

		case 8:
			pics := make([]*Picture, 8)
			for r := uint8(1); r <= 8; r++ {
				pic, ok := rotations[r]
				if !ok {
					return nil, fmt.Errorf("gfx: sprite %q frame %d: missing rotation %d", name, frame, r)
				}
				pics[r-1] = pic
			}
			s.Frames[frame] = &SpriteFrame{Rotate: true, Pictures: pics}

		default:
			var got []int
			for r := range rotations {
				got = append(got, int(r))
			}
			sort.Ints(got)
			return nil, fmt.Errorf("gfx: sprite %q frame %d: got %d rotations %v, want 1 or 8", name, frame, len(rotations), got)
		}
	}

	return s, nil
}

// Get returns the sprite named name.
func (s *Sprites) Get(name string) (*Sprite, error) {
	sp, ok := s.sprites[name]
	if !ok {
		return nil, fmt.Errorf("gfx: unknown sprite %q", name)
	}
	return sp, nil
}

// GetPicture returns the picture for (spriteName, frame, rotation).
// A rotation above 7 is an error for every frame; otherwise rotation only
// selects the picture when the frame is itself rotated.
func (s *Sprites) GetPicture(spriteName string, frame uint8, rotation uint8) (*Picture, error) {
	sp, err := s.Get(spriteName)
	if err != nil {
		return nil, err
	}

	fr, ok := sp.Frames[frame]
	if !ok {
		return nil, fmt.Errorf("gfx: sprite %q has no frame %d", spriteName, frame)
	}

	if rotation > 7 {
		return nil, fmt.Errorf("gfx: invalid rotation %d", rotation)
	}

	if !fr.Rotate {
		return fr.Pictures[0], nil
	}
	return fr.Pictures[rotation], nil
}
