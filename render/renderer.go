package render

import (
	"github.com/freewilll/doomgo/gfx"
	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/think"
)

// Renderer draws one frame for a loaded map, player pose and object set
// into a Pixels framebuffer.
type Renderer struct {
	segs       *Segs
	m          *mapdata.Map
	objects    []*think.MapObject
	sprites    *gfx.Sprites
	skyTexture *gfx.Texture
}

// NewRenderer wires up one frame's renderer. timestamp is the game clock
// in seconds, used to pick the current frame of any animated flat the
// frame's segs touch.
func NewRenderer(
	pixels *Pixels,
	m *mapdata.Map,
	objects []*think.MapObject,
	textures *gfx.Textures,
	sprites *gfx.Sprites,
	skyTexture *gfx.Texture,
	flats *gfx.Flats,
	palette *gfx.Palette,
	player *Player,
	timestamp float64,
) *Renderer {
	return &Renderer{
		segs:       NewSegs(pixels, textures, flats, palette, player, timestamp),
		m:          m,
		objects:    objects,
		sprites:    sprites,
		skyTexture: skyTexture,
	}
}

func (r *Renderer) processSubSector(sub *mapdata.SubSector) error {
	for _, seg := range sub.Segs {
		if err := r.segs.ProcessSeg(seg); err != nil {
			return err
		}
	}
	return nil
}

// renderNode recurses the BSP tree front-to-back from the player's
// position: whichever side of the node's partition line the player
// stands on is always nearer and must be drawn first.
func (r *Renderer) renderNode(node *mapdata.Node) error {
	p := node.PartitionLine()
	isLeft := r.segs.Player.Position.IsLeftOfLine(p.Start, p.End)

	front, back := node.Right, node.Left
	if isLeft {
		front, back = node.Left, node.Right
	}

	if n, ok := front.Node(); ok {
		if err := r.renderNode(n); err != nil {
			return err
		}
	} else if sub, ok := front.SubSector(); ok {
		if err := r.processSubSector(sub); err != nil {
			return err
		}
	}

	// A bounding-box visibility test against back could skip most
	// off-screen subtrees; omitted for now, everything gets visited.
	if n, ok := back.Node(); ok {
		if err := r.renderNode(n); err != nil {
			return err
		}
	} else if sub, ok := back.SubSector(); ok {
		if err := r.processSubSector(sub); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawVisplanes() {
	for _, vp := range r.segs.Visplanes {
		DrawVisplane(r.segs.Pixels, r.segs.Palette, r.segs.Player, r.skyTexture, vp)
	}
}

// Render draws one full frame: walls and visplane collection via a BSP
// walk, then visplanes, then map objects depth-sorted against the
// portals deferred during the wall pass. The only errors it returns are
// references to graphics assets missing from the store, which indicate
// an asset set incompatible with the loaded map.
func (r *Renderer) Render() error {
	if node, ok := r.m.Root.Node(); ok {
		if err := r.renderNode(node); err != nil {
			return err
		}
	} else if sub, ok := r.m.Root.SubSector(); ok {
		if err := r.processSubSector(sub); err != nil {
			return err
		}
	}

	r.drawVisplanes()

	// Segs were collected front-to-back; reverse so the depth sort below
	// (and the remaining-segs fallback) processes back-to-front.
	for i, j := 0, len(r.segs.Segs)-1; i < j; i, j = i+1, j-1 {
		r.segs.Segs[i], r.segs.Segs[j] = r.segs.Segs[j], r.segs.Segs[i]
	}

	if err := drawMapObjects(r.segs.Segs, r.segs.Pixels, r.objects, r.segs.Player, r.sprites, r.m, r.segs.Palette); err != nil {
		return err
	}

	r.segs.DrawRemainingSegs()
	return nil
}
