package render

import "github.com/freewilll/doomgo/gfx"

// BitmapRenderState tracks how a rendered wall stripe or sprite should be
// composited relative to the rest of the scene.
type BitmapRenderState int

const (
	// SolidSeg is a one-sided wall, already drawn; kept only for map
	// object clipping.
	SolidSeg BitmapRenderState = iota
	// TwoSidedSeg is a portal's middle texture, deferred until the
	// depth-sorted sprite pass so things can be clipped against it.
	TwoSidedSeg
	// DrawnSeg is a TwoSidedSeg that has since been rendered.
	DrawnSeg
	// MapObjectSeg is a sprite billboard.
	MapObjectSeg
)

// BitmapColumn is one screen column of a BitmapRender: the clipped
// drawable span plus the full (unclipped) span the texture column
// interpolation needs.
type BitmapColumn struct {
	X                           int
	ClippedTopY, ClippedBottomY int
	BottomY, TopY               int
}

// Source is the minimal surface a drawable image exposes for column
// sampling: gfx.Bitmap (pictures, sprite frames) and gfx.Texture
// (composed wall textures) both implement it.
type Source interface {
	Dims() (width, height int)
	At(y, x int) (index uint8, opaque bool)
}

// BitmapRender defers a wall stripe or sprite's actual pixel writes so it
// can be depth-sorted against map objects before drawing.
type BitmapRender struct {
	State       BitmapRenderState
	Bitmap      Source // nil for a portal with no middle texture
	LightLevel  int
	ClippedLine ClippedLine

	startX, endX            int
	bottomHeight, topHeight float32
	offsetX, offsetY        int

	ExtendsToBottom bool
	ExtendsToTop    bool
	DrawCeiling     bool

	Columns []BitmapColumn
}

// NewBitmapRender stages one wall stripe or sprite for later rendering.
func NewBitmapRender(
	state BitmapRenderState,
	bitmap Source,
	lightLevel int,
	clippedLine ClippedLine,
	startX, endX int,
	bottomHeight, topHeight float32,
	offsetX, offsetY int,
	extendsToBottom, extendsToTop, drawCeiling bool,
) *BitmapRender {
	return &BitmapRender{
		State:           state,
		Bitmap:          bitmap,
		LightLevel:      lightLevel,
		ClippedLine:     clippedLine,
		startX:          startX,
		endX:            endX,
		bottomHeight:    bottomHeight,
		topHeight:       topHeight,
		offsetX:         offsetX,
		offsetY:         offsetY,
		ExtendsToBottom: extendsToBottom,
		ExtendsToTop:    extendsToTop,
		DrawCeiling:     drawCeiling,
	}
}

// AddColumn records one screen column to draw once Render runs.
func (b *BitmapRender) AddColumn(x, clippedTopY, clippedBottomY, bottomY, topY int) {
	b.Columns = append(b.Columns, BitmapColumn{
		X: x, ClippedTopY: clippedTopY, ClippedBottomY: clippedBottomY,
		BottomY: bottomY, TopY: topY,
	})
}

// Render draws every staged column, unless it was already drawn directly
// (SolidSeg) or by an earlier Render call (DrawnSeg).
func (b *BitmapRender) Render(pixels *Pixels, palette *gfx.Palette) {
	if b.State == SolidSeg || b.State == DrawnSeg {
		return
	}

	if b.Bitmap != nil {
		for _, col := range b.Columns {
			renderVerticalBitmapLine(
				pixels, palette, b.Bitmap, b.LightLevel, b.ClippedLine,
				b.startX, b.endX, b.bottomHeight, b.topHeight, b.offsetX, b.offsetY,
				col.X, col.ClippedBottomY, col.ClippedTopY, col.BottomY, col.TopY,
			)
		}
	}

	b.State = DrawnSeg
}

// startXCoord returns the x coordinate Ord used for depth-sorting in the
// original engine: the clipped line's start x in viewport space,
// truncated like a wall-stripe screen column.
func (b *BitmapRender) startXCoord() int {
	return int(b.ClippedLine.Line.Start.X)
}

// diminishColor applies DOOM's simplified distance/light falloff: see
// r_plane.c. The factor is tuned by feel rather than derived from the
// original lookup tables.
func diminishColor(c gfx.Color, lightLevel, distance int) gfx.Color {
	factor := float64(lightLevel) / 255.0

	const diminishingFactor = 1.0 / (16.0 * 256.0)
	factor -= float64(distance) * diminishingFactor
	if factor < 0 {
		factor = 0
	}

	return gfx.Color{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// renderVerticalBitmapLine draws one screen column of a wall stripe or
// sprite, perspective-correcting the texture-space u (horizontal) using
// the 1/z interpolation from section 5.12.5 of the game engine black
// book, and the texture-space v (vertical) with a plain linear
// interpolation (x distance does not affect it).
func renderVerticalBitmapLine(
	pixels *Pixels,
	palette *gfx.Palette,
	bitmap Source,
	lightLevel int,
	clippedLine ClippedLine,
	startX, endX int,
	bottomHeight, topHeight float32,
	offsetX, offsetY int,
	x, clippedBottomY, clippedTopY, bottomY, topY int,
) {
	width, height := bitmap.Dims()

	ux0, ux1 := 0.0, float64(clippedLine.Line.Length())
	uy0, uy1 := 0.0, float64(topHeight-bottomHeight)
	uz0, uz1 := float64(clippedLine.Line.Start.X), float64(clippedLine.Line.End.X)

	ax := float64(x-startX) / float64(endX-startX)
	tx := int(((1-ax)*(ux0/uz0) + ax*(ux1/uz1)) / ((1-ax)*(1/uz0) + ax*(1/uz1)))
	tx += int(clippedLine.StartOffset) + offsetX
	if tx < 0 {
		tx += width * (1 - tx/width)
	}
	tx %= width

	z := int(((1 - ax) + ax) / ((1-ax)*(1/uz0) + ax*(1/uz1)))

	for y := clippedTopY; y <= clippedBottomY; y++ {
		ay := float64(y-topY) / float64(bottomY-topY)
		ty := int(float64(height) + (1-ay)*uy0 + ay*uy1)

		ty += offsetY
		if ty < 0 {
			ty += height * (1 - ty/height)
		}
		ty %= height

		index, opaque := bitmap.At(ty, tx)
		if !opaque {
			continue
		}

		color := palette.Colors[index]
		pixels.Set(x, y, diminishColor(color, lightLevel, z))
	}
}
