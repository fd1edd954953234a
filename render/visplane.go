package render

import (
	"math"

	"github.com/freewilll/doomgo/gfx"
	"github.com/freewilll/doomgo/mapdata"
)

// Visplane describes one contiguous floor or ceiling area: a height, a
// light level, a flat to sample, and per-column top/bottom screen y
// bounds between Left and Right.
type Visplane struct {
	Flat       *gfx.Flat
	Height     float32
	LightLevel int
	Left       int
	Right      int
	Top        [ScreenWidth]int
	Bottom     [ScreenWidth]int
}

// NewVisplane returns an empty visplane for the given flat/height/light.
func NewVisplane(flat *gfx.Flat, height float32, lightLevel int) *Visplane {
	return &Visplane{Flat: flat, Height: height, LightLevel: lightLevel, Left: -1, Right: -1}
}

// skyTextureWidth and skyTextureHeight correspond to the sky texture's
// fixed 256x128 layout: 256 columns span exactly the 90-degree player
// view.
const (
	skyTextureWidth  = 256
	skyTextureHeight = 128
)

func drawSky(pixels *Pixels, palette *gfx.Palette, player *Player, sky *gfx.Texture, vp *Visplane) {
	txOffset := int(-skyTextureWidth*float64(player.Angle)/(math.Pi/2)) + skyTextureWidth
	if txOffset < 0 {
		txOffset += skyTextureWidth * (1 - txOffset/skyTextureWidth)
	}

	for x := vp.Left; x <= vp.Right; x++ {
		top := maxInt(vp.Top[x], 0)
		bottom := minInt(vp.Bottom[x], ScreenHeight-1)

		for y := top; y <= bottom; y++ {
			tx := int(float64(x) * skyTextureWidth / ScreenWidth)
			tx = (tx + txOffset) % skyTextureWidth

			ty := int(float64(y) * skyTextureHeight / ScreenHeight)

			idx := sky.Pixels[ty][tx]
			pixels.Set(x, y, palette.Colors[idx])
		}
	}
}

// DrawVisplane fills a visplane's screen area by inverse-projecting each
// pixel back to world coordinates and sampling the flat there, or
// delegates to the sky-texture mapping when the flat is a sky flat.
func DrawVisplane(pixels *Pixels, palette *gfx.Palette, player *Player, sky *gfx.Texture, vp *Visplane) {
	if gfx.IsSky(vp.Flat.Name) {
		drawSky(pixels, palette, player, sky, vp)
		return
	}

	for x := vp.Left; x <= vp.Right; x++ {
		top := maxInt(vp.Top[x], 0)
		bottom := minInt(vp.Bottom[x], ScreenHeight-1)

		// A visplane column only one or two pixels tall looks like an ugly solid line; skip it.
		if bottom-top <= 1 {
			continue
		}

		for y := top; y <= bottom; y++ {
			// Inverse of makeSidedefNonVerticalLine: screen -> viewport.
			vx := (CameraFocusX - float64(x)) / aspectRatioCorrection
			vy := CameraFocusY - float64(y)

			// Inverse perspective transform: viewport -> world.
			wz := float64(vp.Height) - float64(player.FloorHeight) - PlayerEyeHeight
			wx := GameCameraFocusX * wz / vy
			wy := wz * vx / vy

			rotated := mapdata.Vertex{X: float32(wx), Y: float32(wy)}.Rotate(player.Angle)

			tx := int(rotated.X) + int(player.Position.X)
			ty := int(rotated.Y) + int(player.Position.Y)

			tx &= gfx.FlatSize - 1
			ty &= gfx.FlatSize - 1

			color := palette.Colors[vp.Flat.Pixels[ty][tx]]
			pixels.Set(x, y, diminishColor(color, vp.LightLevel, int(wx)))
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
