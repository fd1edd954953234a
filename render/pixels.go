// Package render turns a loaded map, its graphics store and a player pose
// into one packed RGB8 frame: a BSP front-to-back wall pass that also
// collects floor/ceiling visplanes, a visplane flush pass (with the sky
// texture as a special case), and a depth-sorted sprite pass for map
// objects interleaved with the portal segs behind them.
package render

import "github.com/freewilll/doomgo/gfx"

// ScreenWidth and ScreenHeight are the renderer's native output
// resolution. The original VGA modes this engine imitates ran on square
// pixels at 320x240 despite the data being authored for 320x200; see
// aspectRatioCorrection.
const (
	ScreenWidth  = 320
	ScreenHeight = 200
)

// Pixels is the framebuffer the renderer draws into: one packed RGB8
// triplet per pixel, row-major.
type Pixels struct {
	Buf []uint8 // len == ScreenWidth*ScreenHeight*3
}

// NewPixels returns a black ScreenWidth x ScreenHeight framebuffer.
func NewPixels() *Pixels {
	return &Pixels{Buf: make([]uint8, ScreenWidth*ScreenHeight*3)}
}

// Clear paints every pixel black.
func (p *Pixels) Clear() {
	for i := range p.Buf {
		p.Buf[i] = 0
	}
}

// Set writes one pixel, silently dropping out-of-bounds coordinates.
func (p *Pixels) Set(x, y int, c gfx.Color) {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return
	}
	i := 3 * (y*ScreenWidth + x)
	p.Buf[i] = c.R
	p.Buf[i+1] = c.G
	p.Buf[i+2] = c.B
}

// DrawVerticalLine paints column x from top to bottom inclusive, clipping
// to the screen and skipping the leftmost column (matches the original
// debug-outline helper this is ported from).
func (p *Pixels) DrawVerticalLine(x, top, bottom int, c gfx.Color) {
	if x <= 0 || x >= ScreenWidth {
		return
	}
	for y := top; y <= bottom; y++ {
		if y < 0 || y >= ScreenHeight {
			continue
		}
		p.Set(x, y, c)
	}
}
