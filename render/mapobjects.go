package render

import (
	"log"
	"math"
	"sort"

	"github.com/freewilll/doomgo/gfx"
	"github.com/freewilll/doomgo/mapdata"
	"github.com/freewilll/doomgo/think"
)

// spriteRotation picks one of a sprite's 8 billboard rotations based on
// the angle between the player and the object's own facing, shifted by
// pi/16 and then truncated to a 45-degree sector:
//
//	   2
//	 3 | 1
//	  \|/
//	4--*----> 0   object's facing direction
//	  /|\
//	 5 | 7
//	   6
func spriteRotation(player *Player, obj *think.MapObject) uint8 {
	angle := float64(player.Angle) - float64(obj.Angle) - math.Pi
	angle += math.Pi / 16 // shift sector boundaries by a quarter sector before truncating

	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	angle = math.Mod(angle, 2*math.Pi)

	return uint8(angle * 8 / (2 * math.Pi))
}

// drawMapObjects billboards every live map object, clips it against the
// solid walls and portals already processed by Segs, depth-sorts the
// result together with the deferred two-sided segs, and draws back to
// front. An object standing outside the map is logged and skipped; an
// object whose sprite is missing from the store is an error.
func drawMapObjects(segs []*BitmapRender, pixels *Pixels, objects []*think.MapObject, player *Player, sprites *gfx.Sprites, m *mapdata.Map, palette *gfx.Palette) error {
	var objectRenders []*BitmapRender

	for _, obj := range objects {
		if !obj.Alive() {
			continue
		}

		rotation := spriteRotation(player, obj)
		picture, err := sprites.GetPicture(obj.Sprite, obj.Frame, rotation)
		if err != nil {
			return err
		}

		moved := obj.Position.Sub(player.Position)
		viewportVertex := moved.Rotate(-player.Angle)

		width := float32(picture.Bitmap.Width)
		start := viewportVertex.Sub(mapdata.Vertex{X: 0, Y: -width / 2})
		end := viewportVertex.Sub(mapdata.Vertex{X: 0, Y: width / 2})

		clippedLine, ok := clipToViewport(mapdata.Line{Start: start, End: end})
		if !ok {
			continue
		}

		sector := GetSectorFromVertex(m, obj.Position)
		if sector == nil {
			log.Printf("render: map object outside map: %+v", obj.Position)
			continue
		}

		lightLevel := sector.LightLevel
		if obj.FullBright {
			lightLevel = 255
		}

		playerHeight := player.FloorHeight + PlayerEyeHeight
		z := sector.FloorHeight
		bottomHeight := z - playerHeight
		topHeight := z + float32(picture.Bitmap.Height) - 1 - playerHeight

		bottomHeight += float32(picture.TopOffset) - float32(picture.Bitmap.Height)
		topHeight += float32(picture.TopOffset) - float32(picture.Bitmap.Height)

		bottom := makeSidedefNonVerticalLine(clippedLine.Line, bottomHeight)
		top := makeSidedefNonVerticalLine(clippedLine.Line, topHeight)

		var topSegClip [ScreenWidth]int
		var bottomSegClip [ScreenWidth]int
		for x := range topSegClip {
			topSegClip[x] = -1
			bottomSegClip[x] = ScreenHeight
		}

		for _, seg := range segs {
			minX := minFloat32(seg.ClippedLine.Line.Start.X, seg.ClippedLine.Line.End.X)
			maxX := maxFloat32(seg.ClippedLine.Line.Start.X, seg.ClippedLine.Line.End.X)

			if minX > viewportVertex.X {
				continue
			}
			if maxX > viewportVertex.X && !viewportVertex.IsLeftOfLine(seg.ClippedLine.Line.Start, seg.ClippedLine.Line.End) {
				continue
			}

			for _, col := range seg.Columns {
				x := col.X
				switch seg.State {
				case SolidSeg:
					if seg.ExtendsToBottom {
						bottomSegClip[x] = minInt(bottomSegClip[x], col.ClippedTopY)
					}
					if seg.ExtendsToTop {
						topSegClip[x] = maxInt(topSegClip[x], col.ClippedBottomY)
					}
				case TwoSidedSeg:
					if seg.DrawCeiling {
						topSegClip[x] = maxInt(topSegClip[x], col.TopY)
					}
					bottomSegClip[x] = minInt(bottomSegClip[x], col.BottomY)
				}
			}
		}

		objRender := NewBitmapRender(
			MapObjectSeg, picture.Bitmap, lightLevel, clippedLine,
			bottom.Start.X, bottom.End.X, bottomHeight, topHeight, 0, 0,
			false, false, false,
		)

		bottomDelta := float64(bottom.Start.Y-bottom.End.Y) / float64(bottom.Start.X-bottom.End.X)
		topDelta := float64(top.Start.Y-top.End.Y) / float64(top.Start.X-top.End.X)

		// The right edge is one column short to avoid a texture wraparound.
		for x := bottom.Start.X; x < bottom.End.X; x++ {
			bottomY := int(float64(bottom.Start.Y) + float64(x-bottom.Start.X)*bottomDelta)
			topY := int(float64(top.Start.Y) + float64(x-top.Start.X)*topDelta)

			clippedTopY := maxInt(topY, topSegClip[x])
			clippedBottomY := minInt(bottomY, bottomSegClip[x])
			clippedTopY = maxInt(0, clippedTopY)
			clippedBottomY = minInt(ScreenHeight-1, clippedBottomY)

			objRender.AddColumn(x, clippedTopY, clippedBottomY, bottomY, topY)
		}

		objectRenders = append(objectRenders, objRender)
	}

	// Depth-sort back to front.
	sort.SliceStable(objectRenders, func(i, j int) bool {
		return objectRenders[i].startXCoord() < objectRenders[j].startXCoord()
	})
	for i, j := 0, len(objectRenders)-1; i < j; i, j = i+1, j-1 {
		objectRenders[i], objectRenders[j] = objectRenders[j], objectRenders[i]
	}

	for _, objRender := range objectRenders {
		for _, seg := range segs {
			if seg.startXCoord() > objRender.startXCoord() {
				seg.Render(pixels, palette)
			}
		}
		objRender.Render(pixels, palette)
	}

	return nil
}

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
