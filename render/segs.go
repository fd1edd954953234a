package render

import (
	"github.com/freewilll/doomgo/gfx"
	"github.com/freewilll/doomgo/mapdata"
)

// segFlags controls what one processSidedef call does with a wall
// stripe: draw it, only record its occlusion/visplanes, or defer it as a
// two-sided middle texture for the depth-sorted sprite pass.
type segFlags struct {
	onlyOcclusions       bool
	isLowerWall          bool
	isUpperWall          bool
	drawCeiling          bool
	isTwoSidedMiddleWall bool
}

// sidedefDetails is the part of a sidedef's render context shared by all
// three (or one) of its wall stripes.
type sidedefDetails struct {
	clippedLine                ClippedLine
	sidedef                    *mapdata.Sidedef
	offsetX                    int
	floorHeight, ceilingHeight float32
	floorFlat, ceilingFlat     *gfx.Flat
	lightLevel                 int
}

// Segs is the heart of the renderer: it processes every seg in
// front-to-back BSP order, drawing solid walls immediately, deferring
// portal middle textures for later (they are depth-sorted together with
// map objects), and accumulating visplanes for the floor/ceiling pass that
// follows.
type Segs struct {
	Pixels  *Pixels
	Palette *gfx.Palette
	Player  *Player

	textures  *gfx.Textures
	flats     *gfx.Flats
	timestamp float64

	Segs      []*BitmapRender
	Visplanes []*Visplane

	horOcl        [ScreenWidth]bool
	floorVerOcl   [ScreenWidth]int
	ceilingVerOcl [ScreenWidth]int
}

// NewSegs returns a Segs with empty occlusion and output state.
func NewSegs(pixels *Pixels, textures *gfx.Textures, flats *gfx.Flats, palette *gfx.Palette, player *Player, timestamp float64) *Segs {
	s := &Segs{
		Pixels:    pixels,
		Palette:   palette,
		Player:    player,
		textures:  textures,
		flats:     flats,
		timestamp: timestamp,
	}
	for x := 0; x < ScreenWidth; x++ {
		s.floorVerOcl[x] = ScreenHeight
		s.ceilingVerOcl[x] = -1
	}
	return s
}

func (s *Segs) occludeVerticalLine(x int) {
	s.horOcl[x] = true
	s.floorVerOcl[x] = ScreenHeight / 2
	s.ceilingVerOcl[x] = ScreenHeight / 2
}

// processSidedef draws (or just occludes/visplanes) one vertical stripe
// of a sidedef: the solid middle of a one-sided wall, a portal's full
// height (occlusions only), a portal's unpegged middle texture, or a
// portal's lower/upper texture. Referencing a texture the store doesn't
// know is an error; a degenerate zero-width stripe is skipped silently.
func (s *Segs) processSidedef(sds *sidedefDetails, bottomHeight, topHeight float32, offsetY int, textureName string, flags segFlags) error {
	bottom := makeSidedefNonVerticalLine(sds.clippedLine.Line, bottomHeight)
	top := makeSidedefNonVerticalLine(sds.clippedLine.Line, topHeight)

	var texture *gfx.Texture
	if textureName != mapdata.AbsentTexture && textureName != "" {
		t, err := s.textures.Get(textureName)
		if err != nil {
			return err
		}
		texture = t
	}

	// Looking at the wall dead-on from the side: nothing to draw.
	if bottom.Start.X == bottom.End.X || top.Start.X == top.End.X {
		return nil
	}

	bottomDelta := float64(bottom.Start.Y-bottom.End.Y) / float64(bottom.Start.X-bottom.End.X)
	topDelta := float64(top.Start.Y-top.End.Y) / float64(top.Start.X-top.End.X)

	svp := newSidedefVisplanes(sds.lightLevel, sds.floorFlat, sds.ceilingFlat, sds.floorHeight, sds.ceilingHeight)

	isFullHeightWall := !flags.isLowerWall && !flags.isUpperWall && !flags.onlyOcclusions

	state := SolidSeg
	if flags.isTwoSidedMiddleWall {
		state = TwoSidedSeg
	}

	var bitmap Source
	if texture != nil {
		bitmap = texture
	}

	bitmapRender := NewBitmapRender(
		state, bitmap, sds.lightLevel, sds.clippedLine,
		bottom.Start.X, bottom.End.X, bottomHeight, topHeight,
		int(sds.sidedef.XOffset)+sds.offsetX, int(sds.sidedef.YOffset)+offsetY,
		flags.isLowerWall || (!flags.isTwoSidedMiddleWall && isFullHeightWall),
		flags.isUpperWall || (!flags.isTwoSidedMiddleWall && isFullHeightWall),
		flags.drawCeiling,
	)

	for x := bottom.Start.X; x <= bottom.End.X; x++ {
		if !s.horOcl[x] {
			bottomY := int(float64(bottom.Start.Y) + float64(x-bottom.Start.X)*bottomDelta)
			topY := int(float64(top.Start.Y) + float64(x-top.Start.X)*topDelta)

			floorVerOcl := s.floorVerOcl[x]
			ceilingVerOcl := s.ceilingVerOcl[x]

			clippedBottomY := minInt(floorVerOcl, bottomY)
			clippedTopY := maxInt(ceilingVerOcl, topY)
			clippedBottomY = minInt(ScreenHeight-1, clippedBottomY)
			clippedTopY = maxInt(0, clippedTopY)

			// Covers zero-height sectors (e.g. degenerate outer sectors).
			inVerClippedArea := clippedBottomY >= clippedTopY

			if inVerClippedArea {
				if !flags.isTwoSidedMiddleWall && !flags.onlyOcclusions && texture != nil {
					renderVerticalBitmapLine(
						s.Pixels, s.Palette, bitmap, sds.lightLevel, sds.clippedLine,
						bottom.Start.X, bottom.End.X, bottomHeight, topHeight,
						int(sds.sidedef.XOffset)+sds.offsetX, int(sds.sidedef.YOffset)+offsetY,
						x, clippedBottomY, clippedTopY, bottomY, topY,
					)
				}
				bitmapRender.AddColumn(x, clippedTopY, clippedBottomY, bottomY, topY)
			}

			if !flags.isTwoSidedMiddleWall && inVerClippedArea && (isFullHeightWall || flags.onlyOcclusions) {
				visplaneAdded := false

				if clippedBottomY < floorVerOcl && clippedBottomY != ScreenHeight-1 {
					svp.addBottomPoint(x, clippedBottomY, floorVerOcl)
					visplaneAdded = true
				}
				if flags.drawCeiling && clippedTopY > ceilingVerOcl && clippedTopY != -1 {
					svp.addTopPoint(x, ceilingVerOcl, clippedTopY)
					visplaneAdded = true
				}
				if !visplaneAdded {
					svp.flush(&s.Visplanes)
				}
			} else if !flags.isTwoSidedMiddleWall && !inVerClippedArea && (isFullHeightWall || flags.onlyOcclusions) && floorVerOcl > ceilingVerOcl {
				// Occluded, but there's still an unoccluded vertical gap;
				// fill it with the sidedef's own floor/ceiling flat. Rare
				// — e.g. the hidden stairwell gap in e1m1.
				if bottomY <= ceilingVerOcl {
					svp.addBottomPoint(x, ceilingVerOcl, floorVerOcl)
					s.occludeVerticalLine(x)
				}
				if flags.drawCeiling && topY >= floorVerOcl {
					svp.addTopPoint(x, ceilingVerOcl, floorVerOcl)
					s.occludeVerticalLine(x)
				}
			}

			if !flags.isTwoSidedMiddleWall && inVerClippedArea && flags.onlyOcclusions {
				s.floorVerOcl[x] = clippedBottomY
				if flags.drawCeiling {
					s.ceilingVerOcl[x] = clippedTopY
				}
			}
			if !flags.isTwoSidedMiddleWall && inVerClippedArea && flags.isLowerWall {
				s.floorVerOcl[x] = clippedTopY
			}
			if !flags.isTwoSidedMiddleWall && inVerClippedArea && flags.isUpperWall {
				s.ceilingVerOcl[x] = clippedBottomY
			}
		} else {
			svp.flush(&s.Visplanes)
		}

		if !flags.isTwoSidedMiddleWall && isFullHeightWall {
			s.occludeVerticalLine(x)
		}
	}

	svp.flush(&s.Visplanes)
	s.Segs = append(s.Segs, bitmapRender)
	return nil
}

// ProcessSeg renders (or defers, or just occludes) one BSP-order seg.
// Degenerate segs (back-facing, fully clipped, sideless) are skipped
// silently; a missing texture or flat is an error.
func (s *Segs) ProcessSeg(seg *mapdata.Seg) error {
	linedef := seg.Linedef

	frontSidedef := seg.FrontSidedef()
	if frontSidedef == nil {
		return nil
	}
	backSidedef := seg.BackSidedef()

	frontSector := frontSidedef.Sector
	floorHeight := frontSector.FloorHeight
	ceilingHeight := frontSector.CeilingHeight

	var portalBottomHeight, portalTopHeight float32
	var hasPortalBottom, hasPortalTop bool

	if backSidedef != nil {
		backSector := backSidedef.Sector
		if backSector.FloorHeight > frontSector.FloorHeight {
			portalBottomHeight = backSector.FloorHeight
			hasPortalBottom = true
		}
		if backSector.CeilingHeight < frontSector.CeilingHeight {
			portalTopHeight = backSector.CeilingHeight
			hasPortalTop = true
		}
	}

	isTwoSided := linedef.Has(mapdata.LineTwoSided)
	topIsUnpegged := linedef.Has(mapdata.LineDontPegTop)
	bottomIsUnpegged := linedef.Has(mapdata.LineDontPegBottom)

	movedStart := seg.Start.Sub(s.Player.Position)
	movedEnd := seg.End.Sub(s.Player.Position)
	start := movedStart.Rotate(-s.Player.Angle)
	end := movedEnd.Rotate(-s.Player.Angle)

	line := mapdata.Line{Start: start, End: end}

	clippedLine, ok := clipToViewport(line)
	if !ok {
		return nil
	}

	playerHeight := s.Player.FloorHeight + PlayerEyeHeight

	// We're facing the non-rendered side of the seg.
	floor := makeSidedefNonVerticalLine(clippedLine.Line, floorHeight-playerHeight)
	if floor.Start.X > floor.End.X {
		return nil
	}

	floorFlatName := gfx.GetAnimated(frontSector.FloorFlat, s.timestamp)
	ceilingFlatName := gfx.GetAnimated(frontSector.CeilingFlat, s.timestamp)
	floorFlat, err := s.flats.Get(floorFlatName)
	if err != nil {
		return err
	}
	ceilingFlat, err := s.flats.Get(ceilingFlatName)
	if err != nil {
		return err
	}

	drawCeiling := true

	// https://doomwiki.org/wiki/Sky_hack: when both sides' ceilings are
	// sky, skip the upper texture and the ceiling visplane entirely.
	if backSidedef != nil {
		if gfx.IsSky(frontSidedef.Sector.CeilingFlat) && gfx.IsSky(backSidedef.Sector.CeilingFlat) {
			hasPortalTop = false
			if backSidedef.Sector.CeilingHeight < ceilingHeight {
				ceilingHeight = backSidedef.Sector.CeilingHeight
			}
			drawCeiling = false
		}
	}

	sds := &sidedefDetails{
		clippedLine:   clippedLine,
		sidedef:       frontSidedef,
		offsetX:       int(seg.Offset),
		floorHeight:   frontSector.FloorHeight,
		ceilingHeight: frontSector.CeilingHeight,
		floorFlat:     floorFlat,
		ceilingFlat:   ceilingFlat,
		lightLevel:    frontSector.LightLevel,
	}

	if !isTwoSided {
		offsetY := 0
		if bottomIsUnpegged {
			offsetY = int(floorHeight - ceilingHeight)
		}
		return s.processSidedef(sds, floorHeight-playerHeight, ceilingHeight-playerHeight, offsetY,
			frontSidedef.MidTexture, segFlags{drawCeiling: drawCeiling})
	}

	// Portal: full height for occlusion/visplanes only...
	if err := s.processSidedef(sds, floorHeight-playerHeight, ceilingHeight-playerHeight, 0,
		frontSidedef.MidTexture, segFlags{onlyOcclusions: true, drawCeiling: drawCeiling}); err != nil {
		return err
	}

	// ...the middle texture (if any) deferred to the sprite pass...
	midFloor, midCeiling := floorHeight, ceilingHeight
	if hasPortalBottom {
		midFloor = portalBottomHeight
	}
	if hasPortalTop {
		midCeiling = portalTopHeight
	}
	if err := s.processSidedef(sds, midFloor-playerHeight, midCeiling-playerHeight, 0,
		frontSidedef.MidTexture, segFlags{isTwoSidedMiddleWall: true, drawCeiling: drawCeiling}); err != nil {
		return err
	}

	// ...the lower texture...
	if hasPortalBottom {
		offsetY := 0
		if bottomIsUnpegged {
			offsetY = int(ceilingHeight - portalBottomHeight)
		}
		if err := s.processSidedef(sds, floorHeight-playerHeight, portalBottomHeight-playerHeight, offsetY,
			frontSidedef.LowerTexture, segFlags{isLowerWall: true, drawCeiling: drawCeiling}); err != nil {
			return err
		}
	}

	// ...and the upper texture.
	if hasPortalTop {
		offsetY := 0
		if !topIsUnpegged {
			offsetY = int(portalTopHeight - ceilingHeight)
		}
		if err := s.processSidedef(sds, portalTopHeight-playerHeight, ceilingHeight-playerHeight, offsetY,
			frontSidedef.UpperTexture, segFlags{isUpperWall: true, drawCeiling: drawCeiling}); err != nil {
			return err
		}
	}

	return nil
}

// DrawRemainingSegs renders every staged (portal/sprite) BitmapRender
// that hasn't been drawn yet.
func (s *Segs) DrawRemainingSegs() {
	for _, seg := range s.Segs {
		seg.Render(s.Pixels, s.Palette)
	}
}
