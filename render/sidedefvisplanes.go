package render

import "github.com/freewilll/doomgo/gfx"

// sidedefVisplanes accumulates the floor/ceiling visplane points exposed
// while walking one sidedef's columns, flushing a finished run into the
// shared visplane list whenever an occluded column breaks the run.
type sidedefVisplanes struct {
	lightLevel                 int
	floorFlat, ceilingFlat     *gfx.Flat
	floorHeight, ceilingHeight float32

	bottom, top         *Visplane
	bottomUsed, topUsed bool
}

func newSidedefVisplanes(lightLevel int, floorFlat, ceilingFlat *gfx.Flat, floorHeight, ceilingHeight float32) *sidedefVisplanes {
	return &sidedefVisplanes{
		lightLevel:    lightLevel,
		floorFlat:     floorFlat,
		ceilingFlat:   ceilingFlat,
		floorHeight:   floorHeight,
		ceilingHeight: ceilingHeight,
		bottom:        NewVisplane(floorFlat, floorHeight, lightLevel),
		top:           NewVisplane(ceilingFlat, ceilingHeight, lightLevel),
	}
}

// flush pushes any started visplane onto visplanes and starts a fresh one
// in its place.
func (sv *sidedefVisplanes) flush(visplanes *[]*Visplane) {
	if sv.bottomUsed {
		*visplanes = append(*visplanes, sv.bottom)
		sv.bottom = NewVisplane(sv.floorFlat, sv.floorHeight, sv.lightLevel)
		sv.bottomUsed = false
	}
	if sv.topUsed {
		*visplanes = append(*visplanes, sv.top)
		sv.top = NewVisplane(sv.ceilingFlat, sv.ceilingHeight, sv.lightLevel)
		sv.topUsed = false
	}
}

func (sv *sidedefVisplanes) addBottomPoint(x, topY, bottomY int) {
	if !sv.bottomUsed {
		sv.bottom.Left = x
	}
	sv.bottom.Right = x
	sv.bottomUsed = true
	sv.bottom.Top[x] = topY
	sv.bottom.Bottom[x] = bottomY
}

func (sv *sidedefVisplanes) addTopPoint(x, topY, bottomY int) {
	if !sv.topUsed {
		sv.top.Left = x
	}
	sv.top.Right = x
	sv.topUsed = true
	sv.top.Top[x] = topY
	sv.top.Bottom[x] = bottomY
}
