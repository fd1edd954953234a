// Package mapdata loads one DOOM map's lumps into an in-memory graph with
// cross-references and a BSP tree, following the dependency order the wad
// format requires: vertexes, then sectors, then sidedefs (which index into
// sectors), then linedefs (which index into vertexes and sidedefs), then
// segs, subsectors and nodes.
package mapdata

import (
	"errors"
	"fmt"

	"github.com/freewilll/doomgo/wad"
)

// ErrMalformedRecord indicates a record size/count mismatch or an
// out-of-range cross-reference index.
var ErrMalformedRecord = errors.New("mapdata: malformed record")

const (
	vertexRecLen    = 4
	linedefRecLen   = 14
	sidedefRecLen   = 30
	segRecLen       = 12
	subsectorRecLen = 4
	nodeRecLen      = 28
	sectorRecLen    = 26
	thingRecLen     = 10
)

// nodeSubsectorFlag is the high bit a node's child index sets to mean "this
// child is a subsector, not another node". Typed uint16 so the bitwise ops
// below stay in unsigned arithmetic; raw node fields are read as int16 and
// reinterpreted.
const nodeSubsectorFlag uint16 = 0x8000

// Map is the aggregate per-level graph: geometry, thinkable sectors, and
// the BSP tree used for traversal and point location. It is constructed
// once per level and discarded on level change.
type Map struct {
	Things      []Thing
	Vertexes    []Vertex
	Sectors     []*Sector
	Sidedefs    []*Sidedef
	Linedefs    []*Linedef
	Segs        []*Seg
	SubSectors  []*SubSector
	Nodes       []*Node
	Root        NodeChild
	BoundingBox BoundingBox
}

// Load reads one map's lumps out of f and assembles the cross-referenced
// graph plus BSP tree for one level.
func Load(f *wad.File, mapName string) (*Map, error) {
	vertexes, err := loadVertexes(f, mapName)
	if err != nil {
		return nil, err
	}

	sectors, err := loadSectors(f, mapName)
	if err != nil {
		return nil, err
	}

	sidedefs, err := loadSidedefs(f, mapName, sectors)
	if err != nil {
		return nil, err
	}

	linedefs, err := loadLinedefs(f, mapName, vertexes, sidedefs)
	if err != nil {
		return nil, err
	}

	segs, err := loadSegs(f, mapName, vertexes, linedefs)
	if err != nil {
		return nil, err
	}

	subsectors, err := loadSubSectors(f, mapName, segs)
	if err != nil {
		return nil, err
	}

	nodes, err := loadNodes(f, mapName, subsectors)
	if err != nil {
		return nil, err
	}

	things, err := loadThings(f, mapName)
	if err != nil {
		return nil, err
	}

	bb := NewExtendableBoundingBox()
	for _, l := range linedefs {
		bb.Extend(l.Start)
		bb.Extend(l.End)
	}

	m := &Map{
		Things:      things,
		Vertexes:    vertexes,
		Sectors:     sectors,
		Sidedefs:    sidedefs,
		Linedefs:    linedefs,
		Segs:        segs,
		SubSectors:  subsectors,
		Nodes:       nodes,
		BoundingBox: bb,
	}

	if len(nodes) > 0 {
		m.Root = ChildNode(nodes[len(nodes)-1])
	} else if len(subsectors) > 0 {
		// Degenerate single-subsector map: no partitions were needed.
		m.Root = ChildSubSector(subsectors[0])
	}

	return m, nil
}

func recordCount(e wad.DirEntry, recLen int) (int, error) {
	if recLen == 0 || int(e.Size)%recLen != 0 {
		return 0, fmt.Errorf("mapdata: lump %q size %d not a multiple of %d: %w", e.Name, e.Size, recLen, ErrMalformedRecord)
	}
	return int(e.Size) / recLen, nil
}

func loadVertexes(f *wad.File, mapName string) ([]Vertex, error) {
	e, err := f.MapLump(mapName, wad.Vertexes)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, vertexRecLen)
	if err != nil {
		return nil, err
	}

	out := make([]Vertex, n)
	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*vertexRecLen
		out[i] = Vertex{
			X: f.ReadFixedFromI16(off),
			Y: f.ReadFixedFromI16(off + 2),
		}
	}
	return out, nil
}

func loadSectors(f *wad.File, mapName string) ([]*Sector, error) {
	e, err := f.MapLump(mapName, wad.Sectors)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, sectorRecLen)
	if err != nil {
		return nil, err
	}

	out := make([]*Sector, n)
	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*sectorRecLen
		out[i] = &Sector{
			ID:            i,
			FloorHeight:   f.ReadFixedFromI16(off),
			CeilingHeight: f.ReadFixedFromI16(off + 2),
			FloorFlat:     f.ReadLumpName(off + 4),
			CeilingFlat:   f.ReadLumpName(off + 12),
			LightLevel:    int(f.ReadI16(off + 20)),
			SpecialType:   f.ReadI16(off + 22),
			Tag:           f.ReadI16(off + 24),
		}
	}
	return out, nil
}

func loadSidedefs(f *wad.File, mapName string, sectors []*Sector) ([]*Sidedef, error) {
	e, err := f.MapLump(mapName, wad.Sidedefs)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, sidedefRecLen)
	if err != nil {
		return nil, err
	}

	out := make([]*Sidedef, n)
	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*sidedefRecLen
		sectorIdx := int(f.ReadI16(off + 28))
		if sectorIdx < 0 || sectorIdx >= len(sectors) {
			return nil, fmt.Errorf("mapdata: sidedef %d references sector %d: %w", i, sectorIdx, ErrMalformedRecord)
		}

		out[i] = &Sidedef{
			ID:           i,
			XOffset:      f.ReadFixedFromI16(off),
			YOffset:      f.ReadFixedFromI16(off + 2),
			UpperTexture: f.ReadLumpName(off + 4),
			LowerTexture: f.ReadLumpName(off + 12),
			MidTexture:   f.ReadLumpName(off + 20),
			Sector:       sectors[sectorIdx],
		}
	}
	return out, nil
}

func loadLinedefs(f *wad.File, mapName string, vertexes []Vertex, sidedefs []*Sidedef) ([]*Linedef, error) {
	e, err := f.MapLump(mapName, wad.Linedefs)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, linedefRecLen)
	if err != nil {
		return nil, err
	}

	sidedefAt := func(idx int16) (*Sidedef, error) {
		if idx < 0 {
			return nil, nil
		}
		if int(idx) >= len(sidedefs) {
			return nil, fmt.Errorf("mapdata: linedef references sidedef %d: %w", idx, ErrMalformedRecord)
		}
		return sidedefs[idx], nil
	}

	out := make([]*Linedef, n)
	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*linedefRecLen
		startIdx := int(f.ReadI16(off))
		endIdx := int(f.ReadI16(off + 2))
		if startIdx < 0 || startIdx >= len(vertexes) || endIdx < 0 || endIdx >= len(vertexes) {
			return nil, fmt.Errorf("mapdata: linedef %d references out-of-range vertex: %w", i, ErrMalformedRecord)
		}

		front, err := sidedefAt(f.ReadI16(off + 10))
		if err != nil {
			return nil, err
		}
		back, err := sidedefAt(f.ReadI16(off + 12))
		if err != nil {
			return nil, err
		}

		out[i] = &Linedef{
			ID:           i,
			Start:        vertexes[startIdx],
			End:          vertexes[endIdx],
			Flags:        LinedefFlag(f.ReadI16(off + 4)),
			SpecialType:  f.ReadI16(off + 6),
			SectorTag:    f.ReadI16(off + 8),
			FrontSidedef: front,
			BackSidedef:  back,
		}
	}
	return out, nil
}

func loadSegs(f *wad.File, mapName string, vertexes []Vertex, linedefs []*Linedef) ([]*Seg, error) {
	e, err := f.MapLump(mapName, wad.Segs)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, segRecLen)
	if err != nil {
		return nil, err
	}

	out := make([]*Seg, n)
	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*segRecLen
		startIdx := int(f.ReadI16(off))
		endIdx := int(f.ReadI16(off + 2))
		linedefIdx := int(f.ReadI16(off + 6))
		if startIdx < 0 || startIdx >= len(vertexes) || endIdx < 0 || endIdx >= len(vertexes) {
			return nil, fmt.Errorf("mapdata: seg %d references out-of-range vertex: %w", i, ErrMalformedRecord)
		}
		if linedefIdx < 0 || linedefIdx >= len(linedefs) {
			return nil, fmt.Errorf("mapdata: seg %d references out-of-range linedef: %w", i, ErrMalformedRecord)
		}

		out[i] = &Seg{
			Start:     vertexes[startIdx],
			End:       vertexes[endIdx],
			Angle:     f.ReadI16(off + 4),
			Linedef:   linedefs[linedefIdx],
			Direction: f.ReadI16(off+8) != 0,
			Offset:    f.ReadFixedFromI16(off + 10),
		}
	}
	return out, nil
}

func loadSubSectors(f *wad.File, mapName string, segs []*Seg) ([]*SubSector, error) {
	e, err := f.MapLump(mapName, wad.Ssectors)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, subsectorRecLen)
	if err != nil {
		return nil, err
	}

	out := make([]*SubSector, n)
	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*subsectorRecLen
		count := int(f.ReadI16(off))
		first := int(f.ReadI16(off + 2))
		if first < 0 || first+count > len(segs) {
			return nil, fmt.Errorf("mapdata: subsector %d seg range out of range: %w", i, ErrMalformedRecord)
		}

		out[i] = &SubSector{Segs: segs[first : first+count]}
	}
	return out, nil
}

// loadNodes builds nodes bottom-up: every child index a node stores
// references an already-constructed node or subsector, so a single linear
// pass (in lump order) is enough to resolve every child.
func loadNodes(f *wad.File, mapName string, subsectors []*SubSector) ([]*Node, error) {
	e, err := f.MapLump(mapName, wad.Nodes)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, nodeRecLen)
	if err != nil {
		return nil, err
	}

	out := make([]*Node, n)
	resolveChild := func(raw int16, built []*Node) (NodeChild, error) {
		u := uint16(raw)
		if u&nodeSubsectorFlag != 0 {
			idx := int(u &^ nodeSubsectorFlag)
			if idx < 0 || idx >= len(subsectors) {
				return NodeChild{}, fmt.Errorf("mapdata: node child references out-of-range subsector %d: %w", idx, ErrMalformedRecord)
			}
			return ChildSubSector(subsectors[idx]), nil
		}

		idx := int(raw)
		if idx < 0 || idx >= len(built) {
			return NodeChild{}, fmt.Errorf("mapdata: node child references out-of-range node %d: %w", idx, ErrMalformedRecord)
		}
		return ChildNode(built[idx]), nil
	}

	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*nodeRecLen
		node := &Node{
			X:  f.ReadFixedFromI16(off),
			Y:  f.ReadFixedFromI16(off + 2),
			DX: f.ReadFixedFromI16(off + 4),
			DY: f.ReadFixedFromI16(off + 6),
			RightBB: BoundingBox{
				Top:    f.ReadFixedFromI16(off + 8),
				Bottom: f.ReadFixedFromI16(off + 10),
				Left:   f.ReadFixedFromI16(off + 12),
				Right:  f.ReadFixedFromI16(off + 14),
			},
			LeftBB: BoundingBox{
				Top:    f.ReadFixedFromI16(off + 16),
				Bottom: f.ReadFixedFromI16(off + 18),
				Left:   f.ReadFixedFromI16(off + 20),
				Right:  f.ReadFixedFromI16(off + 22),
			},
		}

		right, err := resolveChild(f.ReadI16(off+24), out[:i])
		if err != nil {
			return nil, err
		}
		left, err := resolveChild(f.ReadI16(off+26), out[:i])
		if err != nil {
			return nil, err
		}
		node.Right = right
		node.Left = left

		out[i] = node
	}
	return out, nil
}

func loadThings(f *wad.File, mapName string) ([]Thing, error) {
	e, err := f.MapLump(mapName, wad.Things)
	if err != nil {
		return nil, err
	}
	n, err := recordCount(e, thingRecLen)
	if err != nil {
		return nil, err
	}

	out := make([]Thing, n)
	for i := 0; i < n; i++ {
		off := int(e.Offset) + i*thingRecLen
		degrees := f.ReadFixedFromI16(off + 4)
		out[i] = Thing{
			Position: Vertex{X: f.ReadFixedFromI16(off), Y: f.ReadFixedFromI16(off + 2)},
			Angle:    degToRad(degrees),
			Type:     f.ReadI16(off + 6),
			Flags:    f.ReadI16(off + 8),
		}
	}
	return out, nil
}
