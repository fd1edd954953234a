package render

import "github.com/freewilll/doomgo/mapdata"

// GetSectorFromVertex walks the BSP tree to find the sector containing
// v, returning nil if v falls in a subsector with no sided wall (i.e.
// outside the map).
func GetSectorFromVertex(m *mapdata.Map, v mapdata.Vertex) *mapdata.Sector {
	child := m.Root

	for {
		node, isNode := child.Node()
		if !isNode {
			sub, ok := child.SubSector()
			if !ok {
				return nil
			}
			for _, seg := range sub.Segs {
				if sidedef := seg.FrontSidedef(); sidedef != nil {
					return sidedef.Sector
				}
			}
			return nil
		}

		p := node.PartitionLine()
		if v.IsLeftOfLine(p.Start, p.End) {
			child = node.Left
		} else {
			child = node.Right
		}
	}
}
