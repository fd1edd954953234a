package mapdata

// NodeChild holds a BSP node's child: either another Node or a SubSector.
// It is a pair of nullable pointers; ChildNode and ChildSubSector set
// exactly one of them, while the zero value holds neither, and the
// accessors check at run time which one is set.
type NodeChild struct {
	node *Node
	sub  *SubSector
}

// ChildNode wraps a Node as a NodeChild.
func ChildNode(n *Node) NodeChild { return NodeChild{node: n} }

// ChildSubSector wraps a SubSector as a NodeChild.
func ChildSubSector(s *SubSector) NodeChild { return NodeChild{sub: s} }

// IsSubSector reports whether this child is a leaf.
func (c NodeChild) IsSubSector() bool { return c.sub != nil }

// Node returns the child node and true, or (nil, false) if this child is a
// subsector.
func (c NodeChild) Node() (*Node, bool) {
	if c.node == nil {
		return nil, false
	}
	return c.node, true
}

// SubSector returns the child subsector and true, or (nil, false) if this
// child is another node.
func (c NodeChild) SubSector() (*SubSector, bool) {
	if c.sub == nil {
		return nil, false
	}
	return c.sub, true
}

// Node is one BSP split: a partition line plus two children, each either
// another Node or a SubSector.
type Node struct {
	X, Y            float32 // partition line start
	DX, DY          float32 // partition line direction
	RightBB, LeftBB BoundingBox
	Right, Left     NodeChild
}

// PartitionLine returns the node's splitting line as a directed Line.
func (n *Node) PartitionLine() Line {
	return Line{
		Start: Vertex{X: n.X, Y: n.Y},
		End:   Vertex{X: n.X + n.DX, Y: n.Y + n.DY},
	}
}
