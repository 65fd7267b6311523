package topology

import "fmt"

// Edge is an unordered pair of vertex indexes.
type Edge struct {
	X, Y int
}

func NewEdge(x, y int) Edge {
	return Edge{X: x, Y: y}
}

// Normalized returns e with the smaller index first, so equal unordered
// pairs compare equal.
func (e Edge) Normalized() Edge {
	if e.X > e.Y {
		return Edge{X: e.Y, Y: e.X}
	}
	return e
}

func (e Edge) Contains(v int) bool {
	return e.X == v || e.Y == v
}

func (e Edge) String() string {
	return fmt.Sprintf("[%d, %d]", e.X, e.Y)
}

// CommonEdge is a raw edge together with the common vertex groups of its two
// ends. Two common edges are the same geometric edge when their groups match,
// whichever raw vertexes were used to reach them.
type CommonEdge struct {
	Edge   Edge
	Common Edge
}

// Key identifies the geometric edge.
func (e CommonEdge) Key() Edge {
	return e.Common.Normalized()
}

func (e CommonEdge) Equal(other CommonEdge) bool {
	return e.Key() == other.Key()
}

func (e CommonEdge) String() string {
	return fmt.Sprintf("%s common %s", e.Edge, e.Common)
}
