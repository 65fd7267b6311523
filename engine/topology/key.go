// Package topology derives the relationships between the vertices and
// triangles of a PolyMesh: which vertices share a position, which triangles
// share an edge, where the mesh is open, and how normals are smoothed across
// UV seams.
//
// Every query accepts a nil mesh and returns an empty result. Results that are
// expensive to build are cached on the mesh and rebuilt when its fingerprint
// (vertex count and per sub-mesh index count) changes.
package topology

import (
	"fmt"

	"github.com/spaghettifunk/polymesh/engine/math"
)

// Resolution is the edge length of a quantization bucket.
const Resolution float32 = 1e-4

// VertexKey is a point quantized to Resolution. Two points are the same vertex
// when their keys are equal.
type VertexKey struct {
	X, Y, Z int64
}

// Key quantizes v by dividing every coordinate by Resolution and truncating
// toward zero.
func Key(v math.Vec3) VertexKey {
	return VertexKey{
		X: int64(v.X / Resolution),
		Y: int64(v.Y / Resolution),
		Z: int64(v.Z / Resolution),
	}
}

func (k VertexKey) String() string {
	return fmt.Sprintf("(%d, %d, %d)", k.X, k.Y, k.Z)
}

// Approximately reports whether every coordinate of a and b differs by less
// than Resolution. Unlike key equality this is not transitive.
func Approximately(a, b math.Vec3) bool {
	d := a.Sub(b)
	return d.X > -Resolution && d.X < Resolution &&
		d.Y > -Resolution && d.Y < Resolution &&
		d.Z > -Resolution && d.Z < Resolution
}
