package topology

import (
	"github.com/spaghettifunk/polymesh/engine/containers"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

// eachTriangle calls fn with the index of every complete triangle whose
// vertexes are all below vertexCount, and the triangle's three vertexes.
func eachTriangle(m *mesh.PolyMesh, fn func(t, a, b, c int)) {
	tris := m.Triangles()
	vc := m.VertexCount()
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		if a >= vc || b >= vc || c >= vc {
			core.LogWarn("mesh %q: triangle %d references a vertex out of range, skipped", m.Name, i/3)
			continue
		}
		fn(i/3, a, b, c)
	}
}

// Edges returns three common edges per triangle, (a,b) (b,c) (c,a), in
// triangle order.
func Edges(m *mesh.PolyMesh) []CommonEdge {
	if m == nil {
		return nil
	}
	lookup := CommonLookup(m)
	edges := make([]CommonEdge, 0, len(m.Triangles()))
	eachTriangle(m, func(_, a, b, c int) {
		edges = append(edges,
			CommonEdge{Edge: NewEdge(a, b), Common: NewEdge(lookup[a], lookup[b])},
			CommonEdge{Edge: NewEdge(b, c), Common: NewEdge(lookup[b], lookup[c])},
			CommonEdge{Edge: NewEdge(c, a), Common: NewEdge(lookup[c], lookup[a])},
		)
	})
	return edges
}

// DistinctEdges returns every geometric edge once, keeping the first raw edge
// seen for it, and separately every later occurrence. On a closed manifold
// mesh each edge shows up in duplicates exactly once; edges that never do are
// boundary edges.
func DistinctEdges(m *mesh.PolyMesh) (edges []CommonEdge, duplicates []CommonEdge) {
	if m == nil {
		return nil, nil
	}
	seen := containers.NewSet[Edge]()
	for _, e := range Edges(m) {
		if seen.Add(e.Key()) {
			edges = append(edges, e)
		} else {
			duplicates = append(duplicates, e)
		}
	}
	return edges, duplicates
}

// BoundaryEdges returns the distinct edges used by a single triangle.
func BoundaryEdges(m *mesh.PolyMesh) []CommonEdge {
	edges, duplicates := DistinctEdges(m)
	shared := containers.NewSet[Edge]()
	for _, d := range duplicates {
		shared.Add(d.Key())
	}
	var boundary []CommonEdge
	for _, e := range edges {
		if !shared.Contains(e.Key()) {
			boundary = append(boundary, e)
		}
	}
	return boundary
}

// NonManifoldIndices returns the raw vertex indexes, ascending, touched by an
// edge that belongs to a single triangle. A closed mesh has none.
func NonManifoldIndices(m *mesh.PolyMesh) []int {
	if m == nil {
		return nil
	}
	indexes := containers.NewSet[int]()
	for _, e := range BoundaryEdges(m) {
		indexes.Add(e.Edge.X)
		indexes.Add(e.Edge.Y)
	}
	return containers.Sorted(indexes)
}
