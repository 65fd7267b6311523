package topology

import (
	"github.com/spaghettifunk/polymesh/engine/cache"
	"github.com/spaghettifunk/polymesh/engine/containers"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

// AdjacentVertices maps every vertex referenced by the triangle list to the
// raw vertexes connected to its position by an edge. Neighbours are expanded
// to every vertex sharing the neighbouring position, so the relation is
// symmetric. Values are ascending.
func AdjacentVertices(m *mesh.PolyMesh) map[int][]int {
	if m == nil {
		return nil
	}
	groups := CommonVertices(m)
	lookup := CommonLookup(m)

	neighbours := make(map[int]containers.Set[int], len(groups))
	link := func(a, b int) {
		s, ok := neighbours[a]
		if !ok {
			s = containers.NewSet[int]()
			neighbours[a] = s
		}
		s.Add(b)
	}
	for _, e := range Edges(m) {
		if e.Common.X == e.Common.Y {
			continue
		}
		link(e.Common.X, e.Common.Y)
		link(e.Common.Y, e.Common.X)
	}

	adjacent := make(map[int][]int)
	for _, v := range m.Triangles() {
		if v >= len(lookup) {
			continue
		}
		if _, done := adjacent[v]; done {
			continue
		}
		raw := containers.NewSet[int]()
		for g := range neighbours[lookup[v]] {
			for _, member := range groups[g] {
				raw.Add(member)
			}
		}
		adjacent[v] = containers.Sorted(raw)
	}
	return adjacent
}

// AdjacentTriangles maps every raw edge, normalized, to the triangles that
// contain it. Values are triangle indexes: multiply by 3 for the offset of the
// triangle's first vertex in the triangle list.
//
// An index count that is not a multiple of 3, or a triangle count equal to the
// vertex count, is treated as a non-triangulated structure and yields an empty
// map.
func AdjacentTriangles(m *mesh.PolyMesh) map[Edge][]int {
	if m == nil {
		return nil
	}
	tris := m.Triangles()
	if len(tris) == 0 {
		return map[Edge][]int{}
	}
	if len(tris)%3 != 0 || len(tris)/3 == m.VertexCount() {
		core.LogWarn("mesh %q: %d indexes for %d vertexes does not look triangulated, skipping triangle adjacency",
			m.Name, len(tris), m.VertexCount())
		return map[Edge][]int{}
	}
	return cache.Lookup(m.Cache(), cache.KindAdjacentTriangles, m.Fingerprint(), func() map[Edge][]int {
		adjacent := make(map[Edge][]int)
		add := func(e Edge, t int) {
			k := e.Normalized()
			list := adjacent[k]
			if n := len(list); n > 0 && list[n-1] == t {
				return
			}
			adjacent[k] = append(list, t)
		}
		eachTriangle(m, func(t, a, b, c int) {
			add(NewEdge(a, b), t)
			add(NewEdge(b, c), t)
			add(NewEdge(c, a), t)
		})
		return adjacent
	})
}
