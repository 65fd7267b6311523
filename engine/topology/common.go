package topology

import (
	"github.com/spaghettifunk/polymesh/engine/cache"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

// CommonVertices groups vertex indexes by quantized position. Groups appear
// in the order their position is first seen; members are ascending.
func CommonVertices(m *mesh.PolyMesh) [][]int {
	if m == nil {
		return nil
	}
	return cache.Lookup(m.Cache(), cache.KindCommonVertices, m.Fingerprint(), func() [][]int {
		return groupByKey(m.Positions())
	})
}

// CommonLookup maps every vertex index to the index of its group in
// CommonVertices.
func CommonLookup(m *mesh.PolyMesh) []int {
	if m == nil {
		return nil
	}
	return cache.Lookup(m.Cache(), cache.KindCommonLookup, m.Fingerprint(), func() []int {
		lookup := make([]int, m.VertexCount())
		for g, group := range CommonVertices(m) {
			for _, v := range group {
				lookup[v] = g
			}
		}
		return lookup
	})
}

func groupByKey(points []math.Vec3) [][]int {
	buckets := make(map[VertexKey]int, len(points))
	var groups [][]int
	for i, p := range points {
		k := Key(p)
		g, ok := buckets[k]
		if !ok {
			g = len(groups)
			buckets[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
