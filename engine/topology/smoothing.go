package topology

import (
	"github.com/spaghettifunk/polymesh/engine/cache"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/mesh"
	"golang.org/x/exp/slices"
)

// SmoothSeamLookup returns the seam clusters of m: vertexes that share a
// position and a quantized normal, split apart in the vertex buffer (usually
// by their UVs). Only clusters with more than one member are returned.
//
// The result is cached and rebuilt when the fingerprint changes. It is built
// from the normals present at that time, so callers that rewrite normals
// without changing topology must call ClearSmoothSeamLookup to regroup.
func SmoothSeamLookup(m *mesh.PolyMesh) [][]int {
	if m == nil {
		return nil
	}
	return cache.Lookup(m.Cache(), cache.KindSeamLookup, m.Fingerprint(), func() [][]int {
		normals := m.Normals()
		if len(normals) != m.VertexCount() {
			return nil
		}
		var seams [][]int
		for _, group := range CommonVertices(m) {
			if len(group) < 2 {
				continue
			}
			sub := make([]math.Vec3, len(group))
			for i, v := range group {
				sub[i] = normals[v]
			}
			for _, cluster := range groupByKey(sub) {
				if len(cluster) < 2 {
					continue
				}
				members := make([]int, len(cluster))
				for i, c := range cluster {
					members[i] = group[c]
				}
				seams = append(seams, members)
			}
		}
		return seams
	})
}

// ClearSmoothSeamLookup drops the cached seam clusters of m.
func ClearSmoothSeamLookup(m *mesh.PolyMesh) {
	if m == nil {
		return
	}
	m.Cache().Invalidate(cache.KindSeamLookup)
}

// RecalculateNormals recomputes the normals of m and then gives every member
// of a seam cluster the mean of the cluster's new normals. Clusters are taken
// from the normals m had before this call.
func RecalculateNormals(m *mesh.PolyMesh) {
	if m == nil {
		return
	}
	if tris := m.Triangles(); len(tris)%3 != 0 {
		core.LogWarn("mesh %q: %d indexes is not a multiple of 3, skipping normal recalculation", m.Name, len(tris))
		return
	}

	seams := SmoothSeamLookup(m)
	m.RecalculateNormals()

	normals := slices.Clone(m.Normals())
	for _, cluster := range seams {
		var sum math.Vec3
		for _, v := range cluster {
			sum = sum.Add(normals[v])
		}
		avg := sum.DivScalar(float32(len(cluster)))
		for _, v := range cluster {
			normals[v] = avg
		}
	}
	m.SetNormals(normals)

	ctx := core.EventContext{}
	ctx.Data.C[0] = m.Name
	ctx.Data.U64[0] = uint64(len(seams))
	core.EventFire(core.EVENT_CODE_NORMALS_RECALCULATED, m, ctx)
}
