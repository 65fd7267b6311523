package engine

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/polymesh/engine/cache"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/mesh"
	"github.com/spaghettifunk/polymesh/engine/topology"
)

// Report summarises the topology of a mesh.
type Report struct {
	Name                string
	Fingerprint         cache.Fingerprint
	Vertices            int
	Triangles           int
	SubMeshes           int
	CommonGroups        int
	DistinctEdges       int
	DuplicateEdges      int
	BoundaryEdges       int
	NonManifoldVertices int
	SeamClusters        int
	DegenerateTriangles int
	Extents             math.Extents3D
}

// Closed reports whether every edge of the mesh is shared by two triangles.
func (r *Report) Closed() bool {
	return r.DistinctEdges > 0 && r.BoundaryEdges == 0
}

func Analyze(m *mesh.PolyMesh) *Report {
	if m == nil {
		return &Report{}
	}
	edges, duplicates := topology.DistinctEdges(m)
	return &Report{
		Name:                m.Name,
		Fingerprint:         m.Fingerprint(),
		Vertices:            m.VertexCount(),
		Triangles:           len(m.Triangles()) / 3,
		SubMeshes:           m.SubMeshCount(),
		CommonGroups:        len(topology.CommonVertices(m)),
		DistinctEdges:       len(edges),
		DuplicateEdges:      len(duplicates),
		BoundaryEdges:       len(topology.BoundaryEdges(m)),
		NonManifoldVertices: len(topology.NonManifoldIndices(m)),
		SeamClusters:        len(topology.SmoothSeamLookup(m)),
		DegenerateTriangles: degenerateTriangles(m),
		Extents:             math.ExtentsOf(m.Positions()),
	}
}

// degenerateTriangles counts triangles with no face normal.
func degenerateTriangles(m *mesh.PolyMesh) int {
	pos := m.Positions()
	tris := m.Triangles()
	count := 0
	for i := 0; i+2 < len(tris); i += 3 {
		if max(tris[i], tris[i+1], tris[i+2]) >= len(pos) {
			continue
		}
		if math.TriangleNormal(pos[tris[i]], pos[tris[i+1]], pos[tris[i+2]]) == (math.Vec3{}) {
			count++
		}
	}
	return count
}

func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%016x]\n", r.Name, uint64(r.Fingerprint))
	fmt.Fprintf(&sb, "  vertices:      %d (%d distinct positions)\n", r.Vertices, r.CommonGroups)
	fmt.Fprintf(&sb, "  triangles:     %d in %d sub-meshes, %d degenerate\n", r.Triangles, r.SubMeshes, r.DegenerateTriangles)
	fmt.Fprintf(&sb, "  extents:       %v .. %v\n", r.Extents.Min, r.Extents.Max)
	fmt.Fprintf(&sb, "  edges:         %d distinct, %d duplicates, %d boundary\n", r.DistinctEdges, r.DuplicateEdges, r.BoundaryEdges)
	fmt.Fprintf(&sb, "  non-manifold:  %d vertices\n", r.NonManifoldVertices)
	fmt.Fprintf(&sb, "  seam clusters: %d\n", r.SeamClusters)
	fmt.Fprintf(&sb, "  closed:        %t", r.Closed())
	return sb.String()
}
