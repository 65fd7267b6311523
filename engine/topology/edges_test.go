package topology_test

import (
	"testing"

	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/topology"
	"github.com/spaghettifunk/polymesh/testbed"
	"golang.org/x/exp/slices"
)

func TestEdgesOrder(t *testing.T) {
	m := mustMesh(t, testbed.SeamQuad())
	edges := topology.Edges(m)
	if len(edges) != 6 {
		t.Fatalf("got %d edges, want 6", len(edges))
	}
	want := []topology.CommonEdge{
		{Edge: topology.NewEdge(0, 1), Common: topology.NewEdge(0, 1)},
		{Edge: topology.NewEdge(1, 2), Common: topology.NewEdge(1, 2)},
		{Edge: topology.NewEdge(2, 0), Common: topology.NewEdge(2, 0)},
		{Edge: topology.NewEdge(3, 4), Common: topology.NewEdge(2, 3)},
		{Edge: topology.NewEdge(4, 5), Common: topology.NewEdge(3, 0)},
		{Edge: topology.NewEdge(5, 3), Common: topology.NewEdge(0, 2)},
	}
	if !slices.Equal(edges, want) {
		t.Errorf("Edges = %v\nwant %v", edges, want)
	}
	if !edges[2].Equal(edges[5]) {
		t.Error("diagonal edges across the seam should be equal")
	}
}

func TestDistinctEdgesSeamQuad(t *testing.T) {
	m := mustMesh(t, testbed.SeamQuad())
	edges, duplicates := topology.DistinctEdges(m)

	if len(edges) != 5 {
		t.Errorf("got %d distinct edges, want 5", len(edges))
	}
	if len(duplicates) != 1 {
		t.Fatalf("got %d duplicates, want 1", len(duplicates))
	}
	if duplicates[0].Edge != topology.NewEdge(5, 3) || duplicates[0].Key() != topology.NewEdge(0, 2) {
		t.Errorf("duplicate = %v, want the shared diagonal", duplicates[0])
	}

	boundary := topology.BoundaryEdges(m)
	if len(boundary) != 4 {
		t.Errorf("got %d boundary edges, want 4", len(boundary))
	}
	for _, e := range boundary {
		if e.Equal(duplicates[0]) {
			t.Error("diagonal reported as boundary")
		}
	}
}

func TestNonManifoldSeamQuad(t *testing.T) {
	m := mustMesh(t, testbed.SeamQuad())
	got := topology.NonManifoldIndices(m)

	// Every raw vertex of the quad lies on the outer boundary; the seam
	// duplicates 0/5 and 2/3 cover the same 4 corner positions.
	if !slices.Equal(got, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("NonManifoldIndices = %v", got)
	}
	lookup := topology.CommonLookup(m)
	corners := map[int]bool{}
	for _, v := range got {
		corners[lookup[v]] = true
	}
	if len(corners) != 4 {
		t.Errorf("boundary touches %d positions, want 4", len(corners))
	}
}

func TestClosedMeshesHaveNoBoundary(t *testing.T) {
	tests := []struct {
		name          string
		distinctEdges int
	}{
		{"cube", 18},
		{"tetrahedron", 6},
	}
	fixtures := testbed.All()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustMesh(t, fixtures[tt.name])
			edges, duplicates := topology.DistinctEdges(m)
			if len(edges) != tt.distinctEdges {
				t.Errorf("got %d distinct edges, want %d", len(edges), tt.distinctEdges)
			}
			if len(duplicates) != len(edges) {
				t.Errorf("got %d duplicates, want one per edge (%d)", len(duplicates), len(edges))
			}
			if got := topology.NonManifoldIndices(m); len(got) != 0 {
				t.Errorf("NonManifoldIndices = %v, want none", got)
			}
		})
	}
}

func TestNonManifoldPlane(t *testing.T) {
	m := mustMesh(t, testbed.GeneratePlane(2, 2, 2, 2, 1, 1, "plane"))
	got := topology.NonManifoldIndices(m)

	center := math.NewVec3(0, 0, 0)
	var rim int
	for i, p := range m.Positions() {
		if p != center {
			rim++
		} else if slices.Contains(got, i) {
			t.Errorf("interior vertex %d reported as boundary", i)
		}
	}
	if len(got) != rim {
		t.Errorf("got %d boundary vertexes, want %d", len(got), rim)
	}
}

func TestSingleTriangleIsAllBoundary(t *testing.T) {
	m := mustMesh(t, testbed.Triangle())
	if got := topology.NonManifoldIndices(m); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("NonManifoldIndices = %v", got)
	}
}
