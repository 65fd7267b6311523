package mesh_test

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/mesh"
	"github.com/spaghettifunk/polymesh/testbed"
	"golang.org/x/exp/slices"
)

// mustMesh builds a PolyMesh from asset or fails the test.
func mustMesh(t *testing.T, asset *mesh.Asset) *mesh.PolyMesh {
	t.Helper()
	m, err := mesh.NewPolyMeshFromAsset(asset)
	if err != nil {
		t.Fatalf("NewPolyMeshFromAsset: %v", err)
	}
	return m
}

func TestNewSubMeshRejectsNil(t *testing.T) {
	if _, err := mesh.NewSubMesh(nil, mesh.TopologyTriangles); !errors.Is(err, core.ErrNilIndexBuffer) {
		t.Errorf("err = %v, want ErrNilIndexBuffer", err)
	}
	if _, err := mesh.NewSubMeshes(nil); !errors.Is(err, core.ErrNilSourceMesh) {
		t.Errorf("err = %v, want ErrNilSourceMesh", err)
	}
	if _, err := mesh.NewPolyMeshFromAsset(nil); !errors.Is(err, core.ErrNilSourceMesh) {
		t.Errorf("err = %v, want ErrNilSourceMesh", err)
	}
}

func TestSubMeshIsImmutable(t *testing.T) {
	src := []uint32{0, 1, 2}
	sm, err := mesh.NewSubMesh(src, mesh.TopologyTriangles)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 9
	got := sm.Indexes()
	got[1] = 9
	if !slices.Equal(sm.Indexes(), []uint32{0, 1, 2}) {
		t.Errorf("sub-mesh changed through an alias: %v", sm.Indexes())
	}
}

func TestTrianglesConcatenatesSubMeshes(t *testing.T) {
	m := mesh.NewPolyMesh("two")
	m.SetPositions(make([]math.Vec3, 6))
	a, _ := mesh.NewSubMesh([]uint32{0, 1, 2}, mesh.TopologyTriangles)
	b, _ := mesh.NewSubMesh([]uint32{3, 4, 5}, mesh.TopologyTriangles)
	m.SetSubMeshes([]*mesh.SubMesh{a, b})

	if got := m.Triangles(); !slices.Equal(got, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("Triangles = %v", got)
	}

	m.SetSubMeshes([]*mesh.SubMesh{b})
	if got := m.Triangles(); !slices.Equal(got, []int{3, 4, 5}) {
		t.Errorf("Triangles after SetSubMeshes = %v, want rebuilt list", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		mesh  *mesh.PolyMesh
		valid bool
	}{
		{"empty", mesh.NewPolyMesh("empty"), false},
		{"triangle", mustMesh(t, testbed.Triangle()), true},
		{"no indexes", func() *mesh.PolyMesh {
			m := mesh.NewPolyMesh("points")
			m.SetPositions(make([]math.Vec3, 3))
			return m
		}(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.IsValid(); got != tt.valid {
				t.Errorf("IsValid = %v, want %v", got, tt.valid)
			}
		})
	}

	var nilMesh *mesh.PolyMesh
	if nilMesh.IsValid() {
		t.Error("nil mesh reported valid")
	}
}

func TestClear(t *testing.T) {
	m := mustMesh(t, testbed.GenerateCube(1, 1, 1, 1, 1, "cube"))
	m.Cache()
	m.Clear()
	if m.VertexCount() != 0 || m.SubMeshCount() != 0 || len(m.Triangles()) != 0 {
		t.Errorf("mesh not cleared: %s", m)
	}
	if m.Normals() != nil || m.Colors() != nil || m.Tangents() != nil || m.UVs(0) != nil {
		t.Error("attribute arrays survived Clear")
	}
	if m.Cache().Len() != 0 {
		t.Error("derived cache survived Clear")
	}
}

func TestValidate(t *testing.T) {
	if err := mustMesh(t, testbed.GenerateCube(1, 1, 1, 1, 1, "cube")).Validate(); err != nil {
		t.Errorf("cube: %v", err)
	}

	outOfRange := testbed.Triangle()
	outOfRange.SubMeshes[0].Indexes = []uint32{0, 1, 7}
	if err := mustMesh(t, outOfRange).Validate(); !errors.Is(err, core.ErrInvalidMesh) {
		t.Errorf("out of range index: err = %v", err)
	}

	short := testbed.Triangle()
	short.Normals = []math.Vec3{{Z: 1}}
	if err := mustMesh(t, short).Validate(); !errors.Is(err, core.ErrInvalidMesh) {
		t.Errorf("short normals: err = %v", err)
	}

	ragged := testbed.Triangle()
	ragged.SubMeshes[0].Indexes = []uint32{0, 1}
	if err := mustMesh(t, ragged).Validate(); !errors.Is(err, core.ErrInvalidMesh) {
		t.Errorf("ragged triangles: err = %v", err)
	}
}

func TestRecalculateNormalsSingleTriangle(t *testing.T) {
	asset := &mesh.Asset{
		Positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}, {X: 0, Y: 0, Z: 3}},
		SubMeshes: []mesh.AssetSubMesh{{Indexes: []uint32{0, 1, 2}}},
	}
	m := mustMesh(t, asset)
	m.RecalculateNormals()

	p := m.Positions()
	want := p[1].Sub(p[0]).Cross(p[2].Sub(p[0])).Normalized()
	for i, n := range m.Normals() {
		if n != want {
			t.Errorf("normal %d = %v, want %v", i, n, want)
		}
	}
	if want != math.NewVec3(1, 0, 0) {
		t.Errorf("face normal = %v, want +X", want)
	}
}

func TestRecalculateNormalsScalesByFaceCount(t *testing.T) {
	// Two triangles sharing vertex 0 with perpendicular faces of different
	// area. Scaling by the face count before normalizing does not change the
	// direction of the sum, so vertex 0 points along the area weighted sum.
	asset := &mesh.Asset{
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 2, Z: 0},
			{X: 0, Y: 0, Z: 2},
		},
		SubMeshes: []mesh.AssetSubMesh{{Indexes: []uint32{0, 1, 2, 0, 3, 4}}},
	}
	m := mustMesh(t, asset)
	m.RecalculateNormals()

	want := math.NewVec3(4, 0, 1).Normalized()
	if got := m.Normals()[0]; !got.Compare(want, 1e-6) {
		t.Errorf("shared normal = %v, want %v", got, want)
	}
	if got := m.Normals()[1]; got != math.NewVec3(0, 0, 1) {
		t.Errorf("normal 1 = %v, want +Z", got)
	}
}

func TestRecalculateNormalsDegenerate(t *testing.T) {
	asset := &mesh.Asset{
		Positions: []math.Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 5}},
		SubMeshes: []mesh.AssetSubMesh{{Indexes: []uint32{0, 1, 2}}},
	}
	m := mustMesh(t, asset)
	m.RecalculateNormals()
	for i, n := range m.Normals() {
		if n != (math.Vec3{}) {
			t.Errorf("normal %d = %v, want zero", i, n)
		}
	}
}

func TestCopyHasNewIdentity(t *testing.T) {
	m := mustMesh(t, testbed.SeamQuad())
	c := m.Copy()
	if c.ID == m.ID {
		t.Error("copy shares identity")
	}
	if !slices.Equal(c.Positions(), m.Positions()) || !slices.Equal(c.Triangles(), m.Triangles()) {
		t.Error("copy differs from source")
	}
	if m.Fingerprint() != c.Fingerprint() {
		t.Error("copy fingerprint differs")
	}
}

func TestFingerprintTracksTopology(t *testing.T) {
	m := mustMesh(t, testbed.SeamQuad())
	before := m.Fingerprint()

	m.SetNormals(make([]math.Vec3, m.VertexCount()))
	if m.Fingerprint() != before {
		t.Error("attribute change altered the fingerprint")
	}

	sm, _ := mesh.NewSubMesh([]uint32{0, 1, 2}, mesh.TopologyTriangles)
	m.SetSubMeshes([]*mesh.SubMesh{sm})
	if m.Fingerprint() == before {
		t.Error("sub-mesh change kept the fingerprint")
	}
}
