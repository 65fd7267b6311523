package topology_test

import (
	"testing"

	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/topology"
	"github.com/spaghettifunk/polymesh/testbed"
	"golang.org/x/exp/slices"
)

func TestSmoothSeamLookup(t *testing.T) {
	tests := []struct {
		name string
		want [][]int
	}{
		{"fold", [][]int{{0, 3}, {2, 4}}},
		{"seam_quad", [][]int{{0, 5}, {2, 3}}},
		{"cube", nil},
	}
	fixtures := testbed.All()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustMesh(t, fixtures[tt.name])
			if got := topology.SmoothSeamLookup(m); !equalGroups(got, tt.want) {
				t.Errorf("SmoothSeamLookup = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSmoothSeamLookupWithoutNormals(t *testing.T) {
	m := mustMesh(t, testbed.Tetrahedron())
	if got := topology.SmoothSeamLookup(m); got != nil {
		t.Errorf("SmoothSeamLookup = %v, want nil", got)
	}
}

func TestSmoothSeamLookupPlane(t *testing.T) {
	m := mustMesh(t, testbed.GeneratePlane(2, 2, 2, 2, 1, 1, "plane"))
	seams := topology.SmoothSeamLookup(m)

	// One cluster of 4 at the centre, one pair per edge midpoint.
	sizes := map[int]int{}
	for _, s := range seams {
		sizes[len(s)]++
	}
	if len(seams) != 5 || sizes[4] != 1 || sizes[2] != 4 {
		t.Errorf("SmoothSeamLookup = %v", seams)
	}
}

func TestRecalculateNormalsAveragesSeams(t *testing.T) {
	m := mustMesh(t, testbed.Fold())
	topology.RecalculateNormals(m)

	hinge := math.NewVec3(0.5, 0, 0.5)
	want := []math.Vec3{
		hinge,
		math.NewVec3(0, 0, 1),
		hinge,
		hinge,
		hinge,
		math.NewVec3(1, 0, 0),
	}
	got := m.Normals()
	for i := range want {
		if !got[i].Compare(want[i], 1e-6) {
			t.Errorf("normal %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRecalculateNormalsUsesPreviousNormalsForSeams(t *testing.T) {
	m := mustMesh(t, testbed.Fold())
	normals := slices.Clone(m.Normals())
	normals[3] = math.NewVec3(1, 0, 0)
	m.SetNormals(normals)
	topology.ClearSmoothSeamLookup(m)

	topology.RecalculateNormals(m)
	got := m.Normals()
	if !got[0].Compare(math.NewVec3(0, 0, 1), 1e-6) || !got[3].Compare(math.NewVec3(1, 0, 0), 1e-6) {
		t.Errorf("split hinge was smoothed: %v %v", got[0], got[3])
	}
	if !got[2].Compare(math.NewVec3(0.5, 0, 0.5), 1e-6) {
		t.Errorf("normal 2 = %v, want the hinge average", got[2])
	}
}

func TestRecalculateNormalsIsIdempotent(t *testing.T) {
	for name, asset := range testbed.All() {
		t.Run(name, func(t *testing.T) {
			m := mustMesh(t, asset)
			topology.RecalculateNormals(m)
			first := slices.Clone(m.Normals())
			topology.RecalculateNormals(m)
			second := m.Normals()
			if len(first) != len(second) {
				t.Fatalf("normal count changed: %d -> %d", len(first), len(second))
			}
			for i := range first {
				if first[i] != second[i] {
					t.Errorf("normal %d changed: %v -> %v", i, first[i], second[i])
				}
			}
		})
	}
}

func TestRecalculateNormalsSingleTriangle(t *testing.T) {
	m := mustMesh(t, testbed.Triangle())
	topology.RecalculateNormals(m)
	for i, n := range m.Normals() {
		if !n.Compare(math.NewVec3(0, 0, 1), 1e-6) {
			t.Errorf("normal %d = %v, want +Z", i, n)
		}
	}
}

func TestRecalculateNormalsFiresEvent(t *testing.T) {
	core.EventInitialize()
	var seams uint64
	var fired bool
	listener := &struct{ name string }{"smoothing"}
	onEvent := func(code core.SystemEventCode, sender, listenerInst interface{}, ctx core.EventContext) bool {
		fired = true
		seams = ctx.Data.U64[0]
		return false
	}
	if !core.EventRegister(core.EVENT_CODE_NORMALS_RECALCULATED, listener, onEvent) {
		t.Fatal("EventRegister failed")
	}
	defer core.EventUnregister(core.EVENT_CODE_NORMALS_RECALCULATED, listener)

	topology.RecalculateNormals(mustMesh(t, testbed.Fold()))
	if !fired || seams != 2 {
		t.Errorf("fired = %v with %d seams, want 2", fired, seams)
	}
}
