package math_test

import (
	"testing"

	"github.com/spaghettifunk/polymesh/engine/math"
)

func TestVec3Cross(t *testing.T) {
	x := math.NewVec3(1, 0, 0)
	y := math.NewVec3(0, 1, 0)
	if got := x.Cross(y); got != math.NewVec3(0, 0, 1) {
		t.Errorf("x cross y = %v, want (0,0,1)", got)
	}
	if got := y.Cross(x); got != math.NewVec3(0, 0, -1) {
		t.Errorf("y cross x = %v, want (0,0,-1)", got)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := math.NewVec3(3, 0, 4).Normalized()
	if !v.Compare(math.NewVec3(0.6, 0, 0.8), 1e-6) {
		t.Errorf("normalized = %v", v)
	}
	if l := v.Length(); l < 0.99999 || l > 1.00001 {
		t.Errorf("length = %f, want 1", l)
	}
}

func TestVec3NormalizedDegenerate(t *testing.T) {
	tiny := math.NewVec3(1e-9, 0, 0)
	if got := tiny.Normalized(); got != math.NewVec3Zero() {
		t.Errorf("degenerate normalize = %v, want zero", got)
	}
}

func TestTriangleNormal(t *testing.T) {
	n := math.TriangleNormal(
		math.NewVec3(0, 0, 0),
		math.NewVec3(2, 0, 0),
		math.NewVec3(0, 2, 0),
	)
	if n != math.NewVec3(0, 0, 1) {
		t.Errorf("normal = %v, want (0,0,1)", n)
	}

	collinear := math.TriangleNormal(
		math.NewVec3(0, 0, 0),
		math.NewVec3(1, 1, 1),
		math.NewVec3(2, 2, 2),
	)
	if collinear != math.NewVec3Zero() {
		t.Errorf("collinear normal = %v, want zero", collinear)
	}
}

func TestExtentsOf(t *testing.T) {
	e := math.ExtentsOf([]math.Vec3{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -4, Z: 5}})
	if e.Min != math.NewVec3(-1, -4, 0) || e.Max != math.NewVec3(3, 2, 5) {
		t.Errorf("extents = %+v", e)
	}
	if z := math.ExtentsOf(nil); z != (math.Extents3D{}) {
		t.Errorf("empty extents = %+v", z)
	}
}

func TestGenerateTangents(t *testing.T) {
	positions := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	uvs := []math.Vec4{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	tangents := math.GenerateTangents(positions, uvs, []uint32{0, 1, 2})
	for i, tg := range tangents {
		if !tg.Compare(math.NewVec4(1, 0, 0, tg.W), 1e-6) {
			t.Errorf("tangent %d = %v, want +X", i, tg)
		}
		if tg.W != 1 && tg.W != -1 {
			t.Errorf("tangent %d handedness = %f", i, tg.W)
		}
	}

	if got := math.GenerateTangents(positions, nil, []uint32{0, 1, 2}); len(got) != 3 || got[0] != (math.Vec4{}) {
		t.Errorf("missing uvs should give zero tangents, got %v", got)
	}
}
