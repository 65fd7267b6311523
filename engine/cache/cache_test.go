package cache

import "testing"

func TestFingerprintOrderDependent(t *testing.T) {
	a := FingerprintOf(8, 6, 3)
	b := FingerprintOf(8, 3, 6)
	if a == b {
		t.Error("fingerprint should depend on sub-mesh order")
	}
	if FingerprintOf(8, 6, 3) != a {
		t.Error("fingerprint should be deterministic")
	}
	if FingerprintOf(9, 6, 3) == a {
		t.Error("fingerprint should depend on vertex count")
	}
}

func TestLookupHitAndMiss(t *testing.T) {
	s := NewStore()
	builds := 0
	build := func() []int {
		builds++
		return []int{builds}
	}

	fp := FingerprintOf(4, 6)
	first := Lookup(s, KindCommonVertices, fp, build)
	second := Lookup(s, KindCommonVertices, fp, build)
	if builds != 1 {
		t.Errorf("expected 1 build, got %d", builds)
	}
	if first[0] != second[0] {
		t.Errorf("cached value changed: %v vs %v", first, second)
	}

	third := Lookup(s, KindCommonVertices, FingerprintOf(5, 6), build)
	if builds != 2 || third[0] != 2 {
		t.Errorf("fingerprint mismatch should rebuild; builds=%d value=%v", builds, third)
	}
	if got, _ := s.Peek(KindCommonVertices); got != FingerprintOf(5, 6) {
		t.Error("entry should be replaced with the new fingerprint")
	}
}

func TestKindsAreIndependent(t *testing.T) {
	s := NewStore()
	fp := FingerprintOf(3, 3)
	Lookup(s, KindCommonVertices, fp, func() int { return 1 })
	v := Lookup(s, KindSeamLookup, fp, func() int { return 2 })
	if v != 2 {
		t.Errorf("seam lookup = %d, want 2", v)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	s.Invalidate(KindSeamLookup)
	if _, ok := s.Peek(KindSeamLookup); ok {
		t.Error("invalidated entry still present")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}

func TestNilStoreAlwaysBuilds(t *testing.T) {
	var s *Store
	builds := 0
	for i := 0; i < 2; i++ {
		Lookup(s, KindCommonLookup, 1, func() int { builds++; return builds })
	}
	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
}
