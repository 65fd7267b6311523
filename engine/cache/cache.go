// Package cache holds derived results computed from a mesh, each tagged with
// the topology fingerprint it was computed against.
//
// A Store is owned by the mesh it describes, so an entry never outlives its
// mesh and two meshes never share an entry. Lookups whose fingerprint no
// longer matches rebuild the entry from scratch; there is no incremental
// update.
package cache

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/spaghettifunk/polymesh/engine/core"
)

// Kind names one derived result.
type Kind uint8

const (
	KindCommonVertices Kind = iota
	KindCommonLookup
	KindAdjacentTriangles
	KindSeamLookup
)

func (k Kind) String() string {
	switch k {
	case KindCommonVertices:
		return "common-vertices"
	case KindCommonLookup:
		return "common-lookup"
	case KindAdjacentTriangles:
		return "adjacent-triangles"
	case KindSeamLookup:
		return "seam-lookup"
	default:
		return "unknown"
	}
}

// Fingerprint summarizes the structure of a mesh: its vertex count and the
// index count of every sub-mesh, in order.
type Fingerprint uint64

// FingerprintOf hashes vertexCount followed by indexCounts with FNV-1a. The
// hash is order dependent so swapping two sub-meshes changes it.
func FingerprintOf(vertexCount int, indexCounts ...int) Fingerprint {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(vertexCount))
	_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	for _, c := range indexCounts {
		binary.LittleEndian.PutUint64(buf[:], uint64(c))
		_, _ = h.Write(buf[:])
	}
	return Fingerprint(h.Sum64())
}

type entry struct {
	fingerprint Fingerprint
	value       interface{}
}

// Store keeps at most one entry per Kind. It is not safe for concurrent use.
type Store struct {
	entries map[Kind]entry
}

func NewStore() *Store {
	return &Store{entries: make(map[Kind]entry)}
}

// Lookup returns the entry for kind when it was computed against fp,
// otherwise it calls build, stores the result under fp and returns it.
// A nil store always builds.
func Lookup[T any](s *Store, kind Kind, fp Fingerprint, build func() T) T {
	if s == nil {
		return build()
	}
	if e, ok := s.entries[kind]; ok && e.fingerprint == fp {
		if v, ok := e.value.(T); ok {
			core.MetricsCacheHit(kind.String())
			return v
		}
	}

	clock := core.NewClock()
	clock.Start()
	v := build()
	clock.Stop()

	s.entries[kind] = entry{fingerprint: fp, value: v}
	core.MetricsCacheMiss(kind.String(), clock.Elapsed())
	core.LogDebug("cache: rebuilt %s (fingerprint %016x) in %s", kind, uint64(fp), clock.Elapsed())

	ctx := core.EventContext{}
	ctx.Data.C[0] = kind.String()
	ctx.Data.U64[0] = uint64(fp)
	core.EventFire(core.EVENT_CODE_TOPOLOGY_REBUILT, s, ctx)
	return v
}

// Peek returns the stored fingerprint for kind without rebuilding.
func (s *Store) Peek(kind Kind) (Fingerprint, bool) {
	if s == nil {
		return 0, false
	}
	e, ok := s.entries[kind]
	return e.fingerprint, ok
}

// Invalidate drops the entry for kind.
func (s *Store) Invalidate(kind Kind) {
	if s == nil {
		return
	}
	delete(s.entries, kind)
}

// Clear drops every entry.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	s.entries = make(map[Kind]entry)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
