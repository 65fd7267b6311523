// Package mesh holds an editable, renderer agnostic copy of a polygon mesh.
//
// A PolyMesh owns its vertex attribute arrays and sub-meshes. Arrays are
// always replaced wholesale; callers must treat slices returned by getters as
// read-only and go through the setters to change them.
package mesh

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/polymesh/engine/cache"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/math"
	"golang.org/x/exp/slices"
)

/**
 * @brief An editable polygon mesh. Holds parallel per-vertex attribute
 * arrays, an ordered list of sub-meshes, a lazily rebuilt flattened index
 * list and the derived topology cache computed from it.
 */
type PolyMesh struct {
	/** @brief The mesh name. */
	Name string
	/** @brief Identity of this mesh instance. Copies get a new one. */
	ID uuid.UUID

	positions []math.Vec3
	normals   []math.Vec3
	colors    []math.Vec4
	tangents  []math.Vec4
	uvs       [UVChannelCount][]math.Vec4

	subMeshes []*SubMesh

	triangles      []int
	trianglesDirty bool

	derived *cache.Store
}

func NewPolyMesh(name string) *PolyMesh {
	return &PolyMesh{
		Name:           name,
		ID:             uuid.New(),
		trianglesDirty: true,
		derived:        cache.NewStore(),
	}
}

// NewPolyMeshFromAsset builds a mesh holding every channel of asset.
func NewPolyMeshFromAsset(asset *Asset) (*PolyMesh, error) {
	if asset == nil {
		return nil, core.ErrNilSourceMesh
	}
	m := NewPolyMesh(asset.Name)
	m.ApplyFrom(asset, ChannelAll)
	return m, nil
}

func (m *PolyMesh) VertexCount() int {
	return len(m.positions)
}

func (m *PolyMesh) Positions() []math.Vec3 { return m.positions }
func (m *PolyMesh) Normals() []math.Vec3   { return m.normals }
func (m *PolyMesh) Colors() []math.Vec4    { return m.colors }
func (m *PolyMesh) Tangents() []math.Vec4  { return m.tangents }

// UVs returns texture coordinate channel 0..3, or nil for any other channel.
func (m *PolyMesh) UVs(channel int) []math.Vec4 {
	if channel < 0 || channel >= UVChannelCount {
		return nil
	}
	return m.uvs[channel]
}

func (m *PolyMesh) SetPositions(positions []math.Vec3) { m.positions = slices.Clone(positions) }
func (m *PolyMesh) SetNormals(normals []math.Vec3)     { m.normals = slices.Clone(normals) }
func (m *PolyMesh) SetColors(colors []math.Vec4)       { m.colors = slices.Clone(colors) }
func (m *PolyMesh) SetTangents(tangents []math.Vec4)   { m.tangents = slices.Clone(tangents) }

// SetUVs replaces texture coordinate channel 0..3. Other channels are ignored.
func (m *PolyMesh) SetUVs(channel int, uvs []math.Vec4) {
	if channel < 0 || channel >= UVChannelCount {
		core.LogWarn("mesh %q: uv channel %d out of range", m.Name, channel)
		return
	}
	m.uvs[channel] = slices.Clone(uvs)
}

// SubMeshes returns the sub-mesh list. Sub-meshes are immutable.
func (m *PolyMesh) SubMeshes() []*SubMesh {
	return m.subMeshes
}

func (m *PolyMesh) SubMeshCount() int {
	return len(m.subMeshes)
}

// SetSubMeshes replaces the sub-mesh list and marks the flattened index list
// stale.
func (m *PolyMesh) SetSubMeshes(subMeshes []*SubMesh) {
	m.subMeshes = slices.Clone(subMeshes)
	m.trianglesDirty = true
}

// Triangles returns every sub-mesh index buffer concatenated in sub-mesh
// order. The list is rebuilt on first access after the sub-meshes change.
// The returned slice is shared; do not modify it.
func (m *PolyMesh) Triangles() []int {
	if m.trianglesDirty || m.triangles == nil {
		m.refreshTriangles()
	}
	return m.triangles
}

func (m *PolyMesh) refreshTriangles() {
	count := 0
	for _, sm := range m.subMeshes {
		count += sm.IndexCount()
	}
	tris := make([]int, 0, count)
	for _, sm := range m.subMeshes {
		for _, idx := range sm.indexes {
			tris = append(tris, int(idx))
		}
	}
	m.triangles = tris
	m.trianglesDirty = false
}

// IsValid reports whether the mesh has vertices and at least one index.
func (m *PolyMesh) IsValid() bool {
	return m != nil && m.VertexCount() > 0 && len(m.Triangles()) > 0
}

// Validate returns an error describing the first broken structural
// invariant: parallel attribute lengths, index range, or a triangle index
// buffer whose length is not a multiple of 3.
func (m *PolyMesh) Validate() error {
	if m == nil {
		return core.ErrNilSourceMesh
	}
	vc := m.VertexCount()
	check := func(name string, n int) error {
		if n != 0 && n != vc {
			return fmt.Errorf("%w: %s has %d entries, expected %d", core.ErrInvalidMesh, name, n, vc)
		}
		return nil
	}
	if err := check("normals", len(m.normals)); err != nil {
		return err
	}
	if err := check("colors", len(m.colors)); err != nil {
		return err
	}
	if err := check("tangents", len(m.tangents)); err != nil {
		return err
	}
	for i, uv := range m.uvs {
		if err := check(fmt.Sprintf("uv%d", i), len(uv)); err != nil {
			return err
		}
	}
	for i, sm := range m.subMeshes {
		if sm.topology == TopologyTriangles && sm.IndexCount()%3 != 0 {
			return fmt.Errorf("%w: sub-mesh %d has %d indexes, not a multiple of 3", core.ErrInvalidMesh, i, sm.IndexCount())
		}
		if sm.topology == TopologyQuads && sm.IndexCount()%4 != 0 {
			return fmt.Errorf("%w: sub-mesh %d has %d indexes, not a multiple of 4", core.ErrInvalidMesh, i, sm.IndexCount())
		}
		for _, idx := range sm.indexes {
			if int(idx) >= vc {
				return fmt.Errorf("%w: sub-mesh %d references vertex %d, vertex count is %d", core.ErrInvalidMesh, i, idx, vc)
			}
		}
	}
	return nil
}

// Fingerprint summarizes the mesh structure for cache invalidation.
func (m *PolyMesh) Fingerprint() cache.Fingerprint {
	counts := make([]int, len(m.subMeshes))
	for i, sm := range m.subMeshes {
		counts[i] = sm.IndexCount()
	}
	return cache.FingerprintOf(m.VertexCount(), counts...)
}

// Cache returns the store holding topology derived from this mesh.
func (m *PolyMesh) Cache() *cache.Store {
	if m.derived == nil {
		m.derived = cache.NewStore()
	}
	return m.derived
}

// Clear discards every attribute array, the sub-meshes and derived data.
func (m *PolyMesh) Clear() {
	m.positions = nil
	m.normals = nil
	m.colors = nil
	m.tangents = nil
	m.uvs = [UVChannelCount][]math.Vec4{}
	m.subMeshes = nil
	m.triangles = nil
	m.trianglesDirty = true
	m.Cache().Clear()
}

// Copy returns a deep copy with a new identity and an empty derived cache.
func (m *PolyMesh) Copy() *PolyMesh {
	c := NewPolyMesh(m.Name)
	c.positions = slices.Clone(m.positions)
	c.normals = slices.Clone(m.normals)
	c.colors = slices.Clone(m.colors)
	c.tangents = slices.Clone(m.tangents)
	for i := range m.uvs {
		c.uvs[i] = slices.Clone(m.uvs[i])
	}
	c.subMeshes = slices.Clone(m.subMeshes)
	return c
}

// RecalculateNormals recomputes per-vertex normals from the triangle list.
// Every triangle adds its unnormalized face normal (b-a)x(c-a) to each of its
// vertices and bumps their face count. The final normal is the accumulated
// vector scaled by the face count, then normalized. Vertices with no faces,
// or whose accumulated vector is degenerate, get the zero vector.
func (m *PolyMesh) RecalculateNormals() {
	vc := m.VertexCount()
	normals := make([]math.Vec3, vc)
	counts := make([]int, vc)
	tris := m.Triangles()

	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		if a >= vc || b >= vc || c >= vc {
			core.LogWarn("mesh %q: triangle %d references a vertex out of range, skipped", m.Name, i/3)
			continue
		}
		n := math.TriangleCross(m.positions[a], m.positions[b], m.positions[c])

		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)

		counts[a]++
		counts[b]++
		counts[c]++
	}

	for i := range normals {
		normals[i] = normals[i].MulScalar(float32(counts[i])).Normalized()
	}
	m.normals = normals
}

func (m *PolyMesh) String() string {
	return fmt.Sprintf("PolyMesh(%q, %d vertexes, %d sub-meshes)", m.Name, m.VertexCount(), len(m.subMeshes))
}
