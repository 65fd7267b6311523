package mesh

import (
	"fmt"

	"github.com/spaghettifunk/polymesh/engine/core"
	"golang.org/x/exp/slices"
)

// MeshTopology is the primitive layout of a sub-mesh index buffer.
type MeshTopology uint8

const (
	TopologyTriangles MeshTopology = iota
	TopologyQuads
)

func (t MeshTopology) String() string {
	switch t {
	case TopologyTriangles:
		return "triangles"
	case TopologyQuads:
		return "quads"
	default:
		return fmt.Sprintf("topology(%d)", uint8(t))
	}
}

// ParseTopology maps "triangles" and "quads" to a MeshTopology. An empty
// string means triangles.
func ParseTopology(s string) (MeshTopology, error) {
	switch s {
	case "", "triangles":
		return TopologyTriangles, nil
	case "quads":
		return TopologyQuads, nil
	default:
		return TopologyTriangles, fmt.Errorf("unknown topology %q", s)
	}
}

// SubMesh is one index buffer and the topology it is drawn with. It is
// immutable once constructed.
type SubMesh struct {
	indexes  []uint32
	topology MeshTopology
}

// NewSubMesh copies indexes into a new sub-mesh. A nil buffer is rejected;
// an empty, non-nil buffer is allowed.
func NewSubMesh(indexes []uint32, topology MeshTopology) (*SubMesh, error) {
	if indexes == nil {
		return nil, core.ErrNilIndexBuffer
	}
	return &SubMesh{
		indexes:  slices.Clone(indexes),
		topology: topology,
	}, nil
}

// NewSubMeshes builds one sub-mesh per entry of the asset's sub-mesh list.
func NewSubMeshes(asset *Asset) ([]*SubMesh, error) {
	if asset == nil {
		return nil, core.ErrNilSourceMesh
	}
	out := make([]*SubMesh, len(asset.SubMeshes))
	for i, sm := range asset.SubMeshes {
		s, err := NewSubMesh(sm.Indexes, sm.Topology)
		if err != nil {
			return nil, fmt.Errorf("sub-mesh %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// Indexes returns a copy of the index buffer.
func (s *SubMesh) Indexes() []uint32 {
	return slices.Clone(s.indexes)
}

func (s *SubMesh) IndexCount() int {
	return len(s.indexes)
}

func (s *SubMesh) Topology() MeshTopology {
	return s.topology
}

func (s *SubMesh) String() string {
	return fmt.Sprintf("SubMesh(%s, %d indexes)", s.topology, len(s.indexes))
}
