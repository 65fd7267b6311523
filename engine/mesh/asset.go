package mesh

import (
	"github.com/spaghettifunk/polymesh/engine/math"
)

// UVChannelCount is the number of independent texture coordinate streams.
const UVChannelCount = 4

/**
 * @brief A single index buffer of an external mesh snapshot.
 */
type AssetSubMesh struct {
	/** @brief The index buffer. */
	Indexes []uint32
	/** @brief The primitive layout of the buffer. */
	Topology MeshTopology
}

/**
 * @brief An external mesh snapshot. This is the representation exchanged with
 * the host application and with snapshot files; a PolyMesh only reads from and
 * writes to it through ApplyFrom and ApplyTo.
 */
type Asset struct {
	/** @brief The mesh name. */
	Name string
	/** @brief The vertex positions. */
	Positions []math.Vec3
	/** @brief The vertex normals, parallel to Positions. Optional. */
	Normals []math.Vec3
	/** @brief The vertex colours, parallel to Positions. Optional. */
	Colors []math.Vec4
	/** @brief The vertex tangents, parallel to Positions. Optional. */
	Tangents []math.Vec4
	/** @brief Up to four texture coordinate channels. Each is optional. */
	UVs [UVChannelCount][]math.Vec4
	/** @brief The index buffers, in material order. */
	SubMeshes []AssetSubMesh
}

// VertexCount returns the number of positions in the snapshot.
func (a *Asset) VertexCount() int {
	if a == nil {
		return 0
	}
	return len(a.Positions)
}
