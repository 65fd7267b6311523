package mesh

import (
	"github.com/spaghettifunk/polymesh/engine/core"
	"golang.org/x/exp/slices"
)

// replace returns a copy of src when the channel is requested and src is
// present. When every channel is requested the destination mirrors src even
// if it is absent, so a full resync never leaves a stale array behind.
func replace[T any](dst, src []T, requested, all bool) []T {
	if !requested {
		return dst
	}
	if len(src) == 0 && !all {
		return dst
	}
	return slices.Clone(src)
}

// ApplyFrom copies the selected channels of asset into m. With ChannelAll the
// sub-meshes are re-derived too, but only when the sub-mesh count is unchanged
// or m had none, so a geometry-only resync never drops sub-meshes that are
// live on the host.
func (m *PolyMesh) ApplyFrom(asset *Asset, channels MeshChannel) {
	if asset == nil {
		return
	}
	all := channels == ChannelAll

	m.positions = replace(m.positions, asset.Positions, channels.Has(ChannelPosition), all)
	m.normals = replace(m.normals, asset.Normals, channels.Has(ChannelNormal), all)
	m.colors = replace(m.colors, asset.Colors, channels.Has(ChannelColor), all)
	m.tangents = replace(m.tangents, asset.Tangents, channels.Has(ChannelTangent), all)
	for i, ch := range uvChannels {
		m.uvs[i] = replace(m.uvs[i], asset.UVs[i], channels.Has(ch), all)
	}

	if !all {
		return
	}

	if asset.Name != "" {
		m.Name = asset.Name
	}
	if len(m.subMeshes) != 0 && len(m.subMeshes) != len(asset.SubMeshes) {
		core.LogWarn("mesh %q: source has %d sub-meshes, mesh has %d; keeping existing sub-meshes",
			m.Name, len(asset.SubMeshes), len(m.subMeshes))
		return
	}
	subMeshes, err := NewSubMeshes(asset)
	if err != nil {
		core.LogWarn("mesh %q: %s; keeping existing sub-meshes", m.Name, err.Error())
		return
	}
	m.SetSubMeshes(subMeshes)
	m.refreshTriangles()
}

// ApplyTo copies the selected channels of m into asset. With ChannelAll the
// name and sub-meshes are written as well.
func (m *PolyMesh) ApplyTo(asset *Asset, channels MeshChannel) {
	if asset == nil {
		return
	}
	all := channels == ChannelAll

	asset.Positions = replace(asset.Positions, m.positions, channels.Has(ChannelPosition), all)
	asset.Normals = replace(asset.Normals, m.normals, channels.Has(ChannelNormal), all)
	asset.Colors = replace(asset.Colors, m.colors, channels.Has(ChannelColor), all)
	asset.Tangents = replace(asset.Tangents, m.tangents, channels.Has(ChannelTangent), all)
	for i, ch := range uvChannels {
		asset.UVs[i] = replace(asset.UVs[i], m.uvs[i], channels.Has(ch), all)
	}

	if !all {
		return
	}

	asset.Name = m.Name
	asset.SubMeshes = make([]AssetSubMesh, len(m.subMeshes))
	for i, sm := range m.subMeshes {
		asset.SubMeshes[i] = AssetSubMesh{
			Indexes:  sm.Indexes(),
			Topology: sm.Topology(),
		}
	}
}
