// Package testbed generates small, well understood meshes used by tests and
// by the demo mode of the command line tool.
package testbed

import (
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

func triangles(indexes ...uint32) []mesh.AssetSubMesh {
	return []mesh.AssetSubMesh{{Indexes: indexes, Topology: mesh.TopologyTriangles}}
}

// Triangle returns a single isolated right triangle in the XY plane.
func Triangle() *mesh.Asset {
	return &mesh.Asset{
		Name: "triangle",
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		SubMeshes: triangles(0, 1, 2),
	}
}

// SeamQuad returns a unit quad made of two triangles sharing the diagonal
// (0,0,0)-(1,1,0). The diagonal corners are stored twice with different
// UVs, so the quad has 6 vertices but only 4 distinct positions:
//
//	vertex 0 and 5 sit at (0,0,0)
//	vertex 2 and 3 sit at (1,1,0)
func SeamQuad() *mesh.Asset {
	n := math.NewVec3(0, 0, 1)
	return &mesh.Asset{
		Name: "seam_quad",
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 0},
		},
		Normals: []math.Vec3{n, n, n, n, n, n},
		UVs: [mesh.UVChannelCount][]math.Vec4{
			{
				{X: 0, Y: 0},
				{X: 1, Y: 0},
				{X: 1, Y: 1},
				{X: 0.5, Y: 0.5},
				{X: 0, Y: 0.5},
				{X: 0.5, Y: 0},
			},
		},
		SubMeshes: triangles(0, 1, 2, 3, 4, 5),
	}
}

// Fold returns two triangles hinged along the Y axis at a right angle. The
// hinge vertices are split per triangle but share a smooth normal, which makes
// them two seam clusters.
//
//	triangle 0: (0,0,0) (1,0,0) (0,1,0)   face normal +Z
//	triangle 1: (0,0,0) (0,1,0) (0,0,1)   face normal +X
func Fold() *mesh.Asset {
	hinge := math.NewVec3(1, 0, 1).Normalized()
	return &mesh.Asset{
		Name: "fold",
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Normals: []math.Vec3{
			hinge,
			{X: 0, Y: 0, Z: 1},
			hinge,
			hinge,
			hinge,
			{X: 1, Y: 0, Z: 0},
		},
		SubMeshes: triangles(0, 1, 2, 3, 4, 5),
	}
}

// Tetrahedron returns a closed, indexed tetrahedron with 4 shared vertices.
func Tetrahedron() *mesh.Asset {
	return &mesh.Asset{
		Name: "tetrahedron",
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		SubMeshes: triangles(
			0, 2, 1,
			0, 1, 3,
			1, 2, 3,
			2, 0, 3,
		),
	}
}

// GenerateCube returns a closed box centred on the origin with 4 vertices per
// side, so every corner position is shared by three vertices with different
// normals.
func GenerateCube(width, height, depth, tileX, tileY float32, name string) *mesh.Asset {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	half_width := width * 0.5
	half_height := height * 0.5
	half_depth := depth * 0.5
	min_x := -half_width
	min_y := -half_height
	min_z := -half_depth
	max_x := half_width
	max_y := half_height
	max_z := half_depth

	sides := []struct {
		corners [4]math.Vec3
		normal  math.Vec3
	}{
		// Front
		{[4]math.Vec3{{X: min_x, Y: min_y, Z: max_z}, {X: max_x, Y: max_y, Z: max_z}, {X: min_x, Y: max_y, Z: max_z}, {X: max_x, Y: min_y, Z: max_z}}, math.NewVec3(0, 0, 1)},
		// Back
		{[4]math.Vec3{{X: max_x, Y: min_y, Z: min_z}, {X: min_x, Y: max_y, Z: min_z}, {X: max_x, Y: max_y, Z: min_z}, {X: min_x, Y: min_y, Z: min_z}}, math.NewVec3(0, 0, -1)},
		// Left
		{[4]math.Vec3{{X: min_x, Y: min_y, Z: min_z}, {X: min_x, Y: max_y, Z: max_z}, {X: min_x, Y: max_y, Z: min_z}, {X: min_x, Y: min_y, Z: max_z}}, math.NewVec3(-1, 0, 0)},
		// Right
		{[4]math.Vec3{{X: max_x, Y: min_y, Z: max_z}, {X: max_x, Y: max_y, Z: min_z}, {X: max_x, Y: max_y, Z: max_z}, {X: max_x, Y: min_y, Z: min_z}}, math.NewVec3(1, 0, 0)},
		// Bottom
		{[4]math.Vec3{{X: max_x, Y: min_y, Z: max_z}, {X: min_x, Y: min_y, Z: min_z}, {X: max_x, Y: min_y, Z: min_z}, {X: min_x, Y: min_y, Z: max_z}}, math.NewVec3(0, -1, 0)},
		// Top
		{[4]math.Vec3{{X: min_x, Y: max_y, Z: max_z}, {X: max_x, Y: max_y, Z: min_z}, {X: min_x, Y: max_y, Z: min_z}, {X: max_x, Y: max_y, Z: max_z}}, math.NewVec3(0, 1, 0)},
	}
	// Same corner order on every side: (min,min) (max,max) (min,max) (max,min).
	sideUVs := [4]math.Vec4{{X: 0, Y: 0}, {X: tileX, Y: tileY}, {X: 0, Y: tileY}, {X: tileX, Y: 0}}

	asset := &mesh.Asset{
		Name:      name,
		Positions: make([]math.Vec3, 0, 24),
		Normals:   make([]math.Vec3, 0, 24),
		Colors:    make([]math.Vec4, 0, 24),
	}
	uvs := make([]math.Vec4, 0, 24)
	indexes := make([]uint32, 0, 36)
	for i, side := range sides {
		for c := 0; c < 4; c++ {
			asset.Positions = append(asset.Positions, side.corners[c])
			asset.Normals = append(asset.Normals, side.normal)
			asset.Colors = append(asset.Colors, math.NewVec4(1, 1, 1, 1))
			uvs = append(uvs, sideUVs[c])
		}
		v_offset := uint32(i * 4)
		indexes = append(indexes,
			v_offset+0, v_offset+1, v_offset+2,
			v_offset+0, v_offset+3, v_offset+1,
		)
	}
	asset.UVs[0] = uvs
	asset.Tangents = math.GenerateTangents(asset.Positions, uvs, indexes)
	asset.SubMeshes = triangles(indexes...)
	return asset
}

// GeneratePlane returns a flat grid in the XY plane facing +Z. Every cell owns
// its 4 vertices, so interior positions are shared by up to 4 vertices with
// identical normals.
func GeneratePlane(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) *mesh.Asset {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	vertexCount := xSegmentCount * ySegmentCount * 4
	asset := &mesh.Asset{
		Name:      name,
		Positions: make([]math.Vec3, vertexCount),
		Normals:   make([]math.Vec3, vertexCount),
	}
	uvs := make([]math.Vec4, vertexCount)
	indexes := make([]uint32, xSegmentCount*ySegmentCount*6)

	seg_width := width / float32(xSegmentCount)
	seg_height := height / float32(ySegmentCount)
	half_width := width * 0.5
	half_height := height * 0.5
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			min_x := (float32(x) * seg_width) - half_width
			min_y := (float32(y) * seg_height) - half_height
			max_x := min_x + seg_width
			max_y := min_y + seg_height
			min_uvx := (float32(x) / float32(xSegmentCount)) * tileX
			min_uvy := (float32(y) / float32(ySegmentCount)) * tileY
			max_uvx := (float32(x+1) / float32(xSegmentCount)) * tileX
			max_uvy := (float32(y+1) / float32(ySegmentCount)) * tileY

			v_offset := ((y * xSegmentCount) + x) * 4
			asset.Positions[v_offset+0] = math.NewVec3(min_x, min_y, 0)
			asset.Positions[v_offset+1] = math.NewVec3(max_x, max_y, 0)
			asset.Positions[v_offset+2] = math.NewVec3(min_x, max_y, 0)
			asset.Positions[v_offset+3] = math.NewVec3(max_x, min_y, 0)
			uvs[v_offset+0] = math.NewVec4(min_uvx, min_uvy, 0, 0)
			uvs[v_offset+1] = math.NewVec4(max_uvx, max_uvy, 0, 0)
			uvs[v_offset+2] = math.NewVec4(min_uvx, max_uvy, 0, 0)
			uvs[v_offset+3] = math.NewVec4(max_uvx, min_uvy, 0, 0)
			for c := uint32(0); c < 4; c++ {
				asset.Normals[v_offset+c] = math.NewVec3(0, 0, 1)
			}

			i_offset := ((y * xSegmentCount) + x) * 6
			indexes[i_offset+0] = v_offset + 0
			indexes[i_offset+1] = v_offset + 3
			indexes[i_offset+2] = v_offset + 1
			indexes[i_offset+3] = v_offset + 0
			indexes[i_offset+4] = v_offset + 1
			indexes[i_offset+5] = v_offset + 2
		}
	}
	asset.UVs[0] = uvs
	asset.SubMeshes = triangles(indexes...)
	return asset
}

// All returns every fixture keyed by name.
func All() map[string]*mesh.Asset {
	return map[string]*mesh.Asset{
		"triangle":    Triangle(),
		"seam_quad":   SeamQuad(),
		"fold":        Fold(),
		"tetrahedron": Tetrahedron(),
		"cube":        GenerateCube(2, 2, 2, 1, 1, "cube"),
		"plane":       GeneratePlane(2, 2, 2, 2, 1, 1, "plane"),
	}
}
