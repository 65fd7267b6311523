package loaders

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

// SnapshotFile is the on-disk layout of a .pmesh file.
type SnapshotFile struct {
	Name      string          `toml:"name"`
	Positions [][3]float32    `toml:"positions"`
	Normals   [][3]float32    `toml:"normals,omitempty"`
	Colors    [][4]float32    `toml:"colors,omitempty"`
	Tangents  [][4]float32    `toml:"tangents,omitempty"`
	UV0       [][4]float32    `toml:"uv0,omitempty"`
	UV1       [][4]float32    `toml:"uv1,omitempty"`
	UV2       [][4]float32    `toml:"uv2,omitempty"`
	UV3       [][4]float32    `toml:"uv3,omitempty"`
	SubMeshes []SubMeshRecord `toml:"submesh"`
}

type SubMeshRecord struct {
	Topology string   `toml:"topology"`
	Indexes  []uint32 `toml:"indexes"`
}

// SnapshotLoader reads and writes .pmesh files.
type SnapshotLoader struct{}

func (sl *SnapshotLoader) Load(path string) (*mesh.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	asset, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return asset, nil
}

func (sl *SnapshotLoader) Save(path string, asset *mesh.Asset) error {
	data, err := EncodeSnapshot(asset)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DecodeSnapshot(data []byte) (*mesh.Asset, error) {
	var f SnapshotFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}

	asset := &mesh.Asset{
		Name:      f.Name,
		Positions: toVec3(f.Positions),
		Normals:   toVec3(f.Normals),
		Colors:    toVec4(f.Colors),
		Tangents:  toVec4(f.Tangents),
		UVs: [mesh.UVChannelCount][]math.Vec4{
			toVec4(f.UV0),
			toVec4(f.UV1),
			toVec4(f.UV2),
			toVec4(f.UV3),
		},
	}
	for i, sm := range f.SubMeshes {
		topology, err := mesh.ParseTopology(sm.Topology)
		if err != nil {
			return nil, fmt.Errorf("submesh %d: %w", i, err)
		}
		indexes := sm.Indexes
		if indexes == nil {
			indexes = []uint32{}
		}
		asset.SubMeshes = append(asset.SubMeshes, mesh.AssetSubMesh{Indexes: indexes, Topology: topology})
	}
	return asset, nil
}

func EncodeSnapshot(asset *mesh.Asset) ([]byte, error) {
	if asset == nil {
		return nil, fmt.Errorf("encode snapshot: nil asset")
	}
	f := SnapshotFile{
		Name:      asset.Name,
		Positions: fromVec3(asset.Positions),
		Normals:   fromVec3(asset.Normals),
		Colors:    fromVec4(asset.Colors),
		Tangents:  fromVec4(asset.Tangents),
		UV0:       fromVec4(asset.UVs[0]),
		UV1:       fromVec4(asset.UVs[1]),
		UV2:       fromVec4(asset.UVs[2]),
		UV3:       fromVec4(asset.UVs[3]),
	}
	for _, sm := range asset.SubMeshes {
		f.SubMeshes = append(f.SubMeshes, SubMeshRecord{
			Topology: sm.Topology.String(),
			Indexes:  sm.Indexes,
		})
	}
	return toml.Marshal(f)
}

func toVec3(in [][3]float32) []math.Vec3 {
	if len(in) == 0 {
		return nil
	}
	out := make([]math.Vec3, len(in))
	for i, v := range in {
		out[i] = math.NewVec3(v[0], v[1], v[2])
	}
	return out
}

func toVec4(in [][4]float32) []math.Vec4 {
	if len(in) == 0 {
		return nil
	}
	out := make([]math.Vec4, len(in))
	for i, v := range in {
		out[i] = math.NewVec4(v[0], v[1], v[2], v[3])
	}
	return out
}

func fromVec3(in []math.Vec3) [][3]float32 {
	if len(in) == 0 {
		return nil
	}
	out := make([][3]float32, len(in))
	for i, v := range in {
		out[i] = [3]float32{v.X, v.Y, v.Z}
	}
	return out
}

func fromVec4(in []math.Vec4) [][4]float32 {
	if len(in) == 0 {
		return nil
	}
	out := make([][4]float32, len(in))
	for i, v := range in {
		out[i] = [4]float32{v.X, v.Y, v.Z, v.W}
	}
	return out
}
