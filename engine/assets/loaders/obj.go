package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/math"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

// ObjLoader imports Wavefront OBJ files. Every distinct v/vt/vn triple becomes
// one vertex, so a position used with two texture coordinates is split into
// two vertices the way a host application would store it. Polygons are fan
// triangulated and each usemtl starts a new sub-mesh.
type ObjLoader struct{}

type objCorner struct {
	v, vt, vn int
}

func (ol *ObjLoader) Load(path string) (*mesh.Asset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	asset, err := ParseObj(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if asset.Name == "" {
		asset.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return asset, nil
}

func ParseObj(r io.Reader) (*mesh.Asset, error) {
	var vs, vns []math.Vec3
	var vts []math.Vec4

	asset := &mesh.Asset{}
	var uvs []math.Vec4
	var normals []math.Vec3
	corners := make(map[objCorner]uint32)
	var current []uint32

	flush := func() {
		if len(current) == 0 {
			return
		}
		asset.SubMeshes = append(asset.SubMeshes, mesh.AssetSubMesh{Indexes: current, Topology: mesh.TopologyTriangles})
		current = nil
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "o":
			if len(fields) > 1 && asset.Name == "" {
				asset.Name = fields[1]
			}
		case "usemtl":
			flush()
		case "v":
			p, err := parseFloats(fields[1:], 3, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			vs = append(vs, math.NewVec3(p[0], p[1], p[2]))
		case "vt":
			p, err := parseFloats(fields[1:], 1, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			vts = append(vts, math.NewVec4(p[0], p[1], p[2], 0))
		case "vn":
			p, err := parseFloats(fields[1:], 3, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			vns = append(vns, math.NewVec3(p[0], p[1], p[2]))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNum)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, token := range fields[1:] {
				c, err := parseCorner(token, len(vs), len(vts), len(vns))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				idx, ok := corners[c]
				if !ok {
					idx = uint32(len(asset.Positions))
					corners[c] = idx
					asset.Positions = append(asset.Positions, vs[c.v])
					uv := math.Vec4{}
					if c.vt >= 0 {
						uv = vts[c.vt]
					}
					uvs = append(uvs, uv)
					n := math.Vec3{}
					if c.vn >= 0 {
						n = vns[c.vn]
					}
					normals = append(normals, n)
				}
				face = append(face, idx)
			}
			for i := 1; i < len(face)-1; i++ {
				current = append(current, face[0], face[i], face[i+1])
			}
		default:
			// mtllib, s, l and friends carry nothing a mesh snapshot keeps.
			core.LogDebug("obj: line %d: ignoring %q", lineNum, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(vts) > 0 {
		asset.UVs[0] = uvs
	}
	if len(vns) > 0 {
		asset.Normals = normals
	}
	return asset, nil
}

func parseFloats(fields []string, min, max int) ([]float32, error) {
	if len(fields) < min {
		return nil, fmt.Errorf("expected at least %d values, got %d", min, len(fields))
	}
	out := make([]float32, max)
	for i := 0; i < max && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseCorner decodes v, v/vt, v//vn or v/vt/vn into zero based indexes.
// Missing parts are -1. Negative OBJ indexes count back from the end.
func parseCorner(token string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.Split(token, "/")
	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = objIndex(parts[0], nv); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = objIndex(parts[1], nvt); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = objIndex(parts[2], nvn); err != nil {
			return c, err
		}
	}
	return c, nil
}

func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return -1, fmt.Errorf("index %d out of range (%d elements)", i, n)
	}
}
