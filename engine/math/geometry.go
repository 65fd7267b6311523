package math

// TriangleCross returns the non-unit face normal (b-a)x(c-a). Its length is
// twice the triangle area.
func TriangleCross(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// TriangleNormal returns the unit face normal of the triangle, or the zero
// vector when the triangle is degenerate.
func TriangleNormal(a, b, c Vec3) Vec3 {
	return TriangleCross(a, b, c).Normalized()
}

// ExtentsOf returns the axis aligned bounds of points. Empty input yields
// zero extents.
func ExtentsOf(points []Vec3) Extents3D {
	if len(points) == 0 {
		return Extents3D{}
	}
	e := Extents3D{
		Min: Vec3{K_INFINITY, K_INFINITY, K_INFINITY},
		Max: Vec3{-K_INFINITY, -K_INFINITY, -K_INFINITY},
	}
	for _, p := range points {
		e.Min.X = min(e.Min.X, p.X)
		e.Min.Y = min(e.Min.Y, p.Y)
		e.Min.Z = min(e.Min.Z, p.Z)
		e.Max.X = max(e.Max.X, p.X)
		e.Max.Y = max(e.Max.Y, p.Y)
		e.Max.Z = max(e.Max.Z, p.Z)
	}
	return e
}

// GenerateTangents returns one tangent per vertex computed from the texture
// coordinates in uvs (X, Y). W carries the bitangent handedness. Each triangle
// overwrites the tangents of its three vertices, so shared vertices keep the
// value of the last triangle that references them.
func GenerateTangents(positions []Vec3, uvs []Vec4, indices []uint32) []Vec4 {
	tangents := make([]Vec4, len(positions))
	if len(uvs) != len(positions) {
		return tangents
	}
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])

		deltaU1 := uvs[i1].X - uvs[i0].X
		deltaV1 := uvs[i1].Y - uvs[i0].Y

		deltaU2 := uvs[i2].X - uvs[i0].X
		deltaV2 := uvs[i2].Y - uvs[i0].Y

		dividend := deltaU1*deltaV2 - deltaU2*deltaV1
		if kabs(dividend) < K_FLOAT_EPSILON {
			continue
		}
		fc := 1.0 / dividend

		tangent := Vec3{
			fc * (deltaV2*edge1.X - deltaV1*edge2.X),
			fc * (deltaV2*edge1.Y - deltaV1*edge2.Y),
			fc * (deltaV2*edge1.Z - deltaV1*edge2.Z),
		}.Normalized()

		handedness := float32(1.0)
		if (deltaV1*deltaU2 - deltaV2*deltaU1) < 0.0 {
			handedness = -1.0
		}

		t4 := Vec4{tangent.X, tangent.Y, tangent.Z, handedness}
		tangents[i0] = t4
		tangents[i1] = t4
		tangents[i2] = t4
	}
	return tangents
}
