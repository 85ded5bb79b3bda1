package tilemesh

// Mesh is a triangle-list mesh for one non-empty chunk: tightly packed
// positions (3 floats per vertex), UVs (2 floats per vertex), and indices
// (two CCW triangles per tile quad). Ownership passes to the host after
// compilation.
type Mesh struct {
	Positions []float32
	UVs       []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// TileCount returns the number of tile quads in the mesh.
func (m *Mesh) TileCount() int { return len(m.Indices) / 6 }

// quad is a tile's world-space bounding box: (X0, Y0) bottom-left,
// (X1, Y1) top-right.
type quad struct {
	X0, Y0, X1, Y1 float64
}

// appendTile emits one tile quad. Vertex order is bottom-left, top-left,
// top-right, bottom-right; UV corners start in the same order and are
// reordered to express the tile transform. The three flips must be applied
// diagonal first, then horizontal, then vertical to match Tiled.
func (m *Mesh) appendTile(q quad, uv UVRect, flipD, flipH, flipV bool) {
	base := uint32(m.VertexCount())

	m.Positions = append(m.Positions,
		float32(q.X0), float32(q.Y0), 0,
		float32(q.X0), float32(q.Y1), 0,
		float32(q.X1), float32(q.Y1), 0,
		float32(q.X1), float32(q.Y0), 0,
	)

	corners := flipCorners(uvCorners(uv), flipD, flipH, flipV)
	for _, c := range corners {
		m.UVs = append(m.UVs, c[0], c[1])
	}

	m.Indices = append(m.Indices,
		base+0, base+2, base+1,
		base+0, base+3, base+2,
	)
}

// uvCorners expands a UV rect into quad corners matching the vertex order:
// bottom-left, top-left, top-right, bottom-right.
func uvCorners(uv UVRect) [4][2]float32 {
	return [4][2]float32{
		{float32(uv.U0), float32(uv.V1)},
		{float32(uv.U0), float32(uv.V0)},
		{float32(uv.U1), float32(uv.V0)},
		{float32(uv.U1), float32(uv.V1)},
	}
}

// flipCorners reorders UV corners for Tiled's tile transforms: diagonal
// (transpose) first, then horizontal, then vertical. The order is fixed; the
// operations do not commute in general.
func flipCorners(corners [4][2]float32, flipD, flipH, flipV bool) [4][2]float32 {
	if flipD {
		corners[0], corners[2] = corners[2], corners[0]
	}
	if flipH {
		corners[0], corners[1], corners[2], corners[3] = corners[3], corners[2], corners[1], corners[0]
	}
	if flipV {
		corners[0], corners[1], corners[2], corners[3] = corners[3], corners[2], corners[1], corners[0]
		corners[0], corners[2] = corners[2], corners[0]
		corners[1], corners[3] = corners[3], corners[1]
	}
	return corners
}
