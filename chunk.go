package tilemesh

import (
	"github.com/milk9111/tilemesh/tmx"
)

// DefaultChunkSize is the tile-edge length of a mesh batching chunk.
const DefaultChunkSize = 32

// buildChunkMesh builds the mesh for one chunk of one (layer, tileset) pair.
// Cells that are empty, outside the map, or owned by another tileset
// contribute nothing; a chunk with no surviving tiles returns nil rather
// than an empty mesh.
func buildChunkMesh(doc *tmx.Map, orient Orientation, layer *tmx.Layer, ts *tmx.Tileset, chunkX, chunkY, chunkSize int) *Mesh {
	tileW := float64(ts.TileWidth)
	tileH := float64(ts.TileHeight)

	var mesh *Mesh
	for tileX := 0; tileX < chunkSize; tileX++ {
		for tileY := 0; tileY < chunkSize; tileY++ {
			lookupX := chunkX*chunkSize + tileX
			lookupY := chunkY*chunkSize + tileY
			if lookupX >= doc.Width || lookupY >= doc.Height {
				continue
			}

			gid := layer.GIDs[lookupY*doc.Width+lookupX]
			resolved, ok := ResolveTile(gid, ts)
			if !ok {
				continue
			}

			grid := Vec2{X: float64(lookupX), Y: float64(lookupY)}
			var q quad
			switch orient {
			case Isometric:
				// Diamond bounding box: anchored at the projected top
				// corner, centered horizontally.
				c := ProjectIso(grid, tileW, tileH)
				q = quad{X0: c.X - tileW/2, Y0: c.Y - tileH, X1: c.X + tileW/2, Y1: c.Y}
			default:
				c := ProjectOrtho(grid, tileW, tileH)
				q = quad{X0: c.X, Y0: c.Y - tileH, X1: c.X + tileW, Y1: c.Y}
			}

			if mesh == nil {
				mesh = &Mesh{}
			}
			mesh.appendTile(q, resolved.UV, resolved.FlipD, resolved.FlipH, resolved.FlipV)
		}
	}
	return mesh
}

// chunkGridSize returns how many chunks cover extent tiles. Always at least
// one so degenerate maps still produce a grid.
func chunkGridSize(extent, chunkSize int) int {
	n := (extent + chunkSize - 1) / chunkSize
	if n < 1 {
		n = 1
	}
	return n
}
