package tilemesh

import (
	"github.com/milk9111/tilemesh/tmx"
)

// UVRect is a sprite-sheet rectangle in normalized texture coordinates.
// V counts downward, matching the sheet's pixel rows.
type UVRect struct {
	U0, V0, U1, V1 float64
}

// ResolvedTile is a layer cell resolved against one tileset: the local tile
// index, its source rectangle on the sheet, and the cell's flip flags. Flips
// are not baked into the UV rect; they reorder quad corners at mesh assembly
// so the diagonal (transpose) flip composes correctly.
type ResolvedTile struct {
	Index uint32
	Sheet PixelRect
	UV    UVRect
	FlipH bool
	FlipV bool
	FlipD bool
}

// PixelRect is a sprite-sheet rectangle in pixels.
type PixelRect struct {
	X, Y, W, H float64
}

// ResolveTile resolves a raw gid against ts. The second return is false when
// the cell is empty or belongs to a different tileset; a single layer may
// reference several tilesets, so that is a skip, not an error.
func ResolveTile(gid tmx.GID, ts *tmx.Tileset) (ResolvedTile, bool) {
	clean := gid.Clean()
	if clean == 0 || !ts.Contains(gid) {
		return ResolvedTile{}, false
	}

	index := uint32(clean - ts.FirstGID)

	tileW := float64(ts.TileWidth)
	tileH := float64(ts.TileHeight)
	spacing := float64(ts.Spacing)
	sheetW := float64(ts.Image.Width)
	sheetH := float64(ts.Image.Height)
	columns := uint32(ts.EffectiveColumns())

	// No trailing spacing after the last column, hence the subtraction.
	sheetX := float64(index%columns)*(tileW+spacing) - spacing
	sheetY := float64(index/columns)*(tileH+spacing) - spacing

	return ResolvedTile{
		Index: index,
		Sheet: PixelRect{X: sheetX, Y: sheetY, W: tileW, H: tileH},
		UV: UVRect{
			U0: sheetX / sheetW,
			V0: sheetY / sheetH,
			U1: (sheetX + tileW) / sheetW,
			V1: (sheetY + tileH) / sheetH,
		},
		FlipH: gid.FlippedHorizontally(),
		FlipV: gid.FlippedVertically(),
		FlipD: gid.FlippedDiagonally(),
	}, true
}
