package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tilemesh"
)

// DrawDebug strokes the placements of non-tile shape objects: rectangles and
// ellipses as boxes, poly shapes as line chains, points as small crosses.
func (r *Renderer) DrawDebug(dst *ebiten.Image, camX, camY, zoom float64) {
	if zoom == 0 {
		zoom = 1
	}
	for _, i := range r.objectOrder {
		r.debugObject(dst, &r.compiled.Objects[i], camX, camY, zoom)
	}
}

func (r *Renderer) debugObject(dst *ebiten.Image, obj *tilemesh.Object, camX, camY, zoom float64) {
	for i := range obj.Children {
		r.debugObject(dst, &obj.Children[i], camX, camY, zoom)
	}
	if !obj.IsShape() {
		return
	}

	origin := r.compiled.Origin
	sx := float32((origin.X + obj.Position.X - camX) * zoom)
	sy := float32((-origin.Y - obj.Position.Y - camY) * zoom)

	switch obj.Shape {
	case tilemesh.ShapeRect, tilemesh.ShapeEllipse:
		w := float32(obj.Size.X * zoom)
		h := float32(obj.Size.Y * zoom)
		vector.StrokeRect(dst, sx-w/2, sy-h/2, w, h, 1, colornames.Lightgreen, false)
	case tilemesh.ShapePolygon, tilemesh.ShapePolyline:
		for i := 1; i < len(obj.Points); i++ {
			a := obj.Points[i-1]
			b := obj.Points[i]
			vector.StrokeLine(dst,
				sx+float32(a.X*zoom), sy-float32(a.Y*zoom),
				sx+float32(b.X*zoom), sy-float32(b.Y*zoom),
				1, colornames.Orange, false)
		}
		if obj.Shape == tilemesh.ShapePolygon && len(obj.Points) > 2 {
			a := obj.Points[len(obj.Points)-1]
			b := obj.Points[0]
			vector.StrokeLine(dst,
				sx+float32(a.X*zoom), sy-float32(a.Y*zoom),
				sx+float32(b.X*zoom), sy-float32(b.Y*zoom),
				1, colornames.Orange, false)
		}
	case tilemesh.ShapePoint:
		vector.StrokeLine(dst, sx-3, sy, sx+3, sy, 1, colornames.Lightgrey, false)
		vector.StrokeLine(dst, sx, sy-3, sx, sy+3, 1, colornames.Lightgrey, false)
	}
}
