// Package physics synthesizes a Chipmunk space from a compiled map: merged
// static boxes for tile layers marked solid, plus static shapes for the
// map's objects. Coordinates are screen-space (y down), matching how the
// shapes are usually consumed next to the renderer.
package physics

import (
	"strconv"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilemesh"
)

const (
	CollisionTypeSolid cp.CollisionType = iota + 1
	CollisionTypeSensor
)

const defaultFriction = 0.8

// NewSpace builds a static collision space for the compiled map. Layers opt
// in with a truthy "solid" property; every object group contributes shapes.
func NewSpace(c *tilemesh.CompiledMap) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20

	addSolidLayers(space, c)
	for i := range c.Objects {
		addObject(space, &c.Objects[i])
	}
	return space
}

func addSolidLayers(space *cp.Space, c *tilemesh.CompiledMap) {
	doc := c.Doc
	tileW := float64(doc.TileWidth)
	tileH := float64(doc.TileHeight)

	for li := range doc.Layers {
		layer := &doc.Layers[li]
		if !truthy(layer.Properties.Map()["solid"]) {
			continue
		}

		// Greedily merge contiguous occupied tiles into larger boxes so
		// the space holds fewer static shapes (width first, then height).
		processed := make([]bool, doc.Width*doc.Height)
		occupied := func(x, y int) bool {
			return !processed[y*doc.Width+x] && layer.At(x, y) != 0
		}
		for y := 0; y < doc.Height; y++ {
			for x := 0; x < doc.Width; x++ {
				if !occupied(x, y) {
					processed[y*doc.Width+x] = true
					continue
				}

				w := 1
				for x+w < doc.Width && occupied(x+w, y) {
					w++
				}

				h := 1
			heightLoop:
				for y+h < doc.Height {
					for xi := x; xi < x+w; xi++ {
						if !occupied(xi, y+h) {
							break heightLoop
						}
					}
					h++
				}

				x0 := float64(x) * tileW
				y0 := float64(y) * tileH
				bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*tileW, T: y0 + float64(h)*tileH}
				shape := cp.NewBox2(space.StaticBody, bb, 0)
				shape.SetFriction(defaultFriction)
				shape.SetCollisionType(CollisionTypeSolid)
				space.AddShape(shape)

				for yy := y; yy < y+h; yy++ {
					for xx := x; xx < x+w; xx++ {
						processed[yy*doc.Width+xx] = true
					}
				}
			}
		}
	}
}

func addObject(space *cp.Space, obj *tilemesh.Object) {
	for i := range obj.Children {
		addObject(space, &obj.Children[i])
	}

	// Screen space: y down.
	cx := obj.Position.X
	cy := -obj.Position.Y
	sensor := truthy(obj.Properties["sensor"])

	var shape *cp.Shape
	switch obj.Shape {
	case tilemesh.ShapeRect:
		bb := cp.BB{
			L: cx - obj.Size.X/2,
			B: cy - obj.Size.Y/2,
			R: cx + obj.Size.X/2,
			T: cy + obj.Size.Y/2,
		}
		shape = cp.NewBox2(space.StaticBody, bb, 0)
	case tilemesh.ShapeEllipse:
		r := (obj.Size.X + obj.Size.Y) / 4
		shape = cp.NewCircle(space.StaticBody, r, cp.Vector{X: cx, Y: cy})
	case tilemesh.ShapePolygon, tilemesh.ShapePolyline:
		addSegments(space, obj, cx, cy, sensor)
		return
	default:
		return
	}

	shape.SetFriction(defaultFriction)
	if sensor {
		shape.SetSensor(true)
		shape.SetCollisionType(CollisionTypeSensor)
	} else {
		shape.SetCollisionType(CollisionTypeSolid)
	}
	space.AddShape(shape)
}

func addSegments(space *cp.Space, obj *tilemesh.Object, cx, cy float64, sensor bool) {
	pts := obj.Points
	if len(pts) < 2 {
		return
	}
	add := func(a, b tilemesh.Vec2) {
		shape := cp.NewSegment(space.StaticBody,
			cp.Vector{X: cx + a.X, Y: cy - a.Y},
			cp.Vector{X: cx + b.X, Y: cy - b.Y},
			1)
		shape.SetFriction(defaultFriction)
		if sensor {
			shape.SetSensor(true)
			shape.SetCollisionType(CollisionTypeSensor)
		} else {
			shape.SetCollisionType(CollisionTypeSolid)
		}
		space.AddShape(shape)
	}
	for i := 1; i < len(pts); i++ {
		add(pts[i-1], pts[i])
	}
	if obj.Shape == tilemesh.ShapePolygon && len(pts) > 2 {
		add(pts[len(pts)-1], pts[0])
	}
}

func truthy(s string) bool {
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
