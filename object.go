package tilemesh

import (
	"fmt"

	"github.com/milk9111/tilemesh/tmx"
)

// Shape classifies a resolved object.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeEllipse
	ShapePoint
	ShapePolygon
	ShapePolyline
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeEllipse:
		return "ellipse"
	case ShapePoint:
		return "point"
	case ShapePolygon:
		return "polygon"
	case ShapePolyline:
		return "polyline"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Object is a resolved placement: a Tiled object mapped into world space.
// Derived once per raw object at compile time and immutable afterward; a
// reload re-derives the whole set.
type Object struct {
	// ID is the Tiled object id, stable across reloads of the same map.
	ID    int
	Name  string
	Type  string
	Shape Shape

	// Position is the world-space center of the object's quad.
	Position Vec2
	// Z is the depth bias: lower-on-screen objects receive larger values
	// so they draw in front.
	Z float64
	// Size is the declared size in pixels; zero for point/poly shapes.
	Size Vec2

	// GID is the clean tile gid, zero for non-tile shape objects.
	GID tmx.GID
	// TilesetFirstGID and SpriteIndex are set only when GID maps into a
	// known tileset range.
	TilesetFirstGID *tmx.GID
	SpriteIndex     *uint32
	// TileScale is declared size over source tile size, set only for tile
	// objects so resized ones render without texture distortion.
	TileScale *Vec2

	Visible bool
	// Points is the decoded outline for polygon/polyline shapes, relative
	// to Position, y-up.
	Points []Vec2
	// Properties passes the raw Tiled property bag through untouched.
	Properties map[string]string

	// Children are sub-objects embedded in the source tile's definition
	// (hitboxes, anchors), placed relative to this object.
	Children []Object
}

// IsShape reports whether the object is a plain shape rather than a tile
// object.
func (o *Object) IsShape() bool { return o.TilesetFirstGID == nil }

// Dimensions returns the renderable quad size. Poly and point shapes have no
// quad; they report a 1x1 placeholder.
func (o *Object) Dimensions() Vec2 {
	switch o.Shape {
	case ShapeRect, ShapeEllipse:
		return o.Size
	}
	return Vec2{X: 1, Y: 1}
}

func shapeOf(obj *tmx.Object) Shape {
	switch {
	case obj.Ellipse != nil:
		return ShapeEllipse
	case obj.Point != nil:
		return ShapePoint
	case obj.Polygon != nil:
		return ShapePolygon
	case obj.Polyline != nil:
		return ShapePolyline
	}
	return ShapeRect
}

func (c *CompiledMap) resolveObjectGroups(doc *tmx.Map, opts Options) ([]Object, error) {
	var out []Object
	for gi := range doc.ObjectGroups {
		group := &doc.ObjectGroups[gi]
		for oi := range group.Objects {
			obj, err := c.resolveObject(&group.Objects[oi], group.IsVisible(), opts)
			if err != nil {
				return nil, fmt.Errorf("tilemesh: object group %q: %w", group.Name, err)
			}
			out = append(out, obj)
		}
	}
	return out, nil
}

func (c *CompiledMap) resolveObject(raw *tmx.Object, groupVisible bool, opts Options) (Object, error) {
	obj := Object{
		ID:         raw.ID,
		Name:       raw.Name,
		Type:       raw.Type,
		Shape:      shapeOf(raw),
		Size:       Vec2{X: raw.Width, Y: raw.Height},
		GID:        raw.GID.Clean(),
		Visible:    groupVisible && raw.IsVisible(),
		Properties: raw.Properties.Map(),
	}

	var ts *tmx.Tileset
	if obj.GID != 0 {
		if found, ok := c.TilesetFor(obj.GID); ok {
			ts = found
			first := ts.FirstGID
			index := uint32(obj.GID - first)
			obj.TilesetFirstGID = &first
			obj.SpriteIndex = &index
		}
	}

	switch {
	case ts != nil:
		// Tile objects anchor at their bottom-left corner.
		if c.Orientation != Orthogonal {
			return Object{}, fmt.Errorf("%w: tile objects on %s maps", ErrUnsupportedOrientation, c.Orientation)
		}
		obj.Position = Vec2{X: raw.X + raw.Width/2, Y: -raw.Y + raw.Height/2}
		if ts.TileWidth > 0 && ts.TileHeight > 0 {
			scale := Vec2{
				X: raw.Width / float64(ts.TileWidth),
				Y: raw.Height / float64(ts.TileHeight),
			}
			obj.TileScale = &scale
		}
	case obj.Shape == ShapeRect || obj.Shape == ShapeEllipse:
		// Shape objects anchor at their top-left corner.
		if c.Orientation != Orthogonal {
			return Object{}, fmt.Errorf("%w: shape objects on %s maps", ErrUnsupportedOrientation, c.Orientation)
		}
		obj.Position = Vec2{X: raw.X + raw.Width/2, Y: -raw.Y - raw.Height/2}
	default:
		// Point and poly shapes place at the declared position; there is
		// no quad to center.
		obj.Position = Vec2{X: raw.X, Y: -raw.Y}
		obj.Size = Vec2{}
	}

	obj.Z = opts.ZBase - obj.Position.Y/(opts.MaxPixelHeight/10)

	if err := obj.decodePoints(raw); err != nil {
		return Object{}, err
	}

	if ts != nil && obj.SpriteIndex != nil {
		if def := ts.Tile(*obj.SpriteIndex); def != nil && def.ObjectGroup != nil {
			children, err := c.resolveChildren(&obj, def.ObjectGroup, opts)
			if err != nil {
				return Object{}, err
			}
			obj.Children = children
		}
	}

	return obj, nil
}

// resolveChildren places a tile definition's embedded objects relative to the
// parent tile object, scaled by the parent's size/tile-size ratio. Child
// coordinates are tile-local with a top-left origin.
func (c *CompiledMap) resolveChildren(parent *Object, group *tmx.ObjectGroup, opts Options) ([]Object, error) {
	scale := Vec2{X: 1, Y: 1}
	if parent.TileScale != nil {
		scale = *parent.TileScale
	}
	topLeft := Vec2{
		X: parent.Position.X - parent.Size.X/2,
		Y: parent.Position.Y + parent.Size.Y/2,
	}

	children := make([]Object, 0, len(group.Objects))
	for oi := range group.Objects {
		raw := &group.Objects[oi]
		child := Object{
			ID:         raw.ID,
			Name:       raw.Name,
			Type:       raw.Type,
			Shape:      shapeOf(raw),
			Size:       Vec2{X: raw.Width * scale.X, Y: raw.Height * scale.Y},
			GID:        raw.GID.Clean(),
			Visible:    parent.Visible && group.IsVisible() && raw.IsVisible(),
			Z:          parent.Z,
			Properties: raw.Properties.Map(),
		}
		child.Position = Vec2{
			X: topLeft.X + scale.X*(raw.X+raw.Width/2),
			Y: topLeft.Y - scale.Y*(raw.Y+raw.Height/2),
		}
		if child.GID != 0 {
			if ts, ok := c.TilesetFor(child.GID); ok {
				first := ts.FirstGID
				index := uint32(child.GID - first)
				child.TilesetFirstGID = &first
				child.SpriteIndex = &index
			}
		}
		if err := child.decodePoints(raw); err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (o *Object) decodePoints(raw *tmx.Object) error {
	var list *tmx.PointList
	switch o.Shape {
	case ShapePolygon:
		list = raw.Polygon
	case ShapePolyline:
		list = raw.Polyline
	default:
		return nil
	}
	points, err := list.Decode()
	if err != nil {
		return fmt.Errorf("tilemesh: object %d: %w", o.ID, err)
	}
	o.Points = make([]Vec2, len(points))
	for i, p := range points {
		o.Points[i] = Vec2{X: p.X, Y: -p.Y}
	}
	return nil
}
