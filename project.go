package tilemesh

import (
	"fmt"
	"math"

	"github.com/milk9111/tilemesh/tmx"
)

// Vec2 is a 2D vector in world pixels (x right, y up) or tile coordinates,
// depending on context.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Orientation is the subset of Tiled map orientations the compiler handles.
type Orientation int

const (
	Orthogonal Orientation = iota
	Isometric
)

func (o Orientation) String() string {
	switch o {
	case Orthogonal:
		return "orthogonal"
	case Isometric:
		return "isometric"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ErrUnsupportedOrientation is wrapped into compile errors for hexagonal and
// staggered maps.
var ErrUnsupportedOrientation = fmt.Errorf("tilemesh: unsupported orientation")

// ParseOrientation maps a TMX orientation attribute onto the supported set.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "orthogonal":
		return Orthogonal, nil
	case "isometric":
		return Isometric, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedOrientation, s)
}

// ProjectOrtho maps tile-grid coordinates to world pixels. The grid counts
// y downward; world space counts y upward.
func ProjectOrtho(pos Vec2, tileW, tileH float64) Vec2 {
	return Vec2{X: tileW * pos.X, Y: -tileH * pos.Y}
}

// UnprojectOrtho inverts ProjectOrtho, rounding to the nearest grid cell.
func UnprojectOrtho(pos Vec2, tileW, tileH float64) Vec2 {
	return Vec2{X: math.Round(pos.X / tileW), Y: math.Round(-pos.Y / tileH)}
}

// ProjectIso maps tile-grid coordinates to world pixels for isometric maps.
func ProjectIso(pos Vec2, tileW, tileH float64) Vec2 {
	return Vec2{
		X: (pos.X - pos.Y) * tileW / 2,
		Y: -(pos.X + pos.Y) * tileH / 2,
	}
}

// UnprojectIso inverts ProjectIso, rounding to the nearest grid cell.
func UnprojectIso(pos Vec2, tileW, tileH float64) Vec2 {
	halfW := tileW / 2
	halfH := tileH / 2
	x := (pos.X/halfW + -pos.Y/halfH) / 2
	y := (-pos.Y/halfH - pos.X/halfW) / 2
	return Vec2{X: math.Round(x), Y: math.Round(y)}
}

// Project dispatches on orientation.
func Project(o Orientation, pos Vec2, tileW, tileH float64) Vec2 {
	switch o {
	case Isometric:
		return ProjectIso(pos, tileW, tileH)
	default:
		return ProjectOrtho(pos, tileW, tileH)
	}
}

// Unproject dispatches on orientation.
func Unproject(o Orientation, pos Vec2, tileW, tileH float64) Vec2 {
	switch o {
	case Isometric:
		return UnprojectIso(pos, tileW, tileH)
	default:
		return UnprojectOrtho(pos, tileW, tileH)
	}
}

// Center returns the translation that moves the map's visual center to the
// origin, for hosts that want centered maps.
func Center(o Orientation, doc *tmx.Map) Vec2 {
	mid := Vec2{X: float64(doc.Width) / 2, Y: float64(doc.Height) / 2}
	c := Project(o, mid, float64(doc.TileWidth), float64(doc.TileHeight))
	return Vec2{X: -c.X, Y: -c.Y}
}
