package tilemesh

import (
	"errors"
	"testing"

	"github.com/milk9111/tilemesh/tmx"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		want    Orientation
		wantErr bool
	}{
		{name: "orthogonal", attr: "orthogonal", want: Orthogonal},
		{name: "isometric", attr: "isometric", want: Isometric},
		{name: "hexagonal", attr: "hexagonal", wantErr: true},
		{name: "staggered", attr: "staggered", wantErr: true},
		{name: "empty", attr: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrientation(tt.attr)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedOrientation) {
					t.Fatalf("ParseOrientation(%q) error = %v, want ErrUnsupportedOrientation", tt.attr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOrientation(%q) error = %v", tt.attr, err)
			}
			if got != tt.want {
				t.Errorf("ParseOrientation(%q) = %v, want %v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestProjectOrtho(t *testing.T) {
	tests := []struct {
		name         string
		pos          Vec2
		tileW, tileH float64
		want         Vec2
	}{
		{name: "origin", pos: Vec2{0, 0}, tileW: 16, tileH: 16, want: Vec2{0, 0}},
		{name: "right and down", pos: Vec2{3, 2}, tileW: 16, tileH: 16, want: Vec2{48, -32}},
		{name: "non-square tiles", pos: Vec2{1, 1}, tileW: 32, tileH: 16, want: Vec2{32, -16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectOrtho(tt.pos, tt.tileW, tt.tileH)
			if got != tt.want {
				t.Errorf("ProjectOrtho(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestProjectIso(t *testing.T) {
	tests := []struct {
		name         string
		pos          Vec2
		tileW, tileH float64
		want         Vec2
	}{
		{name: "origin", pos: Vec2{0, 0}, tileW: 64, tileH: 32, want: Vec2{0, 0}},
		{name: "east", pos: Vec2{1, 0}, tileW: 64, tileH: 32, want: Vec2{32, -16}},
		{name: "south", pos: Vec2{0, 1}, tileW: 64, tileH: 32, want: Vec2{-32, -16}},
		{name: "diagonal cancels x", pos: Vec2{2, 2}, tileW: 64, tileH: 32, want: Vec2{0, -64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectIso(tt.pos, tt.tileW, tt.tileH)
			if got != tt.want {
				t.Errorf("ProjectIso(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	cells := []Vec2{
		{0, 0}, {1, 0}, {0, 1}, {5, 3}, {31, 31}, {63, 0}, {0, 63}, {63, 63},
	}
	sizes := []struct{ w, h float64 }{
		{16, 16},
		{32, 16},
		{64, 32},
	}

	for _, orient := range []Orientation{Orthogonal, Isometric} {
		t.Run(orient.String(), func(t *testing.T) {
			for _, size := range sizes {
				for _, cell := range cells {
					world := Project(orient, cell, size.w, size.h)
					back := Unproject(orient, world, size.w, size.h)
					if back != cell {
						t.Errorf("Unproject(Project(%v), %gx%g) = %v", cell, size.w, size.h, back)
					}
				}
			}
		})
	}
}

func TestCenter(t *testing.T) {
	doc := &tmx.Map{Width: 64, Height: 64, TileWidth: 16, TileHeight: 16}

	got := Center(Orthogonal, doc)
	want := Vec2{X: -512, Y: 512}
	if got != want {
		t.Errorf("Center(Orthogonal) = %v, want %v", got, want)
	}

	got = Center(Isometric, doc)
	want = Vec2{X: 0, Y: 512}
	if got != want {
		t.Errorf("Center(Isometric) = %v, want %v", got, want)
	}
}
