package tilemesh

import "testing"

func TestAppendTile(t *testing.T) {
	m := &Mesh{}
	m.appendTile(quad{X0: 0, Y0: -16, X1: 16, Y1: 0}, UVRect{U0: 0, V0: 0, U1: 0.25, V1: 0.25}, false, false, false)

	if got := m.VertexCount(); got != 4 {
		t.Fatalf("VertexCount = %d, want 4", got)
	}
	if got := m.TileCount(); got != 1 {
		t.Fatalf("TileCount = %d, want 1", got)
	}

	wantPos := []float32{
		0, -16, 0,
		0, 0, 0,
		16, 0, 0,
		16, -16, 0,
	}
	for i, want := range wantPos {
		if m.Positions[i] != want {
			t.Errorf("Positions[%d] = %g, want %g", i, m.Positions[i], want)
		}
	}

	wantUV := []float32{
		0, 0.25,
		0, 0,
		0.25, 0,
		0.25, 0.25,
	}
	for i, want := range wantUV {
		if m.UVs[i] != want {
			t.Errorf("UVs[%d] = %g, want %g", i, m.UVs[i], want)
		}
	}

	wantIdx := []uint32{0, 2, 1, 0, 3, 2}
	for i, want := range wantIdx {
		if m.Indices[i] != want {
			t.Errorf("Indices[%d] = %d, want %d", i, m.Indices[i], want)
		}
	}
}

func TestAppendTileIndexBase(t *testing.T) {
	m := &Mesh{}
	uv := UVRect{U1: 1, V1: 1}
	m.appendTile(quad{X0: 0, Y0: -16, X1: 16, Y1: 0}, uv, false, false, false)
	m.appendTile(quad{X0: 16, Y0: -16, X1: 32, Y1: 0}, uv, false, false, false)

	wantIdx := []uint32{4, 6, 5, 4, 7, 6}
	for i, want := range wantIdx {
		if m.Indices[6+i] != want {
			t.Errorf("Indices[%d] = %d, want %d", 6+i, m.Indices[6+i], want)
		}
	}
}

// Every flip combination is a quad symmetry. Diagonal combined with exactly
// one mirror composes to a quarter turn, which only returns to the original
// order after four applications; every other combination is its own inverse.
func TestFlipCornersComposition(t *testing.T) {
	base := uvCorners(UVRect{U0: 0.25, V0: 0.5, U1: 0.5, V1: 0.75})

	for mask := 0; mask < 8; mask++ {
		d, h, v := mask&1 != 0, mask&2 != 0, mask&4 != 0
		quarterTurn := d && (h != v)

		order := 2
		if quarterTurn {
			order = 4
		}
		got := base
		for i := 0; i < order; i++ {
			got = flipCorners(got, d, h, v)
		}
		if got != base {
			t.Errorf("(d=%t h=%t v=%t): %d applications = %v, want %v", d, h, v, order, got, base)
		}

		if quarterTurn {
			twice := flipCorners(flipCorners(base, d, h, v), d, h, v)
			if twice == base {
				t.Errorf("(d=%t h=%t v=%t): composition must rotate, not mirror", d, h, v)
			}
		}
	}
}

// Flips reorder corners, never change them: every combination must be a
// permutation of the unflipped set.
func TestFlipCornersIsPermutation(t *testing.T) {
	base := uvCorners(UVRect{U0: 0, V0: 0, U1: 1, V1: 1})

	for mask := 0; mask < 8; mask++ {
		d, h, v := mask&1 != 0, mask&2 != 0, mask&4 != 0
		got := flipCorners(base, d, h, v)

		seen := make(map[[2]float32]int)
		for _, c := range got {
			seen[c]++
		}
		for _, c := range base {
			if seen[c] != 1 {
				t.Errorf("flips (d=%t h=%t v=%t): corner %v appears %d times", d, h, v, c, seen[c])
			}
		}
	}
}

func TestFlipCornersHorizontal(t *testing.T) {
	base := uvCorners(UVRect{U0: 0, V0: 0, U1: 1, V1: 1})
	got := flipCorners(base, false, true, false)

	// Mirrored across the vertical axis: bottom-left becomes bottom-right.
	want := [4][2]float32{{1, 1}, {1, 0}, {0, 0}, {0, 1}}
	if got != want {
		t.Errorf("horizontal flip = %v, want %v", got, want)
	}
}

func TestFlipCornersVertical(t *testing.T) {
	base := uvCorners(UVRect{U0: 0, V0: 0, U1: 1, V1: 1})
	got := flipCorners(base, false, false, true)

	// Mirrored across the horizontal axis: bottom-left becomes top-left.
	want := [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if got != want {
		t.Errorf("vertical flip = %v, want %v", got, want)
	}
}
