// Package render draws compiled maps with Ebitengine. It is the rendering
// adapter boundary: the compiler hands over plain mesh data and this package
// owns textures, vertex conversion, and draw calls.
package render

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tilemesh"
	"github.com/milk9111/tilemesh/tmx"
)

// Renderer owns the textures and converted vertex buffers for one compiled
// map. Build a new one after every recompile; the old one is dropped whole.
type Renderer struct {
	compiled    *tilemesh.CompiledMap
	textures    map[tmx.GID]*ebiten.Image
	chunks      []chunkDraw
	objectOrder []int

	scratch []ebiten.Vertex
}

type chunkDraw struct {
	ref      tilemesh.MeshRef
	vertices []ebiten.Vertex
	indices  []uint16
	image    *ebiten.Image
}

// New loads the map's tileset textures relative to baseDir and converts all
// chunk meshes into Ebitengine vertex buffers. A resolved tile object whose
// sprite has no loadable texture is an error here, not a silent blank.
func New(c *tilemesh.CompiledMap, baseDir string) (*Renderer, error) {
	r := &Renderer{
		compiled: c,
		textures: make(map[tmx.GID]*ebiten.Image),
	}

	for i := range c.Doc.Tilesets {
		ts := &c.Doc.Tilesets[i]
		img, err := loadImage(filepath.Join(baseDir, filepath.FromSlash(ts.Image.Source)))
		if err != nil {
			return nil, fmt.Errorf("render: tileset %q: %w", ts.Name, err)
		}
		r.textures[ts.FirstGID] = img
	}

	for _, obj := range c.Objects {
		if err := r.checkObjectTexture(&obj); err != nil {
			return nil, err
		}
	}

	for _, ref := range c.Meshes {
		cd, err := r.convertMesh(ref)
		if err != nil {
			return nil, err
		}
		r.chunks = append(r.chunks, cd)
	}

	r.objectOrder = make([]int, len(c.Objects))
	for i := range r.objectOrder {
		r.objectOrder[i] = i
	}
	sort.SliceStable(r.objectOrder, func(a, b int) bool {
		return c.Objects[r.objectOrder[a]].Z < c.Objects[r.objectOrder[b]].Z
	})

	return r, nil
}

func (r *Renderer) checkObjectTexture(obj *tilemesh.Object) error {
	if obj.SpriteIndex != nil {
		if _, ok := r.textures[*obj.TilesetFirstGID]; !ok {
			return fmt.Errorf("render: object %d: no texture for tileset gid %d", obj.ID, *obj.TilesetFirstGID)
		}
	}
	for i := range obj.Children {
		if err := r.checkObjectTexture(&obj.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) convertMesh(ref tilemesh.MeshRef) (chunkDraw, error) {
	img, ok := r.textures[ref.TilesetFirstGID]
	if !ok {
		return chunkDraw{}, fmt.Errorf("render: no texture for tileset gid %d", ref.TilesetFirstGID)
	}

	mesh := ref.Mesh
	n := mesh.VertexCount()
	if n > 1<<16 {
		return chunkDraw{}, fmt.Errorf("render: chunk (%d,%d) exceeds 16-bit index range with %d vertices", ref.ChunkX, ref.ChunkY, n)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	origin := r.compiled.Origin
	vertices := make([]ebiten.Vertex, n)
	for i := 0; i < n; i++ {
		// World space is y-up; the screen counts y down.
		vertices[i] = ebiten.Vertex{
			DstX:   float32(origin.X) + mesh.Positions[i*3],
			DstY:   float32(-origin.Y) - mesh.Positions[i*3+1],
			SrcX:   mesh.UVs[i*2] * float32(w),
			SrcY:   mesh.UVs[i*2+1] * float32(h),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}

	indices := make([]uint16, len(mesh.Indices))
	for i, idx := range mesh.Indices {
		indices[i] = uint16(idx)
	}

	return chunkDraw{ref: ref, vertices: vertices, indices: indices, image: img}, nil
}

// Draw renders all chunk meshes in layer order with the camera offset and
// zoom applied.
func (r *Renderer) Draw(dst *ebiten.Image, camX, camY, zoom float64) {
	if zoom == 0 {
		zoom = 1
	}
	op := &ebiten.DrawTrianglesOptions{}
	for _, cd := range r.chunks {
		if cap(r.scratch) < len(cd.vertices) {
			r.scratch = make([]ebiten.Vertex, len(cd.vertices))
		}
		verts := r.scratch[:len(cd.vertices)]
		for i, v := range cd.vertices {
			v.DstX = float32((float64(v.DstX) - camX) * zoom)
			v.DstY = float32((float64(v.DstY) - camY) * zoom)
			verts[i] = v
		}
		dst.DrawTriangles(verts, cd.indices, cd.image, op)
	}
}

// DrawObjects renders tile objects as sprites, back to front by depth bias.
func (r *Renderer) DrawObjects(dst *ebiten.Image, camX, camY, zoom float64) error {
	if zoom == 0 {
		zoom = 1
	}
	for _, i := range r.objectOrder {
		if err := r.drawObject(dst, &r.compiled.Objects[i], camX, camY, zoom); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawObject(dst *ebiten.Image, obj *tilemesh.Object, camX, camY, zoom float64) error {
	for i := range obj.Children {
		if err := r.drawObject(dst, &obj.Children[i], camX, camY, zoom); err != nil {
			return err
		}
	}
	if obj.SpriteIndex == nil || !obj.Visible {
		return nil
	}

	ts, ok := r.compiled.TilesetFor(obj.GID)
	if !ok {
		// The compiler set a sprite index it can no longer resolve;
		// that is a data/logic inconsistency, not a skippable miss.
		return fmt.Errorf("render: object %d: gid %d resolves to no tileset", obj.ID, obj.GID)
	}
	resolved, ok := tilemesh.ResolveTile(obj.GID, ts)
	if !ok {
		return fmt.Errorf("render: object %d: gid %d outside tileset range", obj.ID, obj.GID)
	}

	img := r.textures[ts.FirstGID]
	sheet := resolved.Sheet
	sub := img.SubImage(image.Rect(int(sheet.X), int(sheet.Y), int(sheet.X+sheet.W), int(sheet.Y+sheet.H))).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-sheet.W/2, -sheet.H/2)
	if obj.TileScale != nil {
		op.GeoM.Scale(obj.TileScale.X, obj.TileScale.Y)
	}
	origin := r.compiled.Origin
	screenX := origin.X + obj.Position.X
	screenY := -origin.Y - obj.Position.Y
	op.GeoM.Translate(screenX, screenY)
	op.GeoM.Translate(-camX, -camY)
	op.GeoM.Scale(zoom, zoom)
	dst.DrawImage(sub, op)
	return nil
}

func loadImage(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}
