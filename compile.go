package tilemesh

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/tilemesh/tmx"
)

var (
	// ErrGIDOverlap reports two tilesets with overlapping gid ranges. The
	// resolver would be ambiguous, so this fails the load instead of
	// silently picking a winner.
	ErrGIDOverlap = errors.New("tilemesh: tileset gid ranges overlap")
	// ErrMissingImage reports a tileset with no image declared.
	ErrMissingImage = errors.New("tilemesh: tileset has no image")
	// ErrBadTilesetImage reports a tileset whose image has no usable
	// dimensions, leaving the sheet layout underivable.
	ErrBadTilesetImage = errors.New("tilemesh: tileset image has no usable dimensions")
)

// MeshRef tags a chunk mesh with the keys a host needs to bind materials and
// to retire stale geometry on reload.
type MeshRef struct {
	Layer           int
	TilesetFirstGID tmx.GID
	ChunkX          int
	ChunkY          int
	Mesh            *Mesh
}

// CompiledMap is the output of one compile pass: chunk meshes, resolved
// object placements, animation definitions, and the texture dependencies the
// host must load before the map is ready. Compiling the same bytes twice
// produces identical output.
type CompiledMap struct {
	Doc         *tmx.Map
	Source      string
	Orientation Orientation
	// TileSize is the map's grid cell size in pixels.
	TileSize Vec2
	// Origin is the translation to apply to everything spawned from this
	// map; non-zero only when Options.Centered is set.
	Origin Vec2

	Meshes     []MeshRef
	Objects    []Object
	Animations []AnimationDef
	// Assets lists tileset image paths relative to the map file, in
	// tileset order, deduplicated.
	Assets []string

	gidTable map[tmx.GID]*tmx.Tileset
}

// Compile turns a parsed map document into meshes and placements. All errors
// are load failures; no partial map is returned.
func Compile(doc *tmx.Map, opts Options) (*CompiledMap, error) {
	opts = opts.withDefaults()

	orient, err := ParseOrientation(doc.Orientation)
	if err != nil {
		return nil, err
	}
	if doc.Infinite != 0 {
		return nil, tmx.ErrInfiniteMap
	}

	c := &CompiledMap{
		Doc:         doc,
		Orientation: orient,
		TileSize:    Vec2{X: float64(doc.TileWidth), Y: float64(doc.TileHeight)},
	}
	if opts.Centered {
		c.Origin = Center(orient, doc)
	}

	if err := c.buildGIDTable(doc); err != nil {
		return nil, err
	}
	c.collectAssets(doc)
	c.collectAnimations(doc)
	c.buildMeshes(doc, orient, opts.ChunkSize)

	objects, err := c.resolveObjectGroups(doc, opts)
	if err != nil {
		return nil, err
	}
	c.Objects = objects

	return c, nil
}

// CompileBytes parses TMX bytes and compiles them. sourcePath names the
// originating file and anchors relative tileset paths; it also keys the
// events fired through opts.Hooks on success.
func CompileBytes(b []byte, sourcePath string, opts Options) (*CompiledMap, error) {
	doc, err := tmx.Read(bytes.NewReader(b), filepath.Dir(sourcePath))
	if err != nil {
		return nil, err
	}

	c, err := Compile(doc, opts)
	if err != nil {
		return nil, err
	}
	c.Source = sourcePath
	c.fireHooks(opts)
	return c, nil
}

// CompileFile loads and compiles the map at path.
func CompileFile(path string, opts Options) (*CompiledMap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tilemesh: read %s: %w", path, err)
	}
	return CompileBytes(b, path, opts)
}

// TilesetFor returns the tileset owning a gid in O(1).
func (c *CompiledMap) TilesetFor(gid tmx.GID) (*tmx.Tileset, bool) {
	ts, ok := c.gidTable[gid.Clean()]
	return ts, ok
}

// AnimationFor returns the animation attached to a source tile, if any.
func (c *CompiledMap) AnimationFor(gid tmx.GID) (*AnimationDef, bool) {
	clean := gid.Clean()
	for i := range c.Animations {
		if c.Animations[i].GID == clean {
			return &c.Animations[i], true
		}
	}
	return nil, false
}

func (c *CompiledMap) buildGIDTable(doc *tmx.Map) error {
	c.gidTable = make(map[tmx.GID]*tmx.Tileset)
	for i := range doc.Tilesets {
		ts := &doc.Tilesets[i]
		if ts.Image.Source == "" {
			return fmt.Errorf("%w: %q", ErrMissingImage, ts.Name)
		}
		// The resolver divides by the column count and the image size;
		// a declared tilecount is not enough to lay out the sheet.
		if ts.Image.Width <= 0 || ts.Image.Height <= 0 || ts.EffectiveColumns() <= 0 {
			return fmt.Errorf("%w: %q", ErrBadTilesetImage, ts.Name)
		}
		count := ts.EffectiveTileCount()
		for gid := ts.FirstGID; gid < ts.FirstGID+tmx.GID(count); gid++ {
			if other, ok := c.gidTable[gid]; ok {
				return fmt.Errorf("%w: %q and %q both claim gid %d", ErrGIDOverlap, other.Name, ts.Name, gid)
			}
			c.gidTable[gid] = ts
		}
	}
	return nil
}

func (c *CompiledMap) collectAssets(doc *tmx.Map) {
	seen := make(map[string]bool, len(doc.Tilesets))
	for i := range doc.Tilesets {
		src := doc.Tilesets[i].Image.Source
		if seen[src] {
			continue
		}
		seen[src] = true
		c.Assets = append(c.Assets, src)
	}
}

func (c *CompiledMap) collectAnimations(doc *tmx.Map) {
	for i := range doc.Tilesets {
		ts := &doc.Tilesets[i]
		for j := range ts.Tiles {
			def := &ts.Tiles[j]
			if len(def.Animation) == 0 {
				continue
			}
			frames := make([]Frame, len(def.Animation))
			for k, f := range def.Animation {
				frames[k] = Frame{
					TileID:   f.TileID,
					Duration: float64(f.DurationMS) / 1000,
				}
			}
			c.Animations = append(c.Animations, AnimationDef{
				GID:             ts.FirstGID + tmx.GID(def.ID),
				TilesetFirstGID: ts.FirstGID,
				Frames:          frames,
			})
		}
	}
}

func (c *CompiledMap) buildMeshes(doc *tmx.Map, orient Orientation, chunkSize int) {
	chunksX := chunkGridSize(doc.Width, chunkSize)
	chunksY := chunkGridSize(doc.Height, chunkSize)

	for layerIdx := range doc.Layers {
		layer := &doc.Layers[layerIdx]
		if !layer.IsVisible() {
			continue
		}
		for tsIdx := range doc.Tilesets {
			ts := &doc.Tilesets[tsIdx]
			for chunkX := 0; chunkX < chunksX; chunkX++ {
				for chunkY := 0; chunkY < chunksY; chunkY++ {
					mesh := buildChunkMesh(doc, orient, layer, ts, chunkX, chunkY, chunkSize)
					if mesh == nil {
						continue
					}
					c.Meshes = append(c.Meshes, MeshRef{
						Layer:           layerIdx,
						TilesetFirstGID: ts.FirstGID,
						ChunkX:          chunkX,
						ChunkY:          chunkY,
						Mesh:            mesh,
					})
				}
			}
		}
	}
}

func (c *CompiledMap) fireHooks(opts Options) {
	if opts.Hooks.MapReady != nil {
		opts.Hooks.MapReady(MapReady{Source: c.Source, Parent: opts.Parent})
	}
	if opts.Hooks.ObjectReady != nil {
		for i := range c.Objects {
			opts.Hooks.ObjectReady(ObjectReady{Source: c.Source, Object: &c.Objects[i]})
		}
	}
}
