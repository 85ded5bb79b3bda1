// Package tmx reads Tiled's TMX map files into a plain document model.
// GIDs are kept raw, flip bits included, so callers that need Tiled's
// flip semantics can apply them themselves.
package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// The top three bits of a GID encode tile mirroring.
const (
	FlipHorizontal GID = 0x80000000
	FlipVertical   GID = 0x40000000
	FlipDiagonal   GID = 0x20000000
	FlipMask       GID = FlipHorizontal | FlipVertical | FlipDiagonal
)

var (
	ErrUnknownEncoding    = errors.New("tmx: unknown layer encoding")
	ErrUnknownCompression = errors.New("tmx: unknown layer compression")
	ErrBadDataLength      = errors.New("tmx: decoded layer data has wrong length")
	ErrInfiniteMap        = errors.New("tmx: infinite maps are not supported")
	ErrBadPoints          = errors.New("tmx: malformed points attribute")
)

// GID is a raw global tile id as stored in layer data: a 1-based index into
// the combined tileset id space with flip flags in the top three bits.
// Zero means an empty cell.
type GID uint32

// Clean returns the gid with all flip bits stripped.
func (g GID) Clean() GID { return g &^ FlipMask }

func (g GID) FlippedHorizontally() bool { return g&FlipHorizontal != 0 }
func (g GID) FlippedVertically() bool   { return g&FlipVertical != 0 }
func (g GID) FlippedDiagonally() bool   { return g&FlipDiagonal != 0 }

type Map struct {
	Version      string        `xml:"version,attr"`
	Orientation  string        `xml:"orientation,attr"`
	Width        int           `xml:"width,attr"`
	Height       int           `xml:"height,attr"`
	TileWidth    int           `xml:"tilewidth,attr"`
	TileHeight   int           `xml:"tileheight,attr"`
	Infinite     int           `xml:"infinite,attr"`
	Tilesets     []Tileset     `xml:"tileset"`
	Layers       []Layer       `xml:"layer"`
	ObjectGroups []ObjectGroup `xml:"objectgroup"`
	Properties   Properties    `xml:"properties"`

	baseDir string
}

type Tileset struct {
	FirstGID   GID        `xml:"firstgid,attr"`
	Source     string     `xml:"source,attr"`
	Name       string     `xml:"name,attr"`
	TileWidth  int        `xml:"tilewidth,attr"`
	TileHeight int        `xml:"tileheight,attr"`
	Spacing    int        `xml:"spacing,attr"`
	Margin     int        `xml:"margin,attr"`
	TileCount  int        `xml:"tilecount,attr"`
	Columns    int        `xml:"columns,attr"`
	Image      Image      `xml:"image"`
	Tiles      []TileDef  `xml:"tile"`
	Properties Properties `xml:"properties"`
}

type Image struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

// TileDef carries the optional per-tile metadata a tileset may declare:
// an animation and/or an embedded object group (collision boxes, anchors).
type TileDef struct {
	ID          uint32       `xml:"id,attr"`
	Animation   []Frame      `xml:"animation>frame"`
	ObjectGroup *ObjectGroup `xml:"objectgroup"`
	Properties  Properties   `xml:"properties"`
}

type Frame struct {
	TileID     uint32 `xml:"tileid,attr"`
	DurationMS int    `xml:"duration,attr"`
}

type Layer struct {
	Name       string     `xml:"name,attr"`
	Visible    *bool      `xml:"visible,attr"`
	Opacity    *float64   `xml:"opacity,attr"`
	OffsetX    float64    `xml:"offsetx,attr"`
	OffsetY    float64    `xml:"offsety,attr"`
	Data       Data       `xml:"data"`
	Properties Properties `xml:"properties"`

	// GIDs holds the decoded row-major tile grid, length Width*Height.
	GIDs []GID

	width int
}

// IsVisible reports layer visibility; Tiled omits the attribute when visible.
func (l *Layer) IsVisible() bool { return l.Visible == nil || *l.Visible }

// At returns the raw gid at tile coordinates (x, y).
func (l *Layer) At(x, y int) GID { return l.GIDs[y*l.width+x] }

type Data struct {
	Encoding    string     `xml:"encoding,attr"`
	Compression string     `xml:"compression,attr"`
	Raw         []byte     `xml:",innerxml"`
	Tiles       []DataTile `xml:"tile"`
	Chunks      []struct{} `xml:"chunk"`
}

type DataTile struct {
	GID GID `xml:"gid,attr"`
}

type ObjectGroup struct {
	Name       string     `xml:"name,attr"`
	Visible    *bool      `xml:"visible,attr"`
	Opacity    *float64   `xml:"opacity,attr"`
	Objects    []Object   `xml:"object"`
	Properties Properties `xml:"properties"`
}

func (g *ObjectGroup) IsVisible() bool { return g.Visible == nil || *g.Visible }

type Object struct {
	ID         int        `xml:"id,attr"`
	Name       string     `xml:"name,attr"`
	Type       string     `xml:"type,attr"`
	X          float64    `xml:"x,attr"`
	Y          float64    `xml:"y,attr"`
	Width      float64    `xml:"width,attr"`
	Height     float64    `xml:"height,attr"`
	Rotation   float64    `xml:"rotation,attr"`
	GID        GID        `xml:"gid,attr"`
	Visible    *bool      `xml:"visible,attr"`
	Ellipse    *struct{}  `xml:"ellipse"`
	Point      *struct{}  `xml:"point"`
	Polygon    *PointList `xml:"polygon"`
	Polyline   *PointList `xml:"polyline"`
	Properties Properties `xml:"properties"`
}

func (o *Object) IsVisible() bool { return o.Visible == nil || *o.Visible }

type PointList struct {
	Points string `xml:"points,attr"`
}

type Point struct {
	X, Y float64
}

type Properties struct {
	List []Property `xml:"property"`
}

type Property struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
	Body  string `xml:",chardata"`
}

// Map flattens the property list; multi-line string properties store their
// value in the element body instead of the attribute.
func (p *Properties) Map() map[string]string {
	if len(p.List) == 0 {
		return nil
	}
	m := make(map[string]string, len(p.List))
	for _, prop := range p.List {
		v := prop.Value
		if v == "" {
			v = prop.Body
		}
		m[prop.Name] = v
	}
	return m
}

// Read parses a TMX document. baseDir is used to resolve external .tsx
// tilesets referenced by the map; pass the map file's directory.
func Read(r io.Reader, baseDir string) (*Map, error) {
	d := xml.NewDecoder(r)

	m := &Map{baseDir: baseDir}
	if err := d.Decode(m); err != nil {
		return nil, fmt.Errorf("tmx: decode map: %w", err)
	}

	if m.Infinite != 0 {
		return nil, ErrInfiniteMap
	}

	for i := range m.Tilesets {
		if m.Tilesets[i].Source == "" {
			continue
		}
		if err := m.Tilesets[i].resolveExternal(baseDir); err != nil {
			return nil, err
		}
	}

	if err := m.decodeLayers(); err != nil {
		return nil, err
	}

	return m, nil
}

// LoadFile parses the TMX map at path.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tmx: open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, filepath.Dir(path))
}

func (m *Map) decodeLayers() error {
	for i := range m.Layers {
		l := &m.Layers[i]
		if len(l.Data.Chunks) > 0 {
			return ErrInfiniteMap
		}
		gids, err := l.Data.decode(m.Width, m.Height)
		if err != nil {
			return fmt.Errorf("tmx: layer %q: %w", l.Name, err)
		}
		l.GIDs = gids
		l.width = m.Width
	}
	return nil
}

func (t *Tileset) resolveExternal(baseDir string) error {
	path := filepath.Join(baseDir, filepath.FromSlash(t.Source))
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("tmx: open tileset %s: %w", t.Source, err)
	}
	defer f.Close()

	var ext Tileset
	if err := xml.NewDecoder(f).Decode(&ext); err != nil {
		return fmt.Errorf("tmx: decode tileset %s: %w", t.Source, err)
	}

	first, source := t.FirstGID, t.Source
	*t = ext
	t.FirstGID = first
	t.Source = source
	// The tileset image is relative to the .tsx file, not the map.
	if t.Image.Source != "" {
		rel := filepath.ToSlash(filepath.Join(filepath.Dir(filepath.FromSlash(source)), filepath.FromSlash(t.Image.Source)))
		t.Image.Source = rel
	}
	return nil
}

// EffectiveColumns returns the declared column count, or derives it from the
// image dimensions when the attribute is absent. The derivation accounts for
// there being no trailing spacing after the last column.
func (t *Tileset) EffectiveColumns() int {
	if t.Columns > 0 {
		return t.Columns
	}
	if t.TileWidth <= 0 {
		return 0
	}
	return (t.Image.Width + t.Spacing) / (t.TileWidth + t.Spacing)
}

// EffectiveTileCount returns the declared tile count, or derives it from the
// image dimensions when the attribute is absent.
func (t *Tileset) EffectiveTileCount() int {
	if t.TileCount > 0 {
		return t.TileCount
	}
	cols := t.EffectiveColumns()
	if cols <= 0 || t.TileHeight <= 0 {
		return 0
	}
	rows := (t.Image.Height + t.Spacing) / (t.TileHeight + t.Spacing)
	return cols * rows
}

// Contains reports whether the clean gid falls inside this tileset's range.
func (t *Tileset) Contains(gid GID) bool {
	clean := gid.Clean()
	return clean >= t.FirstGID && clean < t.FirstGID+GID(t.EffectiveTileCount())
}

// Tile returns the per-tile definition for a local tile id, if one exists.
func (t *Tileset) Tile(id uint32) *TileDef {
	for i := range t.Tiles {
		if t.Tiles[i].ID == id {
			return &t.Tiles[i]
		}
	}
	return nil
}
