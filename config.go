package tilemesh

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures a compile pass. The zero value is usable; zero fields
// fall back to the defaults below.
type Options struct {
	// ChunkSize is the tile-edge length of a mesh batching chunk.
	ChunkSize int `yaml:"chunk_size"`
	// Centered offsets the map so its visual center sits at the origin
	// instead of keeping the top-left tile there.
	Centered bool `yaml:"centered"`
	// Debug asks adapters to visualize non-tile shape objects.
	Debug bool `yaml:"debug"`
	// ZBase is the depth bias baseline for object placement. Zero reads as
	// unset and resolves to the default of 15; a host that wants objects
	// biased around zero should pick a small non-zero baseline instead.
	ZBase float64 `yaml:"z_base"`
	// MaxPixelHeight is the assumed maximum map height in pixels used to
	// scale the per-object depth bias. Objects further down than this stop
	// sorting correctly; it is a documented limit, not a validated bound.
	MaxPixelHeight float64 `yaml:"max_pixel_height"`
	// Parent is an optional host entity hint carried on the MapReady event
	// so all spawned instances can hang off a single transform.
	Parent string `yaml:"parent"`

	Hooks Hooks `yaml:"-"`
}

const (
	defaultZBase          = 15
	defaultMaxPixelHeight = 20000
)

// DefaultOptions returns the options an empty Options resolves to.
func DefaultOptions() Options {
	return Options{
		ChunkSize:      DefaultChunkSize,
		ZBase:          defaultZBase,
		MaxPixelHeight: defaultMaxPixelHeight,
	}
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.ZBase == 0 {
		o.ZBase = defaultZBase
	}
	if o.MaxPixelHeight <= 0 {
		o.MaxPixelHeight = defaultMaxPixelHeight
	}
	return o
}

// LoadOptions reads Options from a YAML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("tilemesh: load options %s: %w", path, err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("tilemesh: unmarshal options %s: %w", path, err)
	}
	return opts, nil
}
