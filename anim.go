package tilemesh

import (
	"github.com/milk9111/tilemesh/tmx"
)

// Frame is one step of a tile animation.
type Frame struct {
	// TileID is the local tile index within the owning tileset.
	TileID uint32
	// Duration is how long the frame shows, in seconds.
	Duration float64
}

// AnimationDef is the animation attached to one source tile, keyed by the
// tile's clean global id.
type AnimationDef struct {
	GID             tmx.GID
	TilesetFirstGID tmx.GID
	Frames          []Frame
}

// Clock advances one spawned tile instance through an animation. Instances
// are independent; each carries its own clock.
type Clock struct {
	Frames     []Frame
	Current    int
	LastUpdate float64
}

// NewClock starts a clock at frame 0. now is the instance creation time in
// seconds on whatever monotonic clock the host ticks with.
func NewClock(frames []Frame, now float64) *Clock {
	return &Clock{Frames: frames, LastUpdate: now}
}

// Advance moves to the next frame once the current frame's duration has
// elapsed, wrapping past the last frame. It returns the tile id to display
// and whether it changed this tick. Frames cut hard; there is no
// interpolation.
func (c *Clock) Advance(now float64) (uint32, bool) {
	if len(c.Frames) == 0 {
		return 0, false
	}
	if now-c.LastUpdate <= c.Frames[c.Current].Duration {
		return c.Frames[c.Current].TileID, false
	}
	c.Current++
	if c.Current >= len(c.Frames) {
		c.Current = 0
	}
	c.LastUpdate = now
	return c.Frames[c.Current].TileID, true
}
