package tilemesh

// MapReady fires once per successful compile.
type MapReady struct {
	// Source is the originating map path, or empty when compiled from
	// bytes without one.
	Source string
	// Parent is the optional parent entity hint from Options.
	Parent string
}

// ObjectReady fires once per resolved object placement, children included.
type ObjectReady struct {
	Source string
	Object *Object
}

// Hooks are optional host callbacks invoked synchronously at the end of a
// successful compile. Failed compiles fire nothing.
type Hooks struct {
	MapReady    func(MapReady)
	ObjectReady func(ObjectReady)
}
