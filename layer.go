package lattice

// LayerID identifies a pushed layer. IDs are never reused within a
// Composite; zero means "not pushed".
type LayerID uint32

// Layer builds the component subtree of one stacked GUI layer. Build runs
// once per push; the returned subtree is owned by the layer until it is
// popped.
type Layer interface {
	Build(c *Composite) (Component, error)
}

// LayerFunc adapts a plain function to the Layer interface.
type LayerFunc func(c *Composite) (Component, error)

// Build calls f(c).
func (f LayerFunc) Build(c *Composite) (Component, error) { return f(c) }

// Disposer is implemented by layers that hold resources beyond their
// components. Dispose is called after the layer is popped.
type Disposer interface {
	Dispose(c *Composite)
}

// layerEntry is one slot of the composite's layer stack.
type layerEntry struct {
	id    LayerID
	layer Layer
	root  Component
	// insertion is the tree length before this layer's visuals were added.
	insertion int
}
