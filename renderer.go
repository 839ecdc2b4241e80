package lattice

// Texture is one layer of the renderer's atlas texture array.
type Texture struct {
	// Name is the lookup key, e.g. "default" or a font's texture key.
	Name string
	// Index is the layer index sampled by the batch.
	Index int
	// Size is the layer size in pixels.
	Size Vec2
}

// Renderer draws batches of visuals onto a GPU surface. Implementations own
// their Batch arena and texture array.
type Renderer interface {
	// Build compiles the shader program at shaderPath and prepares GPU state.
	// Backends without a programmable pipeline may ignore the path.
	Build(shaderPath string) error
	// Resize sets the surface to viewport pixels drawn at the given GUI
	// scale.
	Resize(viewport Vec2, scale float64) error
	// Render draws queue, whose total subcomponent count is n, on top of
	// the current surface contents.
	Render(queue []*Visual, n int) error
	// Clear erases the surface.
	Clear()
	// Texture looks up an atlas layer. Unknown keys wrap ErrUndefinedKey.
	Texture(key string) (*Texture, error)
	// Dispose releases GPU resources. The renderer is unusable afterwards.
	Dispose()
}
