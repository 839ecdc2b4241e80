package lattice

import (
	"fmt"
)

// fakeRenderer records calls instead of drawing.
type fakeRenderer struct {
	textures map[string]*Texture

	builds   []string
	resizes  []Vec2
	renders  [][]*Visual
	counts   []int
	clears   int
	disposed bool
	batch    Batch
	fail     error
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{textures: map[string]*Texture{
		"default": {Name: "default", Index: 0, Size: DefaultTileSize},
		"font":    {Name: "font", Index: 1, Size: DefaultTileSize},
	}}
}

func (r *fakeRenderer) Build(shaderPath string) error {
	r.builds = append(r.builds, shaderPath)
	return nil
}

func (r *fakeRenderer) Resize(viewport Vec2, scale float64) error {
	r.resizes = append(r.resizes, viewport)
	return nil
}

func (r *fakeRenderer) Render(queue []*Visual, n int) error {
	if r.fail != nil {
		return r.fail
	}
	r.renders = append(r.renders, append([]*Visual(nil), queue...))
	r.counts = append(r.counts, n)
	return r.batch.Build(queue, n, DefaultTileSize)
}

func (r *fakeRenderer) Clear() { r.clears++ }

func (r *fakeRenderer) Texture(key string) (*Texture, error) {
	t, ok := r.textures[key]
	if !ok {
		return nil, fmt.Errorf("fake texture %q: %w", key, ErrUndefinedKey)
	}
	return t, nil
}

func (r *fakeRenderer) Dispose() { r.disposed = true }

// lastRender returns the names of the visuals drawn by the most recent
// render.
func (r *fakeRenderer) lastRender() []string {
	if len(r.renders) == 0 {
		return nil
	}
	var names []string
	for _, v := range r.renders[len(r.renders)-1] {
		names = append(names, v.Name())
	}
	return names
}

// fakeHost is a fixed-size host with a manual input feed.
type fakeHost struct {
	viewport  Vec2
	scale     float64
	params    *Params
	listeners []func(Event)
}

func newFakeHost() *fakeHost {
	p := NewParams()
	_ = p.Set(ParamShaderPath, "shaders/")
	return &fakeHost{viewport: Vec2{100, 100}, scale: 1, params: p}
}

func (h *fakeHost) Viewport() Vec2                       { return h.viewport }
func (h *fakeHost) Scale() float64                       { return h.scale }
func (h *fakeHost) Parameter(key string) (string, error) { return h.params.Get(key) }
func (h *fakeHost) AddInputListener(fn func(ev Event))   { h.listeners = append(h.listeners, fn) }

func (h *fakeHost) feed(ev Event) {
	for _, fn := range h.listeners {
		fn(ev)
	}
}

// newTestComposite returns a built composite over a 100x100 fake host.
func newTestComposite(t interface {
	Helper()
	Fatal(args ...any)
}) (*Composite, *fakeRenderer, *fakeHost) {
	t.Helper()
	r := newFakeRenderer()
	h := newFakeHost()
	c, err := NewComposite(Options{Renderer: r, Host: h})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Build(); err != nil {
		t.Fatal(err)
	}
	return c, r, h
}

// quad returns a textured single-quad visual.
func quad(name string, a Alignment, pos, size Vec2) *Visual {
	return NewImage(VisualOptions{
		Layout:  Layout{Name: name, Alignment: a, Margin: pos, Size: size},
		Texture: &Texture{Name: "default"},
	}, Vec2{})
}

// layerOf returns a layer that builds root.
func layerOf(root Component) Layer {
	return LayerFunc(func(*Composite) (Component, error) { return root, nil })
}

// recorder collects listener invocations in call order.
type recorder struct {
	calls []string
}

func (r *recorder) listener(tag string) Listener {
	return func(Event, *Composite) error {
		r.calls = append(r.calls, tag)
		return nil
	}
}
