package lattice

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultFontKey is the font used by NewText when none is named.
const DefaultFontKey = "default"

// Options configures a Composite.
type Options struct {
	// Renderer draws the render queue. Required.
	Renderer Renderer
	// Host provides the viewport, GUI scale, parameters and input. Required.
	Host Host
	// Fonts registers fonts by key.
	Fonts map[string]Font
	// TileSize is the size of one atlas layer. Zero selects DefaultTileSize.
	// It must match the renderer's tile size.
	TileSize Vec2
	// Logger overrides the package logger for this composite.
	Logger *slog.Logger
}

// stackOp is a push or pop requested while a dispatch was running.
type stackOp struct {
	push Layer // nil means pop
}

// Composite orchestrates a stack of GUI layers: it builds and lays out each
// layer's components, wires their listeners into a layer-scoped registry,
// dispatches events and drives the renderer.
//
// A Composite is not safe for concurrent use; call it from the game loop.
type Composite struct {
	renderer Renderer
	host     Host
	fonts    map[string]Font
	tile     Vec2
	log      *slog.Logger
	debug    bool

	viewport Vec2    // device pixels
	scale    float64 // GUI scale

	layers    []layerEntry
	nextLayer LayerID
	tree      []*Visual
	registry  *Registry
	scene     *Scene
	tweens    []*Tween
	sink      EventSink

	subscribed bool
	closing    bool // Dispose requested or running
	disposed   bool
	layoutTime time.Duration

	// Stack mutations requested from inside a dispatch or frame tick are
	// deferred until the outermost one returns.
	busy     int
	pending  []stackOp
	snapBufs [][]Binding
}

// NewComposite creates a composite. Call Build before pushing layers.
func NewComposite(opts Options) (*Composite, error) {
	if opts.Renderer == nil || opts.Host == nil {
		return nil, fmt.Errorf("lattice: new composite: renderer and host are required: %w", ErrInvalidArgument)
	}
	tile := opts.TileSize
	if tile == (Vec2{}) {
		tile = DefaultTileSize
	}
	if tile.X <= 0 || tile.Y <= 0 {
		return nil, fmt.Errorf("lattice: new composite: tile size %v: %w", tile, ErrInvalidArgument)
	}
	lg := opts.Logger
	if lg == nil {
		lg = Logger()
	}
	c := &Composite{
		renderer: opts.Renderer,
		host:     opts.Host,
		fonts:    make(map[string]Font, len(opts.Fonts)),
		tile:     tile,
		log:      lg,
		registry: NewRegistry(),
		scene:    newScene(),
	}
	for k, f := range opts.Fonts {
		c.fonts[k] = f
	}
	c.readHost()
	return c, nil
}

func (c *Composite) readHost() {
	c.viewport = c.host.Viewport()
	c.scale = c.host.Scale()
	if c.scale <= 0 {
		c.scale = 1
	}
}

// Build prepares the renderer with the host's shader_path parameter, sizes
// the surface to the host viewport and subscribes the composite to host
// input. Input is subscribed only once across repeated calls.
func (c *Composite) Build() error {
	if c.disposed {
		return fmt.Errorf("lattice: build: composite disposed: %w", ErrIllegalState)
	}
	shader, err := c.host.Parameter(ParamShaderPath)
	if err != nil {
		return fmt.Errorf("lattice: build: %w", err)
	}
	if err := c.renderer.Build(shader); err != nil {
		return fmt.Errorf("lattice: build renderer: %w", err)
	}
	c.readHost()
	if err := c.renderer.Resize(c.viewport, c.scale); err != nil {
		return fmt.Errorf("lattice: build: resize: %w", err)
	}
	if !c.subscribed {
		c.host.AddInputListener(c.handleInput)
		c.subscribed = true
	}
	c.log.Info("composite built",
		slog.Float64("width", c.viewport.X), slog.Float64("height", c.viewport.Y),
		slog.Float64("scale", c.scale))
	return nil
}

func (c *Composite) handleInput(ev Event) {
	if err := c.DispatchEvent(ev); err != nil {
		c.log.Warn("input dispatch failed", slog.String("event", ev.Name()), slog.Any("error", err))
	}
}

// RegisterFont adds or replaces a font.
func (c *Composite) RegisterFont(key string, f Font) {
	c.fonts[key] = f
}

// Push builds layer, adds its visuals to the tree and its listeners to a new
// registry layer, lays it out against the viewport and renders it on top of
// the current surface.
//
// If the build returns no component, or a visual declares an event without
// a handler, nothing is pushed. Called from inside a listener or frame
// tick, Push is deferred until that dispatch returns and reports nil.
func (c *Composite) Push(layer Layer) error {
	if c.disposed || c.closing {
		return fmt.Errorf("lattice: push: composite disposed: %w", ErrIllegalState)
	}
	if layer == nil {
		return fmt.Errorf("lattice: push: nil layer: %w", ErrInvalidArgument)
	}
	if c.busy > 0 {
		c.pending = append(c.pending, stackOp{push: layer})
		return nil
	}
	return c.push(layer)
}

func (c *Composite) push(layer Layer) error {
	root, err := layer.Build(c)
	if err != nil {
		return fmt.Errorf("lattice: push: build layer: %w", err)
	}
	if root == nil {
		return fmt.Errorf("lattice: push: %w", ErrNoComponent)
	}

	id := c.nextLayer + 1
	insertion := len(c.tree)
	err = walkVisuals(root, func(v *Visual) error {
		if v.disposed {
			return fmt.Errorf("lattice: push: visual %q (id %d) belongs to a popped layer: %w",
				v.name, v.id, ErrIllegalState)
		}
		if v.layer != 0 {
			return fmt.Errorf("lattice: push: visual %q (id %d) already belongs to layer %d: %w",
				v.name, v.id, v.layer, ErrIllegalState)
		}
		c.tree = append(c.tree, v)
		return c.bind(v, id)
	})
	if err == nil {
		err = c.computeAll(root)
	}
	if err != nil {
		c.registry.Discard()
		c.truncateTree(insertion, false)
		return err
	}

	c.nextLayer = id
	c.registry.Seal()
	for _, v := range c.tree[insertion:] {
		v.layer = id
		if v.reactive != nil {
			v.reactive.hovered = false
		}
		c.scene.Add(v)
	}
	c.layers = append(c.layers, layerEntry{id: id, layer: layer, root: root, insertion: insertion})
	c.log.Info("layer pushed", slog.Int("layer", int(id)), slog.Int("visuals", len(c.tree)-insertion),
		slog.Int("depth", len(c.layers)))
	return c.Render()
}

// computeAll lays out every pushed layer and then root against the
// viewport.
func (c *Composite) computeAll(root Component) error {
	start := time.Now()
	vp := c.Viewport()
	for _, e := range c.layers {
		if err := Compute(e.root, Vec2{}, vp); err != nil {
			return fmt.Errorf("lattice: layout layer %d: %w", e.id, err)
		}
	}
	if root != nil {
		if err := Compute(root, Vec2{}, vp); err != nil {
			return err
		}
	}
	c.layoutTime = time.Since(start)
	return nil
}

// bind registers v's declared handlers and pointer reactions under layer id.
func (c *Composite) bind(v *Visual, id LayerID) error {
	for _, name := range v.events {
		fn := v.handlers[name]
		if fn == nil {
			return fmt.Errorf("lattice: push: %q (id %d) declares %q: %w", v.name, v.id, name, ErrNoHandler)
		}
		c.registry.Add(name, Binding{Listener: fn, Owner: v, Layer: id, kind: bindHandler})
	}
	if r := v.reactive; r != nil {
		if r.OnPointerDown != nil {
			c.registry.Add(EventPointerDown, Binding{Listener: r.OnPointerDown, Owner: v, Layer: id, kind: bindPointerDown})
		}
		if r.OnPointerEnter != nil || r.OnPointerLeave != nil {
			c.registry.Add(EventPointerMove, Binding{Owner: v, Layer: id, kind: bindHover})
		}
	}
	return nil
}

// truncateTree cuts the tree back to n visuals, optionally marking the cut
// visuals disposed.
func (c *Composite) truncateTree(n int, dispose bool) {
	for i := n; i < len(c.tree); i++ {
		if dispose {
			v := c.tree[i]
			v.disposed = true
			if v.reactive != nil {
				v.reactive.hovered = false
			}
		}
		c.tree[i] = nil
	}
	c.tree = c.tree[:n]
}

// Pop removes the most recently pushed layer: its listeners leave the
// registry, its visuals leave the tree and are marked disposed, and the
// remaining layers are laid out and redrawn on a cleared surface. Popping
// the last layer leaves an empty surface. Called from inside a listener or
// frame tick, Pop is deferred until that dispatch returns and reports nil.
func (c *Composite) Pop() error {
	if c.disposed || c.closing {
		return fmt.Errorf("lattice: pop: composite disposed: %w", ErrIllegalState)
	}
	if c.busy > 0 {
		c.pending = append(c.pending, stackOp{})
		return nil
	}
	if err := c.popTop(); err != nil {
		return err
	}
	return c.Redraw()
}

func (c *Composite) popTop() error {
	n := len(c.layers)
	if n == 0 {
		return fmt.Errorf("lattice: pop: layer stack is empty: %w", ErrIllegalState)
	}
	top := c.layers[n-1]
	if err := c.registry.Pop(); err != nil {
		return fmt.Errorf("lattice: pop layer %d: %w", top.id, err)
	}
	c.truncateTree(top.insertion, true)
	c.layers[n-1] = layerEntry{}
	c.layers = c.layers[:n-1]
	if d, ok := top.layer.(Disposer); ok {
		d.Dispose(c)
	}
	c.log.Info("layer popped", slog.Int("layer", int(top.id)), slog.Int("depth", len(c.layers)))
	return nil
}

// Enqueue adds the visuals of comp's subtree to the render queue for the
// next Render. Popped visuals and visuals already queued are skipped.
func (c *Composite) Enqueue(comp Component) {
	_ = walkVisuals(comp, func(v *Visual) error {
		if !v.disposed && !c.scene.contains(v) {
			c.scene.Add(v)
		}
		return nil
	})
}

// Render draws the render queue on top of the current surface and empties
// the queue. An empty queue draws nothing.
func (c *Composite) Render() error {
	if c.disposed || c.scene.Empty() {
		return nil
	}
	c.debugCheck()
	err := c.renderer.Render(c.scene.Queue(), c.scene.SubcomponentCount())
	if c.debug {
		var stats RenderStats
		if sr, ok := c.renderer.(statsReporter); ok {
			stats = sr.LastStats()
		}
		stats.LayoutTime = c.layoutTime
		stats.Visuals = c.scene.Len()
		stats.Instances = c.scene.SubcomponentCount()
		c.debugLog(stats)
	}
	c.layoutTime = 0
	c.scene.Clear()
	if err != nil {
		return fmt.Errorf("lattice: render: %w", err)
	}
	return nil
}

// Redraw clears the surface, lays out every layer again and renders the
// whole tree in push order.
func (c *Composite) Redraw() error {
	if c.disposed {
		return nil
	}
	c.renderer.Clear()
	c.scene.Clear()
	if err := c.computeAll(nil); err != nil {
		return fmt.Errorf("lattice: redraw: %w", err)
	}
	for _, v := range c.tree {
		c.scene.Add(v)
	}
	return c.Render()
}

// Resize sets a new device viewport, resizes the renderer surface and
// redraws every layer.
func (c *Composite) Resize(viewport Vec2) error {
	if viewport.X <= 0 || viewport.Y <= 0 {
		return fmt.Errorf("lattice: resize %v: %w", viewport, ErrInvalidArgument)
	}
	c.viewport = viewport
	if err := c.renderer.Resize(viewport, c.scale); err != nil {
		return fmt.Errorf("lattice: resize: %w", err)
	}
	c.log.Info("composite resized", slog.Float64("width", viewport.X), slog.Float64("height", viewport.Y))
	return c.Redraw()
}

// scaleObserver is implemented by hosts that track the GUI scale set on the
// composite, so input arrives in the same GUI pixels the layout uses.
type scaleObserver interface {
	scaleChanged(scale float64)
}

// SetScale changes the GUI scale and redraws. A host that tracks the scale
// is told before the redraw.
func (c *Composite) SetScale(scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("lattice: scale %v: %w", scale, ErrInvalidArgument)
	}
	c.scale = scale
	if o, ok := c.host.(scaleObserver); ok {
		o.scaleChanged(scale)
	}
	if err := c.renderer.Resize(c.viewport, scale); err != nil {
		return fmt.Errorf("lattice: rescale: %w", err)
	}
	return c.Redraw()
}

// enter and leave bracket dispatches and frame ticks.
func (c *Composite) enter() { c.busy++ }

func (c *Composite) leave() error {
	c.busy--
	if c.busy > 0 {
		return nil
	}
	var errs []error
	for len(c.pending) > 0 {
		op := c.pending[0]
		c.pending = c.pending[1:]
		if c.disposed || c.closing {
			continue
		}
		if op.push != nil {
			errs = append(errs, c.push(op.push))
		} else if err := c.popTop(); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, c.Redraw())
		}
	}
	c.pending = nil
	if c.closing && !c.disposed {
		c.dispose()
	}
	return errors.Join(errs...)
}

// Dispose pops every layer, calling each layer's Disposer, and disposes the
// renderer. The composite cannot be used afterwards. Called from inside a
// listener or frame tick, Dispose takes effect when that dispatch returns;
// stack operations still pending then are dropped.
func (c *Composite) Dispose() {
	if c.disposed || c.closing {
		return
	}
	c.closing = true
	if c.busy > 0 {
		return
	}
	c.dispose()
}

func (c *Composite) dispose() {
	for len(c.layers) > 0 {
		if err := c.popTop(); err != nil {
			c.log.Warn("dispose: pop failed", slog.Any("error", err))
			break
		}
	}
	c.tweens = nil
	c.scene.Clear()
	c.renderer.Dispose()
	c.disposed = true
}

// SetEventSink forwards every dispatched event to sink after its listeners
// ran. Pass nil to stop forwarding.
func (c *Composite) SetEventSink(sink EventSink) {
	c.sink = sink
}

// Depth returns the number of pushed layers.
func (c *Composite) Depth() int { return len(c.layers) }

// TreeLen returns the number of visuals contributed by all pushed layers.
func (c *Composite) TreeLen() int { return len(c.tree) }

// Tree returns the visuals of all pushed layers in push order. The returned
// slice MUST NOT be mutated or retained across a Push or Pop.
func (c *Composite) Tree() []*Visual { return c.tree }

// Listeners returns the number of live bindings for the event name.
func (c *Composite) Listeners(name string) int { return c.registry.Count(name) }

// Registry exposes the listener registry for inspection.
func (c *Composite) Registry() *Registry { return c.registry }

// Queued returns the number of visuals waiting for the next Render.
func (c *Composite) Queued() int { return c.scene.Len() }

// Font looks up a registered font.
func (c *Composite) Font(key string) (Font, error) {
	f, ok := c.fonts[key]
	if !ok {
		return nil, fmt.Errorf("lattice: font %q: %w", key, ErrUndefinedKey)
	}
	return f, nil
}

// Texture looks up an atlas texture from the renderer.
func (c *Composite) Texture(key string) (*Texture, error) {
	t, err := c.renderer.Texture(key)
	if err != nil {
		return nil, fmt.Errorf("lattice: texture %q: %w", key, err)
	}
	return t, nil
}

// Host returns the host.
func (c *Composite) Host() Host { return c.host }

// Renderer returns the renderer.
func (c *Composite) Renderer() Renderer { return c.renderer }

// Viewport returns the layout viewport in GUI pixels: the device viewport
// divided by the GUI scale.
func (c *Composite) Viewport() Vec2 { return c.viewport.Scale(1 / c.scale) }

// Scale returns the GUI scale.
func (c *Composite) Scale() float64 { return c.scale }

// TileSize returns the atlas layer size used for UV normalization.
func (c *Composite) TileSize() Vec2 { return c.tile }
