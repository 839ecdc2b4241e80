package lattice

// ComponentID identifies a component for the lifetime of the process.
type ComponentID uint32

// componentIDCounter is only touched from the game loop goroutine.
var componentIDCounter uint32

func nextComponentID() ComponentID {
	componentIDCounter++
	return ComponentID(componentIDCounter)
}

// Component is a node of the component tree. It is a closed set: the only
// implementations are *Structural and *Visual, and code that needs the
// variant switches on the concrete type.
type Component interface {
	// ID returns the component's unique identifier.
	ID() ComponentID
	// Name returns the debug name given at construction.
	Name() string
	// Position returns the absolute position computed by the last layout
	// pass. It is the zero vector until Computed reports true.
	Position() Vec2
	// Size returns the component's size.
	Size() Vec2
	// Computed reports whether a layout pass has assigned a position.
	Computed() bool

	layoutBox() *box
}

// Layout holds the placement properties shared by every component.
type Layout struct {
	Name      string
	Alignment Alignment
	Margin    Vec2
	Size      Vec2
}

// box is the state common to both component variants.
type box struct {
	id        ComponentID
	name      string
	alignment Alignment
	margin    Vec2
	size      Vec2
	position  Vec2
	computed  bool
}

func newBox(l Layout) box {
	return box{
		id:        nextComponentID(),
		name:      l.Name,
		alignment: l.Alignment,
		margin:    l.Margin,
		size:      l.Size,
	}
}

func (b *box) layoutBox() *box { return b }

func (b *box) ID() ComponentID      { return b.id }
func (b *box) Name() string         { return b.name }
func (b *box) Position() Vec2       { return b.position }
func (b *box) Size() Vec2           { return b.size }
func (b *box) Computed() bool       { return b.computed }
func (b *box) Alignment() Alignment { return b.alignment }
func (b *box) Margin() Vec2         { return b.margin }

// SetSize changes the size used by the next layout pass.
func (b *box) SetSize(size Vec2) { b.size = size }

// SetMargin changes the margin used by the next layout pass.
func (b *box) SetMargin(margin Vec2) { b.margin = margin }

// Bounds returns the rectangle covered by the component at its computed
// position.
func (b *box) Bounds() Rect {
	return Rect{b.position.X, b.position.Y, b.size.X, b.size.Y}
}

// --- Structural ---

// Structural groups child components. It is laid out like any component and
// provides the origin and parent size for its children, but is never drawn.
type Structural struct {
	box
	children []Component
}

// NewStructural creates a structural node owning the given children. The
// child list is fixed after construction.
func NewStructural(l Layout, children ...Component) *Structural {
	return &Structural{box: newBox(l), children: children}
}

// Children returns the node's children. The returned slice MUST NOT be mutated.
func (s *Structural) Children() []Component {
	return s.children
}

// --- Visual ---

// ReactiveState makes a Visual respond to pointer input. Handlers are
// optional; a nil handler is simply not registered.
type ReactiveState struct {
	OnPointerDown  Listener
	OnPointerEnter Listener
	OnPointerLeave Listener

	hovered bool
}

// VisualOptions configures a new Visual.
type VisualOptions struct {
	Layout

	// Texture is the atlas layer the subcomponents sample from. It must be
	// set before the visual is rendered.
	Texture *Texture
	// Subcomponents is the initial content.
	Subcomponents []Subcomponent
	// Events lists the event names this visual listens to. Each name must
	// have a handler registered with Handle before the owning layer is pushed.
	Events []string
	// Handlers pre-registers handlers by event name.
	Handlers map[string]Listener
	// Reactive, when non-nil, registers pointer down/enter/leave handling.
	Reactive *ReactiveState
	// OnUpdate, when non-nil, makes the visual animatable: it is called once
	// per frame tick and returns true when the content changed and needs a
	// redraw.
	OnUpdate func(v *Visual, c *Composite, frame int) bool
}

// Visual is a drawable component made of Subcomponents sampling one atlas
// texture.
type Visual struct {
	box

	subcomponents []Subcomponent
	texture       *Texture
	events        []string
	handlers      map[string]Listener
	reactive      *ReactiveState
	text          *textState

	// OnUpdate, when non-nil, is called on every frame tick.
	OnUpdate func(v *Visual, c *Composite, frame int) bool

	// UserData is an arbitrary value for application use.
	UserData any

	layer    LayerID
	disposed bool
}

// NewVisual creates a visual component.
func NewVisual(opts VisualOptions) *Visual {
	v := &Visual{
		box:           newBox(opts.Layout),
		subcomponents: opts.Subcomponents,
		texture:       opts.Texture,
		events:        opts.Events,
		reactive:      opts.Reactive,
		OnUpdate:      opts.OnUpdate,
	}
	if len(opts.Handlers) > 0 {
		v.handlers = make(map[string]Listener, len(opts.Handlers))
		for name, fn := range opts.Handlers {
			v.handlers[name] = fn
		}
	}
	return v
}

// NewImage creates a visual with a single subcomponent spanning the whole
// component, sampling the atlas from uv.
func NewImage(opts VisualOptions, uv Vec2) *Visual {
	opts.Subcomponents = []Subcomponent{{Size: opts.Size, UV: uv}}
	return NewVisual(opts)
}

// Subcomponents returns the current content. The returned slice MUST NOT be
// mutated; replace it with SetSubcomponents.
func (v *Visual) Subcomponents() []Subcomponent { return v.subcomponents }

// SetSubcomponents replaces the content of the visual.
func (v *Visual) SetSubcomponents(subs []Subcomponent) { v.subcomponents = subs }

// Texture returns the bound atlas texture, or nil.
func (v *Visual) Texture() *Texture { return v.texture }

// SetTexture binds the atlas texture.
func (v *Visual) SetTexture(t *Texture) { v.texture = t }

// Events returns the declared event names.
func (v *Visual) Events() []string { return v.events }

// SetEvents replaces the declared event names. Takes effect on the next
// push of the owning layer.
func (v *Visual) SetEvents(names ...string) { v.events = names }

// Handle registers fn as the handler for the declared event name.
func (v *Visual) Handle(name string, fn Listener) {
	if v.handlers == nil {
		v.handlers = make(map[string]Listener)
	}
	v.handlers[name] = fn
}

// Reactive returns the pointer state, or nil for non-reactive visuals.
func (v *Visual) Reactive() *ReactiveState { return v.reactive }

// Hovered reports whether the pointer is currently over a reactive visual.
func (v *Visual) Hovered() bool {
	return v.reactive != nil && v.reactive.hovered
}

// Layer returns the layer that contributed this visual, or 0 before push.
func (v *Visual) Layer() LayerID { return v.layer }

// Disposed reports whether the owning layer has been popped.
func (v *Visual) Disposed() bool { return v.disposed }
