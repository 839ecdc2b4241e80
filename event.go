package lattice

// Built-in event names.
const (
	EventKeyPress     = "key_press"   // fired once when a key goes down
	EventKeyRepeat    = "key_repeat"  // fired repeatedly while a key is held
	EventKeyRelease   = "key_release" // fired when a key goes up
	EventPointerDown  = "mouse_down"  // fired when the primary button is pressed
	EventPointerMove  = "mouse_move"  // fired when the pointer moves
	EventPointerEnter = "mouse_enter" // fired when the pointer enters a reactive visual
	EventPointerLeave = "mouse_leave" // fired when the pointer leaves a reactive visual
)

// Event is a typed carrier dispatched through a Composite. Listeners are
// looked up by Name.
type Event interface {
	Name() string
}

// PointerTargeted is implemented by events that carry a pointer location.
// Such events only reach listeners whose owning visual contains the point.
type PointerTargeted interface {
	Event
	Point() Vec2
}

// Listener handles an event. c is the composite dispatching it, so a listener
// can change component content and render again, or push and pop layers.
type Listener func(ev Event, c *Composite) error

// KeyPressEvent wraps a key going down. Fired once per press.
type KeyPressEvent struct {
	Code string
}

func (KeyPressEvent) Name() string { return EventKeyPress }

// KeyRepeatEvent is fired repeatedly after a KeyPressEvent while the key is
// held.
type KeyRepeatEvent struct {
	Code string
}

func (KeyRepeatEvent) Name() string { return EventKeyRepeat }

// KeyReleaseEvent wraps a key going up.
type KeyReleaseEvent struct {
	Code string
}

func (KeyReleaseEvent) Name() string { return EventKeyRelease }

// PointerDownEvent wraps a primary button press. X and Y are in GUI pixels,
// already divided by the device and GUI scale.
type PointerDownEvent struct {
	X, Y float64
}

func (PointerDownEvent) Name() string  { return EventPointerDown }
func (e PointerDownEvent) Point() Vec2 { return Vec2{e.X, e.Y} }

// PointerMoveEvent wraps a pointer movement, in GUI pixels.
type PointerMoveEvent struct {
	X, Y float64
}

func (PointerMoveEvent) Name() string  { return EventPointerMove }
func (e PointerMoveEvent) Point() Vec2 { return Vec2{e.X, e.Y} }

// PointerEnterEvent is passed to ReactiveState.OnPointerEnter.
type PointerEnterEvent struct {
	X, Y float64
}

func (PointerEnterEvent) Name() string { return EventPointerEnter }

// PointerLeaveEvent is passed to ReactiveState.OnPointerLeave.
type PointerLeaveEvent struct {
	X, Y float64
}

func (PointerLeaveEvent) Name() string { return EventPointerLeave }

// CustomEvent is an application-defined event, e.g. a counter component
// announcing that it was incremented. Listeners declare Type in their Events.
type CustomEvent struct {
	Type    string
	Payload any
}

func (e CustomEvent) Name() string { return e.Type }

// DispatchedEvent records one completed dispatch for an EventSink.
type DispatchedEvent struct {
	Name    string
	Event   Event
	Invoked int // number of listeners that ran
}

// EventSink is the interface for optional ECS integration. When set on a
// Composite, every dispatched event is forwarded after its listeners ran.
type EventSink interface {
	EmitEvent(ev DispatchedEvent)
}
