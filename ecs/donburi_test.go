package ecs

import (
	"testing"

	"github.com/phanxgames/lattice"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []lattice.DispatchedEvent
	DispatchEventType.Subscribe(world, func(w donburi.World, e lattice.DispatchedEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(lattice.DispatchedEvent{
		Name:    lattice.EventPointerDown,
		Event:   lattice.PointerDownEvent{X: 10, Y: 20},
		Invoked: 2,
	})
	sink.EmitEvent(lattice.DispatchedEvent{
		Name:  "increment_count",
		Event: lattice.CustomEvent{Type: "increment_count", Payload: 3},
	})

	// Events are queued; process them.
	DispatchEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Name != lattice.EventPointerDown || e0.Invoked != 2 {
		t.Errorf("event 0: %+v", e0)
	}
	if p, ok := e0.Event.(lattice.PointerDownEvent); !ok || p.X != 10 || p.Y != 20 {
		t.Errorf("event 0 payload: %#v", e0.Event)
	}
	if c, ok := received[1].Event.(lattice.CustomEvent); !ok || c.Payload != 3 {
		t.Errorf("event 1 payload: %#v", received[1].Event)
	}
}

func TestDonburiSink_FiltersNames(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world, lattice.EventKeyPress)

	var names []string
	DispatchEventType.Subscribe(world, func(w donburi.World, e lattice.DispatchedEvent) {
		names = append(names, e.Name)
	})

	sink.EmitEvent(lattice.DispatchedEvent{Name: lattice.EventPointerMove})
	sink.EmitEvent(lattice.DispatchedEvent{Name: lattice.EventKeyPress})
	DispatchEventType.ProcessEvents(world)

	if len(names) != 1 || names[0] != lattice.EventKeyPress {
		t.Errorf("forwarded %v, want [%s]", names, lattice.EventKeyPress)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	DispatchEventType.Subscribe(world, func(w donburi.World, e lattice.DispatchedEvent) {
		count1++
	})
	DispatchEventType.Subscribe(world, func(w donburi.World, e lattice.DispatchedEvent) {
		count2++
	})

	sink.EmitEvent(lattice.DispatchedEvent{Name: lattice.EventKeyRelease})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

// --- Composite integration ---

type stubRenderer struct{}

func (stubRenderer) Build(string) error                       { return nil }
func (stubRenderer) Resize(lattice.Vec2, float64) error       { return nil }
func (stubRenderer) Render([]*lattice.Visual, int) error      { return nil }
func (stubRenderer) Clear()                                   {}
func (stubRenderer) Texture(string) (*lattice.Texture, error) { return &lattice.Texture{Name: "t"}, nil }
func (stubRenderer) Dispose()                                 {}

type stubHost struct{}

func (stubHost) Viewport() lattice.Vec2                  { return lattice.Vec2{X: 100, Y: 100} }
func (stubHost) Scale() float64                          { return 1 }
func (stubHost) Parameter(string) (string, error)        { return "", nil }
func (stubHost) AddInputListener(func(ev lattice.Event)) {}

func TestDonburiSink_ReceivesCompositeDispatch(t *testing.T) {
	c, err := lattice.NewComposite(lattice.Options{Renderer: stubRenderer{}, Host: stubHost{}})
	if err != nil {
		t.Fatal(err)
	}
	world := donburi.NewWorld()
	c.SetEventSink(NewDonburiSink(world))

	err = c.Push(lattice.LayerFunc(func(c *lattice.Composite) (lattice.Component, error) {
		tex, _ := c.Texture("t")
		return lattice.NewImage(lattice.VisualOptions{
			Layout:  lattice.Layout{Name: "box", Alignment: lattice.TopLeft, Size: lattice.Vec2{X: 10, Y: 10}},
			Texture: tex,
			Reactive: &lattice.ReactiveState{
				OnPointerDown: func(lattice.Event, *lattice.Composite) error { return nil },
			},
		}, lattice.Vec2{}), nil
	}))
	if err != nil {
		t.Fatal(err)
	}

	var got []lattice.DispatchedEvent
	DispatchEventType.Subscribe(world, func(w donburi.World, e lattice.DispatchedEvent) {
		got = append(got, e)
	})

	if err := c.DispatchEvent(lattice.PointerDownEvent{X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}
	if err := c.DispatchEvent(lattice.PointerDownEvent{X: 50, Y: 50}); err != nil {
		t.Fatal(err)
	}
	DispatchEventType.ProcessEvents(world)

	if len(got) != 2 {
		t.Fatalf("expected 2 forwarded events, got %d", len(got))
	}
	if got[0].Invoked != 1 {
		t.Errorf("hit: Invoked = %d, want 1", got[0].Invoked)
	}
	if got[1].Invoked != 0 {
		t.Errorf("miss: Invoked = %d, want 0", got[1].Invoked)
	}
}
