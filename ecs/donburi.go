package ecs

import (
	"github.com/phanxgames/lattice"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DispatchEventType is the Donburi event type for lattice dispatches.
// Subscribe to it in your ECS systems to observe GUI events after the GUI's
// own listeners ran.
var DispatchEventType = events.NewEventType[lattice.DispatchedEvent]()

type donburiSink struct {
	world donburi.World
	names map[string]struct{}
}

// NewDonburiSink creates an EventSink backed by a Donburi world. When names
// are given, only events with those names are forwarded. Events are queued
// on DispatchEventType and delivered by its ProcessEvents.
func NewDonburiSink(world donburi.World, names ...string) lattice.EventSink {
	s := &donburiSink{world: world}
	if len(names) > 0 {
		s.names = make(map[string]struct{}, len(names))
		for _, n := range names {
			s.names[n] = struct{}{}
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(ev lattice.DispatchedEvent) {
	if s.names != nil {
		if _, ok := s.names[ev.Name]; !ok {
			return
		}
	}
	DispatchEventType.Publish(s.world, ev)
}
