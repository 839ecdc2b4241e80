// Package ecs provides ECS adapters for lattice's event dispatch.
//
// The primary adapter is [NewDonburiSink], which forwards every event a
// lattice Composite dispatches into a [Donburi] world as a typed event.
// Subscribe to [DispatchEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world, lattice.EventPointerDown, "increment_count")
//	composite.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
