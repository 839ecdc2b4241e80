// Package lattice is a layered, retained-mode GUI toolkit for [Ebitengine].
//
// A GUI is a stack of layers. Each layer builds a tree of components that is
// laid out with nine-point alignment and margins against the viewport, drawn
// as one batch of textured quads, and wired into an event registry scoped to
// the layer: popping the layer removes exactly its components and listeners.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, a
// renderer and a [Composite] for you:
//
//	lattice.Run(lattice.LayerFunc(func(c *lattice.Composite) (lattice.Component, error) {
//		white, _ := c.Texture(lattice.WhiteTexture)
//		return lattice.NewImage(lattice.VisualOptions{
//			Layout:  lattice.Layout{Alignment: lattice.Center, Size: lattice.Vec2{X: 64, Y: 64}},
//			Texture: white,
//		}, lattice.Vec2{}), nil
//	}), lattice.RunConfig{Title: "My GUI", Width: 640, Height: 480})
//
// For full control, create a [Game] with [NewGame] and run it with
// [ebiten.RunGame], or implement [Renderer] and [Host] yourself and drive a
// Composite from [NewComposite].
//
// # Components
//
// A [Component] is either a [Structural] node, which only groups children
// and provides their layout origin, or a [Visual], which draws a list of
// [Subcomponent] quads from one atlas [Texture]. Positions are computed by
// [Compute]: the slack between parent and component size is split by the
// alignment factors (0, 0.5 or 1 per axis), the margin is added (subtracted
// on far edges) and the result floored.
//
//	group := lattice.NewStructural(lattice.Layout{
//		Alignment: lattice.TopLeft,
//		Margin:    lattice.Vec2{X: 16, Y: 16},
//		Size:      lattice.Vec2{X: 160, Y: 64},
//	}, button, label)
//
// Text visuals come from [NewText] with a [Font]: either a [BitmapFont]
// loaded from a JSON glyph map, or the built-in [NewBasicFont].
//
// # Events
//
// A Visual declares the event names it handles in [VisualOptions.Events]
// and registers a handler per name. [ReactiveState] adds pointer down,
// enter and leave reactions. [Composite.DispatchEvent] delivers an event to
// every matching listener, most recent layer first; pointer events reach a
// listener only when its visual contains the pointer. Listeners may push or
// pop layers; such changes apply once the dispatch completes.
//
// Dispatched events can be forwarded to an ECS world through [EventSink]
// (see the lattice/ecs package for a [Donburi] adapter).
//
// # Rendering
//
// [EbitenRenderer] keeps an array of tile-sized atlas layers and turns each
// render queue into a [Batch] of per-instance world and atlas matrices,
// submitting consecutive instances on the same layer in one
// DrawTriangles32 call.
//
// # Animation
//
// Tweens (via [gween]) animate margins, sizes and color masks; register
// them with [Composite.Animate] to have them advanced and redrawn on every
// frame tick.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package lattice
