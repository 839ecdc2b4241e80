package lattice

// Synthetic input. Injected events are queued and delivered to the input
// listeners at the start of the next Update, before polled input, in
// injection order. Coordinates are GUI pixels, the same space listeners see.

// InjectEvent queues an arbitrary event.
func (g *Game) InjectEvent(ev Event) {
	if ev != nil {
		g.injected = append(g.injected, ev)
	}
}

// InjectKey queues a key press followed by its release.
func (g *Game) InjectKey(code string) {
	g.InjectEvent(KeyPressEvent{Code: code})
	g.InjectEvent(KeyReleaseEvent{Code: code})
}

// InjectPointerDown queues a primary button press at (x, y).
func (g *Game) InjectPointerDown(x, y float64) {
	g.InjectEvent(PointerDownEvent{X: x, Y: y})
}

// InjectPointerMove queues a pointer move to (x, y).
func (g *Game) InjectPointerMove(x, y float64) {
	g.InjectEvent(PointerMoveEvent{X: x, Y: y})
}

// InjectClick queues a move to (x, y) followed by a press there, so hover
// state is updated before the press is delivered.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPointerMove(x, y)
	g.InjectPointerDown(x, y)
}

// Pending returns the number of queued injected events.
func (g *Game) Pending() int { return len(g.injected) }

// drainInjected delivers every queued event. Events injected by listeners
// during the drain wait for the next tick.
func (g *Game) drainInjected() {
	if len(g.injected) == 0 {
		return
	}
	queue := g.injected
	g.injected = nil
	for _, ev := range queue {
		g.emit(ev)
	}
}
