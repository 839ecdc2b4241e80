package lattice

const defaultQueueCap = 64

// Scene is the render queue: the visuals waiting to be drawn by the next
// render, with a running total of their subcomponents. It is cleared after
// every render.
type Scene struct {
	queue []*Visual
	count int
}

func newScene() *Scene {
	return &Scene{queue: make([]*Visual, 0, defaultQueueCap)}
}

// Add appends v to the queue.
func (s *Scene) Add(v *Visual) {
	s.queue = append(s.queue, v)
	s.count += len(v.subcomponents)
}

// Queue returns the queued visuals in insertion order. The returned slice
// MUST NOT be retained across a Clear.
func (s *Scene) Queue() []*Visual { return s.queue }

// SubcomponentCount returns the total number of subcomponents queued.
func (s *Scene) SubcomponentCount() int { return s.count }

// Empty reports whether nothing is queued.
func (s *Scene) Empty() bool { return len(s.queue) == 0 }

// Len returns the number of queued visuals.
func (s *Scene) Len() int { return len(s.queue) }

// Clear resets the queue, keeping its backing storage.
func (s *Scene) Clear() {
	for i := range s.queue {
		s.queue[i] = nil
	}
	s.queue = s.queue[:0]
	s.count = 0
}

// contains reports whether v is already queued.
func (s *Scene) contains(v *Visual) bool {
	for _, q := range s.queue {
		if q == v {
			return true
		}
	}
	return false
}
