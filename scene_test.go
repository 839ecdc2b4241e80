package lattice

import "testing"

func TestScene(t *testing.T) {
	s := newScene()
	if !s.Empty() {
		t.Fatal("new scene not empty")
	}
	a := NewVisual(VisualOptions{Subcomponents: make([]Subcomponent, 3)})
	b := NewVisual(VisualOptions{Subcomponents: make([]Subcomponent, 2)})
	s.Add(a)
	s.Add(b)

	if s.Len() != 2 || s.SubcomponentCount() != 5 {
		t.Errorf("Len=%d count=%d, want 2 and 5", s.Len(), s.SubcomponentCount())
	}
	if q := s.Queue(); q[0] != a || q[1] != b {
		t.Error("queue order changed")
	}
	if !s.contains(b) || s.contains(NewVisual(VisualOptions{})) {
		t.Error("contains mismatch")
	}

	backing := s.Queue()[:2]
	s.Clear()
	if !s.Empty() || s.SubcomponentCount() != 0 {
		t.Errorf("after Clear: Len=%d count=%d", s.Len(), s.SubcomponentCount())
	}
	if backing[0] != nil || backing[1] != nil {
		t.Error("Clear kept references to queued visuals")
	}
}
