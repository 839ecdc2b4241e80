package lattice

import "testing"

func TestUpdateCallsOnUpdate(t *testing.T) {
	c, r, _ := newTestComposite(t)
	var frames []int
	v := NewImage(VisualOptions{
		Layout:  Layout{Name: "blink", Alignment: TopLeft, Size: Vec2{4, 4}},
		Texture: &Texture{Name: "default"},
		OnUpdate: func(v *Visual, c *Composite, frame int) bool {
			frames = append(frames, frame)
			return frame%2 == 0
		},
	}, Vec2{})
	if err := c.Push(layerOf(v)); err != nil {
		t.Fatal(err)
	}

	for frame := 1; frame <= 4; frame++ {
		if err := c.Update(frame, 1.0/60); err != nil {
			t.Fatal(err)
		}
	}
	if len(frames) != 4 || frames[3] != 4 {
		t.Errorf("frames = %v", frames)
	}
	if r.clears != 2 {
		t.Errorf("clears = %d, want 2 (frames 2 and 4)", r.clears)
	}

	if err := c.Pop(); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(5, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if len(frames) != 4 {
		t.Error("OnUpdate called on a popped visual")
	}
}

func TestUpdateRendersEnqueued(t *testing.T) {
	c, r, _ := newTestComposite(t)
	v := quad("v", TopLeft, Vec2{}, Vec2{4, 4})
	if err := c.Push(layerOf(v)); err != nil {
		t.Fatal(err)
	}
	renders := len(r.renders)
	c.Enqueue(v)
	if err := c.Update(1, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if len(r.renders) != renders+1 || r.clears != 0 {
		t.Errorf("renders +%d clears %d, want +1 and 0", len(r.renders)-renders, r.clears)
	}
}

func TestUpdateDefersPush(t *testing.T) {
	c, _, _ := newTestComposite(t)
	pushed := false
	v := NewImage(VisualOptions{
		Layout:  Layout{Name: "spawner", Alignment: TopLeft, Size: Vec2{4, 4}},
		Texture: &Texture{Name: "default"},
		OnUpdate: func(v *Visual, c *Composite, frame int) bool {
			if !pushed {
				pushed = true
				_ = c.Push(layerOf(quad("spawned", Center, Vec2{}, Vec2{2, 2})))
			}
			return false
		},
	}, Vec2{})
	if err := c.Push(layerOf(v)); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(1, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if c.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", c.Depth())
	}
}

func TestUpdateDisposeFromOnUpdate(t *testing.T) {
	c, r, _ := newTestComposite(t)
	calls := 0
	quit := func(v *Visual, c *Composite, frame int) bool {
		calls++
		c.Dispose()
		return true
	}
	vis := func(name string) *Visual {
		return NewImage(VisualOptions{
			Layout:   Layout{Name: name, Alignment: TopLeft, Size: Vec2{4, 4}},
			Texture:  &Texture{Name: "default"},
			OnUpdate: quit,
		}, Vec2{})
	}
	if err := c.Push(layerOf(group(vis("a"), vis("b")))); err != nil {
		t.Fatal(err)
	}
	clears := r.clears
	if err := c.Update(1, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("OnUpdate ran %d times after Dispose, want 1", calls)
	}
	if c.Depth() != 0 || !r.disposed || r.clears != clears {
		t.Errorf("depth=%d renderer disposed=%v clears +%d", c.Depth(), r.disposed, r.clears-clears)
	}
	if err := c.Update(2, 1.0/60); err != nil {
		t.Errorf("Update after Dispose: %v", err)
	}
}
