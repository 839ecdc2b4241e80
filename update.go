package lattice

import "errors"

// Animate registers t to be advanced by every Update until it is done or its
// target is popped.
func (c *Composite) Animate(t *Tween) {
	if t != nil {
		c.tweens = append(c.tweens, t)
	}
}

// Tweens returns the number of running tweens.
func (c *Composite) Tweens() int { return len(c.tweens) }

// Update runs one frame tick: running tweens advance by dt seconds and
// animatable visuals get their OnUpdate call with the frame index. If any of
// them changed, the whole tree is laid out again and redrawn; otherwise any
// visuals enqueued since the last render are drawn.
func (c *Composite) Update(frame int, dt float32) error {
	if c.disposed || c.closing {
		return nil
	}
	c.enter()
	changed := c.advanceTweens(dt)
	for _, v := range c.tree {
		if c.closing {
			break
		}
		if v.OnUpdate == nil || v.disposed {
			continue
		}
		if v.OnUpdate(v, c, frame) {
			changed = true
		}
	}

	var err error
	switch {
	case c.closing:
	case changed:
		err = c.Redraw()
	default:
		err = c.Render()
	}
	return errors.Join(err, c.leave())
}

func (c *Composite) advanceTweens(dt float32) bool {
	changed := false
	n := 0
	for _, t := range c.tweens {
		if t.Update(dt) {
			changed = true
		}
		if !t.Done {
			c.tweens[n] = t
			n++
		}
	}
	clear(c.tweens[n:])
	c.tweens = c.tweens[:n]
	return changed
}
