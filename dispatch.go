package lattice

import (
	"errors"
	"fmt"
)

// DispatchEvent delivers ev to every live listener registered under its
// name, most recently pushed layer first. Events with a pointer location
// only reach listeners whose visual contains the point. A name with no
// listeners is a no-op.
//
// Every listener runs even if an earlier one fails; the errors are joined.
// Push and Pop requested by listeners are applied after the outermost
// dispatch finishes, and their errors are joined too.
func (c *Composite) DispatchEvent(ev Event) error {
	if ev == nil {
		return fmt.Errorf("lattice: dispatch: nil event: %w", ErrInvalidArgument)
	}
	if c.disposed || c.closing {
		return fmt.Errorf("lattice: dispatch: composite disposed: %w", ErrIllegalState)
	}
	c.enter()
	invoked, err := c.dispatch(ev)
	if c.sink != nil {
		c.sink.EmitEvent(DispatchedEvent{Name: ev.Name(), Event: ev, Invoked: invoked})
	}
	return errors.Join(err, c.leave())
}

// snapshotBuf returns the reusable snapshot buffer for the current dispatch
// nesting level.
func (c *Composite) snapshotBuf() *[]Binding {
	level := c.busy - 1
	for len(c.snapBufs) <= level {
		c.snapBufs = append(c.snapBufs, nil)
	}
	return &c.snapBufs[level]
}

func (c *Composite) dispatch(ev Event) (int, error) {
	name := ev.Name()
	buf := c.snapshotBuf()
	bindings, ok := c.registry.Snapshot(name, *buf)
	*buf = bindings
	if !ok {
		return 0, nil
	}
	defer clear(bindings)

	pt, targeted := ev.(PointerTargeted)
	var point Vec2
	if targeted {
		point = pt.Point()
	}

	var (
		invoked int
		errs    []error
	)
	for _, b := range bindings {
		// Skip visuals popped by an earlier listener of this dispatch.
		if b.Owner != nil && b.Owner.disposed {
			continue
		}
		switch b.kind {
		case bindHover:
			if !targeted {
				continue
			}
			ran, err := c.hover(b.Owner, point)
			if ran {
				invoked++
			}
			if err != nil {
				errs = append(errs, err)
			}
		default:
			if targeted && b.Owner != nil && !b.Owner.Bounds().Contains(point.X, point.Y) {
				continue
			}
			invoked++
			if err := b.Listener(ev, c); err != nil {
				errs = append(errs, fmt.Errorf("lattice: %s listener on %q: %w", name, ownerName(b.Owner), err))
			}
		}
	}
	return invoked, errors.Join(errs...)
}

// hover updates v's hovered flag for a pointer at p and fires enter or leave
// on a transition.
func (c *Composite) hover(v *Visual, p Vec2) (bool, error) {
	r := v.reactive
	if r == nil {
		return false, nil
	}
	inside := v.Bounds().Contains(p.X, p.Y)
	if inside == r.hovered {
		return false, nil
	}
	r.hovered = inside

	var (
		fn Listener
		ev Event
	)
	if inside {
		fn, ev = r.OnPointerEnter, PointerEnterEvent{X: p.X, Y: p.Y}
	} else {
		fn, ev = r.OnPointerLeave, PointerLeaveEvent{X: p.X, Y: p.Y}
	}
	if fn == nil {
		return false, nil
	}
	if err := fn(ev, c); err != nil {
		return true, fmt.Errorf("lattice: %s listener on %q: %w", ev.Name(), v.name, err)
	}
	return true, nil
}

func ownerName(v *Visual) string {
	if v == nil {
		return ""
	}
	return v.name
}
