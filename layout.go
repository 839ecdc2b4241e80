package lattice

import "fmt"

// Compute lays out c inside the rectangle starting at origin with the given
// parent size, then recurses into structural children using c's own position
// and size. Positions are floored to whole pixels.
//
// A component larger than its parent gets a negative slack and overflows;
// that is not an error.
func Compute(c Component, origin, parentSize Vec2) error {
	b := c.layoutBox()
	hx, vy, err := b.alignment.Factors()
	if err != nil {
		return fmt.Errorf("lattice: compute %q (id %d): %w", b.name, b.id, err)
	}

	slack := parentSize.Sub(b.size)
	displacement := Vec2{slack.X * hx, slack.Y * vy}

	// Far-edge components push the margin inward from the far edge; near-edge
	// and centered components add it as-is.
	margin := Vec2{b.margin.X * marginSign(hx), b.margin.Y * marginSign(vy)}

	b.position = origin.Add(displacement).Add(margin).Floor()
	b.computed = true

	if s, ok := c.(*Structural); ok {
		for _, child := range s.children {
			if err := Compute(child, b.position, b.size); err != nil {
				return err
			}
		}
	}
	return nil
}

func marginSign(factor float64) float64 {
	if factor == 1 {
		return -1
	}
	return 1
}

// walkVisuals calls fn for every Visual in the subtree rooted at c, depth
// first, in child order.
func walkVisuals(c Component, fn func(v *Visual) error) error {
	switch n := c.(type) {
	case *Visual:
		return fn(n)
	case *Structural:
		for _, child := range n.children {
			if err := walkVisuals(child, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
