package lattice

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates up to 4 float64 values of a Visual simultaneously. Create
// one with TweenMargin, TweenSize or TweenColorMask and either register it
// with Composite.Animate, which advances it every frame tick and redraws,
// or call Update yourself. If the target visual is disposed, the tween
// stops immediately.
type Tween struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64)
	target *Visual
	Done   bool
}

// Update advances the tween by dt seconds and writes the values to the
// target. It reports whether anything was written.
func (t *Tween) Update(dt float32) bool {
	if t.Done {
		return false
	}
	if t.target != nil && t.target.disposed {
		t.Done = true
		return false
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.apply(vals)
	t.Done = allDone
	return true
}

// Target returns the animated visual.
func (t *Tween) Target() *Visual { return t.target }

// TweenMargin animates v's margin to the given value. Layout is recomputed
// on every step, so the visual slides between its aligned positions.
func TweenMargin(v *Visual, to Vec2, duration float32, fn ease.TweenFunc) *Tween {
	t := &Tween{count: 2, target: v}
	t.tweens[0] = gween.New(float32(v.margin.X), float32(to.X), duration, fn)
	t.tweens[1] = gween.New(float32(v.margin.Y), float32(to.Y), duration, fn)
	t.apply = func(vals [4]float64) {
		v.margin = Vec2{vals[0], vals[1]}
	}
	return t
}

// TweenSize animates v's size, stretching its first subcomponent along
// with it when v is a single-quad image.
func TweenSize(v *Visual, to Vec2, duration float32, fn ease.TweenFunc) *Tween {
	t := &Tween{count: 2, target: v}
	t.tweens[0] = gween.New(float32(v.size.X), float32(to.X), duration, fn)
	t.tweens[1] = gween.New(float32(v.size.Y), float32(to.Y), duration, fn)
	stretch := len(v.subcomponents) == 1 && v.subcomponents[0].Size == v.size
	t.apply = func(vals [4]float64) {
		v.size = Vec2{vals[0], vals[1]}
		if stretch && len(v.subcomponents) == 1 {
			v.subcomponents[0].Size = v.size
		}
	}
	return t
}

// TweenColorMask animates the color mask of every subcomponent of v from
// the mask of the first one to the target color.
func TweenColorMask(v *Visual, to Color, duration float32, fn ease.TweenFunc) *Tween {
	from := ColorWhite
	if len(v.subcomponents) > 0 && !v.subcomponents[0].ColorMask.isZero() {
		from = v.subcomponents[0].ColorMask
	}
	t := &Tween{count: 4, target: v}
	t.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	t.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	t.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	t.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	t.apply = func(vals [4]float64) {
		c := Color{vals[0], vals[1], vals[2], vals[3]}
		// Subcomponents may be shared with a font's glyph cache; write a
		// fresh slice.
		subs := make([]Subcomponent, len(v.subcomponents))
		for i, s := range v.subcomponents {
			s.ColorMask = c
			subs[i] = s
		}
		v.subcomponents = subs
	}
	return t
}
