package lattice

// Subcomponent is the atomic drawable primitive of a Visual: one textured quad
// placed relative to the owning component's position.
//
// Offset, Size and UV are in GUI pixels; UV is the top-left corner of the
// quad's cell in the atlas layer. A zero Scale is treated as (1, 1) and a zero
// ColorMask as opaque white.
type Subcomponent struct {
	Offset    Vec2
	Size      Vec2
	Scale     Vec2
	UV        Vec2
	ColorMask Color
}

// Clone returns a copy of the subcomponent. Subcomponents handed to a draw
// batch are treated as immutable; regenerate content from clones.
func (s Subcomponent) Clone() Subcomponent {
	return s
}

// effectiveScale returns Scale with the zero value mapped to identity.
func (s *Subcomponent) effectiveScale() Vec2 {
	if s.Scale.X == 0 && s.Scale.Y == 0 {
		return Vec2{1, 1}
	}
	return s.Scale
}
