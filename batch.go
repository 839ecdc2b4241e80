package lattice

import "fmt"

// Per-instance strides of the Batch arrays.
const (
	StrideWorld = 9 // column-major 3x3 world matrix
	StrideAtlas = 9 // column-major 3x3 atlas matrix
	StrideLayer = 1 // atlas layer index
	StrideColor = 4 // RGBA, 0-255
)

// QuadFan is the unit quad every instance is drawn from, as a 4-vertex
// triangle fan. Each instance maps it through its world matrix for the
// destination and through its atlas matrix for the texture coordinates.
var QuadFan = [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// DefaultTileSize is the size of one atlas layer in pixels.
var DefaultTileSize = Vec2{256, 256}

// Batch is the per-instance arena filled from a render queue. It is owned by
// a renderer and reused across frames; the arrays grow on demand and are
// never shrunk.
type Batch struct {
	World  []float32
	Atlas  []float32
	Layers []uint8
	Colors []uint8
	Count  int
}

// grow makes room for n instances.
func (b *Batch) grow(n int) {
	b.World = growFloats(b.World, n*StrideWorld)
	b.Atlas = growFloats(b.Atlas, n*StrideAtlas)
	b.Layers = growBytes(b.Layers, n*StrideLayer)
	b.Colors = growBytes(b.Colors, n*StrideColor)
}

func growFloats(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n)
	}
	return s[:n]
}

func growBytes(s []uint8, n int) []uint8 {
	if cap(s) < n {
		return make([]uint8, n)
	}
	return s[:n]
}

// Build fills the batch with one instance per subcomponent of queue, in
// queue order and subcomponent order. n must equal the total subcomponent
// count of queue. tile is the size of one atlas layer.
func (b *Batch) Build(queue []*Visual, n int, tile Vec2) error {
	if tile.X <= 0 || tile.Y <= 0 {
		return fmt.Errorf("lattice: batch tile size %v: %w", tile, ErrInvalidArgument)
	}
	b.grow(n)
	b.Count = 0

	k := 0
	for _, v := range queue {
		if len(v.subcomponents) == 0 {
			continue
		}
		if v.texture == nil {
			return fmt.Errorf("lattice: batch %q (id %d): %w", v.name, v.id, ErrNilTexture)
		}
		if v.texture.Index < 0 || v.texture.Index > 255 {
			return fmt.Errorf("lattice: batch %q (id %d): texture layer %d out of range: %w",
				v.name, v.id, v.texture.Index, ErrInvalidArgument)
		}
		layer := uint8(v.texture.Index)
		for i := range v.subcomponents {
			if k >= n {
				return fmt.Errorf("lattice: batch overflow at %q (id %d), %d instances expected: %w",
					v.name, v.id, n, ErrIllegalState)
			}
			sub := &v.subcomponents[i]

			world := translateScale(v.position.Add(sub.Offset), sub.Size.Mul(sub.effectiveScale()))
			atlas := translateScale(sub.UV.Div(tile), sub.Size.Div(tile))
			copy(b.World[k*StrideWorld:], world[:])
			copy(b.Atlas[k*StrideAtlas:], atlas[:])
			b.Layers[k] = layer
			rgba := sub.ColorMask.quantize()
			copy(b.Colors[k*StrideColor:], rgba[:])
			k++
		}
	}
	if k != n {
		return fmt.Errorf("lattice: batch wrote %d instances, %d expected: %w", k, n, ErrIllegalState)
	}
	b.Count = k
	return nil
}

// Instance returns the matrices, layer and color of instance i.
func (b *Batch) Instance(i int) (world, atlas Mat3, layer uint8, rgba [4]uint8) {
	copy(world[:], b.World[i*StrideWorld:(i+1)*StrideWorld])
	copy(atlas[:], b.Atlas[i*StrideAtlas:(i+1)*StrideAtlas])
	copy(rgba[:], b.Colors[i*StrideColor:(i+1)*StrideColor])
	return world, atlas, b.Layers[i], rgba
}

// Mat3 is a column-major 3x3 affine matrix:
//
//	| m0 m3 m6 |
//	| m1 m4 m7 |
//	| m2 m5 m8 |
type Mat3 [9]float32

// translateScale returns translate(t) * scale(s).
func translateScale(t, s Vec2) Mat3 {
	return Mat3{
		float32(s.X), 0, 0,
		0, float32(s.Y), 0,
		float32(t.X), float32(t.Y), 1,
	}
}

// Apply transforms the point p by m.
func (m Mat3) Apply(p Vec2) (float32, float32) {
	x, y := float32(p.X), float32(p.Y)
	return m[0]*x + m[3]*y + m[6], m[1]*x + m[4]*y + m[7]
}
