package lattice

import (
	"errors"
	"image/color"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets, sizes and scales
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Div returns the component-wise quotient of v and o.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Floor rounds both components toward negative infinity.
func (v Vec2) Floor() Vec2 { return Vec2{math.Floor(v.X), math.Floor(v.Y)} }

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default color mask (no modification).
var ColorWhite = Color{1, 1, 1, 1}

// isZero reports the zero-color sentinel, which renders as opaque white.
func (c Color) isZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0
}

// quantize maps the color to 8-bit channels, rounding and clamping.
func (c Color) quantize() [4]uint8 {
	if c.isZero() {
		return [4]uint8{255, 255, 255, 255}
	}
	return [4]uint8{channel8(c.R), channel8(c.G), channel8(c.B), channel8(c.A)}
}

// toRGBA converts to a premultiplied color.RGBA. The zero color maps to
// opaque white.
func (c Color) toRGBA() color.RGBA {
	if c.isZero() {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{R: channel8(c.R * c.A), G: channel8(c.G * c.A), B: channel8(c.B * c.A), A: channel8(c.A)}
}

func channel8(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The far edges are exclusive so that adjacent rectangles never both match.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Error kinds. Every error returned by this package wraps one of these; test
// with errors.Is.
var (
	// ErrInvalidArgument reports a malformed value such as an unknown
	// alignment code.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState reports an operation that is not allowed in the current
	// state, e.g. popping an empty layer stack.
	ErrIllegalState = errors.New("illegal state")
	// ErrUndefinedKey reports a missing texture, font or parameter.
	ErrUndefinedKey = errors.New("undefined key")
	// ErrBackendUnavailable reports that the renderer has no usable backend.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrNoComponent reports a layer whose build step returned no component.
	ErrNoComponent = errors.New("layer built no component")
	// ErrNoHandler reports a declared event name with no matching handler.
	ErrNoHandler = errors.New("no handler for declared event")
	// ErrNilTexture reports a visual reaching the batch builder without a
	// bound texture.
	ErrNilTexture = errors.New("visual has no texture")
)
