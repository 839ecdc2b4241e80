package lattice

import "fmt"

// Alignment selects one of nine positions of a component within its parent.
// The code packs a horizontal group (bits 3-5) and a vertical group
// (bits 0-2); exactly one bit must be set in each.
type Alignment uint8

// Horizontal and vertical groups. Combine one of each with |.
const (
	Top    Alignment = 0b000001
	Middle Alignment = 0b000010
	Bottom Alignment = 0b000100

	Left    Alignment = 0b001000
	HCenter Alignment = 0b010000
	Right   Alignment = 0b100000
)

// Presets.
const (
	TopLeft      = Top | Left
	TopCenter    = Top | HCenter
	TopRight     = Top | Right
	CenterLeft   = Middle | Left
	Center       = Middle | HCenter
	CenterRight  = Middle | Right
	BottomLeft   = Bottom | Left
	BottomCenter = Bottom | HCenter
	BottomRight  = Bottom | Right
)

const (
	horizontalMask Alignment = 0b111000
	verticalMask   Alignment = 0b000111
)

// groupFactor maps a single-bit group value (already shifted down to bits
// 0-2) to its displacement factor.
func groupFactor(bits Alignment) (float64, bool) {
	switch bits {
	case 0b001:
		return 0, true
	case 0b010:
		return 0.5, true
	case 0b100:
		return 1, true
	}
	return 0, false
}

// Factors decodes the alignment into its horizontal and vertical
// displacement factors, each one of 0, 0.5 or 1.
func (a Alignment) Factors() (hx, vy float64, err error) {
	if a&^(horizontalMask|verticalMask) != 0 {
		return 0, 0, fmt.Errorf("lattice: alignment %#06b: %w", uint8(a), ErrInvalidArgument)
	}
	hx, okX := groupFactor((a & horizontalMask) >> 3)
	vy, okY := groupFactor(a & verticalMask)
	if !okX || !okY {
		return 0, 0, fmt.Errorf("lattice: alignment %#06b: %w", uint8(a), ErrInvalidArgument)
	}
	return hx, vy, nil
}

// Valid reports whether a is one of the nine presets.
func (a Alignment) Valid() bool {
	_, _, err := a.Factors()
	return err == nil
}

var alignmentNames = map[Alignment]string{
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	CenterLeft:   "center-left",
	Center:       "center",
	CenterRight:  "center-right",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	BottomRight:  "bottom-right",
}

func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Alignment(%#06b)", uint8(a))
}
