package lattice

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyRepeat decides when a held key emits key_repeat. Durations are ticks.
type keyRepeat struct {
	delay    int
	interval int
}

// fires reports whether a key held for d ticks repeats on this tick. The
// first repeat comes delay ticks after the press, then one every interval.
func (k keyRepeat) fires(d int) bool {
	if k.interval <= 0 || d < k.delay || d == 0 {
		return false
	}
	return (d-k.delay)%k.interval == 0
}

// inputState holds the between-tick state of the Ebitengine input poller.
type inputState struct {
	repeat    keyRepeat
	keys      []ebiten.Key
	touches   []ebiten.TouchID
	cursor    Vec2
	hasCursor bool
}

// poll reads the current Ebitengine input and emits events in a fixed
// order: key presses, repeats, releases, pointer moves, pointer downs.
// Cursor positions are divided by scale into GUI pixels.
func (s *inputState) poll(scale float64, emit func(Event)) {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		emit(KeyPressEvent{Code: k.String()})
	}
	s.keys = inpututil.AppendPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		if s.repeat.fires(inpututil.KeyPressDuration(k)) {
			emit(KeyRepeatEvent{Code: k.String()})
		}
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		emit(KeyReleaseEvent{Code: k.String()})
	}

	mx, my := ebiten.CursorPosition()
	p := toGUI(float64(mx), float64(my), scale)
	if !s.hasCursor || p != s.cursor {
		s.cursor = p
		s.hasCursor = true
		emit(PointerMoveEvent{X: p.X, Y: p.Y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		emit(PointerDownEvent{X: p.X, Y: p.Y})
	}

	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	for _, id := range s.touches {
		tx, ty := ebiten.TouchPosition(id)
		tp := toGUI(float64(tx), float64(ty), scale)
		emit(PointerDownEvent{X: tp.X, Y: tp.Y})
	}
}

// toGUI converts device pixels to whole GUI pixels.
func toGUI(x, y, scale float64) Vec2 {
	if scale <= 0 {
		scale = 1
	}
	return Vec2{math.Floor(x / scale), math.Floor(y / scale)}
}
