package lattice

import (
	"fmt"
	"sort"
	"strconv"
)

// Host is the windowing environment a Composite runs in.
type Host interface {
	// Viewport returns the drawable size in device pixels.
	Viewport() Vec2
	// Scale returns the GUI scale factor. GUI pixels are device pixels
	// divided by Scale.
	Scale() float64
	// Parameter returns a named host parameter. Unknown keys wrap
	// ErrUndefinedKey.
	Parameter(key string) (string, error)
	// AddInputListener subscribes fn to every input event the host produces.
	AddInputListener(fn func(ev Event))
}

// Well-known host parameters.
const (
	ParamCurrentScale = "current_scale"
	ParamFontPath     = "font_path"
	ParamShaderPath   = "shader_path"
	ParamTexturePath  = "texture_path"
)

// Params is a fixed set of named string parameters. Only keys present at
// construction can be read or written.
type Params struct {
	values map[string]string
}

// NewParams creates a parameter set holding the well-known keys, each set to
// "" except current_scale which starts at "1", plus any extra keys given.
func NewParams(extra ...string) *Params {
	p := &Params{values: map[string]string{
		ParamCurrentScale: "1",
		ParamFontPath:     "",
		ParamShaderPath:   "",
		ParamTexturePath:  "",
	}}
	for _, key := range extra {
		p.values[key] = ""
	}
	return p
}

// Get returns the value of key.
func (p *Params) Get(key string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return "", fmt.Errorf("lattice: parameter %q: %w", key, ErrUndefinedKey)
	}
	return v, nil
}

// Set updates the value of an existing key.
func (p *Params) Set(key, value string) error {
	if _, ok := p.values[key]; !ok {
		return fmt.Errorf("lattice: parameter %q: %w", key, ErrUndefinedKey)
	}
	p.values[key] = value
	return nil
}

// Float returns the value of key parsed as a float.
func (p *Params) Float(key string) (float64, error) {
	s, err := p.Get(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("lattice: parameter %q: %w", key, err)
	}
	return f, nil
}

// Keys returns the defined keys, sorted.
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
