package lattice

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Font turns text into glyph subcomponents sampling one atlas texture.
type Font interface {
	// Glyphs lays out text, which may contain "\n", at the given scale and
	// color mask. It returns one subcomponent per known glyph and the
	// aggregate size of the laid-out block. Unknown glyphs are skipped.
	Glyphs(text string, size float64, mask Color) ([]Subcomponent, Vec2)
	// TextureKey names the atlas texture holding the glyph tiles.
	TextureKey() string
}

// BitmapFontOptions configures a BitmapFont.
type BitmapFontOptions struct {
	// Texture is the atlas texture key the glyph UVs refer to.
	Texture string
	// TileHeight is the height of every glyph tile in pixels.
	TileHeight float64
	// TileWidth, if non-zero, makes the font monospaced: every glyph
	// advances by TileWidth regardless of its mapped width.
	TileWidth float64
	// TileSpacing is added after every glyph's advance.
	TileSpacing float64
	// LineSpacing is added after every line's tile height.
	LineSpacing float64
	// CustomTileWidths overrides the advance of individual glyphs.
	CustomTileWidths map[string]float64
	// CustomTileOffsets shifts individual glyphs horizontally within their
	// advance.
	CustomTileOffsets map[string]float64
}

// glyphEntry is one record of a JSON glyph map.
type glyphEntry struct {
	Width float64    `json:"width"`
	UV    [2]float64 `json:"uv"`
}

// BitmapFont is a font backed by a glyph map: each glyph is a fixed-height
// tile of the atlas at a known UV.
type BitmapFont struct {
	opts   BitmapFontOptions
	glyphs map[rune]Subcomponent
}

// LoadBitmapFont parses a JSON glyph map of the form
//
//	{"A": {"width": 7, "uv": [0, 0]}, ...}
//
// Keys must be single characters.
func LoadBitmapFont(glyphMap []byte, opts BitmapFontOptions) (*BitmapFont, error) {
	var raw map[string]glyphEntry
	if err := json.Unmarshal(glyphMap, &raw); err != nil {
		return nil, fmt.Errorf("lattice: parse glyph map: %w", err)
	}
	if opts.TileHeight <= 0 {
		return nil, fmt.Errorf("lattice: bitmap font tile height %v: %w", opts.TileHeight, ErrInvalidArgument)
	}
	f := &BitmapFont{opts: opts, glyphs: make(map[rune]Subcomponent, len(raw))}
	for key, e := range raw {
		r, ok := singleRune(key)
		if !ok {
			return nil, fmt.Errorf("lattice: glyph map key %q is not a single character: %w", key, ErrInvalidArgument)
		}
		f.glyphs[r] = Subcomponent{
			Size: Vec2{e.Width, opts.TileHeight},
			UV:   Vec2{e.UV[0], e.UV[1]},
		}
	}
	return f, nil
}

func singleRune(s string) (rune, bool) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// TextureKey implements Font.
func (f *BitmapFont) TextureKey() string { return f.opts.Texture }

// LineHeight returns the unscaled advance between lines.
func (f *BitmapFont) LineHeight() float64 { return f.opts.TileHeight + f.opts.LineSpacing }

// Has reports whether the font maps r.
func (f *BitmapFont) Has(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

func (f *BitmapFont) advance(r rune, tile Subcomponent) float64 {
	if w, ok := f.opts.CustomTileWidths[string(r)]; ok {
		return w
	}
	if f.opts.TileWidth > 0 {
		return f.opts.TileWidth
	}
	return tile.Size.X
}

// Glyphs implements Font. Lines advance downward by LineHeight*size; the
// block is as wide as its widest line.
func (f *BitmapFont) Glyphs(text string, size float64, mask Color) ([]Subcomponent, Vec2) {
	var (
		glyphs []Subcomponent
		total  Vec2
	)
	for _, line := range strings.Split(text, "\n") {
		width := 0.0
		for _, r := range line {
			tile, ok := f.glyphs[r]
			if !ok {
				continue
			}
			g := tile.Clone()
			g.Offset = Vec2{width + f.opts.CustomTileOffsets[string(r)], total.Y}
			g.Scale = Vec2{size, size}
			g.ColorMask = mask
			glyphs = append(glyphs, g)

			width += (f.advance(r, tile) + f.opts.TileSpacing) * size
		}
		total.X = max(total.X, width)
		total.Y += f.LineHeight() * size
	}
	return glyphs, total
}

// TextOptions configures a text visual.
type TextOptions struct {
	Layout
	// Font is the key of a font registered with the composite. Empty selects
	// "default".
	Font string
	// Size is the glyph scale. Zero means 1.
	Size float64
	// Color is the glyph color mask. Zero means opaque white.
	Color Color
}

// textState remembers how a text visual was generated so its content can be
// replaced.
type textState struct {
	font  Font
	size  float64
	color Color
	text  string
}

// NewText creates a visual showing content in one of c's fonts. The visual's
// size is the aggregate size of the glyph block; opts.Size is the glyph scale.
func NewText(c *Composite, content string, opts TextOptions) (*Visual, error) {
	key := opts.Font
	if key == "" {
		key = DefaultFontKey
	}
	font, err := c.Font(key)
	if err != nil {
		return nil, err
	}
	tex, err := c.Texture(font.TextureKey())
	if err != nil {
		return nil, fmt.Errorf("lattice: text %q: %w", opts.Name, err)
	}
	scale := opts.Size
	if scale == 0 {
		scale = 1
	}
	v := NewVisual(VisualOptions{Layout: opts.Layout, Texture: tex})
	v.text = &textState{font: font, size: scale, color: opts.Color}
	v.SetText(content)
	return v, nil
}

// SetText regenerates the glyphs of a text visual and resizes it. It is a
// no-op on visuals not created by NewText. Call Composite.Redraw, or Enqueue
// and Render, to show the change.
func (v *Visual) SetText(content string) {
	t := v.text
	if t == nil {
		return
	}
	t.text = content
	glyphs, size := t.font.Glyphs(content, t.size, t.color)
	v.subcomponents = glyphs
	v.size = size
}

// Text returns the content of a text visual, or "" for other visuals.
func (v *Visual) Text() string {
	if v.text == nil {
		return ""
	}
	return v.text.text
}
