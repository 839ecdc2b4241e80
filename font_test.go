package lattice

import (
	"errors"
	"testing"
)

const testGlyphMap = `{
	"A": {"width": 5, "uv": [0, 0]},
	"B": {"width": 6, "uv": [5, 0]}
}`

func testFont(t *testing.T, opts BitmapFontOptions) *BitmapFont {
	t.Helper()
	if opts.TileHeight == 0 {
		opts.TileHeight = 10
	}
	f, err := LoadBitmapFont([]byte(testGlyphMap), opts)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLoadBitmapFontErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		opts BitmapFontOptions
		want error
	}{
		{"zero tile height", testGlyphMap, BitmapFontOptions{}, ErrInvalidArgument},
		{"multi-rune key", `{"AB": {"width": 1, "uv": [0, 0]}}`, BitmapFontOptions{TileHeight: 8}, ErrInvalidArgument},
		{"empty key", `{"": {"width": 1, "uv": [0, 0]}}`, BitmapFontOptions{TileHeight: 8}, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBitmapFont([]byte(tt.data), tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := LoadBitmapFont([]byte("{not json"), BitmapFontOptions{TileHeight: 8}); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestGlyphsMultiline(t *testing.T) {
	f := testFont(t, BitmapFontOptions{Texture: "font", TileSpacing: 1, LineSpacing: 2})
	mask := Color{1, 0, 0, 1}
	glyphs, size := f.Glyphs("AB?\nA", 2, mask)

	if len(glyphs) != 3 {
		t.Fatalf("glyphs = %d, want 3 (unknown skipped)", len(glyphs))
	}
	wantOffsets := []Vec2{{0, 0}, {12, 0}, {0, 24}}
	for i, w := range wantOffsets {
		if glyphs[i].Offset != w {
			t.Errorf("glyph %d offset = %v, want %v", i, glyphs[i].Offset, w)
		}
		if glyphs[i].Scale != (Vec2{2, 2}) || glyphs[i].ColorMask != mask {
			t.Errorf("glyph %d scale=%v mask=%v", i, glyphs[i].Scale, glyphs[i].ColorMask)
		}
	}
	if glyphs[1].UV != (Vec2{5, 0}) || glyphs[1].Size != (Vec2{6, 10}) {
		t.Errorf("B = %+v", glyphs[1])
	}
	if size != (Vec2{26, 48}) {
		t.Errorf("size = %v, want (26, 48)", size)
	}
}

func TestGlyphsCustomMetrics(t *testing.T) {
	f := testFont(t, BitmapFontOptions{
		TileSpacing:       1,
		CustomTileWidths:  map[string]float64{"A": 3},
		CustomTileOffsets: map[string]float64{"B": 2},
	})
	glyphs, size := f.Glyphs("AAB", 1, Color{})
	want := []float64{0, 4, 10}
	for i, w := range want {
		if glyphs[i].Offset.X != w {
			t.Errorf("glyph %d x = %v, want %v", i, glyphs[i].Offset.X, w)
		}
	}
	// 4 + 4 + (6 + 1); the B offset shifts the glyph, not the advance.
	if size.X != 15 {
		t.Errorf("width = %v, want 15", size.X)
	}
}

func TestGlyphsMonospace(t *testing.T) {
	f := testFont(t, BitmapFontOptions{TileWidth: 8})
	glyphs, size := f.Glyphs("AB", 1, Color{})
	if glyphs[1].Offset.X != 8 || size != (Vec2{16, 10}) {
		t.Errorf("B x = %v, size = %v", glyphs[1].Offset.X, size)
	}
	if _, size := f.Glyphs("", 1, Color{}); size != (Vec2{0, 10}) {
		t.Errorf("empty text size = %v, want one empty line", size)
	}
}

func TestGlyphsDoNotAliasCache(t *testing.T) {
	f := testFont(t, BitmapFontOptions{})
	glyphs, _ := f.Glyphs("A", 1, Color{})
	glyphs[0].Size = Vec2{99, 99}
	again, _ := f.Glyphs("A", 1, Color{})
	if again[0].Size != (Vec2{5, 10}) {
		t.Errorf("cached glyph modified: %v", again[0].Size)
	}
}

func TestNewBasicFont(t *testing.T) {
	f, atlas, err := NewBasicFont()
	if err != nil {
		t.Fatal(err)
	}
	if f.TextureKey() != BasicFontTexture {
		t.Errorf("TextureKey = %q", f.TextureKey())
	}
	if b := atlas.Bounds(); b.Dx() != 256 || b.Dy() != 256 {
		t.Errorf("atlas bounds = %v", b)
	}
	for _, r := range []rune{' ', 'A', 'z', '~'} {
		if !f.Has(r) {
			t.Errorf("missing %q", r)
		}
	}
	if f.Has('\t') || f.Has('é') {
		t.Error("non-printable or non-ASCII rune mapped")
	}

	glyphs, size := f.Glyphs("Hi", 1, Color{})
	if len(glyphs) != 2 || size != (Vec2{14, 13}) {
		t.Errorf("Hi: %d glyphs, size %v", len(glyphs), size)
	}

	// 'A' is glyph 33: column 33 of the first row of 7px cells.
	a, _ := f.Glyphs("A", 1, Color{})
	if a[0].UV != (Vec2{231, 0}) {
		t.Fatalf("A uv = %v, want (231, 0)", a[0].UV)
	}
	inked := false
	for y := 0; y < 13 && !inked; y++ {
		for x := 231; x < 238; x++ {
			if atlas.RGBAAt(x, y).A > 0 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("A cell is blank")
	}
}

func TestNewText(t *testing.T) {
	f := testFont(t, BitmapFontOptions{Texture: "font", TileSpacing: 1, LineSpacing: 2})
	c, err := NewComposite(Options{
		Renderer: newFakeRenderer(),
		Host:     newFakeHost(),
		Fonts:    map[string]Font{DefaultFontKey: f},
	})
	if err != nil {
		t.Fatal(err)
	}

	v, err := NewText(c, "AB", TextOptions{Layout: Layout{Name: "label", Alignment: TopLeft}})
	if err != nil {
		t.Fatal(err)
	}
	if v.Size() != (Vec2{13, 12}) {
		t.Errorf("size = %v, want (13, 12)", v.Size())
	}
	if v.Texture() == nil || v.Texture().Index != 1 {
		t.Errorf("texture = %+v", v.Texture())
	}
	if v.Text() != "AB" || len(v.Subcomponents()) != 2 {
		t.Errorf("text = %q with %d glyphs", v.Text(), len(v.Subcomponents()))
	}

	v.SetText("A\nB")
	if v.Text() != "A\nB" || v.Size() != (Vec2{7, 24}) {
		t.Errorf("after SetText: %q size %v", v.Text(), v.Size())
	}

	if _, err := NewText(c, "x", TextOptions{Font: "serif"}); !errors.Is(err, ErrUndefinedKey) {
		t.Errorf("unknown font: err = %v", err)
	}
	c.RegisterFont("lost", testFont(t, BitmapFontOptions{Texture: "missing"}))
	if _, err := NewText(c, "x", TextOptions{Font: "lost"}); !errors.Is(err, ErrUndefinedKey) {
		t.Errorf("unknown texture: err = %v", err)
	}

	plain := quad("plain", TopLeft, Vec2{}, Vec2{1, 1})
	plain.SetText("ignored")
	if plain.Text() != "" || len(plain.Subcomponents()) != 1 {
		t.Error("SetText changed a non-text visual")
	}
}
