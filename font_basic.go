package lattice

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BasicFontTexture is the texture key of the atlas built by NewBasicFont.
const BasicFontTexture = "basic"

// Printable ASCII range rasterized by NewBasicFont.
const (
	basicFirst = ' '
	basicLast  = '~'
)

// NewBasicFont rasterizes printable ASCII from basicfont.Face7x13 into a
// tile-sized atlas and returns a monospaced BitmapFont over it. Register the
// atlas with the renderer under BasicFontTexture.
func NewBasicFont() (*BitmapFont, *image.RGBA, error) {
	face := basicfont.Face7x13
	cellW, cellH := face.Advance, face.Height
	tileW, tileH := int(DefaultTileSize.X), int(DefaultTileSize.Y)
	cols := tileW / cellW
	rows := (basicLast - basicFirst + cols) / cols
	if rows*cellH > tileH {
		return nil, nil, fmt.Errorf("lattice: basic font needs %d rows of %dpx: %w", rows, cellH, ErrIllegalState)
	}

	atlas := image.NewRGBA(image.Rect(0, 0, tileW, tileH))
	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}

	f := &BitmapFont{
		opts: BitmapFontOptions{
			Texture:    BasicFontTexture,
			TileHeight: float64(cellH),
			TileWidth:  float64(cellW),
		},
		glyphs: make(map[rune]Subcomponent, basicLast-basicFirst+1),
	}
	for r := rune(basicFirst); r <= basicLast; r++ {
		i := int(r - basicFirst)
		x, y := (i%cols)*cellW, (i/cols)*cellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
		f.glyphs[r] = Subcomponent{
			Size: Vec2{float64(cellW), float64(cellH)},
			UV:   Vec2{float64(x), float64(y)},
		}
	}
	return f, atlas, nil
}
