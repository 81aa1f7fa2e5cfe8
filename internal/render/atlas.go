package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

// Space glyphs drawn by hand into otherwise unused CP437 slots.
const (
	GlyphStar  byte = 7   // • small filled dot
	GlyphRing  byte = 9   // ○ ring outline
	GlyphHole  byte = 10  // ◙ dark disc inside a ring
	GlyphShade byte = 176 // ░ light shade
	GlyphBlock byte = 219 // █ full block
)

// FontAtlas holds the glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas builds the atlas at startup. Printable ASCII comes from
// basicfont.Face7x13; the space glyphs are rasterized here.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13

	for code := 0; code < 256; code++ {
		cx := (code % AtlasCols) * GlyphWidth
		cy := (code / AtlasCols) * GlyphHeight

		if code >= 32 && code <= 126 {
			drawFontGlyph(img, face, cx, cy, rune(code))
			continue
		}
		drawSpaceGlyph(img, cx, cy, byte(code))
	}

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}
	for code := 0; code < 256; code++ {
		x := (code % AtlasCols) * GlyphWidth
		y := (code / AtlasCols) * GlyphHeight
		a.glyphs[code] = eimg.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

// Glyph returns the cached sub-image for a character code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

// drawFontGlyph renders one ASCII character centered in its cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

func drawSpaceGlyph(img *image.NRGBA, cellX, cellY int, code byte) {
	w := color.NRGBA{255, 255, 255, 255}
	const c = 7.5 // cell center

	plot := func(inside func(d float64) bool) {
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				d := math.Hypot(float64(x)-c, float64(y)-c)
				if inside(d) {
					img.SetNRGBA(cellX+x, cellY+y, w)
				}
			}
		}
	}

	switch code {
	case GlyphStar:
		plot(func(d float64) bool { return d <= 2.5 })
	case GlyphRing:
		plot(func(d float64) bool { return d >= 5.5 && d <= 7 })
	case GlyphHole:
		plot(func(d float64) bool { return d >= 5 && d <= 7 || d <= 2 })
	case GlyphShade:
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				if (x+y)%4 == 0 {
					img.SetNRGBA(cellX+x, cellY+y, w)
				}
			}
		}
	case GlyphBlock:
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				img.SetNRGBA(cellX+x, cellY+y, w)
			}
		}
	}
}
