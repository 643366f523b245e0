package paint

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// FontSize selects one of the built-in bitmap fonts by its nominal height.
type FontSize int

// Supported font sizes. Any other FontSize draws nothing.
const (
	Size8  FontSize = 8
	Size24 FontSize = 24
	Size36 FontSize = 36
	Size44 FontSize = 44
)

// Font returns the descriptor for s, or nil if s is not a supported size.
func (s FontSize) Font() *Font {
	switch s {
	case Size8:
		return font8
	case Size24:
		return font24
	case Size36:
		return font36
	case Size44:
		return font44
	}
	return nil
}

// Font is an immutable bitmap font covering printable ASCII.
//
// Each glyph is BytesPerGlyph bytes. Byte i is column i%Columns of the
// 8-pixel strip i/Columns; bit 0 is the top row of the strip.
type Font struct {
	size          FontSize
	columns       int
	bytesPerGlyph int
	advance       int
	first, last   byte
	glyphs        []byte
}

// Size returns the nominal size.
func (f *Font) Size() FontSize { return f.size }

// Columns returns the glyph width in pixels.
func (f *Font) Columns() int { return f.columns }

// Height returns the glyph height in pixels.
func (f *Font) Height() int { return f.bytesPerGlyph / f.columns * 8 }

// BytesPerGlyph returns the packed size of one glyph.
func (f *Font) BytesPerGlyph() int { return f.bytesPerGlyph }

// Advance returns the horizontal distance between characters drawn by String.
func (f *Font) Advance() int { return f.advance }

// Glyph returns the packed glyph for ch, or nil if the font does not cover it.
func (f *Font) Glyph(ch byte) []byte {
	if ch < f.first || ch > f.last {
		return nil
	}
	i := int(ch-f.first) * f.bytesPerGlyph
	return f.glyphs[i : i+f.bytesPerGlyph]
}

const (
	firstGlyph = ' '
	lastGlyph  = '~'
)

var (
	font8  = rasterizeProggy()
	font24 = rasterizeGoMono(Size24, 3)
	font36 = rasterizeGoMono(Size36, 5)
	font44 = rasterizeGoMono(Size44, 6)
)

// rasterizeGoMono renders Go Mono Bold into a font with size/2 columns and
// strips rows of 8 pixels.
func rasterizeGoMono(size FontSize, strips int) *Font {
	f, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		panic("paint: parsing gomonobold: " + err.Error())
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		// Go Mono advances 0.6em; 0.8 of the cell height keeps it inside size/2.
		Size:    float64(size) * 0.8,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic("paint: gomonobold face: " + err.Error())
	}
	defer face.Close()

	cols := int(size) / 2
	height := strips * 8
	m := face.Metrics()
	top := (height - m.Ascent.Ceil() - m.Descent.Ceil()) / 2
	if top < 0 {
		top = 0
	}
	baseline := top + m.Ascent.Ceil()

	fnt := newFont(size, cols, strips, cols)
	img := image.NewAlpha(image.Rect(0, 0, cols, height))
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for i := 0; i <= lastGlyph-firstGlyph; i++ {
		ch := rune(firstGlyph + i)
		clear(img.Pix)
		left := 0
		if adv, ok := face.GlyphAdvance(ch); ok {
			left = (cols - adv.Round()) / 2
		}
		d.Dot = fixed.P(left, baseline)
		d.DrawString(string(ch))
		pack(img, cols, strips, fnt.glyphs[i*fnt.bytesPerGlyph:])
	}
	return fnt
}

// rasterizeProggy renders the proggy TinySZ font into 6x8 cells.
func rasterizeProggy() *Font {
	const cols, baseline = 6, 6
	// Advance includes the 2 pixel gap Integer leaves after the narrowest font.
	fnt := newFont(Size8, cols, 1, int(Size8)/2+2)
	img := image.NewAlpha(image.Rect(0, 0, cols, 8))
	d := alphaDisplay{img}
	for i := 0; i <= lastGlyph-firstGlyph; i++ {
		clear(img.Pix)
		tinyfont.DrawChar(d, &proggy.TinySZ8pt7b, 0, baseline, rune(firstGlyph+i), color.RGBA{A: 0xFF})
		pack(img, cols, 1, fnt.glyphs[i*fnt.bytesPerGlyph:])
	}
	return fnt
}

func newFont(size FontSize, cols, strips, advance int) *Font {
	bpg := cols * strips
	return &Font{
		size:          size,
		columns:       cols,
		bytesPerGlyph: bpg,
		advance:       advance,
		first:         firstGlyph,
		last:          lastGlyph,
		glyphs:        make([]byte, bpg*(lastGlyph-firstGlyph+1)),
	}
}

// pack converts img into column-major strips, least significant bit on top.
func pack(img *image.Alpha, cols, strips int, dst []byte) {
	for s := 0; s < strips; s++ {
		for x := 0; x < cols; x++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				if img.AlphaAt(x, s*8+bit).A >= 0x80 {
					b |= 1 << uint(bit)
				}
			}
			dst[s*cols+x] = b
		}
	}
}

// alphaDisplay lets tinyfont draw into an image.Alpha.
type alphaDisplay struct {
	img *image.Alpha
}

var _ drivers.Displayer = alphaDisplay{}

func (d alphaDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d alphaDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.img.SetAlpha(int(x), int(y), color.Alpha{A: c.A})
}

func (d alphaDisplay) Display() error {
	return nil
}
