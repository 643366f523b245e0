package paint

import "periph.io/x/devices/v3/ssd1683/image1bit"

// Char draws ch with its top-left corner at (x, y).
//
// The whole glyph cell is painted: set bits in c, clear bits in c.Inverse().
// Unsupported sizes and characters outside the font draw nothing.
func Char(dst Plotter, x, y int, ch byte, size FontSize, c image1bit.Color) {
	f := size.Font()
	if f == nil {
		return
	}
	drawGlyph(dst, x, y, f, ch, c)
}

func drawGlyph(dst Plotter, x, y int, f *Font, ch byte, c image1bit.Color) {
	glyph := f.Glyph(ch)
	if glyph == nil {
		return
	}
	bg := c.Inverse()
	x0, y0 := x, y
	for _, b := range glyph {
		for row := 0; row < 8; row++ {
			if b&0x01 != 0 {
				dst.SetPixel(x, y0+row, c)
			} else {
				dst.SetPixel(x, y0+row, bg)
			}
			b >>= 1
		}
		x++
		if x-x0 == f.columns {
			x = x0
			y0 += 8
		}
	}
}

// String draws s one byte per character, advancing by the font's Advance.
// Text is not wrapped.
func String(dst Plotter, x, y int, s string, size FontSize, c image1bit.Color) {
	f := size.Font()
	if f == nil {
		return
	}
	for i := 0; i < len(s); i++ {
		drawGlyph(dst, x, y, f, s[i], c)
		x += f.advance
	}
}

// Integer draws the low digits decimal digits of v, zero padded.
// v must not be negative.
func Integer(dst Plotter, x, y, v, digits int, size FontSize, c image1bit.Color) {
	step := int(size) / 2
	if size == Size8 {
		step += 2
	}
	for t := 0; t < digits; t++ {
		d := v / pow10(digits-t-1) % 10
		Char(dst, x+step*t, y, byte('0'+d), size, c)
	}
}

// FixedPoint draws v with precision decimals as digits digits and a decimal
// point. The point takes a character slot of its own, so FixedPoint(23.5, 4, 1)
// draws "023.5". v is truncated, not rounded, and must not be negative.
func FixedPoint(dst Plotter, x, y int, v float64, digits, precision int, size FontSize, c image1bit.Color) {
	w := int(size) / 2
	fixedPoint(dst, x, y, v, digits, precision, size, c, '.', x+(digits-precision)*w, y)
}

// Clock is FixedPoint with a colon separator, e.g. Clock(12.30, 4, 2) draws "12:30".
// The colon is centred in its slot and raised by 6 pixels.
func Clock(dst Plotter, x, y int, v float64, digits, precision int, size FontSize, c image1bit.Color) {
	w := int(size) / 2
	fixedPoint(dst, x, y, v, digits, precision, size, c, ':', x+(digits-precision)*w+(w/2-2), y-6)
}

func fixedPoint(dst Plotter, x, y int, v float64, digits, precision int, size FontSize, c image1bit.Color, sep byte, sx, sy int) {
	w := int(size) / 2
	n := int(v * float64(pow10(precision)))
	for t := 0; t < digits; t++ {
		d := n / pow10(digits-t-1) % 10
		if t == digits-precision {
			Char(dst, sx, sy, sep, size, c)
			t++
			digits++
		}
		Char(dst, x+t*w, y, byte('0'+d), size, c)
	}
}

func pow10(n int) int {
	r := 1
	for ; n > 0; n-- {
		r *= 10
	}
	return r
}
