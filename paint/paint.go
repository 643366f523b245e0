// Package paint draws lines, shapes, bitmaps and text onto a 1-bit canvas.
//
// Every function is built on a single primitive, Plotter.SetPixel, which
// *image1bit.Canvas implements. Drawing never allocates and never fails:
// unsupported font sizes and characters are ignored, and coordinates are the
// caller's responsibility.
//
// Typical frame:
//
//	c := image1bit.New(buf, 800, 272, image1bit.Rotate0, image1bit.White)
//	c.Clear(image1bit.White)
//	paint.Line(c, 0, 0, 799, 271, image1bit.Black)
//	paint.String(c, 10, 10, "12:00", paint.Size24, image1bit.Black)
package paint

import "periph.io/x/devices/v3/ssd1683/image1bit"

// Plotter is the pixel primitive the renderer draws through.
type Plotter interface {
	SetPixel(x, y int, c image1bit.Color)
}

var _ Plotter = (*image1bit.Canvas)(nil)

// Line draws a line from (x0, y0) to (x1, y1), both ends included.
//
// Reversing the endpoints plots the same set of pixels: the line is always
// traced from the endpoint with the smaller x (then y).
func Line(dst Plotter, x0, y0, x1, y1 int, c image1bit.Color) {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		dst.SetPixel(x, y, c)
		e2 := 2 * err
		if e2 >= dy {
			if x == x1 {
				break
			}
			err += dy
			x += sx
		}
		if e2 <= dx {
			if y == y1 {
				break
			}
			err += dx
			y += sy
		}
	}
}

// Rectangle draws the rectangle with corners (x0, y0) and (x1, y1).
//
// A filled rectangle covers [x0, x1) x [y0, y1). An outline is the four edges
// from (x0, y0) to (x1, y1) inclusive.
func Rectangle(dst Plotter, x0, y0, x1, y1 int, c image1bit.Color, filled bool) {
	if filled {
		if x1 <= x0 {
			return
		}
		for y := y0; y < y1; y++ {
			Line(dst, x0, y, x1-1, y, c)
		}
		return
	}
	Line(dst, x0, y0, x1, y0, c)
	Line(dst, x0, y0, x0, y1, c)
	Line(dst, x1, y1, x1, y0, c)
	Line(dst, x1, y1, x0, y1, c)
}

// Circle draws a circle of radius r centred on (cx, cy) with the midpoint
// algorithm.
//
// The filled variant sweeps each octant from the diagonal to the rim, so
// interior pixels are written several times.
func Circle(dst Plotter, cx, cy, r int, c image1bit.Color, filled bool) {
	x, y := 0, r
	err := 3 - 2*r
	for x <= y {
		if filled {
			for i := x; i <= y; i++ {
				plot8(dst, cx, cy, x, i, c)
			}
		} else {
			plot8(dst, cx, cy, x, y, c)
		}
		if err < 0 {
			err += 4*x + 6
		} else {
			err += 10 + 4*(x-y)
			y--
		}
		x++
	}
}

// plot8 plots the eight points symmetric to (cx+x, cy+y) about the centre.
func plot8(dst Plotter, cx, cy, x, y int, c image1bit.Color) {
	dst.SetPixel(cx+x, cy+y, c)
	dst.SetPixel(cx-x, cy+y, c)
	dst.SetPixel(cx-y, cy+x, c)
	dst.SetPixel(cx-y, cy-x, c)
	dst.SetPixel(cx-x, cy-y, c)
	dst.SetPixel(cx+x, cy-y, c)
	dst.SetPixel(cx+y, cy-x, c)
	dst.SetPixel(cx+y, cy+x, c)
}

// Bitmap blits a packed 1-bit image with its top-left corner at (x, y).
//
// Rows are w pixels padded to whole bytes, most significant bit first. A set
// bit paints bg.Inverse(), a clear bit paints bg; padding bits are skipped.
func Bitmap(dst Plotter, x, y, w, h int, bmp []byte, bg image1bit.Color) {
	rowBytes := (w + 7) / 8
	ink := bg.Inverse()
	for row := 0; row < h; row++ {
		line := bmp[row*rowBytes : (row+1)*rowBytes]
		for i, b := range line {
			for bit := 0; bit < 8; bit++ {
				col := i*8 + bit
				if col >= w {
					break
				}
				if b&(0x80>>uint(bit)) != 0 {
					dst.SetPixel(x+col, y+row, ink)
				} else {
					dst.SetPixel(x+col, y+row, bg)
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
