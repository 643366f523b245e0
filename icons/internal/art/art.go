// Package art draws the weather icons with the paint primitives.
//
// The icons package compiles the result in as packed tables; run
// go generate in icons after changing a drawing.
package art

import (
	"math"

	"periph.io/x/devices/v3/ssd1683/image1bit"
	"periph.io/x/devices/v3/ssd1683/paint"
)

// Size is the width and height of every icon in pixels.
const Size = 128

// Names lists the icons in icons.Kind order.
var Names = []string{"ClearDay", "ClearNight", "Clouds", "Rain", "Thunderstorm", "Snow", "Mist"}

var draws = []func(*image1bit.Canvas){
	drawSun,
	drawMoon,
	func(c *image1bit.Canvas) { drawCloud(c, 0) },
	drawRain,
	drawThunderstorm,
	drawSnow,
	drawMist,
}

// Render draws every icon, in Names order, and returns it packed with a set
// bit for ink.
func Render() [][]byte {
	out := make([][]byte, len(draws))
	for k, draw := range draws {
		buf := make([]byte, image1bit.BufferSize(Size, Size))
		c := image1bit.New(buf, Size, Size, image1bit.Rotate0, image1bit.White)
		c.Clear(image1bit.White)
		draw(c)
		// The canvas stores ink as 0.
		for i := range buf {
			buf[i] = ^buf[i]
		}
		out[k] = buf
	}
	return out
}

// thickLine draws a line with a 3x3 square brush.
func thickLine(c *image1bit.Canvas, x0, y0, x1, y1 int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			paint.Line(c, x0+dx, y0+dy, x1+dx, y1+dy, image1bit.Black)
		}
	}
}

func drawSun(c *image1bit.Canvas) {
	const cx, cy = 64, 64
	paint.Circle(c, cx, cy, 26, image1bit.Black, true)
	for k := 0; k < 8; k++ {
		a := float64(k) * math.Pi / 4
		cos, sin := math.Cos(a), math.Sin(a)
		thickLine(c,
			cx+int(math.Round(36*cos)), cy+int(math.Round(36*sin)),
			cx+int(math.Round(54*cos)), cy+int(math.Round(54*sin)))
	}
}

func drawMoon(c *image1bit.Canvas) {
	paint.Circle(c, 58, 68, 42, image1bit.Black, true)
	paint.Circle(c, 80, 52, 36, image1bit.White, true)
	for _, s := range [][2]int{{96, 96}, {108, 20}, {20, 14}} {
		thickLine(c, s[0]-5, s[1], s[0]+5, s[1])
		thickLine(c, s[0], s[1]-5, s[0], s[1]+5)
	}
}

// cloudShape fills the cloud silhouette shifted down by oy and shrunk by inset.
func cloudShape(c *image1bit.Canvas, oy, inset int, col image1bit.Color) {
	paint.Circle(c, 40, 70+oy, 20-inset, col, true)
	paint.Circle(c, 66, 56+oy, 28-inset, col, true)
	paint.Circle(c, 92, 70+oy, 20-inset, col, true)
	paint.Rectangle(c, 40, 70+oy, 93, 91+oy-inset, col, true)
}

// drawCloud draws an outlined cloud with a 5 pixel rim.
func drawCloud(c *image1bit.Canvas, oy int) {
	cloudShape(c, oy, 0, image1bit.Black)
	cloudShape(c, oy, 5, image1bit.White)
}

func drawRain(c *image1bit.Canvas) {
	drawCloud(c, -16)
	for _, x := range []int{44, 64, 84} {
		thickLine(c, x+6, 84, x-2, 100)
		thickLine(c, x+2, 108, x-4, 120)
	}
}

func drawThunderstorm(c *image1bit.Canvas) {
	drawCloud(c, -16)
	thickLine(c, 70, 80, 56, 102)
	thickLine(c, 56, 102, 72, 102)
	thickLine(c, 72, 102, 58, 124)
}

func drawSnow(c *image1bit.Canvas) {
	drawCloud(c, -16)
	for _, p := range [][2]int{{42, 96}, {66, 110}, {90, 96}} {
		x, y := p[0], p[1]
		paint.Line(c, x-7, y, x+7, y, image1bit.Black)
		paint.Line(c, x, y-7, x, y+7, image1bit.Black)
		paint.Line(c, x-5, y-5, x+5, y+5, image1bit.Black)
		paint.Line(c, x-5, y+5, x+5, y-5, image1bit.Black)
	}
}

func drawMist(c *image1bit.Canvas) {
	rows := []struct{ x0, x1, y int }{
		{16, 112, 30},
		{28, 100, 48},
		{12, 96, 66},
		{32, 116, 84},
		{20, 104, 102},
	}
	for _, r := range rows {
		paint.Rectangle(c, r.x0, r.y, r.x1, r.y+8, image1bit.Black, true)
	}
}
