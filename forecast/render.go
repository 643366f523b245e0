package forecast

import (
	"fmt"
	"math"

	"periph.io/x/devices/v3/ssd1683/icons"
	"periph.io/x/devices/v3/ssd1683/image1bit"
	"periph.io/x/devices/v3/ssd1683/paint"
)

const (
	// ColumnWidth is the width of one forecast column in pixels.
	ColumnWidth = 158

	panelWidth  = 800
	panelHeight = 272
	errorX      = 30
)

// Render draws the forecast columns on a cleared 800x272 white canvas.
// Empty records leave their column blank; the first column has no
// precipitation line.
func Render(dst paint.Plotter, recs [Count]Record, unit Unit) {
	for i, r := range recs {
		if r.Empty() {
			continue
		}
		bx := ColumnWidth * i

		paint.String(dst, 26+bx, 18, FormatTime(r.Time)+" ", paint.Size44, image1bit.Black)

		if bmp := r.Icon.Bitmap(); bmp != nil {
			paint.Bitmap(dst, 16+bx, 60, icons.Size, icons.Size, bmp, image1bit.White)
		}

		temp := fmt.Sprintf("%3d %s", int(math.Round(r.Temperature)), unit.Symbol())
		paint.String(dst, 30+bx, 190, temp, paint.Size36, image1bit.Black)
		// Degree sign.
		paint.Circle(dst, 100+bx, 201, 2, image1bit.Black, false)
		paint.Circle(dst, 100+bx, 201, 3, image1bit.Black, false)

		if i != 0 {
			pop := fmt.Sprintf("%3d %%", int(math.Round(100*r.Pop)))
			paint.String(dst, 30+bx, 225, pop, paint.Size36, image1bit.Black)
		}
	}

	for i := 1; i < Count; i++ {
		x := 2 + ColumnWidth*i
		paint.Line(dst, x, 0, x, 271, image1bit.Black)
	}
}

// RenderError draws msg under an "Error:" heading. The message wraps at the
// visible panel width; lines past the bottom edge are dropped.
func RenderError(dst paint.Plotter, msg string) {
	paint.String(dst, errorX, 30, "Error:", paint.Size24, image1bit.Black)

	f := paint.Size8.Font()
	perLine := (panelWidth - image1bit.SeamWidth - errorX) / f.Advance()
	for y := 70; msg != "" && y+f.Height() <= panelHeight; y += f.Height() + 2 {
		n := min(perLine, len(msg))
		paint.String(dst, errorX, y, msg[:n], paint.Size8, image1bit.Black)
		msg = msg[n:]
	}
}
