package forecast

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"periph.io/x/devices/v3/ssd1683/icons"
	"periph.io/x/devices/v3/ssd1683/image1bit"
	"periph.io/x/devices/v3/ssd1683/paint"
)

func newPanel() *image1bit.Canvas {
	c := image1bit.New(make([]byte, image1bit.BufferSize(800, 272)), 800, 272, image1bit.Rotate0, image1bit.White)
	c.Clear(image1bit.White)
	return c
}

func separators(c *image1bit.Canvas) {
	for i := 1; i < Count; i++ {
		paint.Line(c, 2+158*i, 0, 2+158*i, 271, image1bit.Black)
	}
}

func TestRenderEmpty(t *testing.T) {
	got := newPanel()
	Render(got, [Count]Record{}, Celsius)

	want := newPanel()
	separators(want)
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("empty forecast drew more than the separators")
	}
	for _, x := range []int{160, 318, 476, 634} {
		for _, y := range []int{0, 136, 271} {
			if got.Pixel(x, y) != image1bit.Black {
				t.Errorf("separator pixel (%d, %d) is white", x, y)
			}
		}
	}
}

func TestRenderColumns(t *testing.T) {
	tm := time.Date(2025, 6, 12, 7, 30, 0, 0, time.UTC)
	var recs [Count]Record
	recs[0] = Record{Time: tm, Icon: icons.Rain, Temperature: 14.6, Pop: 0.5}
	recs[2] = Record{Time: tm.Add(6 * time.Hour), Icon: icons.Snow, Temperature: -3.2, Pop: 0.254}

	got := newPanel()
	Render(got, recs, Fahrenheit)

	want := newPanel()
	paint.String(want, 26, 18, " 7:30 ", paint.Size44, image1bit.Black)
	paint.Bitmap(want, 16, 60, 128, 128, icons.Rain.Bitmap(), image1bit.White)
	paint.String(want, 30, 190, " 15 F", paint.Size36, image1bit.Black)
	paint.Circle(want, 100, 201, 2, image1bit.Black, false)
	paint.Circle(want, 100, 201, 3, image1bit.Black, false)

	paint.String(want, 342, 18, "13:30 ", paint.Size44, image1bit.Black)
	paint.Bitmap(want, 332, 60, 128, 128, icons.Snow.Bitmap(), image1bit.White)
	paint.String(want, 346, 190, " -3 F", paint.Size36, image1bit.Black)
	paint.Circle(want, 416, 201, 2, image1bit.Black, false)
	paint.Circle(want, 416, 201, 3, image1bit.Black, false)
	paint.String(want, 346, 225, " 25 %", paint.Size36, image1bit.Black)

	separators(want)
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("rendered panel differs from the expected layout")
	}
}

func TestRenderFirstColumnHasNoPop(t *testing.T) {
	recs := [Count]Record{{Time: time.Unix(0, 0).UTC(), Icon: icons.Mist, Pop: 1}}
	c := newPanel()
	Render(c, recs, Celsius)
	for y := 230; y < 265; y++ {
		for x := 30; x < 120; x++ {
			if c.Pixel(x, y) != image1bit.White {
				t.Fatalf("pixel (%d, %d) drawn in the first column's precipitation row", x, y)
			}
		}
	}
}

func TestRenderError(t *testing.T) {
	got := newPanel()
	RenderError(got, "connection refused")

	want := newPanel()
	paint.String(want, 30, 30, "Error:", paint.Size24, image1bit.Black)
	paint.String(want, 30, 70, "connection refused", paint.Size8, image1bit.Black)
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("RenderError layout differs")
	}
}

func TestRenderErrorWraps(t *testing.T) {
	msg := strings.Repeat("W", 200)
	got := newPanel()
	RenderError(got, msg)

	want := newPanel()
	paint.String(want, 30, 30, "Error:", paint.Size24, image1bit.Black)
	paint.String(want, 30, 70, msg[:127], paint.Size8, image1bit.Black)
	paint.String(want, 30, 80, msg[127:], paint.Size8, image1bit.Black)
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("long message not wrapped at the visible width")
	}
	for y := 60; y < 272; y++ {
		for x := 0; x < 30; x++ {
			if got.Pixel(x, y) != image1bit.White {
				t.Fatalf("pixel (%d, %d) drawn in the left margin", x, y)
			}
		}
	}
}

func TestRenderErrorDropsOverflow(t *testing.T) {
	msg := strings.Repeat("W", 127*30)
	got := newPanel()
	RenderError(got, msg)

	want := newPanel()
	paint.String(want, 30, 30, "Error:", paint.Size24, image1bit.Black)
	for y := 70; y <= 260; y += 10 {
		paint.String(want, 30, y, msg[:127], paint.Size8, image1bit.Black)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("lines below the panel edge were drawn")
	}
}
