package paint

import (
	"bytes"
	"image"
	"math"
	"testing"

	"periph.io/x/devices/v3/ssd1683/image1bit"
)

// recorder is a Plotter that remembers every pixel written.
type recorder struct {
	pix   map[image.Point]image1bit.Color
	calls int
}

func newRecorder() *recorder {
	return &recorder{pix: map[image.Point]image1bit.Color{}}
}

func (r *recorder) SetPixel(x, y int, c image1bit.Color) {
	r.pix[image.Pt(x, y)] = c
	r.calls++
}

func (r *recorder) equal(other *recorder) bool {
	if len(r.pix) != len(other.pix) {
		return false
	}
	for p, c := range r.pix {
		if oc, ok := other.pix[p]; !ok || oc != c {
			return false
		}
	}
	return true
}

func newCanvas(w, h int) *image1bit.Canvas {
	c := image1bit.New(make([]byte, image1bit.BufferSize(w, h)), w, h, image1bit.Rotate0, image1bit.White)
	c.Clear(image1bit.White)
	return c
}

// referenceLine is the textbook integer Bresenham loop, traced from the
// lexicographically smaller endpoint.
func referenceLine(x0, y0, x1, y1 int) map[image.Point]bool {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	dx, dy := x1-x0, y1-y0
	if dx < 0 {
		dx = -dx
	}
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	out := map[image.Point]bool{}
	for {
		out[image.Pt(x0, y0)] = true
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func TestLineMatchesReference(t *testing.T) {
	for x0 := -5; x0 <= 5; x0++ {
		for y0 := -5; y0 <= 5; y0++ {
			for x1 := -5; x1 <= 5; x1++ {
				for y1 := -5; y1 <= 5; y1++ {
					r := newRecorder()
					Line(r, x0, y0, x1, y1, image1bit.Black)
					want := referenceLine(x0, y0, x1, y1)
					if len(r.pix) != len(want) {
						t.Fatalf("Line(%d,%d,%d,%d) plotted %d pixels, want %d", x0, y0, x1, y1, len(r.pix), len(want))
					}
					for p := range want {
						if _, ok := r.pix[p]; !ok {
							t.Fatalf("Line(%d,%d,%d,%d) missing %v", x0, y0, x1, y1, p)
						}
					}
				}
			}
		}
	}
}

func TestLineSymmetry(t *testing.T) {
	for x0 := -6; x0 <= 6; x0 += 2 {
		for y0 := -6; y0 <= 6; y0 += 3 {
			for x1 := -20; x1 <= 20; x1 += 3 {
				for y1 := -20; y1 <= 20; y1 += 5 {
					a, b := newRecorder(), newRecorder()
					Line(a, x0, y0, x1, y1, image1bit.Black)
					Line(b, x1, y1, x0, y0, image1bit.Black)
					if !a.equal(b) {
						t.Fatalf("Line(%d,%d,%d,%d) differs from its reverse", x0, y0, x1, y1)
					}
				}
			}
		}
	}
}

func TestLineDegenerate(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"point", 3, 3, 3, 3, 1},
		{"horizontal", 0, 4, 9, 4, 10},
		{"horizontal reversed", 9, 4, 0, 4, 10},
		{"vertical", 2, 0, 2, 7, 8},
		{"vertical reversed", 2, 7, 2, 0, 8},
		{"diagonal", 0, 0, 5, 5, 6},
		{"steep", 0, 0, 2, 9, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder()
			Line(r, tt.x0, tt.y0, tt.x1, tt.y1, image1bit.Black)
			if len(r.pix) != tt.want {
				t.Errorf("plotted %d pixels, want %d", len(r.pix), tt.want)
			}
			if _, ok := r.pix[image.Pt(tt.x0, tt.y0)]; !ok {
				t.Error("start point not plotted")
			}
			if _, ok := r.pix[image.Pt(tt.x1, tt.y1)]; !ok {
				t.Error("end point not plotted")
			}
		})
	}
}

func TestRectangleFilled(t *testing.T) {
	const x0, y0, x1, y1 = 3, 2, 11, 7
	c := newCanvas(16, 10)
	Rectangle(c, x0, y0, x1, y1, image1bit.Black, true)

	for y := 0; y < 10; y++ {
		for x := 0; x < 16; x++ {
			inside := x >= x0 && x < x1 && y >= y0 && y < y1
			want := image1bit.White
			if inside {
				want = image1bit.Black
			}
			if got := c.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRectangleFilledEmpty(t *testing.T) {
	r := newRecorder()
	Rectangle(r, 4, 4, 4, 9, image1bit.Black, true)
	Rectangle(r, 4, 4, 9, 4, image1bit.Black, true)
	if len(r.pix) != 0 {
		t.Errorf("empty rectangles plotted %d pixels", len(r.pix))
	}
}

func TestRectangleOutline(t *testing.T) {
	const x0, y0, x1, y1 = 2, 1, 9, 6
	r := newRecorder()
	Rectangle(r, x0, y0, x1, y1, image1bit.Black, false)

	want := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			edge := x == x0 || x == x1 || y == y0 || y == y1
			_, got := r.pix[image.Pt(x, y)]
			if edge != got {
				t.Errorf("pixel (%d, %d) plotted = %v, want %v", x, y, got, edge)
			}
			if edge {
				want++
			}
		}
	}
	if len(r.pix) != want {
		t.Errorf("plotted %d pixels, want %d", len(r.pix), want)
	}
}

type octantPoint struct{ x, y int }

// midpointOctant lists the first octant of a midpoint circle, from the top of
// the circle to the diagonal.
func midpointOctant(r int) []octantPoint {
	var octant []octantPoint
	d := 3 - 2*r
	for x, y := 0, r; x <= y; x++ {
		octant = append(octant, octantPoint{x, y})
		if d < 0 {
			d += 4*x + 6
		} else {
			d += 10 + 4*(x-y)
			y--
		}
	}
	return octant
}

func mirror8(out map[image.Point]bool, x, y int) {
	for _, q := range []octantPoint{{x, y}, {y, x}} {
		for _, sx := range []int{-1, 1} {
			for _, sy := range []int{-1, 1} {
				out[image.Pt(sx*q.x, sy*q.y)] = true
			}
		}
	}
}

// referenceCircle mirrors the first octant into the full outline.
func referenceCircle(r int) map[image.Point]bool {
	out := map[image.Point]bool{}
	for _, p := range midpointOctant(r) {
		mirror8(out, p.x, p.y)
	}
	return out
}

// referenceFilledCircle sweeps every octant column from the diagonal to the
// rim and returns the covered set and the number of writes.
func referenceFilledCircle(r int) (map[image.Point]bool, int) {
	out := map[image.Point]bool{}
	writes := 0
	for _, p := range midpointOctant(r) {
		for i := p.x; i <= p.y; i++ {
			mirror8(out, p.x, i)
			writes += 8
		}
	}
	return out, writes
}

func TestCircleOutlineMatchesReference(t *testing.T) {
	for radius := 1; radius <= 50; radius++ {
		r := newRecorder()
		Circle(r, 0, 0, radius, image1bit.Black, false)
		want := referenceCircle(radius)
		if len(r.pix) != len(want) {
			t.Fatalf("r=%d: plotted %d points, want %d", radius, len(r.pix), len(want))
		}
		for p := range want {
			if _, ok := r.pix[p]; !ok {
				t.Fatalf("r=%d: missing %v", radius, p)
			}
			if d := math.Hypot(float64(p.X), float64(p.Y)); math.Abs(d-float64(radius)) >= 1 {
				t.Errorf("r=%d: %v is %.2f from the centre", radius, p, d)
			}
		}
	}
}

func TestCircleRadiusOne(t *testing.T) {
	r := newRecorder()
	Circle(r, 10, 10, 1, image1bit.Black, false)
	want := []image.Point{{9, 10}, {11, 10}, {10, 9}, {10, 11}}
	if len(r.pix) != len(want) {
		t.Fatalf("plotted %d points, want %d", len(r.pix), len(want))
	}
	for _, p := range want {
		if _, ok := r.pix[p]; !ok {
			t.Errorf("missing %v", p)
		}
	}
}

func TestCircleFilled(t *testing.T) {
	for radius := 1; radius <= 30; radius++ {
		outline, filled := newRecorder(), newRecorder()
		Circle(outline, 0, 0, radius, image1bit.Black, false)
		Circle(filled, 0, 0, radius, image1bit.Black, true)

		for p := range outline.pix {
			if _, ok := filled.pix[p]; !ok {
				t.Fatalf("r=%d: outline point %v not filled", radius, p)
			}
		}
		for y := -radius; y <= radius; y++ {
			for x := -radius; x <= radius; x++ {
				if x*x+y*y <= (radius-1)*(radius-1) {
					if _, ok := filled.pix[image.Pt(x, y)]; !ok {
						t.Fatalf("r=%d: interior point (%d, %d) not filled", radius, x, y)
					}
				}
			}
		}
		// Each row is a single run.
		minX, maxX, count := map[int]int{}, map[int]int{}, map[int]int{}
		for p := range filled.pix {
			if v, ok := minX[p.Y]; !ok || p.X < v {
				minX[p.Y] = p.X
			}
			if v, ok := maxX[p.Y]; !ok || p.X > v {
				maxX[p.Y] = p.X
			}
			count[p.Y]++
		}
		for y, n := range count {
			if maxX[y]-minX[y]+1 != n {
				t.Fatalf("r=%d: row %d has gaps", radius, y)
			}
		}
		if filled.calls <= len(filled.pix) {
			t.Errorf("r=%d: expected overlapping octant sweeps", radius)
		}
	}
}

func TestCircleFilledMatchesReference(t *testing.T) {
	for radius := 0; radius <= 50; radius++ {
		r := newRecorder()
		Circle(r, 0, 0, radius, image1bit.Black, true)
		want, writes := referenceFilledCircle(radius)
		if r.calls != writes {
			t.Errorf("r=%d: %d writes, want %d", radius, r.calls, writes)
		}
		if len(r.pix) != len(want) {
			t.Fatalf("r=%d: filled %d points, want %d", radius, len(r.pix), len(want))
		}
		for p := range want {
			if c, ok := r.pix[p]; !ok || c != image1bit.Black {
				t.Fatalf("r=%d: missing %v", radius, p)
			}
		}
	}
}

func TestBitmapAllBackgroundRoundTrip(t *testing.T) {
	fresh := newCanvas(64, 16)
	c := newCanvas(64, 16)
	Bitmap(c, 5, 3, 24, 10, make([]byte, 3*10), image1bit.White)
	if !bytes.Equal(c.Pix, fresh.Pix) {
		t.Error("all-background bitmap changed the buffer")
	}
}

func TestBitmapPattern(t *testing.T) {
	// 10x2 image, rows padded to 2 bytes.
	bmp := []byte{
		0b10000000, 0b01000000, // x=0 and x=9 set
		0b01010101, 0b11111111, // odd x in first byte, padding bits set
	}
	r := newRecorder()
	Bitmap(r, 100, 50, 10, 2, bmp, image1bit.White)

	if len(r.pix) != 20 {
		t.Fatalf("plotted %d pixels, want 20", len(r.pix))
	}
	want := map[image.Point]image1bit.Color{
		{100, 50}: image1bit.Black,
		{101, 50}: image1bit.White,
		{109, 50}: image1bit.Black,
		{100, 51}: image1bit.White,
		{101, 51}: image1bit.Black,
		{108, 51}: image1bit.Black,
		{109, 51}: image1bit.Black,
	}
	for p, c := range want {
		if r.pix[p] != c {
			t.Errorf("pixel %v = %v, want %v", p, r.pix[p], c)
		}
	}
	if _, ok := r.pix[image.Pt(110, 51)]; ok {
		t.Error("padding bit was plotted")
	}
}

func TestBitmapInvertedBackground(t *testing.T) {
	r := newRecorder()
	Bitmap(r, 0, 0, 8, 1, []byte{0xF0}, image1bit.Black)
	for x := 0; x < 8; x++ {
		want := image1bit.Black
		if x < 4 {
			want = image1bit.White
		}
		if got := r.pix[image.Pt(x, 0)]; got != want {
			t.Errorf("x=%d: %v, want %v", x, got, want)
		}
	}
}
