package image1bit

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func newPanel(rot Rotation) *Canvas {
	return New(make([]byte, BufferSize(800, 272)), 800, 272, rot, White)
}

func TestColorInverse(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want Color
	}{
		{"black", Black, White},
		{"white", White, Black},
		{"other value", Color(0x01), Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Inverse(); got != tt.want {
				t.Errorf("%v.Inverse() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBitModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Color
	}{
		{"passthrough", Black, Black},
		{"black", color.Black, Black},
		{"white", color.White, White},
		{"dark gray", color.Gray{Y: 0x40}, Black},
		{"light gray", color.Gray{Y: 0xC0}, White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitModel.Convert(tt.input).(Color); got != tt.want {
				t.Errorf("BitModel.Convert(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigureGeometry(t *testing.T) {
	tests := []struct {
		name       string
		rot        Rotation
		wantBounds image.Rectangle
	}{
		{"0", Rotate0, image.Rect(0, 0, 800, 272)},
		{"90", Rotate90, image.Rect(0, 0, 272, 800)},
		{"180", Rotate180, image.Rect(0, 0, 800, 272)},
		{"270", Rotate270, image.Rect(0, 0, 272, 800)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPanel(tt.rot)
			if got := c.Bounds(); got != tt.wantBounds {
				t.Errorf("Bounds() = %v, want %v", got, tt.wantBounds)
			}
			if c.MemoryWidth() != 800 || c.MemoryHeight() != 272 {
				t.Errorf("memory = %dx%d, want 800x272", c.MemoryWidth(), c.MemoryHeight())
			}
			if c.WidthBytes() != 100 {
				t.Errorf("WidthBytes() = %d, want 100", c.WidthBytes())
			}
		})
	}
}

func TestWidthBytesRoundsUp(t *testing.T) {
	c := New(make([]byte, BufferSize(13, 2)), 13, 2, Rotate0, White)
	if c.WidthBytes() != 2 {
		t.Errorf("WidthBytes() = %d, want 2", c.WidthBytes())
	}
	if BufferSize(13, 2) != 4 {
		t.Errorf("BufferSize(13, 2) = %d, want 4", BufferSize(13, 2))
	}
}

func TestClear(t *testing.T) {
	c := newPanel(Rotate0)
	c.Clear(White)
	for i, b := range c.Pix {
		if b != 0xFF {
			t.Fatalf("Pix[%d] = 0x%02X after Clear(White)", i, b)
		}
	}
	c.Clear(Black)
	c.Clear(Black)
	for i, b := range c.Pix {
		if b != 0x00 {
			t.Fatalf("Pix[%d] = 0x%02X after Clear(Black)", i, b)
		}
	}
}

func TestClearLeavesTail(t *testing.T) {
	buf := make([]byte, BufferSize(16, 2)+3)
	c := New(buf, 16, 2, Rotate0, White)
	c.Reset()
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = 0x%02X, want 0x%02X", i, buf[i], want[i])
		}
	}
}

func TestTransform(t *testing.T) {
	const w, h = 800, 272
	tests := []struct {
		name         string
		x, y         int
		rot          Rotation
		wantX, wantY int
	}{
		{"0 origin", 0, 0, Rotate0, 0, 0},
		{"0 before seam", 395, 10, Rotate0, 395, 10},
		{"0 at seam", 396, 10, Rotate0, 404, 10},
		{"0 far right", 791, 271, Rotate0, 799, 271},
		{"90 origin", 0, 0, Rotate90, 799, 0},
		{"90 before seam", 5, 395, Rotate90, 404, 5},
		{"90 at seam", 5, 396, Rotate90, 395, 5},
		{"180 origin", 0, 0, Rotate180, 799, 271},
		{"180 at seam", 396, 0, Rotate180, 395, 271},
		{"180 far right", 791, 271, Rotate180, 0, 0},
		{"270 origin", 0, 0, Rotate270, 0, 271},
		{"270 before seam", 7, 395, Rotate270, 395, 264},
		{"270 at seam", 7, 396, Rotate270, 404, 264},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X, Y, ok := Transform(tt.x, tt.y, tt.rot, w, h)
			if !ok {
				t.Fatal("Transform() not ok")
			}
			if X != tt.wantX || Y != tt.wantY {
				t.Errorf("Transform(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.x, tt.y, tt.rot, X, Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTransformUnsupportedRotation(t *testing.T) {
	if _, _, ok := Transform(1, 1, Rotation(45), 800, 272); ok {
		t.Error("Transform() with 45° should not be ok")
	}
}

func TestSetPixelUnsupportedRotationIsNoop(t *testing.T) {
	c := New(make([]byte, BufferSize(16, 16)), 16, 16, Rotation(45), White)
	c.Clear(White)
	c.SetPixel(3, 3, Black)
	for i, b := range c.Pix {
		if b != 0xFF {
			t.Fatalf("Pix[%d] = 0x%02X, want untouched 0xFF", i, b)
		}
	}
}

func TestSeamJump(t *testing.T) {
	c := newPanel(Rotate0)
	before, _, _ := c.ByteOffset(395, 10)
	after, _, _ := c.ByteOffset(396, 10)
	if after-before != 1 {
		t.Errorf("byte offsets %d and %d differ by %d, want 1", before, after, after-before)
	}

	c.Clear(White)
	c.SetPixel(395, 10, Black)
	c.SetPixel(396, 10, Black)
	// Physical 395 is bit 3 of byte 49.
	if c.Pix[before] != 0xEF {
		t.Errorf("Pix[%d] = 0x%02X, want 0xEF", before, c.Pix[before])
	}
	// Physical 404 is bit 4 of byte 50; 400..403 belong to the gap.
	if c.Pix[after] != 0xF7 {
		t.Errorf("Pix[%d] = 0x%02X, want 0xF7", after, c.Pix[after])
	}
}

func TestSeamOffsetPerRotation(t *testing.T) {
	// On each rotation the two logical neighbours straddling the seam land
	// 1+SeamWidth physical columns apart.
	tests := []struct {
		name   string
		rot    Rotation
		a, b   image.Point
		wantDX int
	}{
		{"0", Rotate0, image.Pt(395, 3), image.Pt(396, 3), 9},
		{"90", Rotate90, image.Pt(3, 395), image.Pt(3, 396), -9},
		{"180", Rotate180, image.Pt(395, 3), image.Pt(396, 3), -9},
		{"270", Rotate270, image.Pt(3, 395), image.Pt(3, 396), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ax, ay, _ := Transform(tt.a.X, tt.a.Y, tt.rot, 800, 272)
			bx, by, _ := Transform(tt.b.X, tt.b.Y, tt.rot, 800, 272)
			if ay != by {
				t.Errorf("rows differ: %d vs %d", ay, by)
			}
			if bx-ax != tt.wantDX {
				t.Errorf("physical dx = %d, want %d", bx-ax, tt.wantDX)
			}
		})
	}
}

func TestSetPixelReadBack(t *testing.T) {
	for _, rot := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		c := newPanel(rot)
		c.Clear(White)
		b := c.Bounds()
		// The seam eats the last SeamWidth logical columns of the long axis.
		maxX, maxY := b.Dx(), b.Dy()
		if rot == Rotate0 || rot == Rotate180 {
			maxX -= SeamWidth
		} else {
			maxY -= SeamWidth
		}
		for y := 0; y < maxY; y += 7 {
			for x := 0; x < maxX; x += 5 {
				c.SetPixel(x, y, Black)
				if got := c.Pixel(x, y); got != Black {
					t.Fatalf("rot %d: Pixel(%d, %d) = %v after Black", rot, x, y, got)
				}
				c.SetPixel(x, y, White)
				if got := c.Pixel(x, y); got != White {
					t.Fatalf("rot %d: Pixel(%d, %d) = %v after White", rot, x, y, got)
				}
			}
		}
	}
}

func TestSetPixelUnknownColorSetsBit(t *testing.T) {
	c := New(make([]byte, 1), 8, 1, Rotate0, White)
	c.Clear(Black)
	c.SetPixel(0, 0, Color(0x42))
	if c.Pix[0] != 0x80 {
		t.Errorf("Pix[0] = 0x%02X, want 0x80", c.Pix[0])
	}
}

func TestSetPixelBitOrder(t *testing.T) {
	c := New(make([]byte, 2), 16, 1, Rotate0, White)
	c.Clear(White)
	for x := 0; x < 16; x++ {
		c.SetPixel(x, 0, Black)
		offset := x / 8
		want := byte(0xFF) &^ (0x80 >> uint(x%8))
		if c.Pix[offset] != want {
			t.Errorf("x=%d: Pix[%d] = 0x%02X, want 0x%02X", x, offset, c.Pix[offset], want)
		}
		c.SetPixel(x, 0, White)
	}
}

func TestDrawImageInterface(t *testing.T) {
	c := New(make([]byte, BufferSize(16, 4)), 16, 4, Rotate0, White)
	c.Clear(White)

	var _ draw.Image = c
	draw.Draw(c, image.Rect(0, 0, 8, 2), image.NewUniform(color.Black), image.Point{}, draw.Src)

	want := []byte{0x00, 0xFF, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	for i := range want {
		if c.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = 0x%02X, want 0x%02X", i, c.Pix[i], want[i])
		}
	}
	if c.At(0, 0) != Black {
		t.Errorf("At(0, 0) = %v, want Black", c.At(0, 0))
	}
}

func TestSetOutOfBounds(t *testing.T) {
	c := newPanel(Rotate0)
	c.Clear(White)

	// 795 is inside Bounds but past the end of the row once the seam is applied.
	c.Set(795, 0, color.Black)
	c.Set(-1, 0, color.Black)
	c.Set(0, 272, color.Black)
	for i, b := range c.Pix {
		if b != 0xFF {
			t.Fatalf("Pix[%d] = 0x%02X, want 0xFF", i, b)
		}
	}
	if c.At(-1, -1) != White {
		t.Error("At() outside bounds should return the background")
	}
}
