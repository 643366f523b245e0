// Package image1bit provides the 1-bit framebuffer used by the SSD1683 split panel.
package image1bit

import (
	"image"
	"image/color"
)

const (
	// SeamColumn is the first physical column driven by the slave controller.
	SeamColumn = 396
	// SeamWidth is the number of non-addressable columns at the controller junction.
	SeamWidth = 8
)

// Color is a monochrome pixel value.
//
// Black clears the pixel bit. Every other value sets it; White is the canonical one.
type Color uint8

const (
	Black Color = 0x00
	White Color = 0xFF
)

// Inverse returns the complementary color.
func (c Color) Inverse() Color {
	if c == Black {
		return White
	}
	return Black
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	if c == Black {
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// toColor converts any color.Color to Color using a luminance threshold.
func toColor(c color.Color) color.Color {
	if b, ok := c.(Color); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// ITU-R 601 luma, kept in 16-bit range.
	y := (299*r + 587*g + 114*b + 500) / 1000
	if y >= 0x8000 {
		return White
	}
	return Black
}

// BitModel converts colors to Color.
var BitModel = color.ModelFunc(toColor)

// Rotation is the angle, in degrees, between logical and physical coordinates.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// BufferSize returns the number of bytes needed to back a width x height panel
// in physical (unrotated) orientation.
func BufferSize(width, height int) int {
	return (width + 7) / 8 * height
}

// Canvas is a rotated view over an externally owned 1-bit framebuffer.
type Canvas struct {
	Pix []byte // Physical pixel data, owned by the caller

	memWidth, memHeight int // Physical geometry
	widthBytes          int // Bytes per physical row
	width, height       int // Logical geometry

	rotation Rotation
	bg       Color
}

// New returns a Canvas configured over buf. See Configure.
func New(buf []byte, width, height int, rot Rotation, bg Color) *Canvas {
	c := &Canvas{}
	c.Configure(buf, width, height, rot, bg)
	return c
}

// Configure binds buf and records the panel geometry.
//
// width and height are the physical dimensions. buf must hold at least
// BufferSize(width, height) bytes; this is not checked. For 90° and 270° the
// logical width and height are swapped.
func (c *Canvas) Configure(buf []byte, width, height int, rot Rotation, bg Color) {
	c.Pix = buf
	c.memWidth = width
	c.memHeight = height
	c.widthBytes = (width + 7) / 8
	c.rotation = rot
	c.bg = bg
	if rot == Rotate90 || rot == Rotate270 {
		c.width, c.height = height, width
	} else {
		c.width, c.height = width, height
	}
}

// Clear writes color into every byte of the physical buffer.
func (c *Canvas) Clear(color Color) {
	n := c.widthBytes * c.memHeight
	for i := range c.Pix[:n] {
		c.Pix[i] = byte(color)
	}
}

// Reset clears the buffer to the background color given to Configure.
func (c *Canvas) Reset() {
	c.Clear(c.bg)
}

// Transform maps logical (x, y) to physical (X, Y) for a memWidth x memHeight
// panel, applying the seam offset on the axis that lands on the physical x-axis.
// ok is false for an unsupported rotation.
func Transform(x, y int, rot Rotation, memWidth, memHeight int) (X, Y int, ok bool) {
	switch rot {
	case Rotate0:
		if x >= SeamColumn {
			x += SeamWidth
		}
		return x, y, true
	case Rotate90:
		if y >= SeamColumn {
			y += SeamWidth
		}
		return memWidth - y - 1, x, true
	case Rotate180:
		if x >= SeamColumn {
			x += SeamWidth
		}
		return memWidth - x - 1, memHeight - y - 1, true
	case Rotate270:
		if y >= SeamColumn {
			y += SeamWidth
		}
		return y, memHeight - x - 1, true
	}
	return 0, 0, false
}

// ByteOffset returns the buffer index and bit mask holding logical pixel (x, y).
func (c *Canvas) ByteOffset(x, y int) (offset int, mask byte, ok bool) {
	X, Y, ok := Transform(x, y, c.rotation, c.memWidth, c.memHeight)
	if !ok {
		return 0, 0, false
	}
	return X/8 + Y*c.widthBytes, 0x80 >> uint(X%8), true
}

// SetPixel writes one logical pixel. Black clears the bit, any other color sets it.
//
// Coordinates are not checked; callers keep them inside Bounds.
func (c *Canvas) SetPixel(x, y int, color Color) {
	offset, mask, ok := c.ByteOffset(x, y)
	if !ok {
		return
	}
	if color == Black {
		c.Pix[offset] &^= mask
	} else {
		c.Pix[offset] |= mask
	}
}

// Pixel reads back one logical pixel.
func (c *Canvas) Pixel(x, y int) Color {
	offset, mask, ok := c.ByteOffset(x, y)
	if !ok {
		return c.bg
	}
	if c.Pix[offset]&mask == 0 {
		return Black
	}
	return White
}

// Rotation returns the active rotation.
func (c *Canvas) Rotation() Rotation { return c.rotation }

// Background returns the background color.
func (c *Canvas) Background() Color { return c.bg }

// MemoryWidth returns the physical width in pixels.
func (c *Canvas) MemoryWidth() int { return c.memWidth }

// MemoryHeight returns the physical height in pixels.
func (c *Canvas) MemoryHeight() int { return c.memHeight }

// WidthBytes returns the number of bytes per physical row.
func (c *Canvas) WidthBytes() int { return c.widthBytes }

// ColorModel returns the color model of the canvas.
func (c *Canvas) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the logical bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	if !c.inBuffer(x, y) {
		return c.bg
	}
	return c.Pixel(x, y)
}

// Set sets the color of the pixel at (x, y).
// Unlike SetPixel it ignores coordinates outside Bounds or past the end of Pix.
func (c *Canvas) Set(x, y int, col color.Color) {
	if !c.inBuffer(x, y) {
		return
	}
	c.SetPixel(x, y, BitModel.Convert(col).(Color))
}

// inBuffer reports whether logical (x, y) is inside Bounds and maps into Pix.
// The seam pushes the last 8 logical columns of a full width panel out of range.
func (c *Canvas) inBuffer(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(c.Bounds())) {
		return false
	}
	X, Y, ok := Transform(x, y, c.rotation, c.memWidth, c.memHeight)
	if !ok || X < 0 || X >= c.widthBytes*8 || Y < 0 || Y >= c.memHeight {
		return false
	}
	return X/8+Y*c.widthBytes < len(c.Pix)
}
