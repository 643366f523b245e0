// Package image1bit provides the 1-bit framebuffer used by the SSD1683 split panel.
//
// The panel is driven by two cascaded SSD1683 controllers, each 396 columns wide.
// The controllers leave an 8-column gap at their junction, so the buffer is laid
// out as 800 physical columns of which columns 396 to 403 are never visible.
// Canvas hides the gap: any coordinate on the physical x-axis that is at or past
// column 396 is shifted right by 8 before it is packed.
//
// Memory layout, one bit per pixel, most significant bit first:
//
//	Physical x: 0 1 2 3 4 5 6 7 | 8 ...
//	Byte:       bit7 ....  bit0 | next byte
//	Bit value:  0 = Black (ink), 1 = White
//
// Canvas also applies one of four rotations so callers can work in portrait or
// landscape coordinates:
//
//	// 800x272 panel, landscape
//	buf := make([]byte, image1bit.BufferSize(800, 272))
//	c := image1bit.New(buf, 800, 272, image1bit.Rotate0, image1bit.White)
//	c.Clear(image1bit.White)
//	c.SetPixel(10, 20, image1bit.Black)
//
// Canvas implements draw.Image, so standard library drawing works too:
//
//	draw.Draw(c, c.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
package image1bit
