// Package ssd1683 drives a 5.79" 792x272 e-paper panel built from two
// cascaded SSD1683 controllers over SPI.
//
// Each controller owns half of the panel: the master drives the left 396
// columns, the slave the right 396. Both are addressed as 400 columns wide,
// so the frame buffer is 800x272 and the 8 columns at 396..403 are never
// visible. The image1bit package hides that seam from drawing code.
// This driver implements the display.Drawer interface from periph.io.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	DC          → GPIO
//	RES         → GPIO (optional)
//	BUSY        → GPIO (optional, recommended)
//
// # Basic Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dev, _ := ssd1683.NewSPI(port, gpioreg.ByName("GPIO25"), &ssd1683.Opts{
//		W:    800,
//		H:    272,
//		RST:  gpioreg.ByName("GPIO17"),
//		Busy: gpioreg.ByName("GPIO24"),
//	})
//	defer dev.Halt()
//
//	c := dev.Canvas()
//	c.Clear(image1bit.White)
//	paint.String(c, 10, 10, "hello", paint.Size24, image1bit.Black)
//	dev.Display(c.Pix)
//
// # Refresh Modes
//
// Init selects the full waveform: slow, flicker heavy, no ghosting. InitFast
// loads the fast waveform and makes Display use it. Refresh accepts any
// UpdateMode for one-off refreshes, e.g. PartialUpdate after Write.
//
// Without a BUSY pin every wait falls back to a fixed delay, which makes
// refreshes slower than necessary.
//
// Call Sleep (or Halt) when done: e-paper keeps its image without power, and
// leaving the booster on for long periods damages the panel. Init wakes it.
package ssd1683
