package ssd1683

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1683/image1bit"
)

// Controller commands, named after the SSD1683 datasheet. Slave variants
// address the right-hand controller of a cascaded pair.
const (
	cmdDriverOutput     = 0x01
	cmdBoosterSoftStart = 0x0C
	cmdDeepSleep        = 0x10
	cmdDataEntry        = 0x11
	cmdSWReset          = 0x12
	cmdTempSensor       = 0x18
	cmdWriteTemp        = 0x1A
	cmdActivate         = 0x20
	cmdUpdateControl2   = 0x22
	cmdWriteRAM         = 0x24
	cmdWriteRAMPrev     = 0x26
	cmdBorder           = 0x3C
	cmdRAMXWindow       = 0x44
	cmdRAMYWindow       = 0x45
	cmdRAMXCounter      = 0x4E
	cmdRAMYCounter      = 0x4F

	slave = 0x80
)

// UpdateMode selects the waveform used by Refresh.
type UpdateMode byte

const (
	FullUpdate    UpdateMode = 0xF7
	FastUpdate    UpdateMode = 0xC7
	PartialUpdate UpdateMode = 0xFF
)

var (
	// ErrHalted is returned by every operation after Sleep or Halt.
	ErrHalted = errors.New("ssd1683: halted")
	// ErrBufferSize is returned by Write when the buffer does not match the panel.
	ErrBufferSize = errors.New("ssd1683: invalid buffer size")
	// ErrBusyTimeout is returned when the panel keeps BUSY high past Opts.BusyTimeout.
	ErrBusyTimeout = errors.New("ssd1683: busy timeout")
)

const (
	pollInterval = 10 * time.Millisecond
	// settleDelay replaces the BUSY wait when no busy pin is wired.
	settleDelay = 3 * time.Second
)

// Opts is the configuration for the panel.
type Opts struct {
	// Physical dimensions in pixels (default: 800x272). W must be a multiple
	// of 16 so each controller receives whole bytes, and at most 800. H is at
	// most 300.
	W int
	H int

	// Rotation of the canvas returned by Canvas.
	Rotation image1bit.Rotation

	// Optional pins. Without Busy the driver sleeps a fixed delay instead of
	// polling.
	RST  gpio.PinOut
	Busy gpio.PinIn

	BusyTimeout time.Duration    // default: 10s
	Hz          physic.Frequency // default: 5MHz
}

// Dev is the device handle for a panel driven by a master/slave pair of
// SSD1683 controllers.
type Dev struct {
	c    conn.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	busyTimeout time.Duration
	maxTx       int

	w, h   int
	buffer []byte
	half   []byte
	canvas *image1bit.Canvas

	mode   UpdateMode
	halted bool
}

// NewSPI connects to the panel over SPI and runs Init.
//
// opts can be nil to use defaults (800x272).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 800, H: 272}
	}
	if opts.W <= 0 || opts.W%16 != 0 || opts.W > 800 {
		return nil, errors.New("ssd1683: width must be a multiple of 16 between 16 and 800")
	}
	if opts.H <= 0 || opts.H > 300 {
		return nil, errors.New("ssd1683: height must be between 1 and 300")
	}
	hz := opts.Hz
	if hz == 0 {
		hz = 5 * physic.MegaHertz
	}
	timeout := opts.BusyTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	c, err := p.Connect(hz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1683: failed to connect: %w", err)
	}
	maxTx := 4096
	if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 {
		maxTx = l.MaxTxSize()
	}

	buf := make([]byte, image1bit.BufferSize(opts.W, opts.H))
	d := &Dev{
		c:           c,
		dc:          dc,
		rst:         opts.RST,
		busy:        opts.Busy,
		busyTimeout: timeout,
		maxTx:       maxTx,
		w:           opts.W,
		h:           opts.H,
		buffer:      buf,
		half:        make([]byte, len(buf)/2),
		canvas:      image1bit.New(buf, opts.W, opts.H, opts.Rotation, image1bit.White),
	}
	d.canvas.Reset()

	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init resets the controllers and configures both RAM windows for full
// refreshes. It also wakes the panel after Sleep.
func (d *Dev) Init() error {
	if err := d.reset(); err != nil {
		return err
	}
	if err := d.waitIdle(); err != nil {
		return err
	}
	if err := d.command(cmdSWReset); err != nil {
		return err
	}
	if err := d.waitIdle(); err != nil {
		return err
	}

	last := d.w/16 - 1 // last byte column of each controller
	yLo, yHi := byte((d.h-1)&0xFF), byte((d.h-1)>>8)
	seq := []struct {
		cmd  byte
		data []byte
	}{
		{cmdTempSensor, []byte{0x80}},
		{cmdBoosterSoftStart, []byte{0xAE, 0xC7, 0xC3, 0xC0, 0x80}},
		{cmdDriverOutput, []byte{yLo, yHi, 0x00}},
		{cmdBorder, []byte{0x01}},
		// Master: X and Y increment.
		{cmdDataEntry, []byte{0x03}},
		{cmdRAMXWindow, []byte{0x00, byte(last)}},
		{cmdRAMYWindow, []byte{0x00, 0x00, yLo, yHi}},
		{cmdRAMXCounter, []byte{0x00}},
		{cmdRAMYCounter, []byte{0x00, 0x00}},
		// Slave source lines run right to left.
		{cmdDataEntry | slave, []byte{0x02}},
		{cmdRAMXWindow | slave, []byte{byte(last), 0x00}},
		{cmdRAMYWindow | slave, []byte{0x00, 0x00, yLo, yHi}},
		{cmdRAMXCounter | slave, []byte{byte(last)}},
		{cmdRAMYCounter | slave, []byte{0x00, 0x00}},
	}
	for _, s := range seq {
		if err := d.command(s.cmd, s.data...); err != nil {
			return err
		}
	}
	if err := d.waitIdle(); err != nil {
		return err
	}
	d.mode = FullUpdate
	d.halted = false
	return nil
}

// InitFast runs Init, then loads the fast waveform. Display uses FastUpdate
// afterwards.
func (d *Dev) InitFast() error {
	if err := d.Init(); err != nil {
		return err
	}
	if err := d.command(cmdWriteTemp, 0x64, 0x00); err != nil {
		return err
	}
	if err := d.command(cmdUpdateControl2, 0x91); err != nil {
		return err
	}
	if err := d.command(cmdActivate); err != nil {
		return err
	}
	if err := d.waitIdle(); err != nil {
		return err
	}
	d.mode = FastUpdate
	return nil
}

// reset pulses RST low when the pin is wired.
func (d *Dev) reset() error {
	if d.rst == nil {
		return nil
	}
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("ssd1683: failed to pull RST low: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("ssd1683: failed to pull RST high: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

// waitIdle blocks while BUSY is high.
func (d *Dev) waitIdle() error {
	if d.busy == nil {
		time.Sleep(settleDelay)
		return nil
	}
	deadline := time.Now().Add(d.busyTimeout)
	for d.busy.Read() == gpio.High {
		if time.Now().After(deadline) {
			return ErrBusyTimeout
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// command sends cmd with DC low, followed by its parameters with DC high.
func (d *Dev) command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("ssd1683: failed to set DC: %w", err)
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("ssd1683: command %#02x: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil
	}
	return d.sendData(data)
}

// sendData sends data with DC high, split into transfers the port accepts.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("ssd1683: failed to set DC: %w", err)
	}
	for len(data) > 0 {
		n := min(len(data), d.maxTx)
		if err := d.c.Tx(data[:n], nil); err != nil {
			return fmt.Errorf("ssd1683: data: %w", err)
		}
		data = data[n:]
	}
	return nil
}

// writeHalves sends the left half of every row of buf to the master RAM
// command and the right half to its slave counterpart.
func (d *Dev) writeHalves(ram byte, buf []byte) error {
	wb := d.w / 8
	hb := wb / 2
	for i, off := range []int{0, hb} {
		for y := 0; y < d.h; y++ {
			copy(d.half[y*hb:(y+1)*hb], buf[y*wb+off:y*wb+off+hb])
		}
		cmd := ram
		if i == 1 {
			cmd |= slave
		}
		if err := d.resetCounters(cmd&slave != 0); err != nil {
			return err
		}
		if err := d.command(cmd, d.half...); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) resetCounters(toSlave bool) error {
	x := byte(0)
	var s byte
	if toSlave {
		x, s = byte(d.w/16-1), slave
	}
	if err := d.command(cmdRAMXCounter|s, x); err != nil {
		return err
	}
	return d.command(cmdRAMYCounter|s, 0x00, 0x00)
}

// Write loads a frame into the new-image RAM of both controllers without
// refreshing. buf must be exactly W/8*H bytes in image1bit layout.
func (d *Dev) Write(buf []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(buf) != len(d.buffer) {
		return 0, ErrBufferSize
	}
	if err := d.writeHalves(cmdWriteRAM, buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Refresh drives the panel from RAM with the given waveform and waits for it
// to finish.
func (d *Dev) Refresh(mode UpdateMode) error {
	if d.halted {
		return ErrHalted
	}
	if err := d.command(cmdUpdateControl2, byte(mode)); err != nil {
		return err
	}
	if err := d.command(cmdActivate); err != nil {
		return err
	}
	return d.waitIdle()
}

// Display writes buf and refreshes with the mode selected by the last Init
// or InitFast.
func (d *Dev) Display(buf []byte) error {
	if _, err := d.Write(buf); err != nil {
		return err
	}
	return d.Refresh(d.mode)
}

// ClearRAM fills the new and previous image RAM of both controllers with c.
// The panel is not refreshed.
func (d *Dev) ClearRAM(c image1bit.Color) error {
	if d.halted {
		return ErrHalted
	}
	v := byte(0xFF)
	if c == image1bit.Black {
		v = 0x00
	}
	for i := range d.half {
		d.half[i] = v
	}
	for _, cmd := range []byte{cmdWriteRAM, cmdWriteRAM | slave, cmdWriteRAMPrev, cmdWriteRAMPrev | slave} {
		if err := d.command(cmd, d.half...); err != nil {
			return err
		}
	}
	return nil
}

// Sleep puts the panel in deep sleep. Call Init to wake it.
func (d *Dev) Sleep() error {
	if d.halted {
		return ErrHalted
	}
	if err := d.command(cmdDeepSleep, 0x01); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Canvas returns the canvas backed by the driver's frame buffer. Draw on it,
// then call Display(d.Canvas().Pix).
func (d *Dev) Canvas() *image1bit.Canvas {
	return d.canvas
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the logical bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.canvas.Bounds()
}

// Draw renders src into the frame buffer and displays it.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	draw.Draw(d.canvas, r, src, sp, draw.Src)
	return d.Display(d.buffer)
}

// Halt puts the panel to sleep. It is a no-op once halted.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	return d.Sleep()
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1683.Dev{%dx%d}", d.w, d.h)
}

var _ display.Drawer = (*Dev)(nil)
