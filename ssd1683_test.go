package ssd1683

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/ssd1683/image1bit"
)

// txn is one command byte and the parameters sent after it.
type txn struct {
	cmd  byte
	data []byte
}

type mark struct {
	op    int
	level gpio.Level
}

// dcPin records the DC level in effect for every SPI transfer.
type dcPin struct {
	*gpiotest.Pin
	rec   *spitest.Record
	marks []mark
}

func (p *dcPin) Out(l gpio.Level) error {
	p.marks = append(p.marks, mark{len(p.rec.Ops), l})
	return p.Pin.Out(l)
}

func (p *dcPin) clear() {
	p.rec.Ops = nil
	p.marks = nil
}

// transcript decodes the recorded transfers into commands. Consecutive data
// transfers are joined, so chunking does not matter.
func (p *dcPin) transcript(t *testing.T) []txn {
	t.Helper()
	var out []txn
	m := 0
	level := gpio.Low
	for i, op := range p.rec.Ops {
		for m < len(p.marks) && p.marks[m].op <= i {
			level = p.marks[m].level
			m++
		}
		if level == gpio.Low {
			for _, b := range op.W {
				out = append(out, txn{cmd: b})
			}
			continue
		}
		if len(out) == 0 {
			t.Fatal("data sent before any command")
		}
		out[len(out)-1].data = append(out[len(out)-1].data, op.W...)
	}
	return out
}

func commands(tx []txn) []byte {
	var out []byte
	for _, x := range tx {
		out = append(out, x.cmd)
	}
	return out
}

func find(t *testing.T, tx []txn, cmd byte) txn {
	t.Helper()
	for _, x := range tx {
		if x.cmd == cmd {
			return x
		}
	}
	t.Fatalf("command %#02x not sent", cmd)
	return txn{}
}

func idle() *gpiotest.Pin {
	return &gpiotest.Pin{N: "BUSY", L: gpio.Low}
}

func newDev(t *testing.T, opts *Opts) (*Dev, *dcPin) {
	t.Helper()
	rec := &spitest.Record{}
	dc := &dcPin{Pin: &gpiotest.Pin{N: "DC"}, rec: rec}
	if opts.Busy == nil {
		opts.Busy = idle()
	}
	d, err := NewSPI(rec, dc, opts)
	if err != nil {
		t.Fatalf("NewSPI() = %v", err)
	}
	return d, dc
}

func TestNewSPIValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Opts
		wantErr bool
	}{
		{"valid 800x272", &Opts{W: 800, H: 272}, false},
		{"valid 16x1 (minimum)", &Opts{W: 16, H: 1}, false},
		{"valid 400x300", &Opts{W: 400, H: 300}, false},
		{"width not multiple of 16", &Opts{W: 792, H: 272}, true},
		{"width zero", &Opts{W: 0, H: 272}, true},
		{"width > 800", &Opts{W: 816, H: 272}, true},
		{"height zero", &Opts{W: 800, H: 0}, true},
		{"height > 300", &Opts{W: 800, H: 301}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &spitest.Record{}
			dc := &dcPin{Pin: &gpiotest.Pin{N: "DC"}, rec: rec}
			tt.opts.Busy = idle()
			_, err := NewSPI(rec, dc, tt.opts)
			if tt.wantErr && err == nil {
				t.Error("expected error but didn't get one")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestInitSequence(t *testing.T) {
	_, dc := newDev(t, &Opts{W: 800, H: 272})
	tx := dc.transcript(t)

	want := []byte{
		0x12, 0x18, 0x0C, 0x01, 0x3C,
		0x11, 0x44, 0x45, 0x4E, 0x4F,
		0x91, 0xC4, 0xC5, 0xCE, 0xCF,
	}
	if got := commands(tx); !bytes.Equal(got, want) {
		t.Fatalf("commands = % x, want % x", got, want)
	}

	params := []struct {
		cmd  byte
		data []byte
	}{
		{0x12, nil},
		{0x18, []byte{0x80}},
		{0x01, []byte{0x0F, 0x01, 0x00}},
		{0x44, []byte{0x00, 0x31}},
		{0x45, []byte{0x00, 0x00, 0x0F, 0x01}},
		{0x91, []byte{0x02}},
		{0xC4, []byte{0x31, 0x00}},
		{0xCE, []byte{0x31}},
	}
	for _, p := range params {
		if got := find(t, tx, p.cmd).data; !bytes.Equal(got, p.data) {
			t.Errorf("%#02x data = % x, want % x", p.cmd, got, p.data)
		}
	}
}

func TestInitFast(t *testing.T) {
	d, dc := newDev(t, &Opts{W: 32, H: 2})
	dc.clear()
	if err := d.InitFast(); err != nil {
		t.Fatal(err)
	}
	tx := dc.transcript(t)
	if got := find(t, tx, 0x1A).data; !bytes.Equal(got, []byte{0x64, 0x00}) {
		t.Errorf("temperature = % x", got)
	}
	if got := find(t, tx, 0x22).data; !bytes.Equal(got, []byte{0x91}) {
		t.Errorf("update control = % x", got)
	}
	if tx[len(tx)-1].cmd != 0x20 {
		t.Errorf("last command = %#02x, want 0x20", tx[len(tx)-1].cmd)
	}

	dc.clear()
	if err := d.Display(make([]byte, 8)); err != nil {
		t.Fatal(err)
	}
	if got := find(t, dc.transcript(t), 0x22).data; !bytes.Equal(got, []byte{0xC7}) {
		t.Errorf("Display after InitFast used mode % x, want c7", got)
	}
}

func TestResetPin(t *testing.T) {
	rst := &gpiotest.Pin{N: "RST", L: gpio.Low}
	newDev(t, &Opts{W: 16, H: 1, RST: rst})
	if rst.L != gpio.High {
		t.Error("RST left low after init")
	}
}

func TestBusyTimeout(t *testing.T) {
	rec := &spitest.Record{}
	dc := &dcPin{Pin: &gpiotest.Pin{N: "DC"}, rec: rec}
	busy := &gpiotest.Pin{N: "BUSY", L: gpio.High}
	start := time.Now()
	_, err := NewSPI(rec, dc, &Opts{W: 16, H: 1, Busy: busy, BusyTimeout: 30 * time.Millisecond})
	if !errors.Is(err, ErrBusyTimeout) {
		t.Fatalf("NewSPI() = %v, want %v", err, ErrBusyTimeout)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Error("returned before the timeout")
	}
}

func TestWriteSplitsHalves(t *testing.T) {
	d, dc := newDev(t, &Opts{W: 32, H: 2})
	dc.clear()

	buf := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	n, err := d.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(buf) {
		t.Errorf("Write() = %d, want %d", n, len(buf))
	}

	want := []txn{
		{0x4E, []byte{0x00}},
		{0x4F, []byte{0x00, 0x00}},
		{0x24, []byte{0, 1, 4, 5}},
		{0xCE, []byte{0x01}},
		{0xCF, []byte{0x00, 0x00}},
		{0xA4, []byte{2, 3, 6, 7}},
	}
	got := dc.transcript(t)
	if len(got) != len(want) {
		t.Fatalf("sent % x, want %d commands", commands(got), len(want))
	}
	for i := range want {
		if got[i].cmd != want[i].cmd || !bytes.Equal(got[i].data, want[i].data) {
			t.Errorf("txn %d = %#02x % x, want %#02x % x", i, got[i].cmd, got[i].data, want[i].cmd, want[i].data)
		}
	}
}

func TestWriteBufferSizeValidation(t *testing.T) {
	d, _ := newDev(t, &Opts{W: 32, H: 2})
	for _, size := range []int{0, 7, 9, 100} {
		if _, err := d.Write(make([]byte, size)); !errors.Is(err, ErrBufferSize) {
			t.Errorf("Write(%d bytes) = %v, want %v", size, err, ErrBufferSize)
		}
	}
}

func TestRefreshModes(t *testing.T) {
	tests := []struct {
		name string
		mode UpdateMode
		want byte
	}{
		{"full", FullUpdate, 0xF7},
		{"fast", FastUpdate, 0xC7},
		{"partial", PartialUpdate, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dc := newDev(t, &Opts{W: 16, H: 1})
			dc.clear()
			if err := d.Refresh(tt.mode); err != nil {
				t.Fatal(err)
			}
			got := dc.transcript(t)
			if len(got) != 2 || got[0].cmd != 0x22 || !bytes.Equal(got[0].data, []byte{tt.want}) || got[1].cmd != 0x20 {
				t.Errorf("Refresh sent %v", got)
			}
		})
	}
}

func TestClearRAM(t *testing.T) {
	tests := []struct {
		name string
		c    image1bit.Color
		want byte
	}{
		{"white", image1bit.White, 0xFF},
		{"black", image1bit.Black, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dc := newDev(t, &Opts{W: 32, H: 2})
			dc.clear()
			if err := d.ClearRAM(tt.c); err != nil {
				t.Fatal(err)
			}
			got := dc.transcript(t)
			if !bytes.Equal(commands(got), []byte{0x24, 0xA4, 0x26, 0xA6}) {
				t.Fatalf("commands = % x", commands(got))
			}
			for _, x := range got {
				if !bytes.Equal(x.data, bytes.Repeat([]byte{tt.want}, 4)) {
					t.Errorf("%#02x data = % x", x.cmd, x.data)
				}
			}
		})
	}
}

func TestDraw(t *testing.T) {
	d, dc := newDev(t, &Opts{W: 32, H: 2})
	if !bytes.Equal(d.Canvas().Pix, bytes.Repeat([]byte{0xFF}, 8)) {
		t.Fatal("frame buffer does not start white")
	}
	dc.clear()

	if err := d.Draw(d.Bounds(), &image.Uniform{C: color.Black}, image.Point{}); err != nil {
		t.Fatal(err)
	}
	tx := dc.transcript(t)
	if got := find(t, tx, 0x24).data; !bytes.Equal(got, make([]byte, 4)) {
		t.Errorf("master data = % x", got)
	}
	if got := find(t, tx, 0x22).data; !bytes.Equal(got, []byte{0xF7}) {
		t.Errorf("update mode = % x", got)
	}
	if d.Canvas().Pixel(5, 1) != image1bit.Black {
		t.Error("canvas not updated")
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		rot  image1bit.Rotation
		want image.Rectangle
	}{
		{image1bit.Rotate0, image.Rect(0, 0, 800, 272)},
		{image1bit.Rotate90, image.Rect(0, 0, 272, 800)},
		{image1bit.Rotate180, image.Rect(0, 0, 800, 272)},
		{image1bit.Rotate270, image.Rect(0, 0, 272, 800)},
	}
	for _, tt := range tests {
		d, _ := newDev(t, &Opts{W: 800, H: 272, Rotation: tt.rot})
		if got := d.Bounds(); got != tt.want {
			t.Errorf("rotation %d: Bounds() = %v, want %v", tt.rot, got, tt.want)
		}
	}
}

func TestDevColorModel(t *testing.T) {
	d, _ := newDev(t, &Opts{W: 16, H: 1})
	if d.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}

func TestDevString(t *testing.T) {
	d, _ := newDev(t, &Opts{W: 800, H: 272})
	want := "ssd1683.Dev{800x272}"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSleepHalts(t *testing.T) {
	d, dc := newDev(t, &Opts{W: 32, H: 2})
	dc.clear()
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	if got := dc.transcript(t); len(got) != 1 || got[0].cmd != 0x10 || !bytes.Equal(got[0].data, []byte{0x01}) {
		t.Errorf("Sleep sent %v", got)
	}

	buf := make([]byte, 8)
	if _, err := d.Write(buf); !errors.Is(err, ErrHalted) {
		t.Errorf("Write() = %v", err)
	}
	if err := d.Display(buf); !errors.Is(err, ErrHalted) {
		t.Errorf("Display() = %v", err)
	}
	if err := d.Refresh(FullUpdate); !errors.Is(err, ErrHalted) {
		t.Errorf("Refresh() = %v", err)
	}
	if err := d.ClearRAM(image1bit.White); !errors.Is(err, ErrHalted) {
		t.Errorf("ClearRAM() = %v", err)
	}
	if err := d.Draw(d.Bounds(), image.NewRGBA(d.Bounds()), image.Point{}); !errors.Is(err, ErrHalted) {
		t.Errorf("Draw() = %v", err)
	}
	if err := d.Sleep(); !errors.Is(err, ErrHalted) {
		t.Errorf("Sleep() = %v", err)
	}
	if err := d.Halt(); err != nil {
		t.Errorf("Halt() on a halted device = %v", err)
	}

	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Write(buf); err != nil {
		t.Errorf("Write() after Init = %v", err)
	}
}

func TestHaltSleepsOnce(t *testing.T) {
	d, dc := newDev(t, &Opts{W: 16, H: 1})
	dc.clear()
	for i := 0; i < 2; i++ {
		if err := d.Halt(); err != nil {
			t.Fatal(err)
		}
	}
	if got := commands(dc.transcript(t)); !bytes.Equal(got, []byte{0x10}) {
		t.Errorf("commands = % x, want 10", got)
	}
}
