package icons

import (
	"bytes"
	"testing"

	"periph.io/x/devices/v3/ssd1683/icons/internal/art"
	"periph.io/x/devices/v3/ssd1683/image1bit"
	"periph.io/x/devices/v3/ssd1683/paint"
)

var all = []Kind{ClearDay, ClearNight, Clouds, Rain, Thunderstorm, Snow, Mist}

func TestBitmapSize(t *testing.T) {
	for _, k := range all {
		b := k.Bitmap()
		if len(b) != Size*Size/8 {
			t.Errorf("%v: %d bytes, want %d", k, len(b), Size*Size/8)
		}
		ink := 0
		for _, v := range b {
			for ; v != 0; v &= v - 1 {
				ink++
			}
		}
		if ink == 0 || ink == Size*Size {
			t.Errorf("%v: %d ink pixels", k, ink)
		}
	}
}

func TestBitmapsDistinct(t *testing.T) {
	for i, a := range all {
		for _, b := range all[i+1:] {
			if bytes.Equal(a.Bitmap(), b.Bitmap()) {
				t.Errorf("%v and %v share a bitmap", a, b)
			}
		}
	}
}

func TestUnknownKind(t *testing.T) {
	for _, k := range []Kind{-1, numKinds, 42} {
		if k.Bitmap() != nil {
			t.Errorf("Kind(%d).Bitmap() != nil", int(k))
		}
		if k.String() != "Kind(?)" {
			t.Errorf("Kind(%d).String() = %q", int(k), k.String())
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{ClearDay, "ClearDay"},
		{ClearNight, "ClearNight"},
		{Clouds, "Clouds"},
		{Rain, "Rain"},
		{Thunderstorm, "Thunderstorm"},
		{Snow, "Snow"},
		{Mist, "Mist"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// Blitting an icon on a white canvas stores its inverse in the frame buffer.
func TestBlitPolarity(t *testing.T) {
	for _, k := range all {
		buf := make([]byte, image1bit.BufferSize(Size, Size))
		c := image1bit.New(buf, Size, Size, image1bit.Rotate0, image1bit.White)
		c.Clear(image1bit.White)
		paint.Bitmap(c, 0, 0, Size, Size, k.Bitmap(), image1bit.White)

		for i, b := range k.Bitmap() {
			if buf[i] != ^b {
				t.Fatalf("%v: byte %d = %#02x, want %#02x", k, i, buf[i], ^b)
			}
		}
	}
}

func TestSunIsCentred(t *testing.T) {
	b := ClearDay.Bitmap()
	ink := func(x, y int) bool { return b[y*Size/8+x/8]&(0x80>>uint(x%8)) != 0 }
	if !ink(64, 64) {
		t.Error("sun centre is blank")
	}
	if ink(0, 0) || ink(Size-1, Size-1) {
		t.Error("sun corners are inked")
	}
}

// icons_gen.go must match the drawings; run go generate after editing them.
func TestGeneratedTables(t *testing.T) {
	drawn := art.Render()
	if len(drawn) != len(all) || len(art.Names) != len(all) {
		t.Fatalf("art draws %d icons named %d, want %d", len(drawn), len(art.Names), len(all))
	}
	for _, k := range all {
		if art.Names[k] != k.String() {
			t.Errorf("art.Names[%d] = %q, want %q", int(k), art.Names[k], k)
		}
		if !bytes.Equal(k.Bitmap(), drawn[k]) {
			t.Errorf("%v: icons_gen.go is stale", k)
		}
	}
}
