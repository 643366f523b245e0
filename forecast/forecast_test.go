package forecast

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/tidwall/sjson"

	"periph.io/x/devices/v3/ssd1683/icons"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/onecall.json")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestIconFromCode(t *testing.T) {
	tests := []struct {
		code string
		want icons.Kind
	}{
		{"01d", icons.ClearDay},
		{"01n", icons.ClearNight},
		{"02d", icons.Clouds},
		{"03n", icons.Clouds},
		{"04d", icons.Clouds},
		{"09d", icons.Rain},
		{"10n", icons.Rain},
		{"11d", icons.Thunderstorm},
		{"13n", icons.Snow},
		{"50d", icons.Mist},
		{"icon-10d.png", icons.Rain},
		{"", icons.Clouds},
		{"99x", icons.Clouds},
	}

	for _, tt := range tests {
		if got := IconFromCode(tt.code); got != tt.want {
			t.Errorf("IconFromCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		h, m int
		want string
	}{
		{7, 30, " 7:30"},
		{0, 5, " 0:05"},
		{13, 0, "13:00"},
		{23, 59, "23:59"},
	}

	for _, tt := range tests {
		tm := time.Date(2025, 6, 12, tt.h, tt.m, 42, 0, time.UTC)
		if got := FormatTime(tm); got != tt.want {
			t.Errorf("FormatTime(%02d:%02d) = %q, want %q", tt.h, tt.m, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	recs, err := Parse(loadFixture(t), time.FixedZone("JST", 9*3600))
	if err != nil {
		t.Fatal(err)
	}

	want := [Count]struct {
		time string
		icon icons.Kind
		temp float64
		pop  float64
	}{
		{" 7:30", icons.Rain, 15, 0},
		{"10:00", icons.Rain, 16, 0.8},
		{"13:00", icons.Clouds, 18, 0},
		{"16:00", icons.ClearDay, 24, 0},
		{"19:00", icons.ClearNight, 23, 0},
	}
	for i, w := range want {
		r := recs[i]
		if r.Empty() {
			t.Errorf("record %d is empty", i)
			continue
		}
		if got := FormatTime(r.Time); got != w.time {
			t.Errorf("record %d: time %q, want %q", i, got, w.time)
		}
		if r.Icon != w.icon || r.Temperature != w.temp || r.Pop != w.pop {
			t.Errorf("record %d = %v, want %v %v %v", i, r, w.icon, w.temp, w.pop)
		}
	}
}

func TestParseUsesResponseOffset(t *testing.T) {
	recs, err := Parse(loadFixture(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatTime(recs[0].Time); got != " 7:30" {
		t.Errorf("current time = %q, want \" 7:30\"", got)
	}
	if _, off := recs[0].Time.Zone(); off != 9*3600 {
		t.Errorf("zone offset = %d", off)
	}
}

func TestParseCurrentPop(t *testing.T) {
	data, err := sjson.SetBytes(loadFixture(t), "current.pop", 0.25)
	if err != nil {
		t.Fatal(err)
	}
	recs, err := Parse(data, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if recs[0].Pop != 0.25 {
		t.Errorf("Pop = %v, want 0.25", recs[0].Pop)
	}
}

func TestParseShortHourly(t *testing.T) {
	data := loadFixture(t)
	for i := 12; i >= 7; i-- {
		var err error
		if data, err = sjson.DeleteBytes(data, fmt.Sprintf("hourly.%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := Parse(data, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	for i, empty := range []bool{false, false, false, true, true} {
		if recs[i].Empty() != empty {
			t.Errorf("record %d: Empty() = %v, want %v", i, recs[i].Empty(), empty)
		}
	}
}

func TestParseNoHourly(t *testing.T) {
	data, err := sjson.DeleteBytes(loadFixture(t), "hourly")
	if err != nil {
		t.Fatal(err)
	}
	recs, err := Parse(data, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if recs[0].Empty() {
		t.Error("current conditions missing")
	}
	for i := 1; i < Count; i++ {
		if !recs[i].Empty() {
			t.Errorf("record %d = %v, want empty", i, recs[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	noCurrent, err := sjson.DeleteBytes(loadFixture(t), "current")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrInvalidJSON},
		{"truncated", []byte(`{"current": {"dt": 1`), ErrInvalidJSON},
		{"not json", []byte("<html>"), ErrInvalidJSON},
		{"no current", noCurrent, ErrNoCurrent},
		{"current not an object", []byte(`{"current": 3}`), ErrNoCurrent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data, time.UTC); !errors.Is(err, tt.want) {
				t.Errorf("Parse() = %v, want %v", err, tt.want)
			}
		})
	}
}
