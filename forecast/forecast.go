// Package forecast turns an OpenWeatherMap One Call 3.0 response into the
// five-column forecast panel: the current conditions followed by the
// forecasts 3, 6, 9 and 12 hours ahead.
package forecast

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"periph.io/x/devices/v3/ssd1683/icons"
)

// Count is the number of forecast columns.
const Count = 5

// hourlyOffsets are the hourly entries shown after the current conditions.
var hourlyOffsets = [Count - 1]int{3, 6, 9, 12}

var (
	ErrInvalidJSON = errors.New("forecast: invalid JSON")
	ErrNoCurrent   = errors.New("forecast: response has no current conditions")
)

// Record is one forecast column. The zero Record is an empty column.
type Record struct {
	Time        time.Time
	Icon        icons.Kind
	Temperature float64 // in the unit requested from the API
	Pop         float64 // probability of precipitation, 0..1
}

// Empty reports whether r holds no forecast.
func (r Record) Empty() bool {
	return r.Time.IsZero()
}

func (r Record) String() string {
	if r.Empty() {
		return "Record{}"
	}
	return fmt.Sprintf("Record{%s %v %.1f %.0f%%}", FormatTime(r.Time), r.Icon, r.Temperature, 100*r.Pop)
}

var iconCodes = []struct {
	code string
	kind icons.Kind
}{
	{"01d", icons.ClearDay},
	{"01n", icons.ClearNight},
	{"02d", icons.Clouds},
	{"02n", icons.Clouds},
	{"03d", icons.Clouds},
	{"03n", icons.Clouds},
	{"04d", icons.Clouds},
	{"04n", icons.Clouds},
	{"09d", icons.Rain},
	{"09n", icons.Rain},
	{"10d", icons.Rain},
	{"10n", icons.Rain},
	{"11d", icons.Thunderstorm},
	{"11n", icons.Thunderstorm},
	{"13d", icons.Snow},
	{"13n", icons.Snow},
	{"50d", icons.Mist},
	{"50n", icons.Mist},
}

// IconFromCode maps an OpenWeatherMap icon code such as "10d" to an icon.
// The first table entry contained in code wins; unknown codes map to Clouds.
func IconFromCode(code string) icons.Kind {
	for _, m := range iconCodes {
		if strings.Contains(code, m.code) {
			return m.kind
		}
	}
	return icons.Clouds
}

// FormatTime formats t as hours and minutes with a space padded hour, e.g. " 7:30".
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%2d:%02d", t.Hour(), t.Minute())
}

// Parse extracts the forecast columns from a One Call response.
//
// Column 0 holds the current conditions and columns 1..4 the hourly entries
// 3, 6, 9 and 12; entries missing from the response leave their column empty.
// Times are converted to loc. A nil loc uses the timezone offset reported in
// the response.
func Parse(data []byte, loc *time.Location) ([Count]Record, error) {
	var recs [Count]Record
	if !gjson.ValidBytes(data) {
		return recs, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	cur := root.Get("current")
	if !cur.IsObject() {
		return recs, ErrNoCurrent
	}
	if loc == nil {
		loc = time.FixedZone(root.Get("timezone").String(), int(root.Get("timezone_offset").Int()))
	}

	recs[0] = record(cur, loc)
	hourly := root.Get("hourly").Array()
	for i, idx := range hourlyOffsets {
		if idx < len(hourly) {
			recs[i+1] = record(hourly[idx], loc)
		}
	}
	return recs, nil
}

func record(v gjson.Result, loc *time.Location) Record {
	return Record{
		Time:        time.Unix(v.Get("dt").Int(), 0).In(loc),
		Icon:        IconFromCode(v.Get("weather.0.icon").String()),
		Temperature: v.Get("temp").Float(),
		Pop:         v.Get("pop").Float(),
	}
}
