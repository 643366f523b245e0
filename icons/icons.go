// Package icons holds the 128x128 weather icons shown on the forecast panel.
//
// Icons use the packed asset format paint.Bitmap expects: 1 bit per pixel,
// 16 bytes per row, most significant bit first, set bit = ink. The tables in
// icons_gen.go are generated from the drawings in internal/art. Blit them with
// the panel background color:
//
//	paint.Bitmap(c, x, y, icons.Size, icons.Size, icons.Rain.Bitmap(), image1bit.White)
package icons

//go:generate go run gen.go

// Size is the width and height of every icon in pixels.
const Size = 128

// Kind identifies a weather icon.
type Kind int

const (
	ClearDay Kind = iota
	ClearNight
	Clouds
	Rain
	Thunderstorm
	Snow
	Mist
	numKinds
)

var names = [numKinds]string{"ClearDay", "ClearNight", "Clouds", "Rain", "Thunderstorm", "Snow", "Mist"}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(?)"
	}
	return names[k]
}

// Bitmap returns the packed icon, or nil for an unknown Kind.
// The returned slice is shared and must not be modified.
func (k Kind) Bitmap() []byte {
	if k < 0 || k >= numKinds {
		return nil
	}
	return bitmaps[k]
}
