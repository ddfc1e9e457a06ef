// Package colour provides the colour science core for legible: colour space
// conversions, WCAG contrast evaluation, perceptual difference measurement
// and the optimisation engine that nudges failing text colours into
// compliance with minimal visible change.
package colour

import "fmt"

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// LCH represents a colour in the OKLCH colour space.
// L is perceptual lightness in [0, 1], C is chroma (non-negative, roughly
// 0-0.4 for colours inside the sRGB gamut) and H is the hue angle in degrees
// in [0, 360). The hue is meaningless when chroma is near zero.
type LCH struct {
	L float64
	C float64
	H float64
}

// Lab represents a colour in the CIE 1976 L*a*b* colour space.
// Used internally by the Delta E 2000 difference formula.
type Lab struct {
	L float64
	A float64
	B float64
}

// clamp01 clamps v to the range [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
