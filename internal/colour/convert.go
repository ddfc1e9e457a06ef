package colour

import "math"

// srgbToLinear converts a single sRGB component in [0, 1] to linear RGB
// using the standard piecewise gamma curve.
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB converts a single linear RGB component in [0, 1] to sRGB.
func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// RGBToLCH converts an sRGB colour to OKLCH.
// The chain is sRGB -> linear RGB -> LMS cone response -> OKLab -> OKLCH,
// using the official OKLab transformation matrices.
func RGBToLCH(rgb RGB) LCH {
	r := srgbToLinear(float64(rgb.R) / 255.0)
	g := srgbToLinear(float64(rgb.G) / 255.0)
	b := srgbToLinear(float64(rgb.B) / 255.0)

	// Linear RGB -> LMS cone responses.
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	// Cube root nonlinearity. math.Cbrt preserves sign for out-of-gamut
	// intermediate values.
	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	// LMS' -> OKLab.
	L := 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp
	a := 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp
	bb := 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp

	c := math.Sqrt(a*a + bb*bb)

	var h float64
	if c < 1e-10 {
		// Achromatic: hue is undefined, report 0 rather than noise.
		h = 0
	} else {
		h = math.Atan2(bb, a) * 180.0 / math.Pi
		if h < 0 {
			h += 360.0
		}
	}

	return LCH{L: clamp01(L), C: c, H: h}
}

// LCHToRGB converts an OKLCH colour back to 8-bit sRGB.
// Out-of-gamut results are clamped per channel to the displayable range;
// this is the defined policy, not an error, so out-of-gamut LCH values are
// representable but lossy on the way back.
func LCHToRGB(lch LCH) RGB {
	hRad := lch.H * math.Pi / 180.0
	a := lch.C * math.Cos(hRad)
	b := lch.C * math.Sin(hRad)

	// OKLab -> LMS'.
	lp := lch.L + 0.3963377774*a + 0.2158037573*b
	mp := lch.L - 0.1055613458*a - 0.0638541728*b
	sp := lch.L - 0.0894841775*a - 1.2914855480*b

	// Inverse of the cube root, sign preserved.
	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	// LMS -> linear RGB.
	r := 4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	bl := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	// Gamut clamp before the gamma curve.
	rs := linearToSRGB(clamp01(r))
	gs := linearToSRGB(clamp01(g))
	bs := linearToSRGB(clamp01(bl))

	return RGB{
		R: uint8(math.Round(clamp01(rs) * 255.0)),
		G: uint8(math.Round(clamp01(gs) * 255.0)),
		B: uint8(math.Round(clamp01(bs) * 255.0)),
	}
}

// RGBToLab converts an sRGB colour to CIE L*a*b* via linear RGB and XYZ
// with the D65 white point.
func RGBToLab(rgb RGB) Lab {
	r := srgbToLinear(float64(rgb.R) / 255.0)
	g := srgbToLinear(float64(rgb.G) / 255.0)
	b := srgbToLinear(float64(rgb.B) / 255.0)

	// Linear RGB -> XYZ (sRGB matrix, D65 illuminant), scaled to the
	// conventional 0-100 range.
	x := (r*0.4124564 + g*0.3575761 + b*0.1804375) * 100
	y := (r*0.2126729 + g*0.7151522 + b*0.0721750) * 100
	z := (r*0.0193339 + g*0.1191920 + b*0.9503041) * 100

	// D65 reference white.
	const xn, yn, zn = 95.047, 100.000, 108.883

	fx := labTransform(x / xn)
	fy := labTransform(y / yn)
	fz := labTransform(z / zn)

	l := 116*fy - 16
	if l < 0 {
		l = 0
	} else if l > 100 {
		l = 100
	}

	return Lab{
		L: l,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// labTransform applies the CIE nonlinearity with the 6/29 knee.
func labTransform(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}
