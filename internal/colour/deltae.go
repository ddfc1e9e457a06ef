package colour

import "math"

// DeltaE2000 calculates the CIEDE2000 colour difference between two colours.
// This is the most perceptually accurate of the Delta E formulas: it corrects
// the chroma non-uniformity near neutral greys (the G factor), weights the
// lightness, chroma and hue deltas by empirically fitted curves, and applies
// the blue-region rotation term.
//
// A result of 0 means the colours are identical; values around 1 are barely
// noticeable and ~2.3 is the conventional just-noticeable threshold. The
// formula is symmetric but is not a metric in the strict geometric sense.
func DeltaE2000(c1, c2 RGB) float64 {
	lab1 := RGBToLab(c1)
	lab2 := RGBToLab(c2)

	deltaL := lab2.L - lab1.L
	lMean := (lab1.L + lab2.L) / 2

	ch1 := math.Sqrt(lab1.A*lab1.A + lab1.B*lab1.B)
	ch2 := math.Sqrt(lab2.A*lab2.A + lab2.B*lab2.B)
	cMean := (ch1 + ch2) / 2

	// G corrects a* for the known non-uniformity near the neutral axis.
	g := 0.5 * (1 - math.Sqrt(pow7(cMean)/(pow7(cMean)+pow7(25))))
	a1p := lab1.A * (1 + g)
	a2p := lab2.A * (1 + g)

	c1p := math.Sqrt(a1p*a1p + lab1.B*lab1.B)
	c2p := math.Sqrt(a2p*a2p + lab2.B*lab2.B)
	cMeanP := (c1p + c2p) / 2
	deltaCp := c2p - c1p

	h1p := hueAngle(a1p, lab1.B)
	h2p := hueAngle(a2p, lab2.B)

	// Hue difference, undefined when either colour is achromatic.
	var deltaSmallH float64
	switch {
	case c1p == 0 || c2p == 0:
		deltaSmallH = 0
	case math.Abs(h2p-h1p) <= 180:
		deltaSmallH = h2p - h1p
	case h2p-h1p > 180:
		deltaSmallH = h2p - h1p - 360
	default:
		deltaSmallH = h2p - h1p + 360
	}
	deltaHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(radians(deltaSmallH/2))

	var hMeanP float64
	switch {
	case c1p == 0 || c2p == 0:
		hMeanP = h1p + h2p
	case math.Abs(h1p-h2p) <= 180:
		hMeanP = (h1p + h2p) / 2
	case h1p+h2p < 360:
		hMeanP = (h1p + h2p + 360) / 2
	default:
		hMeanP = (h1p + h2p - 360) / 2
	}

	t := 1 - 0.17*math.Cos(radians(hMeanP-30)) +
		0.24*math.Cos(radians(2*hMeanP)) +
		0.32*math.Cos(radians(3*hMeanP+6)) -
		0.20*math.Cos(radians(4*hMeanP-63))

	deltaTheta := 30 * math.Exp(-math.Pow((hMeanP-275)/25, 2))
	rc := 2 * math.Sqrt(pow7(cMeanP)/(pow7(cMeanP)+pow7(25)))
	rt := -math.Sin(radians(2*deltaTheta)) * rc

	sl := 1 + (0.015*math.Pow(lMean-50, 2))/math.Sqrt(20+math.Pow(lMean-50, 2))
	sc := 1 + 0.045*cMeanP
	sh := 1 + 0.015*cMeanP*t

	// Parametric factors kL = kC = kH = 1 (reference conditions).
	lTerm := deltaL / sl
	cTerm := deltaCp / sc
	hTerm := deltaHp / sh

	return math.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rt*cTerm*hTerm)
}

// hueAngle returns the hue angle in degrees in [0, 360) for the adjusted
// a' and b components, or 0 when both are zero (achromatic).
func hueAngle(ap, b float64) float64 {
	if ap == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, ap) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func pow7(v float64) float64 {
	return math.Pow(v, 7)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
