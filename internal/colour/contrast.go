package colour

// WCAG contrast thresholds.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
const (
	// AANormal is the minimum ratio for normal text at WCAG AA.
	AANormal = 4.5
	// AALarge is the minimum ratio for large text (18pt+, or 14pt+ bold) at WCAG AA.
	AALarge = 3.0
	// AAANormal is the minimum ratio for normal text at WCAG AAA.
	AAANormal = 7.0
	// AAALarge is the minimum ratio for large text at WCAG AAA.
	AAALarge = 4.5
)

// Level is a WCAG conformance level for a contrast ratio.
type Level int

const (
	// LevelFail indicates the ratio meets no WCAG threshold.
	LevelFail Level = iota
	// LevelAA indicates the ratio meets WCAG AA but not AAA.
	LevelAA
	// LevelAAA indicates the ratio meets WCAG AAA.
	LevelAAA
)

// String returns the WCAG level name.
func (l Level) String() string {
	switch l {
	case LevelAAA:
		return "AAA"
	case LevelAA:
		return "AA"
	default:
		return "FAIL"
	}
}

// Luminance calculates the relative luminance of a colour according to
// WCAG 2.0. Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	r := srgbToLinear(float64(rgb.R) / 255.0)
	g := srgbToLinear(float64(rgb.G) / 255.0)
	b := srgbToLinear(float64(rgb.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio calculates the contrast ratio between two colours according
// to WCAG 2.0. Returns a value between 1 and 21, where 21 is maximum
// contrast (black vs white). Symmetric in its arguments.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Classify maps a contrast ratio to its WCAG conformance level for the given
// text size.
func Classify(ratio float64, large bool) Level {
	aaa, aa := AAANormal, AANormal
	if large {
		aaa, aa = AAALarge, AALarge
	}
	switch {
	case ratio >= aaa:
		return LevelAAA
	case ratio >= aa:
		return LevelAA
	default:
		return LevelFail
	}
}

// Target returns the contrast ratio the tuner aims for. Premium callers are
// held to the AAA thresholds, everyone else to AA.
func Target(large, premium bool) float64 {
	if premium {
		if large {
			return AAALarge
		}
		return AAANormal
	}
	if large {
		return AALarge
	}
	return AANormal
}
