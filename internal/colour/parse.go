package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Format identifies the notation a colour string was written in, so output
// can be rendered back in the caller's own notation.
type Format int

const (
	// FormatHex is "#rgb" or "#rrggbb".
	FormatHex Format = iota
	// FormatRGB is "rgb(r, g, b)".
	FormatRGB
	// FormatRGBA is "rgba(r, g, b, a)"; the alpha is composited away on parse.
	FormatRGBA
	// FormatHSL is "hsl(h, s%, l%)".
	FormatHSL
	// FormatHSLA is "hsla(h, s%, l%, a)"; the alpha is composited away on parse.
	FormatHSLA
	// FormatName is a CSS named colour such as "rebeccapurple".
	FormatName
)

// Parse converts a CSS colour string to RGB. Supported notations are hex
// ("#rgb", "#rrggbb"), "rgb()", "rgba()", "hsl()", "hsla()" and the SVG 1.1
// named colours. Translucent colours are composited over white; use
// ParseOver to composite over a specific background.
func Parse(s string) (RGB, Format, error) {
	return ParseOver(s, RGB{R: 255, G: 255, B: 255})
}

// ParseOver is Parse with an explicit background for alpha compositing. The
// core engine only works on opaque colours, so transparency is resolved here
// at the boundary.
func ParseOver(s string, bg RGB) (RGB, Format, error) {
	str := strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(str, "#"):
		rgb, err := parseHex(str)
		return rgb, FormatHex, err
	case strings.HasPrefix(str, "rgba(") && strings.HasSuffix(str, ")"):
		rgb, err := parseRGBA(str, bg)
		return rgb, FormatRGBA, err
	case strings.HasPrefix(str, "rgb(") && strings.HasSuffix(str, ")"):
		rgb, err := parseRGBFunc(str)
		return rgb, FormatRGB, err
	case strings.HasPrefix(str, "hsla(") && strings.HasSuffix(str, ")"):
		rgb, err := parseHSLA(str, bg)
		return rgb, FormatHSLA, err
	case strings.HasPrefix(str, "hsl(") && strings.HasSuffix(str, ")"):
		rgb, err := parseHSLFunc(str)
		return rgb, FormatHSL, err
	default:
		if c, ok := colornames.Map[str]; ok {
			return RGB{R: c.R, G: c.G, B: c.B}, FormatName, nil
		}
		return RGB{}, FormatHex, fmt.Errorf("unrecognised colour %q (expected hex, rgb(), rgba(), hsl(), hsla() or a named colour)", s)
	}
}

// Render formats a colour in the given notation. Named colours and the
// alpha notations cannot be reproduced after compositing, so FormatName
// renders as hex and FormatRGBA/FormatHSLA as their opaque forms.
func Render(rgb RGB, f Format) string {
	switch f {
	case FormatRGB, FormatRGBA:
		return rgb.String()
	case FormatHSL, FormatHSLA:
		h, s, l := rgbToHSL(rgb)
		return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s*100, l*100)
	default:
		return rgb.Hex()
	}
}

func parseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: need 3 or 6 digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func parseRGBFunc(s string) (RGB, error) {
	parts := splitArgs(s[len("rgb(") : len(s)-1])
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("invalid rgb() colour %q: need 3 components", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("invalid rgb() component %q in %q: must be an integer in 0-255", p, s)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func parseRGBA(s string, bg RGB) (RGB, error) {
	parts := splitArgs(s[len("rgba(") : len(s)-1])
	if len(parts) != 4 {
		return RGB{}, fmt.Errorf("invalid rgba() colour %q: need 4 components", s)
	}
	rgb, err := parseRGBFunc("rgb(" + strings.Join(parts[:3], ", ") + ")")
	if err != nil {
		return RGB{}, fmt.Errorf("invalid rgba() colour %q: %w", s, err)
	}
	alpha, err := strconv.ParseFloat(parts[3], 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return RGB{}, fmt.Errorf("invalid alpha %q in %q: must be a number in 0-1", parts[3], s)
	}
	return compositeOver(rgb, bg, alpha), nil
}

func parseHSLFunc(s string) (RGB, error) {
	h, sat, light, err := parseHSLArgs(s[len("hsl("):len(s)-1], 3)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hsl() colour %q: %w", s, err)
	}
	return hslToRGB(h, sat, light), nil
}

func parseHSLA(s string, bg RGB) (RGB, error) {
	parts := splitArgs(s[len("hsla(") : len(s)-1])
	if len(parts) != 4 {
		return RGB{}, fmt.Errorf("invalid hsla() colour %q: need 4 components", s)
	}
	h, sat, light, err := parseHSLArgs(strings.Join(parts[:3], ", "), 3)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hsla() colour %q: %w", s, err)
	}
	alpha, err := strconv.ParseFloat(parts[3], 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return RGB{}, fmt.Errorf("invalid alpha %q in %q: must be a number in 0-1", parts[3], s)
	}
	return compositeOver(hslToRGB(h, sat, light), bg, alpha), nil
}

// parseHSLArgs parses "h, s%, l%" (commas or spaces) into numeric HSL.
func parseHSLArgs(args string, want int) (h, s, l float64, err error) {
	parts := splitArgs(args)
	if len(parts) != want {
		return 0, 0, 0, fmt.Errorf("need %d components", want)
	}
	h, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hue %q", parts[0])
	}
	h = math.Mod(math.Mod(h, 360)+360, 360)

	for i, out := range []*float64{&s, &l} {
		p := strings.TrimSuffix(parts[i+1], "%")
		v, perr := strconv.ParseFloat(p, 64)
		if perr != nil || v < 0 || v > 100 {
			return 0, 0, 0, fmt.Errorf("invalid percentage %q", parts[i+1])
		}
		*out = v / 100
	}
	return h, s, l, nil
}

// splitArgs splits a CSS function argument list on commas, spaces or the
// modern slash-before-alpha syntax.
func splitArgs(args string) []string {
	args = strings.ReplaceAll(args, "/", " ")
	args = strings.ReplaceAll(args, ",", " ")
	return strings.Fields(args)
}

// compositeOver alpha-blends a colour over an opaque background.
func compositeOver(fg, bg RGB, alpha float64) RGB {
	blend := func(f, b uint8) uint8 {
		return uint8(math.Round(float64(f)*alpha + float64(b)*(1-alpha)))
	}
	return RGB{R: blend(fg.R, bg.R), G: blend(fg.G, bg.G), B: blend(fg.B, bg.B)}
}

// hslToRGB converts HSL to RGB. h is hue in degrees, s and l are in [0, 1].
func hslToRGB(h, s, l float64) RGB {
	if s == 0 {
		// Achromatic (grey).
		v := uint8(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToRGB(p, q, h+120)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-120)

	return RGB{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	for t < 0 {
		t += 360
	}
	for t >= 360 {
		t -= 360
	}

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// rgbToHSL converts RGB to HSL. Returns hue (0-360), saturation (0-1),
// lightness (0-1).
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	if delta == 0 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return h, s, l
}
