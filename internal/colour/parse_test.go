package colour

import (
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		want       RGB
		wantFormat Format
	}{
		{name: "long hex", in: "#1a2b3c", want: RGB{26, 43, 60}, wantFormat: FormatHex},
		{name: "short hex", in: "#abc", want: RGB{170, 187, 204}, wantFormat: FormatHex},
		{name: "uppercase hex", in: "#FF0000", want: RGB{255, 0, 0}, wantFormat: FormatHex},
		{name: "rgb function", in: "rgb(12, 34, 56)", want: RGB{12, 34, 56}, wantFormat: FormatRGB},
		{name: "rgb no spaces", in: "rgb(1,2,3)", want: RGB{1, 2, 3}, wantFormat: FormatRGB},
		{name: "rgba opaque", in: "rgba(10, 20, 30, 1)", want: RGB{10, 20, 30}, wantFormat: FormatRGBA},
		{name: "rgba half over white", in: "rgba(0, 0, 0, 0.5)", want: RGB{128, 128, 128}, wantFormat: FormatRGBA},
		{name: "hsl red", in: "hsl(0, 100%, 50%)", want: RGB{255, 0, 0}, wantFormat: FormatHSL},
		{name: "hsl green", in: "hsl(120, 100%, 50%)", want: RGB{0, 255, 0}, wantFormat: FormatHSL},
		{name: "hsl achromatic", in: "hsl(200, 0%, 50%)", want: RGB{128, 128, 128}, wantFormat: FormatHSL},
		{name: "hsl space separated", in: "hsl(240 100% 50%)", want: RGB{0, 0, 255}, wantFormat: FormatHSL},
		{name: "hsla opaque", in: "hsla(0, 100%, 50%, 1.0)", want: RGB{255, 0, 0}, wantFormat: FormatHSLA},
		{name: "named colour", in: "rebeccapurple", want: RGB{102, 51, 153}, wantFormat: FormatName},
		{name: "named colour case folded", in: "White", want: RGB{255, 255, 255}, wantFormat: FormatName},
		{name: "surrounding whitespace", in: "  #ffffff  ", want: RGB{255, 255, 255}, wantFormat: FormatHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, format, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if format != tt.wantFormat {
				t.Errorf("Parse(%q) format = %v, want %v", tt.in, format, tt.wantFormat)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "bad hex length", in: "#12345"},
		{name: "bad hex digits", in: "#zzzzzz"},
		{name: "rgb component too large", in: "rgb(300, 0, 0)"},
		{name: "rgb negative component", in: "rgb(-1, 0, 0)"},
		{name: "rgb missing component", in: "rgb(1, 2)"},
		{name: "rgba bad alpha", in: "rgba(0, 0, 0, 1.5)"},
		{name: "hsl bad percentage", in: "hsl(0, 200%, 50%)"},
		{name: "unknown name", in: "notacolour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _, err := Parse(tt.in); err == nil {
				t.Errorf("Parse(%q) = %v, want error", tt.in, got)
			}
		})
	}
}

func TestParseOverCompositesAlpha(t *testing.T) {
	// Half-transparent black over black stays black.
	got, _, err := ParseOver("rgba(0, 0, 0, 0.5)", RGB{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if got != (RGB{0, 0, 0}) {
		t.Errorf("got %v, want black", got)
	}

	// Fully opaque ignores the background.
	got, _, err = ParseOver("rgba(10, 20, 30, 1)", RGB{200, 200, 200})
	if err != nil {
		t.Fatal(err)
	}
	if got != (RGB{10, 20, 30}) {
		t.Errorf("got %v, want rgb(10, 20, 30)", got)
	}
}

func TestRenderKeepsNotation(t *testing.T) {
	tests := []struct {
		name   string
		rgb    RGB
		format Format
		want   string
	}{
		{name: "hex", rgb: RGB{26, 43, 60}, format: FormatHex, want: "#1a2b3c"},
		{name: "rgb", rgb: RGB{12, 34, 56}, format: FormatRGB, want: "rgb(12, 34, 56)"},
		{name: "rgba renders opaque", rgb: RGB{12, 34, 56}, format: FormatRGBA, want: "rgb(12, 34, 56)"},
		{name: "named renders as hex", rgb: RGB{102, 51, 153}, format: FormatName, want: "#663399"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.rgb, tt.format); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderHSLRoundTrips(t *testing.T) {
	// HSL rendering rounds to whole degrees and percents; parsing the
	// rendered string should land close to the original colour.
	in := RGB{200, 60, 60}
	out := Render(in, FormatHSL)
	if !strings.HasPrefix(out, "hsl(") {
		t.Fatalf("Render = %q, want hsl() notation", out)
	}

	back, _, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", out, err)
	}
	if absDiffUint8(back.R, in.R) > 4 || absDiffUint8(back.G, in.G) > 4 || absDiffUint8(back.B, in.B) > 4 {
		t.Errorf("hsl round trip %v -> %q -> %v drifted too far", in, out, back)
	}
}
