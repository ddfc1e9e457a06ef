package colour

import (
	"fmt"
)

// ANSI escape codes for truecolour terminal output.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
)

// Preview returns an ANSI truecolour rendering of the text drawn on the
// background, for terminals that support 24-bit colour.
func Preview(text, bg RGB, label string) string {
	if label == "" {
		label = "Sample Text"
	}

	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, text.R, text.G, text.B, ansiSuffix)
	bgSeq := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, bg.R, bg.G, bg.B, ansiSuffix)

	return fg + bgSeq + " " + label + " " + ansiReset
}
