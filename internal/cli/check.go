package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/report"
)

var (
	// Check command flags
	checkLarge  bool
	checkFormat string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <text> <background>",
	Short: "Check a colour pair against the WCAG contrast thresholds",
	Long: `Check the contrast ratio of a text colour against a background and
report the WCAG conformance level. No colours are changed.

Colours are accepted as hex (#rgb, #rrggbb), rgb()/rgba(), hsl()/hsla()
or CSS colour names. Translucent text colours are composited over the
background before measuring.

Examples:
  # Check grey text on a white background
  legible check "#999999" "#ffffff"

  # Large headings use the relaxed thresholds
  legible check "#949494" white --large-text

  # Machine-readable output
  legible check "rgb(119, 119, 119)" white --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkLarge, "large-text", false, "apply the WCAG large-text thresholds (3.0 / 4.5)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "", "output format (text, json, html)")
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, checkFormat)
	if err != nil {
		return err
	}

	large := cfg.LargeText
	if cmd.Flags().Changed("large-text") {
		large = checkLarge
	}

	text, bg, err := parsePair(args[0], args[1])
	if err != nil {
		return err
	}

	ratio := colour.ContrastRatio(text, bg)
	level := colour.Classify(ratio, large)

	logger := newLogger("check")
	logger.Debug("checked pair",
		"text", text.Hex(), "background", bg.Hex(),
		"ratio", ratio, "level", level.String())

	status := colour.StatusFailed
	if level != colour.LevelFail {
		status = colour.StatusAlreadyPasses
	}

	entry := report.Entry{
		Result: colour.Result{
			Original:      text,
			Background:    bg,
			Tuned:         text,
			OriginalRatio: ratio,
			Ratio:         ratio,
			OriginalLevel: level,
			Level:         level,
			Status:        status,
		},
	}

	if format == report.FormatText {
		printPreviews([]report.Entry{entry})
	}
	return writeReport(cmd, "", format, []report.Entry{entry})
}
