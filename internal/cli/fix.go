package cli

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/report"
)

var (
	// Fix command flags
	fixMode    modeValue
	fixPremium bool
	fixLarge   bool
	fixFormat  string
	fixInput   string
	fixOutput  string
	fixJobs    int
)

// fixCmd represents the fix command
var fixCmd = &cobra.Command{
	Use:   "fix [<text> <background>]",
	Short: "Tune text colours until they meet their contrast target",
	Long: `Tune a text colour so it meets the WCAG contrast target against its
background, moving it as little as perceptually possible. The background
is never changed.

A single pair is given as two arguments. Batches are read from a file
with --input: one pair per line, text and background separated by "|",
the background optional. Blank lines and lines starting with // are
skipped.

Examples:
  # Fix grey text on white
  legible fix "#999999" "#ffffff"

  # Target AAA instead of AA
  legible fix "#777777" white --premium

  # Allow larger perceptual changes when nothing closer passes
  legible fix "#aaaaaa" white --mode relaxed

  # Fix a batch of pairs and keep the JSON result
  legible fix --input pairs.txt --format json --output report.json`,
	Args: cobra.MaximumNArgs(2),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().VarP(&fixMode, "mode", "m", "perceptual-change policy (strict, default, relaxed)")
	fixCmd.Flags().BoolVar(&fixPremium, "premium", false, "target WCAG AAA instead of AA")
	fixCmd.Flags().BoolVar(&fixLarge, "large-text", false, "apply the WCAG large-text thresholds (3.0 / 4.5)")
	fixCmd.Flags().StringVarP(&fixFormat, "format", "f", "", "output format (text, json, html)")
	fixCmd.Flags().StringVarP(&fixInput, "input", "i", "", "file of colour pairs to fix, one per line")
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "write the report to a file instead of stdout")
	fixCmd.Flags().IntVarP(&fixJobs, "jobs", "j", 0, "number of pairs tuned in parallel (default: number of CPUs)")
}

// pairSpec is one unparsed pair from the command line or an input file.
type pairSpec struct {
	text string
	bg   string
}

// runFix executes the fix command.
func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, cfg, &fixMode, fixPremium, fixLarge)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, fixFormat)
	if err != nil {
		return err
	}

	var specs []pairSpec
	switch {
	case fixInput != "":
		if len(args) > 0 {
			return fmt.Errorf("--input cannot be combined with colour arguments")
		}
		specs, err = readPairFile(fixInput, cfg.Background)
		if err != nil {
			return err
		}
	case len(args) == 2:
		specs = []pairSpec{{text: args[0], bg: args[1]}}
	case len(args) == 1:
		specs = []pairSpec{{text: args[0], bg: cfg.Background}}
	default:
		return fmt.Errorf("expected a colour pair or --input")
	}

	logger := newLogger("fix")
	logger.Debug("tuning pairs", "count", len(specs), "mode", opts.Mode.String())

	entries := tunePairs(specs, opts, fixJobs)

	for _, e := range entries {
		if e.Err == "" {
			logger.Debug("tuned pair",
				"original", e.Result.Original.Hex(),
				"tuned", e.Result.Tuned.Hex(),
				"ratio", e.Result.Ratio,
				"delta_e", e.Result.DeltaE,
				"status", e.Result.Status.String())
		}
	}

	if format == report.FormatText && fixOutput == "" {
		printPreviews(entries)
	}
	return writeReport(cmd, fixOutput, format, entries)
}

// tunePairs parses and tunes the pairs on a bounded worker pool, keeping
// the input order in the returned entries.
func tunePairs(specs []pairSpec, opts colour.Options, jobs int) []report.Entry {
	entries := make([]report.Entry, len(specs))

	nw := jobs
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	if nw > len(specs) {
		nw = len(specs)
	}

	work := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range work {
			spec := specs[i]
			text, bg, err := parsePair(spec.text, spec.bg)
			if err != nil {
				entries[i] = report.Entry{
					Selector: spec.text + " | " + spec.bg,
					Err:      err.Error(),
				}
				continue
			}
			entries[i] = report.Entry{Result: colour.Tune(text, bg, opts)}
		}
	}

	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
	for i := range specs {
		work <- i
	}
	close(work)
	wg.Wait()

	return entries
}

// readPairFile reads "text | background" lines. A line with no separator
// is a text colour against the default background.
func readPairFile(path, defaultBg string) ([]pairSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var specs []pairSpec
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "//") {
			continue
		}

		text, bg, found := strings.Cut(raw, "|")
		spec := pairSpec{text: strings.TrimSpace(text), bg: defaultBg}
		if found {
			spec.bg = strings.TrimSpace(bg)
		}
		if spec.text == "" || spec.bg == "" {
			return nil, fmt.Errorf("%s:%d: malformed pair %q", path, line, raw)
		}
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return specs, nil
}
