package cli

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/css"
	"github.com/jmylchreest/legible/internal/report"
)

var (
	// CSS command flags
	cssMode       modeValue
	cssPremium    bool
	cssLarge      bool
	cssFormat     string
	cssBackground string
	cssWrite      bool
	cssOutput     string
	cssReportFile string
	cssJobs       int
)

// cssCmd represents the css command
var cssCmd = &cobra.Command{
	Use:   "css <file>...",
	Short: "Scan stylesheets and fix failing colour pairs",
	Long: `Scan CSS files for color/background-color declarations, tune the pairs
that fail their contrast target and report the outcome per rule.

By default nothing is written back: the command is a dry run that prints
the report. Use --write to rewrite the files in place, or --output to
write the fixed stylesheet of a single input to another path. Rules
without a background-color are checked against the default background.

Examples:
  # Report what would change
  legible css site.css

  # Fix the files in place
  legible css --write site.css theme.css

  # Keep the original, write the fixed sheet elsewhere
  legible css site.css --output site.fixed.css

  # Dark stylesheets need the right assumed background
  legible css dark.css --background "#1e1e2e"

  # HTML report with before/after swatches
  legible css site.css --format html --report report.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCSS,
}

func init() {
	cssCmd.Flags().VarP(&cssMode, "mode", "m", "perceptual-change policy (strict, default, relaxed)")
	cssCmd.Flags().BoolVar(&cssPremium, "premium", false, "target WCAG AAA instead of AA")
	cssCmd.Flags().BoolVar(&cssLarge, "large-text", false, "apply the WCAG large-text thresholds (3.0 / 4.5)")
	cssCmd.Flags().StringVarP(&cssFormat, "format", "f", "", "report format (text, json, html)")
	cssCmd.Flags().StringVarP(&cssBackground, "background", "b", "", "background assumed for rules without background-color")
	cssCmd.Flags().BoolVarP(&cssWrite, "write", "w", false, "rewrite the input files in place")
	cssCmd.Flags().StringVarP(&cssOutput, "output", "o", "", "write the fixed stylesheet to a file (single input only)")
	cssCmd.Flags().StringVar(&cssReportFile, "report", "", "write the report to a file instead of stdout")
	cssCmd.Flags().IntVarP(&cssJobs, "jobs", "j", 0, "number of files processed in parallel (default: number of CPUs)")
}

// cssOutcome is the result of processing one stylesheet.
type cssOutcome struct {
	entries   []report.Entry
	rewritten string
	changed   bool
	err       error
}

// runCSS executes the css command.
func runCSS(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, cfg, &cssMode, cssPremium, cssLarge)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, cssFormat)
	if err != nil {
		return err
	}
	if cssOutput != "" && len(args) != 1 {
		return fmt.Errorf("--output requires exactly one input file")
	}
	if cssOutput != "" && cssWrite {
		return fmt.Errorf("--output cannot be combined with --write")
	}

	fixOpts := css.FixOptions{
		DefaultBackground: cssBackground,
		Tune:              opts,
	}
	if fixOpts.DefaultBackground == "" {
		fixOpts.DefaultBackground = cfg.Background
	}

	logger := newLogger("css")
	outcomes := fixFiles(args, fixOpts, cssJobs)

	var entries []report.Entry
	for i, path := range args {
		oc := outcomes[i]
		if oc.err != nil {
			entries = append(entries, report.Entry{File: path, Err: oc.err.Error()})
			continue
		}

		logger.Debug("processed stylesheet",
			"file", path, "rules", len(oc.entries), "changed", oc.changed)
		entries = append(entries, oc.entries...)

		switch {
		case cssOutput != "":
			if err := os.WriteFile(cssOutput, []byte(oc.rewritten), 0o644); err != nil {
				return err
			}
		case cssWrite && oc.changed:
			if err := os.WriteFile(path, []byte(oc.rewritten), 0o644); err != nil {
				return err
			}
		}
	}

	return writeReport(cmd, cssReportFile, format, entries)
}

// fixFiles processes the stylesheets on a bounded worker pool, keeping the
// argument order in the returned outcomes.
func fixFiles(paths []string, opts css.FixOptions, jobs int) []cssOutcome {
	outcomes := make([]cssOutcome, len(paths))

	nw := jobs
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	if nw > len(paths) {
		nw = len(paths)
	}

	work := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range work {
			outcomes[i] = fixFile(paths[i], opts)
		}
	}

	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
	for i := range paths {
		work <- i
	}
	close(work)
	wg.Wait()

	return outcomes
}

func fixFile(path string, opts css.FixOptions) cssOutcome {
	data, err := os.ReadFile(path)
	if err != nil {
		return cssOutcome{err: err}
	}

	src := string(data)
	out, results := css.Fix(src, opts)

	oc := cssOutcome{
		rewritten: out,
		changed:   out != src,
		entries:   make([]report.Entry, 0, len(results)),
	}
	for _, r := range results {
		entry := report.Entry{
			Selector: r.Selector,
			File:     path,
			Line:     r.Line,
			Result:   r.Result,
		}
		if r.Err != nil {
			entry.Err = r.Err.Error()
		}
		oc.entries = append(oc.entries, entry)
	}
	return oc
}
