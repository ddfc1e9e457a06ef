package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/config"
	"github.com/jmylchreest/legible/internal/report"
)

// modeValue is a flag value for the tuning mode, validated as it is set.
type modeValue struct {
	mode colour.Mode
}

var _ pflag.Value = (*modeValue)(nil)

func (m *modeValue) String() string { return m.mode.String() }

func (m *modeValue) Set(s string) error {
	mode, err := colour.ParseMode(s)
	if err != nil {
		return err
	}
	m.mode = mode
	return nil
}

func (m *modeValue) Type() string { return "mode" }

// resolveOptions merges the configured defaults with any flags set
// explicitly on the command. Flags win over the config file.
func resolveOptions(cmd *cobra.Command, cfg config.Config, modeFlag *modeValue, premiumFlag, largeFlag bool) (colour.Options, error) {
	opts := cfg.TuneOptions()

	if cmd.Flags().Changed("mode") {
		opts.Mode = modeFlag.mode
	}
	if cmd.Flags().Changed("premium") {
		opts.Premium = premiumFlag
	}
	if cmd.Flags().Changed("large-text") {
		opts.LargeText = largeFlag
	}
	return opts, nil
}

// resolveFormat picks the report format from the flag or the config file.
func resolveFormat(cmd *cobra.Command, cfg config.Config, formatFlag string) (report.Format, error) {
	if cmd.Flags().Changed("format") {
		return report.ParseFormat(formatFlag)
	}
	return cfg.ReportFormat(), nil
}

// parsePair parses a text/background colour pair. Transparency in the text
// colour is composited over the background first.
func parsePair(textArg, bgArg string) (text, bg colour.RGB, err error) {
	bg, _, err = colour.Parse(bgArg)
	if err != nil {
		return text, bg, fmt.Errorf("background: %w", err)
	}
	text, _, err = colour.ParseOver(textArg, bg)
	if err != nil {
		return text, bg, fmt.Errorf("text: %w", err)
	}
	return text, bg, nil
}

// writeReport renders the entries to the given path, or to the command's
// stdout when the path is empty.
func writeReport(cmd *cobra.Command, path string, format report.Format, entries []report.Entry) error {
	if path == "" {
		return report.Write(cmd.OutOrStdout(), format, entries)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, format, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printPreviews renders before/after terminal swatches for each entry.
// Skipped when stdout is not a terminal or --quiet is set.
func printPreviews(entries []report.Entry) {
	if flagQuiet || !stdoutIsTerminal() {
		return
	}

	for _, e := range entries {
		if e.Err != "" {
			continue
		}
		r := e.Result
		if r.Tuned == r.Original {
			fmt.Println(colour.Preview(r.Original, r.Background, r.Original.Hex()))
			continue
		}
		fmt.Printf("%s -> %s\n",
			colour.Preview(r.Original, r.Background, r.Original.Hex()),
			colour.Preview(r.Tuned, r.Background, r.Tuned.Hex()))
	}
}
