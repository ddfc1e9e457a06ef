// Package cli provides the command-line interface for Legible.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/legible/internal/config"
	"github.com/jmylchreest/legible/internal/version"
)

var (
	// Global flags
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "legible",
		Short: "Fix text colours that fail WCAG contrast",
		Long: `Legible checks text/background colour pairs against the WCAG contrast
thresholds and nudges failing text colours until they pass, changing them
as little as perceptually possible.

Colours are tuned in the OKLCH colour space and the perceptual change is
measured with CIEDE2000, so fixed colours stay recognisably close to the
originals. Backgrounds are never modified.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the fully wired root command, mainly for tests.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to legible.toml (default: working directory, then user config directory)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(cssCmd)
}

// newLogger returns a logger configured from the verbose flag.
func newLogger(name string) hclog.Logger {
	if flagVerbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   name,
			Output: log.Writer(),
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// loadConfig resolves the configuration file, honouring --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// stdoutIsTerminal reports whether stdout is an interactive terminal, for
// deciding whether colour previews are worth printing.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
