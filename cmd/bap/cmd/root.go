package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *fileConfig
	logger *slog.Logger
)

// errHits is returned by check --fail-on-hits when outstanding changes
// were reported. It maps to exit status 2.
var errHits = errors.New("outstanding changes found")

var rootCmd = &cobra.Command{
	Use:   "bap",
	Short: "OpenTraceBAP - schematic back-annotation checker",
	Long: `OpenTraceBAP (bap) checks KiCad schematics against back-annotation
patch files written by a PCB layout tool, and reports every connection
or attribute change that has not been made in the schematic yet.

Examples:
  bap check board.kicad_sch                  # Uses board.bap next to it
  bap check a.kicad_sch b.kicad_sch -p x.bap # Multi-sheet design
  bap check board.kicad_sch --where 'kind == "not_found"'
  bap parse board.bap                        # Validate a patch file
  bap nets board.kicad_sch --patch           # Dump nets as net_info lines`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)

		var err error
		cfg, err = loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		logger.Debug("configuration", "file", cfg.path, "unnamed_net_prefix", cfg.unnamedPrefix(), "format", cfg.Format, "color", cfg.Color)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errHits) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile, "configuration file")
}

// newLogger writes diagnostics to stderr without timestamps
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
