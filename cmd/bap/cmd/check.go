package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBAP/internal/report"
	"github.com/OpenTraceLab/OpenTraceBAP/pkg/patch"
)

var (
	checkPatch      string
	checkFormat     string
	checkWhere      string
	checkExplain    bool
	checkColor      string
	checkFailOnHits bool
)

var checkCmd = &cobra.Command{
	Use:   "check <schematic_file>...",
	Short: "Report patch changes missing from a schematic",
	Long: `Load one or more KiCad schematic sheets, replay a back-annotation patch
against them and list every change that still has to be made.

Without --patch the patch file is derived from the first schematic:
board.kicad_sch looks for board.bap, then board.kicad_sch.bap.

The --where expression filters hits on kind ("mismatch" or "not_found"),
page, line, location, action and stale.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkPatch, "patch", "p", "", "patch file (default: guessed from the first schematic)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", report.FormatText, "output format: text, json or yaml")
	checkCmd.Flags().StringVarP(&checkWhere, "where", "w", "", "only report hits matching this expression")
	checkCmd.Flags().BoolVar(&checkExplain, "explain", false, "show a character diff for attribute changes")
	checkCmd.Flags().StringVar(&checkColor, "color", report.ColorAuto, "colour output: auto, always or never")
	checkCmd.Flags().BoolVar(&checkFailOnHits, "fail-on-hits", false, "exit with status 2 when changes are outstanding")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format := checkFormat
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	colorMode := checkColor
	if !cmd.Flags().Changed("color") && cfg.Color != "" {
		colorMode = cfg.Color
	}
	out := cmd.OutOrStdout()
	useColor, err := report.ColorEnabled(colorMode, out)
	if err != nil {
		return err
	}
	filter, err := report.CompileFilter(checkWhere)
	if err != nil {
		return err
	}

	patchFile := checkPatch
	if patchFile == "" {
		guess, ok := patch.GuessFilename(args[0])
		if !ok {
			return fmt.Errorf("no patch file found for %s (tried %s); use --patch", args[0], guess)
		}
		patchFile = guess
		logger.Debug("using patch file", "file", patchFile)
	}

	m, err := loadSchematics(args)
	if err != nil {
		return err
	}

	st, err := patch.Open(patchFile, cfg.patchConfig())
	if err != nil {
		return err
	}
	defer st.Destroy()

	st.BuildAll(m)
	hits := patch.TrackHits(m, st.Execute(m))
	defer hits.Release()

	rows, err := filter.Apply(report.Rows(hits))
	if err != nil {
		return err
	}
	rep := &report.Report{Patch: patchFile, Hits: rows}
	if err := report.Write(out, rep, report.Options{Format: format, Color: useColor, Explain: checkExplain}); err != nil {
		return err
	}

	if checkFailOnHits && len(rows) > 0 {
		return errHits
	}
	return nil
}
