package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/patch"
)

var netsAsPatch bool

var netsCmd = &cobra.Command{
	Use:   "nets <schematic_file>...",
	Short: "List the named nets of a schematic",
	Long: `List every named net of one or more schematic sheets with the pins
connected to it. With --patch the nets are printed as net_info records,
ready to seed a patch file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNets,
}

func init() {
	rootCmd.AddCommand(netsCmd)
	netsCmd.Flags().BoolVar(&netsAsPatch, "patch", false, "print net_info records")
}

func runNets(cmd *cobra.Command, args []string) error {
	m, err := loadSchematics(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, rec := range patch.Netlist(m) {
		if netsAsPatch {
			fmt.Fprintln(out, rec)
			continue
		}
		fmt.Fprintf(out, "%s (%d pins)\n", rec.ID, len(rec.Members))
		if len(rec.Members) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(rec.Members, ", "))
		}
	}
	return nil
}
