package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBAP/pkg/patch"
)

var parseCmd = &cobra.Command{
	Use:   "parse <patch_file>",
	Short: "Validate a patch file and print its records",
	Long: `Parse a back-annotation patch file and print every record with its line
number. The whole file is rejected when any line is malformed.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	st, err := patch.Open(args[0], cfg.patchConfig())
	if err != nil {
		return err
	}
	defer st.Destroy()

	out := cmd.OutOrStdout()
	counts := make(map[patch.Kind]int)
	for _, rec := range st.Records() {
		fmt.Fprintf(out, "%5d  %s\n", rec.Line, rec)
		counts[rec.Kind]++
	}
	fmt.Fprintf(out, "\n%s: %d records (%d add_conn, %d del_conn, %d change_attrib, %d net_info)\n",
		args[0], len(st.Records()),
		counts[patch.AddConnection], counts[patch.DeleteConnection],
		counts[patch.ChangeAttribute], counts[patch.NetInfo])
	return nil
}
