package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Print the resolved verbosity",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), int32(service.Verbosity()))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Emit a test record on every route and print per-sink counters",
	Run: func(cmd *cobra.Command, args []string) {
		service.LogInfo("stats check")
		service.LogError("stats check")
		service.LogFile("stats check")
		for _, st := range service.Stats() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s writes=%d failures=%d", st.Name, st.Writes, st.Failures)
			if st.LastError != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " last=%q", st.LastError)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
	},
}

func init() {
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(statsCmd)
}
