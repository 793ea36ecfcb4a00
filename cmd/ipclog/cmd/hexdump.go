package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var hexdumpCmd = &cobra.Command{
	Use:   "hexdump FILE",
	Short: "Dump a file as hex rows (needs verbosity 4 for the rows)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		service.LogHexDump(data, "%s (%d bytes)", args[0], len(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hexdumpCmd)
}
