package cmd

import (
	"fmt"
	"io"

	"github.com/Station-Manager/ipclog"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	filePath string
	noSyslog bool

	service *ipclog.Service
)

var rootCmd = &cobra.Command{
	Use:   "ipclog",
	Short: "Emit IPC driver diagnostics from scripts",
	Long: `ipclog writes records through the same routing, verbosity gating and
rate limiting as the IPC driver layer. The verbosity is read from
IPCF_HAL_DEBUG_LEVEL (or the variable named in the config file).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := ipclog.DefaultConfig()
		if cfgFile != "" {
			loaded, err := ipclog.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if filePath != "" {
			cfg.FilePath = filePath
		}
		if noSyslog {
			cfg.Syslog = false
		}

		service = &ipclog.Service{
			Config: &cfg,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
		if err := service.Initialize(); err != nil {
			return err
		}
		ipclog.SetDefault(service)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return service.Close()
	},
}

// Execute runs the root command and reports its error once on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), rootCmd.Name(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&filePath, "file", "", "override the FILE/VERBOSE log path")
	rootCmd.PersistentFlags().BoolVar(&noSyslog, "no-syslog", false, "do not write to the system log")
}

func printError(w io.Writer, msg string, err error) {
	fmt.Fprintf(w, "error: %s: %v\n", msg, err)
}
