package cmd

import (
	"fmt"
	"strings"

	"github.com/Station-Manager/ipclog"
	"github.com/spf13/cobra"
)

var (
	emitSeverity    string
	emitRepeat      int
	emitRateLimited bool
	emitTag         string
)

var emitCmd = &cobra.Command{
	Use:   "emit [message...]",
	Short: "Write a record at the given severity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sev, ok := ipclog.ParseSeverity(emitSeverity)
		if !ok {
			return fmt.Errorf("unknown severity %q", emitSeverity)
		}
		msg := strings.Join(args, " ")
		for i := 0; i < emitRepeat; i++ {
			emitOne(sev, msg)
		}
		return nil
	},
}

func emitOne(sev ipclog.Severity, msg string) {
	switch {
	case emitTag != "":
		service.LogRateLimitedTag(emitTag, sev, "%s", msg)
	case emitRateLimited:
		service.LogRateLimited(sev, "%s", msg)
	default:
		switch sev {
		case ipclog.SeverityFile, ipclog.SeverityVerbose:
			service.LogFile("%s", msg)
		case ipclog.SeverityDebug:
			service.LogDebug("%s", msg)
		case ipclog.SeverityInfo:
			service.LogInfo("%s", msg)
		case ipclog.SeverityWarning:
			service.LogWarn("%s", msg)
		case ipclog.SeverityError:
			service.LogError("%s", msg)
		}
	}
}

func init() {
	emitCmd.Flags().StringVarP(&emitSeverity, "severity", "s", "info", "file, verbose, debug, info, warning or error")
	emitCmd.Flags().IntVarP(&emitRepeat, "repeat", "n", 1, "number of times to emit the record")
	emitCmd.Flags().BoolVar(&emitRateLimited, "rate-limited", false, "throttle through the per-line rate limiter")
	emitCmd.Flags().StringVar(&emitTag, "tag", "", "throttle under an explicit site tag")
	rootCmd.AddCommand(emitCmd)
}
