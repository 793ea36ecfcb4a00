package ipclog

// Logger is the logging surface used by driver code. None of its methods
// block on another goroutine or report failures; a call that cannot be
// delivered is dropped.
type Logger interface {
	LogError(format string, args ...any)
	LogWarn(format string, args ...any)
	LogInfo(format string, args ...any)
	LogDebug(format string, args ...any)
	LogFile(format string, args ...any)
	LogHexDump(buf []byte, format string, args ...any)
	LogTimestamp(format string, args ...any)

	// LogRateLimited throttles by calling source line. Each line gets its
	// own window; see Registry.
	LogRateLimited(sev Severity, format string, args ...any)
}

var _ Logger = (*Service)(nil)
