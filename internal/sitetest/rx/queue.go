// Package rx drops frames through a rate-limited log line. It exists so
// tests can log from a queue.go in two different packages.
package rx

import "github.com/Station-Manager/ipclog"

// Drop logs one dropped frame.
func Drop(l *ipclog.Service, n int) {
	l.LogRateLimited(ipclog.SeverityWarning, "rx drop %d", n)
}
