// Package tx drops frames through a rate-limited log line. It exists so
// tests can log from a queue.go in two different packages.
package tx

import "github.com/Station-Manager/ipclog"

// Drop logs one dropped frame.
func Drop(l *ipclog.Service, n int) {
	l.LogRateLimited(ipclog.SeverityWarning, "tx drop %d", n)
}
