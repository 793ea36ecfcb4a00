// Package ipclog is the diagnostics facility of the IPC driver layer: plain
// text records routed by severity to stdout, stderr, an append-only file and
// the system log, with a per-call-site rate limiter for hot paths.
//
// Key properties
//   - Logging calls never block on each other and never fail the caller.
//     Sink errors are counted (see Service.Stats) and otherwise dropped.
//   - The verbosity is read once from IPCF_HAL_DEBUG_LEVEL (0 off,
//     2 timestamps, 3 info+debug, 4 hex dumps) and cached.
//   - LogRateLimited admits a burst of records per window for each source
//     line (default 5 per 10s). A site that is busy in another goroutine
//     suppresses instead of waiting. When a window closes, the number of
//     suppressed records is reported once at WARNING.
//
// Typical usage
//
//	ipclog.LogInfo("channel %d opened", ch)
//	ipclog.LogRateLimited(ipclog.SeverityWarning, "rx overflow on %d", ch)
//
// or with an explicit service:
//
//	svc := &ipclog.Service{Config: &cfg}
//	if err := svc.Initialize(); err != nil { panic(err) }
//	defer svc.Close()
//	svc.LogError("send failed: %v", err)
package ipclog
