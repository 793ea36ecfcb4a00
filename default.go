package ipclog

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

var (
	defaultService atomic.Pointer[Service]
	defaultOnce    sync.Once
)

// Default returns the service behind the package-level functions, building
// it from DefaultConfig on first use.
func Default() *Service {
	if s := defaultService.Load(); s != nil {
		return s
	}
	defaultOnce.Do(func() {
		s := NewLogger()
		_ = s.Initialize()
		defaultService.CompareAndSwap(nil, s)
	})
	return defaultService.Load()
}

// SetDefault replaces the service behind the package-level functions and
// returns the previous one. The caller owns closing it.
func SetDefault(s *Service) *Service {
	if s == nil {
		return nil
	}
	defaultOnce.Do(func() {})
	return defaultService.Swap(s)
}

func LogError(format string, args ...any) {
	Default().logf(methodCallerDepth, SeverityError, format, args)
}

func LogWarn(format string, args ...any) {
	Default().logf(methodCallerDepth, SeverityWarning, format, args)
}

func LogInfo(format string, args ...any) {
	Default().logf(methodCallerDepth, SeverityInfo, format, args)
}

func LogDebug(format string, args ...any) {
	Default().logf(methodCallerDepth, SeverityDebug, format, args)
}

func LogFile(format string, args ...any) {
	Default().logf(methodCallerDepth, SeverityFile, format, args)
}

func LogHexDump(buf []byte, format string, args ...any) {
	Default().hexDumpf(methodCallerDepth, buf, format, args)
}

func LogTimestamp(format string, args ...any) {
	Default().timestampf(methodCallerDepth, format, args)
}

// LogRateLimited throttles per calling source line on the default service.
func LogRateLimited(sev Severity, format string, args ...any) {
	Default().rateLimitedf(methodCallerDepth, SiteKey{}, sev, format, args)
}

func LogRateLimitedTag(tag string, sev Severity, format string, args ...any) {
	if tag == emptyString {
		return
	}
	Default().rateLimitedf(methodCallerDepth, TagKey(tag), sev, format, args)
}

func SetRateLimit(tag string, interval time.Duration, burst int) {
	Default().SetRateLimit(tag, interval, burst)
}
