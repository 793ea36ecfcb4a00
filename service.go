package ipclog

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"go.uber.org/atomic"
)

// Service is the logging facility handed to driver code. The exported fields
// are read once by Initialize; leave them nil for the process defaults.
type Service struct {
	Config   *Config
	Stdout   io.Writer
	Stderr   io.Writer
	Facility Facility
	Clock    Clock

	mu          sync.Mutex
	core        atomic.Pointer[core]
	initialized atomic.Bool
	closer      io.Closer
}

// core is the immutable wiring of an initialized Service.
type core struct {
	clock      Clock
	resolver   *LevelResolver
	formatter  *Formatter
	limiter    *RateLimiter
	registry   *Registry
	dispatcher *Dispatcher
}

func NewLogger() *Service {
	return &Service{}
}

// Initialize validates the configuration and builds the sinks. Calling it on
// an initialized service is a no-op.
func (s *Service) Initialize() error {
	const op errors.Op = "ipclog.Service.Initialize"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized.Load() {
		return nil
	}

	if s.Config == nil {
		cfg := DefaultConfig()
		s.Config = &cfg
	}
	if err := validateConfig(s.Config); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	cfg := *s.Config

	clock := s.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	stdout, stderr, file, facility, closer := s.initializeSinks(&cfg)
	resolver := NewLevelResolver(cfg.EnvVar, cfg.EnvFile)

	c := &core{
		clock:      clock,
		resolver:   resolver,
		formatter:  &Formatter{Timestamps: cfg.Timestamps},
		registry:   NewRegistry(cfg.RateLimitInterval, cfg.RateLimitBurst),
		dispatcher: NewDispatcher(resolver, stdout, stderr, file, facility),
	}
	c.limiter = NewRateLimiter(clock, c.summarize)

	s.closer = closer
	s.core.Store(c)
	s.initialized.Store(true)
	return nil
}

// Close releases the system log connection. Logging calls made after Close
// are dropped. It's safe to call Close multiple times.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized.Load() {
		return nil
	}
	s.initialized.Store(false)
	s.core.Store(nil)

	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}

func (s *Service) load() *core {
	if s == nil || !s.initialized.Load() {
		return nil
	}
	return s.core.Load()
}

// LogError writes to stderr and the system log at error priority.
func (s *Service) LogError(format string, args ...any) {
	s.logf(methodCallerDepth, SeverityError, format, args)
}

// LogWarn writes to stdout and the system log at warning priority.
func (s *Service) LogWarn(format string, args ...any) {
	s.logf(methodCallerDepth, SeverityWarning, format, args)
}

// LogInfo writes to stdout and the system log at info priority.
func (s *Service) LogInfo(format string, args ...any) {
	s.logf(methodCallerDepth, SeverityInfo, format, args)
}

// LogDebug writes like LogInfo, but only when the verbosity is exactly
// VerbosityDebug.
func (s *Service) LogDebug(format string, args ...any) {
	s.logf(methodCallerDepth, SeverityDebug, format, args)
}

// LogFile appends to the log file and also writes to stdout and the system
// log. A file that cannot be opened is skipped.
func (s *Service) LogFile(format string, args ...any) {
	s.logf(methodCallerDepth, SeverityFile, format, args)
}

// LogHexDump writes an INFO header when the verbosity is at least
// VerbosityDebug, followed by hex rows of buf when it is VerbosityDump.
func (s *Service) LogHexDump(buf []byte, format string, args ...any) {
	s.hexDumpf(methodCallerDepth, buf, format, args)
}

// LogTimestamp writes an INFO record carrying the current time in
// milliseconds when the verbosity is at least VerbosityTimestamp.
func (s *Service) LogTimestamp(format string, args ...any) {
	s.timestampf(methodCallerDepth, format, args)
}

// LogRateLimited logs at sev unless the calling source line has used up its
// burst for the current window.
func (s *Service) LogRateLimited(sev Severity, format string, args ...any) {
	s.rateLimitedf(methodCallerDepth, SiteKey{}, sev, format, args)
}

// LogRateLimitedTag is LogRateLimited with an explicit site identifier, so
// several source lines can share one budget.
func (s *Service) LogRateLimitedTag(tag string, sev Severity, format string, args ...any) {
	if tag == emptyString {
		return
	}
	s.rateLimitedf(methodCallerDepth, TagKey(tag), sev, format, args)
}

// SetRateLimit overrides the window of the tagged site. An interval of zero
// suppresses the site entirely.
func (s *Service) SetRateLimit(tag string, interval time.Duration, burst int) {
	c := s.load()
	if c == nil || tag == emptyString {
		return
	}
	c.registry.Configure(TagKey(tag), interval, burst)
}

// Verbosity returns the resolved verbosity, or VerbosityOff when the service
// is not initialized.
func (s *Service) Verbosity() Verbosity {
	c := s.load()
	if c == nil {
		return VerbosityOff
	}
	return c.resolver.Resolve()
}

// Stats reports per-sink delivery counters.
func (s *Service) Stats() []SinkStats {
	c := s.load()
	if c == nil {
		return nil
	}
	return c.dispatcher.Stats()
}

// Sites reports the state of every rate-limited site seen so far.
func (s *Service) Sites() []SiteStats {
	c := s.load()
	if c == nil {
		return nil
	}
	return c.registry.Snapshot()
}

func (s *Service) logf(depth int, sev Severity, format string, args []any) {
	c := s.load()
	if c == nil || !c.dispatcher.Enabled(sev) {
		return
	}
	path, line, fn := callerFrame(depth)
	c.emit(Record{
		Severity: sev,
		File:     filepath.Base(path),
		Line:     line,
		Function: fn,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (s *Service) hexDumpf(depth int, buf []byte, format string, args []any) {
	c := s.load()
	if c == nil {
		return
	}
	v := c.resolver.Resolve()
	if v < VerbosityDebug {
		return
	}
	path, line, fn := callerFrame(depth)
	rec := Record{
		Severity: SeverityInfo,
		File:     filepath.Base(path),
		Line:     line,
		Function: fn,
		Message:  fmt.Sprintf(format, args...),
	}
	if v == VerbosityDump {
		rec.Dump = buf
	}
	c.emit(rec)
}

func (s *Service) timestampf(depth int, format string, args []any) {
	c := s.load()
	if c == nil || c.resolver.Resolve() < VerbosityTimestamp {
		return
	}
	path, line, fn := callerFrame(depth)
	c.emit(Record{
		Severity:    SeverityInfo,
		File:        filepath.Base(path),
		Line:        line,
		Function:    fn,
		Message:     fmt.Sprintf(format, args...),
		Timestamped: true,
	})
}

// rateLimitedf keys on the caller's location unless key is already set.
func (s *Service) rateLimitedf(depth int, key SiteKey, sev Severity, format string, args []any) {
	c := s.load()
	if c == nil || !sev.Valid() {
		return
	}
	path, line, fn := callerFrame(depth)
	if key == (SiteKey{}) {
		key = SiteKey{File: path, Line: line}
	}
	site := c.registry.Site(key)
	if site == nil {
		return
	}
	site.locate(filepath.Base(path), line, fn)
	if !c.limiter.Admit(site) {
		return
	}
	if !c.dispatcher.Enabled(sev) {
		return
	}
	c.emit(Record{
		Severity: sev,
		File:     filepath.Base(path),
		Line:     line,
		Function: fn,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *core) emit(rec Record) {
	rec.Timestamp = c.clock.NowMillis()
	c.dispatcher.Emit(rec.Severity, c.formatter.Render(rec))
}

// summarize reports a closed window's suppressed count. It runs with the
// site locked and bypasses severity gating.
func (c *core) summarize(site *RateLimitState, missed int) {
	rec := Record{
		Severity:  SeverityWarning,
		Timestamp: c.clock.NowMillis(),
		File:      site.key.String(),
	}
	if loc := site.location.Load(); loc != nil {
		rec.File, rec.Line, rec.Function = loc.file, loc.line, loc.function
	}
	rec.Message = fmt.Sprintf("%s %d callbacks suppressed.", rec.Function, missed)
	c.dispatcher.emitSummary(c.formatter.Render(rec))
}
