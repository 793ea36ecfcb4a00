package ipclog

import (
	"math"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// SiteKey identifies one independently throttled logging call site: either a
// source location or an explicit tag. File is the full path reported by the
// runtime, so same-named files in different packages stay apart.
type SiteKey struct {
	File string
	Line int
	Tag  string
}

// TagKey returns the key for an explicitly named site.
func TagKey(tag string) SiteKey {
	return SiteKey{Tag: tag}
}

func (k SiteKey) String() string {
	if k.Tag != emptyString {
		return k.Tag
	}
	return k.File + ":" + strconv.Itoa(k.Line)
}

func (k SiteKey) valid() bool {
	return k.Tag != emptyString || k.File != emptyString
}

// siteLocation is where a site was first seen; it labels the summary line.
type siteLocation struct {
	file     string
	line     int
	function string
}

// RateLimitState is the throttle window of a single call site.
//
// printed and missed are only written while mu is held. They are atomics so
// that Snapshot can read them without competing for mu.
type RateLimitState struct {
	mu sync.Mutex

	key      SiteKey
	location atomic.Pointer[siteLocation]

	interval atomic.Int64 // milliseconds
	burst    atomic.Int32
	printed  atomic.Int32
	missed   atomic.Int32

	windowStart int64 // milliseconds, 0 until first use
}

// NewRateLimitState returns a site allowing burst admits per interval.
func NewRateLimitState(interval time.Duration, burst int) *RateLimitState {
	s := &RateLimitState{}
	s.store(interval, burst)
	return s
}

// store keeps the limits in window resolution. A positive interval below a
// millisecond rounds up to one, and the burst is clamped to [0, MaxInt32].
func (s *RateLimitState) store(interval time.Duration, burst int) {
	ms := interval.Milliseconds()
	if interval > 0 && ms == 0 {
		ms = 1
	}
	switch {
	case burst < 0:
		burst = 0
	case burst > math.MaxInt32:
		burst = math.MaxInt32
	}
	s.interval.Store(ms)
	s.burst.Store(int32(burst))
}

// Key returns the registry key of the site.
func (s *RateLimitState) Key() SiteKey {
	return s.key
}

func (s *RateLimitState) locate(file string, line int, function string) {
	if s.location.Load() != nil {
		return
	}
	s.location.CompareAndSwap(nil, &siteLocation{file: file, line: line, function: function})
}

// reconfigure replaces the limits and opens a fresh window. It blocks on mu
// and must not be called from a logging path.
func (s *RateLimitState) reconfigure(interval time.Duration, burst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(interval, burst)
	s.printed.Store(0)
	s.windowStart = 0
}

// SiteStats is a point-in-time view of one site.
type SiteStats struct {
	Key      SiteKey
	Function string
	Interval time.Duration
	Burst    int
	Printed  int
	Missed   int
}

func (s *RateLimitState) stats() SiteStats {
	st := SiteStats{
		Key:      s.key,
		Interval: time.Duration(s.interval.Load()) * time.Millisecond,
		Burst:    int(s.burst.Load()),
		Printed:  int(s.printed.Load()),
		Missed:   int(s.missed.Load()),
	}
	if loc := s.location.Load(); loc != nil {
		st.Function = loc.function
	}
	return st
}

// SummaryFunc receives the number of records a site suppressed in the window
// that just closed.
type SummaryFunc func(site *RateLimitState, missed int)

// RateLimiter decides whether a call site may log now.
type RateLimiter struct {
	clock   Clock
	summary SummaryFunc
}

// NewRateLimiter builds a limiter reading time from clock. summary may be
// nil, in which case suppressed counts are dropped at rollover.
func NewRateLimiter(clock Clock, summary SummaryFunc) *RateLimiter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RateLimiter{clock: clock, summary: summary}
}

// Admit reports whether the site may emit a record. It never waits: when
// another goroutine is evaluating the same site the call is suppressed
// without touching the counters. A nil site or a non-positive interval always
// suppresses.
func (l *RateLimiter) Admit(site *RateLimitState) bool {
	if l == nil || site == nil {
		return false
	}
	if site.interval.Load() <= 0 {
		return false
	}
	if !site.mu.TryLock() {
		return false
	}
	defer site.mu.Unlock()

	now := l.clock.NowMillis()
	if site.windowStart == 0 {
		site.windowStart = now
	}
	if now-site.windowStart >= site.interval.Load() {
		if missed := site.missed.Load(); missed > 0 {
			if l.summary != nil {
				l.summary(site, int(missed))
			}
			site.missed.Store(0)
		}
		site.windowStart = now
		site.printed.Store(0)
	}

	if site.printed.Load() < site.burst.Load() {
		site.printed.Inc()
		return true
	}
	site.missed.Inc()
	return false
}
