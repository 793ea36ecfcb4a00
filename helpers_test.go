package ipclog

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

// manualClock only moves when told to.
type manualClock struct {
	ms atomic.Int64
}

func newManualClock(ms int64) *manualClock {
	c := &manualClock{}
	c.ms.Store(ms)
	return c
}

func (c *manualClock) NowMillis() int64 { return c.ms.Load() }
func (c *manualClock) NowMicros() int64 { return c.ms.Load() * 1000 }

func (c *manualClock) Advance(d time.Duration) {
	c.ms.Add(d.Milliseconds())
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

type facilityEntry struct {
	priority string
	msg      string
}

// recordingFacility stands in for the system log.
type recordingFacility struct {
	mu      sync.Mutex
	entries []facilityEntry
	fail    error
}

func (f *recordingFacility) record(priority, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, facilityEntry{priority: priority, msg: msg})
	return f.fail
}

func (f *recordingFacility) Err(m string) error     { return f.record("err", m) }
func (f *recordingFacility) Warning(m string) error { return f.record("warning", m) }
func (f *recordingFacility) Info(m string) error    { return f.record("info", m) }
func (f *recordingFacility) Debug(m string) error   { return f.record("debug", m) }

func (f *recordingFacility) Entries() []facilityEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]facilityEntry(nil), f.entries...)
}

// testService bundles a Service with its captured outputs.
type testService struct {
	*Service
	stdout   *syncBuffer
	stderr   *syncBuffer
	facility *recordingFacility
	clock    *manualClock
	filePath string
}

const testEnvVar = "IPCLOG_TEST_DEBUG_LEVEL"

// newTestService builds an initialized service whose verbosity is read from
// level. It must not be used from parallel tests because of t.Setenv.
func newTestService(t testing.TB, level string) *testService {
	t.Helper()
	t.Setenv(testEnvVar, level)

	cfg := DefaultConfig()
	cfg.EnvVar = testEnvVar
	cfg.Syslog = false
	cfg.FilePath = filepath.Join(t.TempDir(), "ipcf_hal_log")

	ts := &testService{
		stdout:   &syncBuffer{},
		stderr:   &syncBuffer{},
		facility: &recordingFacility{},
		clock:    newManualClock(1_000_000),
		filePath: cfg.FilePath,
	}
	ts.Service = &Service{
		Config:   &cfg,
		Stdout:   ts.stdout,
		Stderr:   ts.stderr,
		Facility: ts.facility,
		Clock:    ts.clock,
	}
	require.NoError(t, ts.Initialize())
	t.Cleanup(func() { _ = ts.Close() })
	return ts
}
