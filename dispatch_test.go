package ipclog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkWrite struct {
	sink string
	sev  Severity
	text string
}

// recorder collects writes from several fake sinks in order.
type recorder struct {
	mu     sync.Mutex
	writes []sinkWrite
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, w := range r.writes {
		out = append(out, w.sink)
	}
	return out
}

type fakeSink struct {
	name  string
	rec   *recorder
	err   error
	panic bool
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(sev Severity, text string) error {
	if f.panic {
		panic("sink exploded")
	}
	f.rec.mu.Lock()
	f.rec.writes = append(f.rec.writes, sinkWrite{sink: f.name, sev: sev, text: text})
	f.rec.mu.Unlock()
	return f.err
}

func newFakeDispatcher(t *testing.T, level string) (*Dispatcher, *recorder, map[string]*fakeSink) {
	t.Helper()
	const name = "IPCLOG_TEST_DISPATCH_LEVEL"
	t.Setenv(name, level)
	rec := &recorder{}
	sinks := map[string]*fakeSink{}
	for _, n := range []string{"stdout", "stderr", "file", "facility"} {
		sinks[n] = &fakeSink{name: n, rec: rec}
	}
	d := NewDispatcher(NewLevelResolver(name, ""), sinks["stdout"], sinks["stderr"], sinks["file"], sinks["facility"])
	return d, rec, sinks
}

func TestDispatcher_Routing(t *testing.T) {
	cases := []struct {
		sev   Severity
		level string
		want  []string
	}{
		{SeverityError, "0", []string{"stderr", "facility"}},
		{SeverityWarning, "0", []string{"stdout", "facility"}},
		{SeverityInfo, "0", []string{"stdout", "facility"}},
		{SeverityFile, "0", []string{"file", "stdout", "facility"}},
		{SeverityVerbose, "0", []string{"file", "stdout", "facility"}},
		{SeverityDebug, "3", []string{"stdout", "facility"}},
		{SeverityDebug, "0", nil},
		{SeverityDebug, "2", nil},
		{SeverityDebug, "4", nil},
		{Severity(99), "3", nil},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s at %s", tc.sev, tc.level), func(t *testing.T) {
			d, rec, _ := newFakeDispatcher(t, tc.level)
			d.Emit(tc.sev, "text\n")
			assert.Equal(t, tc.want, rec.names())
		})
	}
}

func TestDispatcher_SinkFailures(t *testing.T) {
	t.Run("failing file sink does not stop the others", func(t *testing.T) {
		d, rec, sinks := newFakeDispatcher(t, "0")
		sinks["file"].err = os.ErrPermission

		d.Emit(SeverityFile, "kept\n")

		assert.Equal(t, []string{"file", "stdout", "facility"}, rec.names())
		stats := statsByName(d.Stats())
		assert.Equal(t, uint64(1), stats["file"].Failures)
		assert.Zero(t, stats["file"].Writes)
		assert.Contains(t, stats["file"].LastError, "permission denied")
		assert.Equal(t, uint64(1), stats["stdout"].Writes)
		assert.Equal(t, uint64(1), stats["facility"].Writes)
	})

	t.Run("panicking sink is contained", func(t *testing.T) {
		d, rec, sinks := newFakeDispatcher(t, "0")
		sinks["stderr"].panic = true

		assert.NotPanics(t, func() { d.Emit(SeverityError, "boom\n") })
		assert.Equal(t, []string{"facility"}, rec.names())
		assert.Contains(t, statsByName(d.Stats())["stderr"].LastError, "sink exploded")
	})

	t.Run("real file sink on a missing directory", func(t *testing.T) {
		rec := &recorder{}
		stdout := &fakeSink{name: "stdout", rec: rec}
		file := newFileSink(filepath.Join(t.TempDir(), "missing", "log"))
		d := NewDispatcher(NewLevelResolver("IPCLOG_TEST_DISPATCH_UNSET", ""), stdout, nil, file, nil)

		d.Emit(SeverityFile, "still printed\n")

		assert.Equal(t, []string{"stdout"}, rec.names())
		st := statsByName(d.Stats())["file"]
		assert.Equal(t, uint64(1), st.Failures)
		assert.Contains(t, st.LastError, "no such file or directory")
	})
}

func TestDispatcher_Summary(t *testing.T) {
	d, rec, _ := newFakeDispatcher(t, "0")
	d.emitSummary("[WARNING][a.go:1] f 3 callbacks suppressed.\n")
	require.Len(t, rec.writes, 2)
	assert.Equal(t, SeverityWarning, rec.writes[0].sev)

	var nd *Dispatcher
	assert.NotPanics(t, func() {
		nd.Emit(SeverityError, "x")
		nd.emitSummary("x")
	})
	assert.Nil(t, nd.Stats())
}

func statsByName(stats []SinkStats) map[string]SinkStats {
	out := map[string]SinkStats{}
	for _, st := range stats {
		out[st.Name] = st
	}
	return out
}
