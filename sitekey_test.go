package ipclog_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Station-Manager/ipclog"
	"github.com/Station-Manager/ipclog/internal/sitetest/rx"
	"github.com/Station-Manager/ipclog/internal/sitetest/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRateLimited_SameFileNameInTwoPackages(t *testing.T) {
	const envVar = "IPCLOG_SITEKEY_DEBUG_LEVEL"
	t.Setenv(envVar, "0")

	cfg := ipclog.DefaultConfig()
	cfg.EnvVar = envVar
	cfg.Syslog = false
	cfg.FilePath = filepath.Join(t.TempDir(), "ipcf_hal_log")

	var out strings.Builder
	s := &ipclog.Service{Config: &cfg, Stdout: &out, Stderr: &out}
	require.NoError(t, s.Initialize())
	t.Cleanup(func() { _ = s.Close() })

	for i := 0; i < ipclog.DefaultRateLimitBurst; i++ {
		rx.Drop(s, i)
	}
	tx.Drop(s, 0)

	assert.Contains(t, out.String(), "[WARNING][queue.go:9] tx drop 0\n")

	sites := s.Sites()
	require.Len(t, sites, 2)
	assert.NotEqual(t, sites[0].Key, sites[1].Key)
	for _, st := range sites {
		assert.Equal(t, "queue.go", filepath.Base(st.Key.File))
		assert.Zero(t, st.Missed)
	}
}
