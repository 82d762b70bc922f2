package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	cfg := config.Default()
	log, err := NewLogger(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	cfg.Mode = "development"
	log, err = NewLogger(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewLoggerWritesFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "mines.log")

	log, err := NewLogger(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	log.WithField("k", "v").Info("hello")

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
}

func TestHandlerServesRoutes(t *testing.T) {
	log, err := NewLogger(config.Default(), &bytes.Buffer{})
	require.NoError(t, err)
	a, err := New(log, config.Default(), NewRand())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/game?width=9&height=9&mine_count=10", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, a.store.Len())
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	var logs bytes.Buffer
	log, err := NewLogger(cfg, &logs)
	require.NoError(t, err)
	a, err := New(log, cfg, NewRand())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Contains(t, logs.String(), "shutting down")
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
