package nativelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "backend_2024-03-09.log", TodayFilename("backend", now))
}

func TestWriterAppendsToDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w, err := NewWriter(dir, "frontend")
	require.NoError(t, err)

	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, TodayFilename("frontend", time.Now())))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}

func TestNewZapLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewZapLogger("backend", dir)
	require.NoError(t, err)

	logger.Info("hello from test")
	_ = logger.Sync()

	content, err := os.ReadFile(filepath.Join(dir, TodayFilename("backend", time.Now())))
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from test")
}
