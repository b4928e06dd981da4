package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/sigscan/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, logger.ParseLevel("warn"))
	require.Equal(t, slog.LevelError, logger.ParseLevel("ERROR"))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("INFO"))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Warn("unable to classify file", "file", "a.bin")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "file=a.bin")
}

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	log, closer, err := logger.Setup(path, slog.LevelInfo)
	require.NoError(t, err)
	log.Info("classification started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "classification started")

	log, closer, err = logger.Setup("", slog.LevelInfo)
	require.NoError(t, err)
	log.Info("discarded")
	require.NoError(t, closer.Close())
}
