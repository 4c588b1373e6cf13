package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Level(0))
	assert.Equal(t, slog.LevelInfo, Level(-1))
	assert.Equal(t, slog.LevelDebug, Level(1))
	assert.Equal(t, LevelTrace, Level(2))
	assert.Equal(t, LevelTrace, Level(5))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "INFO", levelName(slog.LevelInfo))
	assert.Equal(t, "DEBUG", levelName(slog.LevelDebug))
	assert.Equal(t, "TRACE", levelName(LevelTrace))
}

func TestHandlerFormat(t *testing.T) {
	var out strings.Builder
	logger := slog.New(newHandler(&out, slog.LevelInfo, false))

	logger.Info("plain message")
	logger.With("target", "store").Info("targeted message")
	logger.Info("with extras", "id", "abc", "count", 3)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[INFO] [rutd] plain message", lines[0])
	assert.Equal(t, "[INFO] [store] targeted message", lines[1])
	assert.Equal(t, "[INFO] [rutd] with extras id=abc count=3", lines[2])
}

func TestHandlerTimestamp(t *testing.T) {
	var out strings.Builder
	logger := slog.New(newHandler(&out, slog.LevelInfo, true))

	logger.Info("stamped")

	line := strings.TrimRight(out.String(), "\n")
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[^\]]*\] \[INFO\] \[rutd\] stamped$`, line)
}

func TestHandlerLevelGate(t *testing.T) {
	var out strings.Builder
	logger := slog.New(newHandler(&out, slog.LevelInfo, false))

	logger.Debug("filtered out")
	logger.Info("kept")

	assert.Equal(t, "[INFO] [rutd] kept\n", out.String())
}

func TestHandlerTrace(t *testing.T) {
	var out strings.Builder
	logger := slog.New(newHandler(&out, LevelTrace, false))

	logger.Log(context.Background(), LevelTrace, "very detailed")

	assert.Equal(t, "[TRACE] [rutd] very detailed\n", out.String())
}

func TestTrimHead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rutd.log")
	lines := []string{"one", "two", "three", "four", "five"}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	require.NoError(t, trimHead(path, 2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "four\nfive\n", string(data))
}

func TestTrimHeadUnderLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rutd.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	require.NoError(t, trimHead(path, 10))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestTrimHeadMissingFile(t *testing.T) {
	assert.NoError(t, trimHead(filepath.Join(t.TempDir(), "absent.log"), 10))
}

func TestOpenTrimmedAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rutd.log")

	file, err := openTrimmed(path, 100)
	require.NoError(t, err)
	_, err = file.WriteString("first\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	file, err = openTrimmed(path, 100)
	require.NoError(t, err)
	_, err = file.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestSetupFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rutd.log")
	require.NoError(t, Setup(Options{FilePath: path, History: 100}))

	slog.Info("hello from the test", "target", "test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] [test] hello from the test")
}
