package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"tally/internal/config"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	// Point the XDG dirs into the temp dir so state_dir lands inside it.
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	config.Load()
	return tmp
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)

	t.Setenv("TALLY_LOGGING_ENABLED", "true")
	t.Setenv("TALLY_LOGGING_LEVEL", "debug")
	t.Setenv("TALLY_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "debug", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestDebugKeyForcesDebugLogging(t *testing.T) {
	setupTest(t)

	t.Setenv("TALLY_DEBUG", "true")
	t.Setenv("TALLY_LOGGING_LEVEL", "info")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "debug", cfg.Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	stateDir := config.Get("state_dir", "")
	require.NotEmpty(t, stateDir)
	require.True(t, strings.HasPrefix(stateDir, tmp), "state_dir %s not in temp dir %s", stateDir, tmp)

	logDir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "logs"), logDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLogDirFallback(t *testing.T) {
	tmp := t.TempDir()
	// A regular file in the path makes MkdirAll fail for any user.
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	t.Setenv("TALLY_STATE_DIR", filepath.Join(blocker, "state"))
	config.Load()

	logDir, err := LogDir()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(logDir, os.TempDir()))
	require.True(t, strings.HasSuffix(logDir, filepath.Join("tally", "logs")))
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, logger)
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	require.NoError(t, logger.Shutdown())
}

func TestInitEnabledCreatesFile(t *testing.T) {
	setupTest(t)
	t.Setenv("TALLY_LOGGING_ENABLED", "true")
	config.Load()

	cfg := FromGlobalConfig()
	cfg.Command = "testcmd"
	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	stateDir := config.Get("state_dir", "")
	logDir := filepath.Join(stateDir, "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	fname := entries[0].Name()
	require.True(t, strings.HasPrefix(fname, "tally_"))
	require.Contains(t, fname, fmt.Sprintf("_PID%d_", os.Getpid()))
	require.Contains(t, fname, "_testcmd.log")
	info, err := os.Stat(filepath.Join(logDir, fname))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoggingWritesJSON(t *testing.T) {
	setupTest(t)
	t.Setenv("TALLY_LOGGING_ENABLED", "true")
	config.Load()

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Info("test message", "key1", "value1", "key2", 42)
	require.NoError(t, logger.Shutdown())

	lastLine := lastLogLine(t)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lastLine), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "test message", entry["msg"])
	require.Equal(t, float64(os.Getpid()), entry["pid"])
	require.Contains(t, entry, "command")
	require.Equal(t, "value1", entry["key1"])
	require.Equal(t, float64(42), entry["key2"])
}

func TestRedactionInLogOutput(t *testing.T) {
	setupTest(t)
	t.Setenv("TALLY_LOGGING_ENABLED", "true")
	config.Load()

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Info("secrets", "password", "supersecret", "token", "xyz", "normal", "ok")
	require.NoError(t, logger.Shutdown())

	lastLine := lastLogLine(t)
	require.Contains(t, lastLine, `"password":"[REDACTED]"`)
	require.Contains(t, lastLine, `"token":"[REDACTED]"`)
	require.Contains(t, lastLine, `"normal":"ok"`)
}

func lastLogLine(t *testing.T) string {
	t.Helper()
	stateDir := config.Get("state_dir", "")
	logDir := filepath.Join(stateDir, "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	return lines[len(lines)-1]
}

func TestRedactionEdgeCases(t *testing.T) {
	r := newRedactor()

	tests := []struct {
		name string
		in   []any
		want []any
	}{
		{
			name: "case insensitive key",
			in:   []any{"PASSWORD", "secret"},
			want: []any{"PASSWORD", "[REDACTED]"},
		},
		{
			name: "separated segments are sensitive",
			in:   []any{"api_token", "xyz"},
			want: []any{"api_token", "[REDACTED]"},
		},
		{
			name: "embedded word without separator is not",
			in:   []any{"apitoken", "xyz"},
			want: []any{"apitoken", "xyz"},
		},
		{
			name: "substring inside a word is not",
			in:   []any{"secretary", "value"},
			want: []any{"secretary", "value"},
		},
		{
			name: "mixed pairs",
			in:   []any{"password", "hidden", "name", "john", "age", 30},
			want: []any{"password", "[REDACTED]", "name", "john", "age", 30},
		},
		{
			name: "odd trailing element untouched",
			in:   []any{"password", "hidden", "extra"},
			want: []any{"password", "[REDACTED]", "extra"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, r.redact(tt.in))
		})
	}
}

func TestRotation(t *testing.T) {
	setupTest(t)
	t.Setenv("TALLY_LOGGING_ENABLED", "true")
	t.Setenv("TALLY_LOGGING_MAX_FILES", "2")
	config.Load()

	logDir, err := LogDir()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("tally_20250101_12000%d_PID999_test.log", i)
		path := filepath.Join(logDir, name)
		f, err := os.Create(path)
		require.NoError(t, err)
		f.Close()
		oldTime := time.Now().Add(-time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(path, oldTime, oldTime))
	}

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Shutdown()

	// The oldest file was rotated out before the new file was created.
	_, err = os.Stat(filepath.Join(logDir, "tally_20250101_120002_PID999_test.log"))
	require.Error(t, err)
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.LessOrEqual(t, len(entries), 3)
}

func TestWith(t *testing.T) {
	setupTest(t)
	t.Setenv("TALLY_LOGGING_ENABLED", "true")
	config.Load()

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	child := logger.With("request_id", "abc")
	child.Info("with context")
	require.NoError(t, logger.Shutdown())

	require.Contains(t, lastLogLine(t), `"request_id":"abc"`)
}

func TestLevelParsing(t *testing.T) {
	require.Equal(t, clog.DebugLevel, parseLevel("debug"))
	require.Equal(t, clog.InfoLevel, parseLevel("info"))
	require.Equal(t, clog.WarnLevel, parseLevel("warn"))
	require.Equal(t, clog.WarnLevel, parseLevel("warning"))
	require.Equal(t, clog.ErrorLevel, parseLevel("error"))
	require.Equal(t, clog.InfoLevel, parseLevel("unknown"))
}
