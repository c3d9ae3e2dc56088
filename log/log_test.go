package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "raw: %s", buf.String())
	return entry
}

func TestLoggerModule(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, slog.LevelDebug, FormatJSON).Module("bls").With("engine", "Standard(BLS12381)")

	l.Info("Verified aggregate", "pairs", 5)

	entry := decode(t, &buf)
	require.Equal(t, "bls", entry["module"])
	require.Equal(t, "Standard(BLS12381)", entry["engine"])
	require.Equal(t, "Verified aggregate", entry["msg"])
	require.EqualValues(t, 5, entry["pairs"])
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level  slog.Level
		logFn  func(l *Logger)
		expect bool
	}{
		{slog.LevelInfo, func(l *Logger) { l.Debug("nope") }, false},
		{slog.LevelInfo, func(l *Logger) { l.Info("yes") }, true},
		{slog.LevelInfo, func(l *Logger) { l.Error("yes") }, true},
		{slog.LevelWarn, func(l *Logger) { l.Info("nope") }, false},
		{slog.LevelWarn, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelDebug, func(l *Logger) { l.Debug("yes") }, true},
	}
	for i, tt := range tests {
		var buf bytes.Buffer
		tt.logFn(NewWriter(&buf, tt.level, FormatJSON))
		require.Equal(t, tt.expect, buf.Len() > 0, "case %d", i)
	}
}

func TestNewWriterText(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, slog.LevelInfo, FormatText).Info("signed", "message", "ab12")
	require.Contains(t, buf.String(), "msg=signed")
	require.Contains(t, buf.String(), "message=ab12")
}

func TestDefaultLogger(t *testing.T) {
	require.NotNil(t, Default())

	var buf bytes.Buffer
	l := NewWriter(&buf, slog.LevelDebug, FormatJSON)
	SetDefault(l)
	defer SetDefault(New(slog.LevelInfo))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	require.Equal(t, 4, strings.Count(buf.String(), "\n"))

	SetDefault(nil)
	require.Same(t, l, Default())
}

func TestVerbosityToLevel(t *testing.T) {
	require.Greater(t, VerbosityToLevel(0), slog.LevelError)
	require.Equal(t, slog.LevelError, VerbosityToLevel(1))
	require.Equal(t, slog.LevelWarn, VerbosityToLevel(2))
	require.Equal(t, slog.LevelInfo, VerbosityToLevel(3))
	require.Equal(t, slog.LevelDebug, VerbosityToLevel(5))
	require.Equal(t, slog.LevelDebug, VerbosityToLevel(99))
	require.Equal(t, VerbosityToLevel(0), VerbosityToLevel(-3))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"":        slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}
