package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name          string
		level         Level
		logFunc       func(Logger, string)
		expectedInLog bool
	}{
		{
			name:          "debug message when level is debug",
			level:         LevelDebug,
			logFunc:       func(l Logger, msg string) { l.Debug(msg) },
			expectedInLog: true,
		},
		{
			name:          "debug message when level is info",
			level:         LevelInfo,
			logFunc:       func(l Logger, msg string) { l.Debug(msg) },
			expectedInLog: false,
		},
		{
			name:          "warn message when level is warn",
			level:         LevelWarn,
			logFunc:       func(l Logger, msg string) { l.Warn(msg) },
			expectedInLog: true,
		},
		{
			name:          "warn message when level is error",
			level:         LevelError,
			logFunc:       func(l Logger, msg string) { l.Warn(msg) },
			expectedInLog: false,
		},
		{
			name:          "error message when level is error",
			level:         LevelError,
			logFunc:       func(l Logger, msg string) { l.Error(msg) },
			expectedInLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewLogger(tt.level, buf)

			tt.logFunc(l, "template loaded")

			assert.Equal(t, tt.expectedInLog, strings.Contains(buf.String(), "template loaded"))
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(LevelInfo, buf).WithFields(F("template", "model.properties"))

	l.Info("resolved parameters", F("outer", "0"), F("inner", 1))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "template=model.properties")
	assert.Contains(t, out, "outer=0")
	assert.Contains(t, out, "inner=1")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestLogger_ChildSharesLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	parent := NewLogger(LevelError, buf)
	child := parent.WithFields(F("key", "value"))

	child.Info("hidden")
	assert.Empty(t, buf.String())

	parent.SetLevel(LevelInfo)
	child.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_SilentMode(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(LevelSilent, buf)

	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"off", LevelSilent, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "SILENT", LevelSilent.String())
	assert.Equal(t, "UNKNOWN", Level(999).String())
}

func TestDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	buf := &bytes.Buffer{}
	SetDefault(NewLogger(LevelDebug, buf))
	Default().Debug("swapped")

	assert.Contains(t, buf.String(), "swapped")
}

func BenchmarkLogger_Info(b *testing.B) {
	l := NewLogger(LevelInfo, bytes.NewBuffer(make([]byte, 0, 1024*1024)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info("benchmark message", F("iteration", i), F("key", "value"))
	}
}
