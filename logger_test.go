package scripthub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigureLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zap.InfoLevel},
		{"info", zap.InfoLevel},
		{"DEBUG", zap.DebugLevel},
		{"warn", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"verbose", zap.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigureLevel(tt.in).Level())
		})
	}
}

func TestConfigureLogger_JSONWithTimestamp(t *testing.T) {
	var buf bytes.Buffer
	L := NewLogger("info", zapcore.AddSync(&buf))
	L.Info("hello", zap.String("process", "test"))
	L.Debug("dropped")
	require.NoError(t, L.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["process"])
	assert.Contains(t, entry, "timestamp")
}

func TestLogWriter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := &LogWriter{L: zap.New(core), Msg: "script output", Stream: "stdout", Level: zap.InfoLevel}

	n, err := io.WriteString(w, "chunk one\n")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	fmt.Fprint(w, "chunk two")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "script output", entries[0].Message)
	assert.Equal(t, "stdout", entries[0].ContextMap()["stream"])
	assert.Equal(t, "chunk one\n", entries[0].ContextMap()["data"])
	assert.Equal(t, "chunk two", entries[1].ContextMap()["data"])
}

func TestLogWriter_BelowLevelStillConsumes(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	w := &LogWriter{L: zap.New(core), Msg: "script output", Stream: "stdout", Level: zap.InfoLevel}

	n, err := w.Write([]byte("quiet"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Zero(t, logs.Len())
}
