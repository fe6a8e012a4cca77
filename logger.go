package scripthub

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfigureLevel returns the appropriate AtomicLevel that can be used for a logger.
func ConfigureLevel(logLevel string) zap.AtomicLevel {
	var level zap.AtomicLevel
	switch strings.ToLower(logLevel) {
	case "", "info":
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		fmt.Fprintf(os.Stderr, "Invalid log level supplied. Defaulting to info: %s\n", logLevel)
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}

// ConfigureLogger return a Logger with the specified loglevel and output.
func ConfigureLogger(level zap.AtomicLevel, ws zapcore.WriteSyncer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(ws),
		level,
	)
	return zap.New(core)
}

// NewLogger is shorthand for ConfigureLogger(ConfigureLevel(logLevel), ws).
func NewLogger(logLevel string, ws zapcore.WriteSyncer) *zap.Logger {
	return ConfigureLogger(ConfigureLevel(logLevel), ws)
}

// LogWriter is an io.Writer that mirrors every chunk written to it onto a
// Logger as a single entry carrying the stream name.
type LogWriter struct {
	L      *zap.Logger
	Msg    string
	Stream string
	Level  zapcore.Level
}

// Write implements io.Writer. It never fails.
func (w *LogWriter) Write(p []byte) (int, error) {
	if ce := w.L.Check(w.Level, w.Msg); ce != nil {
		ce.Write(zap.String(`stream`, w.Stream), zap.String(`data`, string(p)))
	}
	return len(p), nil
}
