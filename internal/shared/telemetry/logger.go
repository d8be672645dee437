package telemetry

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// Init builds the process-wide logger: JSON lines on stdout, RFC3339
// timestamps. Tests that never call Init get a no-op logger.
func Init(debug bool) error {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         "json",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "ts",
			EncodeTime: zapcore.RFC3339TimeEncoder,
		},
	}
	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built.Sugar()
	return nil
}

// Info writes an info-level line with alternating key/value fields.
func Info(msg string, kv ...any) {
	logger.Infow(msg, kv...)
}

// Warn writes a warn-level line with alternating key/value fields.
func Warn(msg string, kv ...any) {
	logger.Warnw(msg, kv...)
}

// Error writes an error-level line with alternating key/value fields.
func Error(msg string, kv ...any) {
	logger.Errorw(msg, kv...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = logger.Sync()
}
