// Package log builds the harness logger: colored console output, plus
// rotated files when a path is configured.
package log

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFmt = "2006/01/02 15:04:05.000"

// Config selects the level and optional log file.
type Config struct {
	Level string // debug, info, warn, error
	File  string // rotated log file; empty disables file output
}

// New builds a logger from cfg. An invalid level is an error.
// The returned close func flushes the logger and releases the log file;
// call it once the logger is no longer used.
func New(cfg Config) (*zap.Logger, func() error, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	lv := zap.NewAtomicLevel()
	if err := lv.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg(false)),
			zapcore.Lock(os.Stderr),
			lv,
		),
	}
	var w *lumberjack.Logger
	if cfg.File != "" {
		w = rotated(cfg.File)
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg(true)),
			zapcore.AddSync(w),
			lv,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, closer(logger, w), nil
}

func rotated(file string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
		Compress:   true,
	}
}

func closer(logger *zap.Logger, w *lumberjack.Logger) func() error {
	return func() error {
		// Sync on a console core reports EINVAL for terminals; only the
		// file matters here.
		_ = logger.Sync()
		if w == nil {
			return nil
		}
		return w.Close()
	}
}

func encCfg(file bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + t.Format(timeFmt) + "]")
	}
	cfg.ConsoleSeparator = " "
	if file {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
