// Package log builds the zap loggers used by the catalog.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type plugin = zapcore.Core

// NewLogger wraps one or more plugins into a logger with the default options.
func NewLogger(plugin zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(plugin, append(DefaultOption(), options...)...)
}

// NewPlugin encodes entries as JSON into writer.
func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) plugin {
	return zapcore.NewCore(DefaultEncoder(), writer, enabler)
}

// NewStderrPlugin writes to standard error.
func NewStderrPlugin(enabler zapcore.LevelEnabler) plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stderr)), enabler)
}

// NewWriterPlugin writes to w.
func NewWriterPlugin(w io.Writer, enabler zapcore.LevelEnabler) plugin {
	return NewPlugin(zapcore.AddSync(w), enabler)
}

// NewFilePlugin writes to a size-rotated file. The returned Closer releases it.
func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (plugin, io.Closer) {
	var writer = DefaultLumberjackLogger()
	writer.Filename = filePath
	return NewPlugin(zapcore.AddSync(writer), enabler), writer
}

// ParseLevel accepts zap level names; empty means warn.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// Config selects where the CLI logger writes.
type Config struct {
	Level  string    // debug, info, warn, error
	File   string    // when set, log to this rotating file instead of stderr
	Writer io.Writer // used instead of stderr when File is empty
}

// New builds the process logger described by cfg. The returned func flushes
// and releases the logger; it is safe to call once at exit.
func New(cfg Config) (*zap.Logger, func(), error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	enabler := zap.NewAtomicLevelAt(lvl)

	if cfg.File != "" {
		core, closer := NewFilePlugin(cfg.File, enabler)
		logger := NewLogger(core)
		return logger, func() {
			_ = logger.Sync()
			_ = closer.Close()
		}, nil
	}

	plugin := NewStderrPlugin(enabler)
	if cfg.Writer != nil {
		plugin = NewWriterPlugin(cfg.Writer, enabler)
	}
	logger := NewLogger(plugin)
	return logger, func() { _ = logger.Sync() }, nil
}
