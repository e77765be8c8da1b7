// Package log is the structured logger used by commands and runners.
// Library packages (parser, analytics) never log; they return diagnostics.
package log

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface runners depend on.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
	// With returns a logger that adds key/value pairs to every line.
	With(keysAndValues ...any) Logger
	Sync() error
}

// ZapConfig selects how log lines are written.
type ZapConfig struct {
	Level string
	// Encoding is "console" or "json".
	Encoding     string
	ColorEnabled bool
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// Init builds a Logger writing to stderr.
func Init(cfg ZapConfig) Logger {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	if cfg.ColorEnabled {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var enc zapcore.Encoder
	if cfg.Encoding == "json" {
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return &zapLogger{s: zap.New(core).Sugar()}
}

// New is Init with console encoding at level.
func New(level string) Logger {
	return Init(ZapConfig{Level: level, Encoding: "console"})
}

// Nop discards everything.
func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

func parseLevel(s string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func (l *zapLogger) Debugf(_ context.Context, format string, args ...any) {
	l.s.Debugf(format, args...)
}

func (l *zapLogger) Infof(_ context.Context, format string, args ...any) {
	l.s.Infof(format, args...)
}

func (l *zapLogger) Warnf(_ context.Context, format string, args ...any) {
	l.s.Warnf(format, args...)
}

func (l *zapLogger) Errorf(_ context.Context, format string, args ...any) {
	l.s.Errorf(format, args...)
}

func (l *zapLogger) With(keysAndValues ...any) Logger {
	return &zapLogger{s: l.s.With(keysAndValues...)}
}

func (l *zapLogger) Sync() error {
	return l.s.Sync()
}

var global atomic.Value

func init() {
	global.Store(holder{Nop()})
}

type holder struct{ Logger }

// L returns the process logger. It discards output until Set is called.
func L() Logger {
	return global.Load().(holder).Logger
}

// Set installs the process logger.
func Set(l Logger) {
	if l == nil {
		l = Nop()
	}
	global.Store(holder{l})
}
