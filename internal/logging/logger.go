package logging

import (
	"go.uber.org/zap"
)

// Logger is our app-wide logging abstraction.
// We use key-value style args similar to zap.SugaredLogger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	With(args ...any) Logger
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New creates a JSON logger with service + env fields pre-attached.
// Debug mode lowers the level so per-request detail shows up locally.
func New(serviceName, env string, debug bool) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stdout"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	core, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	s := core.Sugar().With(
		"service", serviceName,
		"env", env,
	)

	return &zapLogger{s: s}
}

func (l *zapLogger) Info(msg string, args ...any) {
	l.s.Infow(msg, args...)
}

func (l *zapLogger) Error(msg string, args ...any) {
	l.s.Errorw(msg, args...)
}

func (l *zapLogger) Debug(msg string, args ...any) {
	l.s.Debugw(msg, args...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: l.s.With(args...)}
}

// AsZap unwraps our Logger to a *zap.Logger for integrations (Watermill, OTel).
// Any other Logger implementation falls back to a no-op logger.
func AsZap(l Logger) *zap.Logger {
	if zl, ok := l.(*zapLogger); ok {
		return zl.s.Desugar()
	}
	return zap.NewNop()
}

// NewNop returns a Logger that discards everything. Used in tests.
func NewNop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}
