package logger

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyUserID    ctxKey = "user_id"
)

var (
	mu            sync.RWMutex
	defaultLogger *zap.Logger
)

// Init builds the process logger. format is "json" or "console".
func Init(level, format string) error {
	var lvl zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	return nil
}

// Set replaces the process logger. Tests use it with zaptest/observer cores.
func Set(l *zap.Logger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func Get() *zap.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	return zap.NewNop()
}

func Sync() {
	_ = Get().Sync()
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// WithContext returns the process logger annotated with request and user ids.
func WithContext(ctx context.Context) *zap.Logger {
	l := Get()
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok && v != "" {
		l = l.With(zap.String("request_id", v))
	}
	if v, ok := ctx.Value(ctxKeyUserID).(string); ok && v != "" {
		l = l.With(zap.String("user_id", v))
	}
	return l
}

func NewRequestID() string {
	return uuid.NewString()
}
