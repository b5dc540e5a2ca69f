package logger

import (
	"context"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/realtysync/provider-sync/internal/sanitize"
)

var (
	log          = zap.NewNop()
	sentryClient *sentry.Client
)

// Config configures the process logger
type Config struct {
	Debug           bool
	SentryDSN       string
	SentryClient    *sentry.Client
	BreadcrumbLevel zapcore.Level
	Tags            map[string]string
	// Sanitizer redacts secrets from every entry; the process default is used when nil
	Sanitizer *sanitize.Sanitizer
}

// Initialize builds the process logger. Entries at error level go to Sentry when a DSN or client
// is configured, and every entry passes the redacting core.
func Initialize(cfg Config) error {
	base, err := newBaseLogger(cfg.Debug)
	if err != nil {
		return err
	}

	if cfg.SentryDSN != "" || cfg.SentryClient != nil {
		base, err = attachSentry(base, cfg)
		if err != nil {
			return err
		}
	}

	log = base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return NewRedactingCore(core, cfg.Sanitizer)
	}))
	return nil
}

func newBaseLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc = zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func attachSentry(base *zap.Logger, cfg Config) (*zap.Logger, error) {
	client := cfg.SentryClient
	if client == nil {
		var err error
		client, err = sentry.NewClient(sentry.ClientOptions{Dsn: cfg.SentryDSN, Debug: cfg.Debug})
		if err != nil {
			return nil, err
		}
	}
	sentryClient = client

	breadcrumbs := cfg.BreadcrumbLevel
	if breadcrumbs == zapcore.InvalidLevel {
		breadcrumbs = zapcore.InfoLevel
	}
	core, err := zapsentry.NewCore(zapsentry.Configuration{
		Level:             zapcore.ErrorLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   breadcrumbs,
		Tags:              cfg.Tags,
	}, zapsentry.NewSentryClientFromClient(client))
	if err != nil {
		return nil, err
	}
	return zapsentry.AttachCoreToLogger(core, base), nil
}

// Set replaces the global logger, wrapping it with the redacting core.
// Mostly useful in tests with an observer core.
func Set(l *zap.Logger, s *sanitize.Sanitizer) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return NewRedactingCore(core, s)
	}))
}

// Flush flushes any buffered sentry events
func Flush(timeout time.Duration) {
	if sentryClient != nil {
		sentryClient.Flush(timeout)
	}
}

// FromContext returns the logger bound to the Sentry hub carried by ctx
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}
	return log.With(zapsentry.Context(ctx))
}

// Default returns the process logger without a context scope
func Default() *zap.Logger {
	return log
}

func errorMessage(err error) string {
	if err == nil {
		return "error occurred"
	}
	return err.Error()
}

func Info(msg string, fields ...zap.Field) { log.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { log.Warn(msg, fields...) }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }

// Error logs err as the message so Sentry groups events by error text
func Error(err error, fields ...zap.Field) { log.Error(errorMessage(err), fields...) }

// Fatal logs and exits the process
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Debug(msg, fields...)
}

func ErrorCtx(ctx context.Context, err error, fields ...zap.Field) {
	FromContext(ctx).Error(errorMessage(err), fields...)
}

func FatalCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Fatal(msg, fields...)
}
