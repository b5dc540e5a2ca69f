package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/realtysync/provider-sync/internal/sanitize"
)

// redactingCore scrubs secrets from messages, string fields and errors before
// they reach the wrapped core
type redactingCore struct {
	zapcore.Core
	sanitizer *sanitize.Sanitizer
}

// NewRedactingCore wraps core so every entry is passed through the sanitizer
func NewRedactingCore(core zapcore.Core, s *sanitize.Sanitizer) zapcore.Core {
	return &redactingCore{Core: core, sanitizer: s}
}

func (c *redactingCore) s() *sanitize.Sanitizer {
	if c.sanitizer != nil {
		return c.sanitizer
	}
	return sanitize.Default()
}

func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{Core: c.Core.With(c.redactFields(fields)), sanitizer: c.sanitizer}
}

func (c *redactingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = c.s().Redact(ent.Message)
	return c.Core.Write(ent, c.redactFields(fields))
}

func (c *redactingCore) redactFields(fields []zapcore.Field) []zapcore.Field {
	s := c.s()
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		switch {
		case s.IsSecretKey(f.Key):
			out[i] = zap.String(f.Key, sanitize.Mask)
		case f.Type == zapcore.StringType:
			f.String = s.Redact(f.String)
			out[i] = f
		case f.Type == zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok && err != nil {
				out[i] = zap.String(f.Key, s.Redact(err.Error()))
			} else {
				out[i] = f
			}
		case f.Type == zapcore.StringerType:
			if str, ok := f.Interface.(interface{ String() string }); ok && str != nil {
				out[i] = zap.String(f.Key, s.Redact(str.String()))
			} else {
				out[i] = f
			}
		default:
			out[i] = f
		}
	}
	return out
}
