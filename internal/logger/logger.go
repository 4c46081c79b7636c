package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level, the encoding and the fields stamped on every
// entry of a process logger.
type Options struct {
	Level   string
	Format  string
	Service string
	Env     string
}

// New builds a zap logger. Format "json" selects the production encoder with
// ISO 8601 timestamps, anything else the console encoder. Unknown levels fall
// back to info.
func New(opts Options) *zap.Logger {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.InitialFields = initialFields(opts)

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func initialFields(opts Options) map[string]any {
	fields := make(map[string]any, 2)
	if opts.Service != "" {
		fields["service"] = opts.Service
	}
	if opts.Env != "" {
		fields["env"] = opts.Env
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// NewNop returns a logger that discards everything.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
