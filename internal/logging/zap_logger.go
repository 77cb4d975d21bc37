package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log output formats accepted by NewZapLogger.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ZapLogger adapts a zap logger to dexdb.Logger. Verbose maps to debug
// level and is only emitted when the logger was built verbose.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a zap logger writing to stderr. format is FormatJSON
// or FormatConsole; runID is attached to every entry.
func NewZapLogger(verbose bool, format, runID string) (*ZapLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	switch format {
	case FormatConsole:
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
	case FormatJSON:
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatConsole, FormatJSON)
	}

	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}
	if runID != "" {
		logger = logger.With(zap.String("run_id", runID))
	}
	return NewZapLoggerFrom(logger), nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debug(sprintf(format, args))
}

func (l *ZapLogger) Info(format string, args ...interface{}) {
	l.sugar.Info(sprintf(format, args))
}

func (l *ZapLogger) Error(format string, args ...interface{}) {
	l.sugar.Error(sprintf(format, args))
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
