package commons

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logging contract. Every component takes a
// Logger instead of a concrete zap logger so tests can build a quiet one.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Sync() error
}

type applicationLogger struct {
	sugar *zap.SugaredLogger
}

type LoggerOption func(*loggerConfig)

type loggerConfig struct {
	level   string
	logFile string
}

// WithLevel sets the minimum log level (debug, info, warn, error).
func WithLevel(level string) LoggerOption {
	return func(c *loggerConfig) { c.level = level }
}

// WithLogFile writes rotated log files in addition to stdout.
func WithLogFile(path string) LoggerOption {
	return func(c *loggerConfig) { c.logFile = path }
}

// NewApplicationLogger builds a zap backed Logger. With no options it logs
// at debug level to stdout.
func NewApplicationLogger(opts ...LoggerOption) (Logger, error) {
	cfg := &loggerConfig{level: "debug"}
	for _, opt := range opts {
		opt(cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	sink := zapcore.AddSync(os.Stdout)
	if cfg.logFile != "" {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		})
		sink = zapcore.NewMultiWriteSyncer(sink, rotated)
	}

	core := zapcore.NewCore(encoder, sink, level)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &applicationLogger{sugar: logger.Sugar()}, nil
}

func (l *applicationLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *applicationLogger) Debugf(template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}
func (l *applicationLogger) Info(args ...interface{}) { l.sugar.Info(args...) }
func (l *applicationLogger) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}
func (l *applicationLogger) Warn(args ...interface{}) { l.sugar.Warn(args...) }
func (l *applicationLogger) Warnf(template string, args ...interface{}) {
	l.sugar.Warnf(template, args...)
}
func (l *applicationLogger) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *applicationLogger) Errorf(template string, args ...interface{}) {
	l.sugar.Errorf(template, args...)
}
func (l *applicationLogger) Sync() error { return l.sugar.Sync() }
