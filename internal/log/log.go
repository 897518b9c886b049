// Package log provides a simplified logging interface for another-mq.
// It wraps go.uber.org/zap and builds the log sinks described by a
// config.Log: standard output, an optional logfile and an optional syslog
// collector.
package log

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lc/anothermq/internal/config"
)

// Logger is the global logger instance.
// Until Setup is called it writes info and above to standard output.
var Logger = newLogger()

func newLogger() *zap.SugaredLogger {
	l, _, err := New(config.Default().Log)
	if err != nil {
		// Only file and syslog sinks can fail, and the default has neither.
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

type options struct {
	stdout zapcore.WriteSyncer
	dial   Dialer
}

// Opt configures New.
type Opt func(*options)

// WithStdout replaces the standard output sink.
func WithStdout(w zapcore.WriteSyncer) Opt {
	return func(o *options) { o.stdout = w }
}

// WithDialer replaces the function used to connect to syslog.
func WithDialer(d Dialer) Opt {
	return func(o *options) { o.dial = d }
}

// New builds a logger from cfg. The returned close function releases the
// file and syslog sinks; call it after the logger's last use.
func New(cfg config.Log, opts ...Opt) (*zap.Logger, func() error, error) {
	o := options{
		stdout: zapcore.Lock(os.Stdout),
		dial:   DialSyslog,
	}
	for _, opt := range opts {
		opt(&o)
	}

	level := zap.NewAtomicLevelAt(Level(cfg.Level))
	encCfg := encoderConfig()
	enc := zapcore.NewJSONEncoder(encCfg)

	cores := []zapcore.Core{zapcore.NewCore(enc, o.stdout, level)}
	var closers []func() error

	if cfg.File != nil {
		// A plain path, never a sink URL: "stdout" or "logs#1.log" name files.
		f, err := os.OpenFile(*cfg.File, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening logfile %s: %w", *cfg.File, err)
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.Lock(f), level))
		closers = append(closers, f.Close)
	}

	if cfg.Syslog != nil {
		core, err := newSyslogCore(*cfg.Syslog, level, o.dial)
		if err != nil {
			return nil, nil, multierr.Append(err, closeAll(closers)())
		}
		cores = append(cores, core)
		closers = append(closers, core.w.Close)
	}

	return zap.New(zapcore.NewTee(cores...)), closeAll(closers), nil
}

// Setup replaces the global Logger with one built from cfg.
func Setup(cfg config.Log, opts ...Opt) (func() error, error) {
	l, closeFn, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	Logger = l.Sugar()
	return func() error {
		// Syncing stdout fails on terminals and pipes, ignore it.
		_ = l.Sync()
		return closeFn()
	}, nil
}

// Level maps a configured severity onto zap. zap has no trace level, so
// trace logs everything debug does.
func Level(l config.Level) zapcore.Level {
	switch l {
	case config.LevelError:
		return zapcore.ErrorLevel
	case config.LevelWarn:
		return zapcore.WarnLevel
	case config.LevelDebug, config.LevelTrace:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func closeAll(closers []func() error) func() error {
	return func() error {
		var err error
		for _, c := range closers {
			err = multierr.Append(err, c())
		}
		return err
	}
}

// Info logs a message at info level with optional key-value pairs.
func Info(msg string, kv ...any) { Logger.Infow(msg, kv...) }

// Infof logs a formatted message at info level.
func Infof(format string, a ...any) { Logger.Infof(format, a...) }

// Warn logs a message at warn level with optional key-value pairs.
func Warn(msg string, kv ...any) { Logger.Warnw(msg, kv...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, a ...any) { Logger.Warnf(format, a...) }

// Error logs a message at error level with optional key-value pairs.
func Error(msg string, kv ...any) { Logger.Errorw(msg, kv...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, a ...any) { Logger.Errorf(format, a...) }

// Debug logs a message at debug level with optional key-value pairs.
func Debug(msg string, kv ...any) { Logger.Debugw(msg, kv...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, a ...any) { Logger.Debugf(format, a...) }

// Fatal logs a message at fatal level with optional key-value pairs,
// then calls os.Exit(1).
func Fatal(msg string, kv ...any) { Logger.Fatalw(msg, kv...) }

// Fatalf logs a formatted message at fatal level, then calls os.Exit(1).
func Fatalf(format string, a ...any) { Logger.Fatalf(format, a...) }
