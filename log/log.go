package log

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// thin wrapper around zap so that callers only import this package

type (
	Field  = zap.Field
	Level  = zapcore.Level
	Option = zap.Option

	Logger struct {
		l     *zap.Logger
		level Level
	}
)

const (
	DebugLevel = zap.DebugLevel
	InfoLevel  = zap.InfoLevel
	WarnLevel  = zap.WarnLevel
	ErrorLevel = zap.ErrorLevel
	FatalLevel = zap.FatalLevel
)

var (
	Skip       = zap.Skip
	Binary     = zap.Binary
	Bool       = zap.Bool
	Duration   = zap.Duration
	Float64    = zap.Float64
	Int        = zap.Int
	Int32      = zap.Int32
	Int64      = zap.Int64
	Uint32     = zap.Uint32
	String     = zap.String
	Time       = zap.Time
	Any        = zap.Any
	ErrorField = zap.Error

	WithCaller    = zap.WithCaller
	AddStacktrace = zap.AddStacktrace
	AddCallerSkip = zap.AddCallerSkip
)

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

// New creates a logger with JSON output.
func New(writer io.Writer, level Level, opts ...Option) *Logger {
	return newLogger(writer, level, prodEncoder(), opts...)
}

// DevLogger creates a logger with human readable console output.
func DevLogger(writer io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	enc := zapcore.NewConsoleEncoder(cfg)
	return newLogger(writer, level, enc, opts...)
}

// NewWithFilters creates a JSON logger whose output is restricted by
// zapfilter rules (e.g. "debug:importer.* info:*").
func NewWithFilters(writer io.Writer, level Level, rules string, opts ...Option) (
	*Logger, error,
) {
	if writer == nil {
		panic("the writer is nil")
	}
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(
		prodEncoder(),
		zapcore.AddSync(writer),
		level)
	return &Logger{
		l:     zap.New(zapfilter.NewFilteringCore(core, filter), opts...),
		level: level,
	}, nil
}

func prodEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func newLogger(writer io.Writer, level Level, enc zapcore.Encoder, opts ...Option) *Logger {
	if writer == nil {
		panic("the writer is nil")
	}
	core := zapcore.NewCore(
		enc,
		zapcore.AddSync(writer),
		level)
	return &Logger{
		l:     zap.New(core, opts...),
		level: level,
	}
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) WithOptions(opts ...Option) *Logger {
	return &Logger{l: l.l.WithOptions(opts...), level: l.level}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Level() Level { return l.level }

func (l *Logger) Sync() error { return l.l.Sync() }

var (
	std     = DevLogger(os.Stderr, InfoLevel)
	mu      sync.Mutex
	Debug   = std.Debug
	Info    = std.Info
	Warn    = std.Warn
	Error   = std.Error
	Fatal   = std.Fatal
)

func Default() *Logger { return std }

// ResetDefault replaces the package level logger and the convenience
// functions. Not safe for concurrent use with logging calls; call it once
// during startup.
func ResetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
	Debug = std.Debug
	Info = std.Info
	Warn = std.Warn
	Error = std.Error
	Fatal = std.Fatal
}

func Sync() error {
	if std != nil {
		return std.Sync()
	}
	return nil
}
