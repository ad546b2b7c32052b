package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorGray   = "\033[90m"
)

const timeLayout = "06-01-02 15:04:05"

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type state struct {
	mu      sync.RWMutex
	level   zap.AtomicLevel
	color   bool
	console zapcore.WriteSyncer
	file    *os.File
	sugar   *zap.SugaredLogger
}

var global = &state{
	level:   zap.NewAtomicLevelAt(zapcore.InfoLevel),
	color:   true,
	console: zapcore.Lock(os.Stdout),
}

func init() {
	global.rebuild()
}

// rebuild must be called with mu held for writing (or before any concurrent use).
func (s *state) rebuild() {
	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(s.color), s.console, s.level),
	}
	if s.file != nil {
		cores = append(cores, zapcore.NewCore(newEncoder(false), zapcore.AddSync(s.file), s.level))
	}
	s.sugar = zap.New(zapcore.NewTee(cores...)).Sugar()
}

func (s *state) logger() *zap.SugaredLogger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sugar
}

func newEncoder(color bool) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeTime:       timeEncoder(color),
		EncodeLevel:      levelEncoder(color),
		EncodeDuration:   zapcore.StringDurationEncoder,
	})
}

func timeEncoder(color bool) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		if !color {
			enc.AppendString("[" + t.Format(timeLayout) + "]")
			return
		}
		enc.AppendString(fmt.Sprintf("%s[%s]%s", ColorGray, t.Format(timeLayout), ColorReset))
	}
}

func levelEncoder(color bool) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		name := fromZap(l).String()
		if !color {
			enc.AppendString(fmt.Sprintf("%-5s", name))
			return
		}
		enc.AppendString(fmt.Sprintf("%s%-5s%s", levelColor(l), name, ColorReset))
	}
}

func fromZap(l zapcore.Level) LogLevel {
	switch l {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.InfoLevel:
		return INFO
	case zapcore.WarnLevel:
		return WARN
	default:
		return ERROR
	}
}

func levelColor(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return ColorGray
	case zapcore.InfoLevel:
		return ColorBlue
	case zapcore.WarnLevel:
		return ColorYellow
	case zapcore.ErrorLevel:
		return ColorRed
	default:
		return ColorPurple
	}
}

func SetVerbose(verbose bool) {
	if verbose {
		global.level.SetLevel(zapcore.DebugLevel)
		return
	}
	global.level.SetLevel(zapcore.InfoLevel)
}

// SetColor toggles ANSI colors on the console output. The log file is never colored.
func SetColor(enabled bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.color = enabled
	global.rebuild()
}

func SetOutput(writer io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.console = zapcore.Lock(zapcore.AddSync(writer))
	global.rebuild()
}

// SetLogFile mirrors every log line into path. An empty path detaches the current file.
func SetLogFile(path string) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file != nil {
		global.file.Close()
		global.file = nil
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			global.rebuild()
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		global.file = f
	}

	global.rebuild()
	return nil
}

func Sync() {
	_ = global.logger().Sync()
}

func Debug(format string, args ...interface{}) {
	global.logger().Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	global.logger().Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	global.logger().Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	global.logger().Errorf(format, args...)
}

func GetLogFromLevel(level LogLevel) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		global.logger().Logf(level.zapLevel(), format, args...)
	}
}
