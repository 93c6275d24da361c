// Package logger provides a centralized leveled logging facility on top of zap.
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("pricing started")
//	logger.Debugf("paths=%d workers=%d", n, workers)
//	logger.L().Debug("estimate", zap.Int64("n_paths", n))
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents a logging verbosity level.
// Higher values mean more verbose logging.
type Level int

const (
	Error Level = iota // Error logs only critical failures.
	Info               // Info logs high-level application progress.
	Debug              // Debug logs detailed diagnostic information.
	Trace              // Trace logs very fine-grained execution details.
)

var (
	mu      sync.RWMutex
	current = Info
	base    *zap.Logger
	sugar   *zap.SugaredLogger
)

// Logs go to stderr so they never mix with results printed on stdout.
func init() {
	setOutput(zapcore.Lock(os.Stderr))
}

func setOutput(ws zapcore.WriteSyncer) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	// Level filtering happens in logf against current, so the core accepts everything.
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), ws, zap.DebugLevel)

	mu.Lock()
	defer mu.Unlock()
	base = zap.New(core, zap.AddCaller())
	sugar = base.WithOptions(zap.AddCallerSkip(2)).Sugar()
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	setOutput(zapcore.AddSync(w))
}

// SetVerbosity sets the global logging verbosity.
// Typically called once during application startup
// (e.g. after parsing CLI flags). Out of range values are clamped.
func SetVerbosity(v int) {
	l := Level(v)
	if l < Error {
		l = Error
	}
	if l > Trace {
		l = Trace
	}
	mu.Lock()
	current = l
	mu.Unlock()
}

// Enabled reports whether messages at l are currently written.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return current >= l
}

// L returns the underlying structured logger. Callers check Enabled
// themselves when they want verbosity gating.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered output.
func Sync() {
	_ = L().Sync()
}

func logf(l Level, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	mu.RLock()
	s := sugar
	mu.RUnlock()

	switch l {
	case Error:
		s.Errorf(format, args...)
	case Info:
		s.Infof(format, args...)
	case Trace:
		s.Debugf("[trace] "+format, args...)
	default:
		s.Debugf(format, args...)
	}
}

// Errorf logs an error-level message.
// Use this for failures that require attention.
func Errorf(format string, args ...any) {
	logf(Error, format, args...)
}

// Infof logs an informational message.
// Use this for major lifecycle events.
func Infof(format string, args ...any) {
	logf(Info, format, args...)
}

// Debugf logs debugging information.
func Debugf(format string, args ...any) {
	logf(Debug, format, args...)
}

// Tracef logs very detailed execution traces.
// Use this sparingly due to high volume.
func Tracef(format string, args ...any) {
	logf(Trace, format, args...)
}
