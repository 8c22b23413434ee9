package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the adapter's logging surface. Messages are printf-style;
// everything goes to stderr or a log file, never to the protocol stream.
type Logger interface {
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type StdLogger struct {
	internalLogger *logrus.Logger
}

func New(out io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(parsed)
	}
	return &StdLogger{internalLogger: l}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &StdLogger{internalLogger: l}
}

func (l *StdLogger) Info(format string, args ...interface{}) {
	l.internalLogger.Infof(format, args...)
}

func (l *StdLogger) Debug(format string, args ...interface{}) {
	l.internalLogger.Debugf(format, args...)
}

func (l *StdLogger) Warn(format string, args ...interface{}) {
	l.internalLogger.Warnf(format, args...)
}

func (l *StdLogger) Error(format string, args ...interface{}) {
	l.internalLogger.Errorf(format, args...)
}
