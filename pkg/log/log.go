// Package log provides the logging surface used throughout the core.
// Components never talk to logrus directly; they hold a Logger so tests
// can swap in NewNullLogger and assert on behaviour without log noise.
package log

import "github.com/sirupsen/logrus"

// Logger is the minimal logging surface the core depends on.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger backed by logrus, configured with no timestamps
// and no colour codes since log lines are usually read back from a
// captured test run rather than a tty.
func New() Logger {
	l := logrus.New()
	l.Level = logrus.DebugLevel
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{})  { l.l.Infof(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.l.Errorf(format, args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.l.Debugf(format, args...) }
