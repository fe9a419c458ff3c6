// Package logsink defines the narrow logging surface the rest of the library
// emits to. Every mutating command resolves to exactly one Success or one
// Failure event, whether or not the caller consumes the outcome.
package logsink

import (
	"github.com/sirupsen/logrus"
)

// Sink receives the outcome of administrative commands. Implementations must
// be safe for concurrent use; commands resolve on their own goroutines.
type Sink interface {
	Success(msg string)
	Failure(msg string, cause error)
}

// Logrus returns a Sink backed by the given logger. Pass logrus.New() (or
// logrus.StandardLogger()) if there's nothing to integrate with.
func Logrus(log *logrus.Logger) Sink {
	return &logrusSink{log: log}
}

type logrusSink struct {
	log *logrus.Logger
}

func (s *logrusSink) Success(msg string) {
	s.log.Info(msg)
}

func (s *logrusSink) Failure(msg string, cause error) {
	s.log.WithError(cause).Error(msg)
}

// Nop discards everything.
var Nop Sink = nopSink{}

type nopSink struct{}

func (nopSink) Success(string)        {}
func (nopSink) Failure(string, error) {}
