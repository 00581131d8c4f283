package diag

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink receives free-text status lines
type Sink interface {
	Status(msg string)
}

// LogSink forwards status lines to a logger and keeps the latest one for
// window titles and terminal status rows.
type LogSink struct {
	mu    sync.RWMutex
	last  string
	count int
	log   logrus.FieldLogger
	level logrus.Level
}

func NewLogSink(log logrus.FieldLogger, level logrus.Level) *LogSink {
	return &LogSink{log: log, level: level}
}

func (s *LogSink) Status(msg string) {
	s.mu.Lock()
	s.last = msg
	s.count++
	s.mu.Unlock()

	entry := s.log.WithField("component", "status")
	switch s.level {
	case logrus.ErrorLevel:
		entry.Error(msg)
	case logrus.WarnLevel:
		entry.Warn(msg)
	case logrus.DebugLevel, logrus.TraceLevel:
		entry.Debug(msg)
	default:
		entry.Info(msg)
	}
}

// Last returns the most recent status line
func (s *LogSink) Last() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.last
}

// Count is the number of status lines received so far
func (s *LogSink) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}
