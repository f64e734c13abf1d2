package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	defaultLogger *logrus.Entry
	defaultOnce   sync.Once
	mu            sync.RWMutex
)

// New creates a logger for the given environment.
// prod logs JSON at info level, everything else logs text at debug level.
func New(env string) *logrus.Entry {
	l := logrus.New()
	l.Out = os.Stdout

	if env == "prod" {
		l.Formatter = &logrus.JSONFormatter{}
		l.Level = logrus.InfoLevel
	} else {
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		l.Level = logrus.DebugLevel
	}

	return l.WithField("env", env)
}

// SetDefault replaces the process wide logger
func SetDefault(entry *logrus.Entry) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = entry
}

// Default returns the process wide logger, creating a dev logger on first use
func Default() *logrus.Entry {
	defaultOnce.Do(func() {
		mu.Lock()
		if defaultLogger == nil {
			defaultLogger = New("dev")
		}
		mu.Unlock()
	})

	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}
