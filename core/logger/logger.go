package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	app *logrus.Logger
)

// New builds a logrus logger from cfg. Unknown levels fall back to info.
func New(cfg LogConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// Init replaces the application logger.
func Init(cfg LogConfig) *logrus.Logger {
	l := New(cfg)
	SetAppLogger(l)
	return l
}

// GetAppLogger returns the application logger, creating it from the
// environment on first use.
func GetAppLogger() *logrus.Logger {
	mu.RLock()
	l := app
	mu.RUnlock()
	if l != nil {
		return l
	}
	mu.Lock()
	defer mu.Unlock()
	if app == nil {
		app = New(DefaultConfig())
	}
	return app
}

func SetAppLogger(l *logrus.Logger) {
	mu.Lock()
	app = l
	mu.Unlock()
}
