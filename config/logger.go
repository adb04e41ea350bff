package config

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logOnce sync.Once
	logg    *logrus.Logger
)

// GetLogger returns the shared structured logger. JSON in production,
// text locally; level from LOG_LEVEL.
func GetLogger() *logrus.Logger {
	logOnce.Do(func() {
		logg = logrus.New()
		logg.SetOutput(os.Stdout)
		if os.Getenv("APP_ENV") == "production" {
			logg.SetFormatter(&logrus.JSONFormatter{})
		}
		level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}
		logg.SetLevel(level)
	})
	return logg
}
