package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// GetLogger returns the process-wide logrus logger.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(os.Stdout)
		log.SetFormatter(&logrus.JSONFormatter{})
		if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			log.SetLevel(level)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}
	})
	return log
}
