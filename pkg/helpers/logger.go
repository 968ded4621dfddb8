package helpers

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger
func NewLogger(appName, env string) *logrus.Logger {
	return newLogger(os.Stdout, appName, env)
}

func newLogger(out io.Writer, appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	switch env {
	case "development":
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "test":
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Debug("logger initialized")
	return logger
}

// NewTestLogger returns a logger that writes nothing.
func NewTestLogger() *logrus.Logger {
	return newLogger(io.Discard, "test", "test")
}

// LogError keeps error logs uniform across layers.
func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.WithFields(fields).Error(msg)
}
