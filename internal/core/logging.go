package core

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logrus logger. Unknown levels fall
// back to info, unknown formats to JSON.
func SetupLogging(c LogConfig) {
	setupLogging(c, os.Stderr)
}

func setupLogging(c LogConfig, out io.Writer) {
	logrus.SetOutput(out)

	switch c.Format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.999",
		})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.999",
		})
	}

	l, err := logrus.ParseLevel(c.Level)
	if err != nil {
		l = logrus.InfoLevel
	}
	logrus.SetLevel(l)
}
