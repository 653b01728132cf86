// Package logging configures the daemon-wide logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup initializes the global logrus configuration. Verbose enables debug
// output; otherwise only info and above is emitted.
func Setup(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Component returns a logger entry tagged with the originating component,
// e.g. "pool", "session", "ipc".
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
