// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level and output of the standard logger.
// An empty level keeps the current one.
func Setup(level string, out io.Writer) error {
	if out != nil {
		log.SetOutput(out)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if level == "" {
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}

// For returns a logger entry tagged with the component name.
func For(component string) *log.Entry {
	return log.WithField("component", component)
}
