package host

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// NewLogger returns a logger writing text records to stderr, or appending to logfile if it is not empty. With
// verbose set, debug records are included.
func NewLogger(logfile string, verbose bool) (*log.Logger, io.Closer, error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	if logfile == "" {
		logger.SetOutput(os.Stderr)
		return logger, io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(logfile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
