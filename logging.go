package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func zerologNop() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// setupLogger opens the log file and builds the application logger.
// With no path configured, logging is discarded entirely; a TUI owns
// the terminal, so stdout is never an option.
func setupLogger(path string) (zerolog.Logger, *os.File, error) {
	if path == "" {
		return zerolog.New(io.Discard), nil, nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		return zerolog.New(io.Discard), nil, err
	}
	logger := zerolog.New(zerolog.SyncWriter(file)).With().Timestamp().Logger()
	return logger, file, nil
}
