package main

import (
	"errors"

	"github.com/matsen/litmerge/internal/config"
	"github.com/matsen/litmerge/internal/pipeline"
	"github.com/matsen/litmerge/internal/schema"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unknown schema, bad config, unusable output dir)
	ExitDataError   = 3 // Data error (unreadable or malformed input)
)

// exitCodeFor maps a run error to its exit code.
func exitCodeFor(err error) int {
	var cfgErr *schema.ConfigurationError
	var readErr *pipeline.InputReadError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr), errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.As(err, &readErr):
		return ExitDataError
	}
	return ExitError
}
