package generate

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrGenerationInProgress is returned when another process holds the run lock
	ErrGenerationInProgress = errors.New("cache generation already in progress")
)
