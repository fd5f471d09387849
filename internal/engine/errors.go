package engine

import "errors"

var (
	// ErrValidation indicates a malformed request.
	ErrValidation = errors.New("validation failed")

	// ErrSourceNotFound indicates the source directory does not exist or
	// is not a directory.
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrDestinationUnwritable indicates the destination directory could
	// not be created or written to.
	ErrDestinationUnwritable = errors.New("destination not writable")

	// ErrLocked indicates another run is already organizing the
	// destination.
	ErrLocked = errors.New("destination is locked by another run")
)
