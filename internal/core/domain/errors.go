package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Transport adapters wrap it for HTTP 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates a missing or contradictory option.
	// Reported before any network activity.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAborted indicates the operator declined a confirmation.
	// It is an intentional stop, not a failure.
	ErrAborted = errors.New("operation aborted by user")

	// ErrNotInModule indicates a qualified document name does not
	// belong to the current module.
	ErrNotInModule = errors.New("document does not belong to current module")

	// ErrUnsupportedType indicates an unknown project type or file format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSourceDirMissing indicates the source directory does not exist.
	ErrSourceDirMissing = errors.New("source directory does not exist")

	// ErrUnauthorized indicates the server rejected the credentials.
	ErrUnauthorized = errors.New("incorrect username/password")
)
