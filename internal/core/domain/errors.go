package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file format no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyDocument indicates an extractor produced no text.
	ErrEmptyDocument = errors.New("document contains no text")

	// Sync Errors.

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrCloudUnavailable indicates no cloud store is configured.
	// Calculators stay on this device only.
	ErrCloudUnavailable = errors.New("cloud storage unavailable")

	// ErrAuthRequired indicates the cloud store has no usable token.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the cloud token has expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCorruptSnapshot indicates the cloud document could not be decoded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
