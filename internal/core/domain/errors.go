package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStartupFailed indicates the service could not initialise.
	// This is fatal: the process must restart rather than retry.
	ErrStartupFailed = errors.New("startup failed")

	// ErrNotReady indicates an operation was attempted before the
	// service reached the Ready state, or after a fatal failure.
	ErrNotReady = errors.New("service not ready")

	// ErrDimensionMismatch indicates an embedding whose length differs
	// from the dimension fixed at warm-up. Vectors of inconsistent
	// length would silently corrupt similarity scores, so this is
	// treated as a consistency violation.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding backend is not
	// configured or unreachable. The service cannot run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the generation backend is not
	// configured or unreachable.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrBackendUnavailable indicates the durable document store
	// rejected a read, write or delete. Surfaced as the command's
	// error response; the command loop continues.
	ErrBackendUnavailable = errors.New("document backend unavailable")

	// ErrUnknownCommand indicates an unrecognised command name.
	ErrUnknownCommand = errors.New("Unknown command")
)
