package domain

import "errors"

var (
	// ErrDataUnavailable signals that no dataset source could be loaded.
	ErrDataUnavailable = errors.New("no loadable dataset source")
	// ErrIndexBuild signals an invalid build input (no postings).
	ErrIndexBuild = errors.New("index build failed")
	// ErrInvalidQuery signals invalid request input or a query against an
	// empty or uninitialized index.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrGenerationService signals a generation call failure (auth, rate
	// limit, network). The insight composer degrades this into returned
	// text; transports raise it.
	ErrGenerationService = errors.New("generation service error")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrModelVersionMismatch signals that a persisted index was built with
	// a different embedding model than the active encoder.
	ErrModelVersionMismatch = errors.New("index model version mismatch")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
