package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrEmbeddingFailed signals that a query embedding could not be produced.
	// Vector retrieval cannot proceed without it, so this is fatal to the request.
	ErrEmbeddingFailed = errors.New("embedding generation failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorStoreUnavailable signals a vector store connectivity failure.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")
	// ErrPayloadSchema signals a stored document payload that does not match
	// the expected shape. Decoding fails loudly instead of defaulting fields.
	ErrPayloadSchema = errors.New("invalid payload schema")
)
