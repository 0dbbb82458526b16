package domain

import "github.com/google/uuid"

// IngestResult is the outcome of one ingestion returned to the caller.
type IngestResult struct {
	// Status is true only when the document, its blob and all chunks were
	// persisted.
	Status bool

	// DocumentID identifies the persisted document; uuid.Nil on failure.
	DocumentID uuid.UUID

	// ChunkCount is the number of chunks produced; zero on failure.
	ChunkCount int
}
