package driven

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

// DocumentStore persists document metadata.
//
// The store enforces uniqueness of (organization, hash): Save returns
// domain.ErrDocumentExists when byte-identical content was already ingested
// for the tenant. That constraint, not the GetByHash lookup, is the
// authoritative duplicate guard under concurrent ingestion.
type DocumentStore interface {
	// Save inserts a document.
	Save(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by ID, scoped to an organization.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.Document, error)

	// GetByHash retrieves a document by its deduplication hash, scoped to
	// an organization. Returns domain.ErrNotFound if it does not exist.
	GetByHash(ctx context.Context, organizationID uuid.UUID, hash string) (*domain.Document, error)

	// ListByOrganization returns all documents for a tenant.
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.Document, error)

	// Delete removes a document, scoped to an organization. Chunk rows
	// owned by the document are removed with it.
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}

// ChunkStore persists chunks.
type ChunkStore interface {
	// SaveChunks inserts all chunks in one operation.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetByDocument returns a document's chunks ordered by index.
	GetByDocument(ctx context.Context, organizationID, documentID uuid.UUID) ([]domain.Chunk, error)

	// DeleteByDocument removes all chunks for a document.
	DeleteByDocument(ctx context.Context, organizationID, documentID uuid.UUID) error
}
