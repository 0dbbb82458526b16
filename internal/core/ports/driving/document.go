package driving

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

// DocumentService manages ingested documents within an organization.
// All lookups are tenant-scoped: a document ID from another organization
// behaves as if it does not exist.
type DocumentService interface {
	// Get retrieves a document by ID.
	Get(ctx context.Context, organizationID, documentID uuid.UUID) (*domain.Document, error)

	// ListByOrganization returns all documents for a tenant.
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.Document, error)

	// Chunks returns a document's chunks ordered by index.
	Chunks(ctx context.Context, organizationID, documentID uuid.UUID) ([]domain.Chunk, error)

	// Raw returns the original uploaded bytes.
	Raw(ctx context.Context, organizationID, documentID uuid.UUID) ([]byte, error)

	// Delete removes a document, its chunks and its blob.
	Delete(ctx context.Context, organizationID, documentID uuid.UUID) error
}
