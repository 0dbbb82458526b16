package driven

import (
	"context"

	"github.com/google/uuid"
)

// BlobStore persists the original uploaded bytes, keyed by organization
// and document.
type BlobStore interface {
	// Save writes the raw bytes for a document.
	Save(ctx context.Context, organizationID, documentID uuid.UUID, content []byte) error

	// Load reads the raw bytes back.
	// Returns domain.ErrNotFound if nothing was saved.
	Load(ctx context.Context, organizationID, documentID uuid.UUID) ([]byte, error)

	// Delete removes the raw bytes. Idempotent: deleting a blob that was
	// never saved is a no-op.
	Delete(ctx context.Context, organizationID, documentID uuid.UUID) error

	// DeleteOrganization removes every blob owned by a tenant. Idempotent.
	DeleteOrganization(ctx context.Context, organizationID uuid.UUID) error
}
