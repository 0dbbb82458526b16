package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
	"github.com/custodia-labs/docbase/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages ingested documents within an organization.
type DocumentService struct {
	docs   driven.DocumentStore
	chunks driven.ChunkStore
	blobs  driven.BlobStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docs driven.DocumentStore, chunks driven.ChunkStore, blobs driven.BlobStore) *DocumentService {
	return &DocumentService{
		docs:   docs,
		chunks: chunks,
		blobs:  blobs,
	}
}

// Get retrieves a document by ID, scoped to an organization.
func (s *DocumentService) Get(ctx context.Context, organizationID, documentID uuid.UUID) (*domain.Document, error) {
	return s.docs.Get(ctx, organizationID, documentID)
}

// ListByOrganization returns all documents for a tenant.
func (s *DocumentService) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.Document, error) {
	return s.docs.ListByOrganization(ctx, organizationID)
}

// Chunks returns a document's chunks ordered by index.
func (s *DocumentService) Chunks(ctx context.Context, organizationID, documentID uuid.UUID) ([]domain.Chunk, error) {
	// Verify the document exists within the tenant first
	if _, err := s.docs.Get(ctx, organizationID, documentID); err != nil {
		return nil, err
	}
	return s.chunks.GetByDocument(ctx, organizationID, documentID)
}

// Raw returns the original uploaded bytes.
func (s *DocumentService) Raw(ctx context.Context, organizationID, documentID uuid.UUID) ([]byte, error) {
	if _, err := s.docs.Get(ctx, organizationID, documentID); err != nil {
		return nil, err
	}
	return s.blobs.Load(ctx, organizationID, documentID)
}

// Delete removes a document, its chunks and its blob. Chunk rows cascade
// with the document row; the blob delete is idempotent, so deleting a
// document whose blob is already gone still succeeds.
func (s *DocumentService) Delete(ctx context.Context, organizationID, documentID uuid.UUID) error {
	if _, err := s.docs.Get(ctx, organizationID, documentID); err != nil {
		return err
	}

	if err := s.docs.Delete(ctx, organizationID, documentID); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if err := s.blobs.Delete(ctx, organizationID, documentID); err != nil {
		return fmt.Errorf("%w: deleting blob: %w", domain.ErrStorage, err)
	}
	return nil
}
