package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// blobKey identifies a blob by tenant and document.
type blobKey struct {
	organizationID uuid.UUID
	documentID     uuid.UUID
}

// BlobStore is an in-memory implementation of driven.BlobStore.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[blobKey][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs: make(map[blobKey][]byte),
	}
}

// Save writes the raw bytes for a document.
func (s *BlobStore) Save(_ context.Context, organizationID, documentID uuid.UUID, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(content))
	copy(cp, content)
	s.blobs[blobKey{organizationID, documentID}] = cp
	return nil
}

// Load reads the raw bytes back.
func (s *BlobStore) Load(_ context.Context, organizationID, documentID uuid.UUID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.blobs[blobKey{organizationID, documentID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp, nil
}

// Delete removes the raw bytes. No-op if nothing was saved.
func (s *BlobStore) Delete(_ context.Context, organizationID, documentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, blobKey{organizationID, documentID})
	return nil
}

// DeleteOrganization removes every blob owned by a tenant.
func (s *BlobStore) DeleteOrganization(_ context.Context, organizationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.blobs {
		if key.organizationID == organizationID {
			delete(s.blobs, key)
		}
	}
	return nil
}

// Len reports how many blobs are stored. Test helper.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
