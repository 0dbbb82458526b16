package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// SaveChunks inserts all chunks in one operation.
func (s *chunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	docID := chunks[0].DocumentID
	s.store.chunks[docID] = append(s.store.chunks[docID], chunks...)
	return nil
}

// GetByDocument returns a document's chunks ordered by index.
func (s *chunkStore) GetByDocument(_ context.Context, organizationID, documentID uuid.UUID) ([]domain.Chunk, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	stored, ok := s.store.chunks[documentID]
	if !ok {
		return nil, nil
	}

	var result []domain.Chunk
	for _, chunk := range stored {
		if chunk.OrganizationID == organizationID {
			result = append(result, chunk)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result, nil
}

// DeleteByDocument removes all chunks for a document.
func (s *chunkStore) DeleteByDocument(_ context.Context, organizationID, documentID uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	stored, ok := s.store.chunks[documentID]
	if !ok {
		return nil
	}
	var remaining []domain.Chunk
	for _, chunk := range stored {
		if chunk.OrganizationID != organizationID {
			remaining = append(remaining, chunk)
		}
	}
	if len(remaining) == 0 {
		delete(s.store.chunks, documentID)
	} else {
		s.store.chunks[documentID] = remaining
	}
	return nil
}
