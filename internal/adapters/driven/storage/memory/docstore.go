package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save inserts a document, enforcing the unique (organization, hash)
// constraint the way the SQLite schema does.
func (s *documentStore) Save(_ context.Context, doc domain.Document) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, existing := range s.store.docs {
		if existing.OrganizationID == doc.OrganizationID && existing.Hash == doc.Hash {
			return domain.ErrDocumentExists
		}
	}

	s.store.docs[doc.ID] = doc
	return nil
}

// Get retrieves a document by ID, scoped to an organization.
func (s *documentStore) Get(_ context.Context, organizationID, id uuid.UUID) (*domain.Document, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	doc, ok := s.store.docs[id]
	if !ok || doc.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByHash retrieves a document by its deduplication hash.
func (s *documentStore) GetByHash(_ context.Context, organizationID uuid.UUID, hash string) (*domain.Document, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for id := range s.store.docs {
		doc := s.store.docs[id]
		if doc.OrganizationID == organizationID && doc.Hash == hash {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByOrganization returns all documents for a tenant.
func (s *documentStore) ListByOrganization(_ context.Context, organizationID uuid.UUID) ([]domain.Document, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	var result []domain.Document
	for id := range s.store.docs {
		doc := s.store.docs[id]
		if doc.OrganizationID == organizationID {
			result = append(result, doc)
		}
	}
	return result, nil
}

// Delete removes a document and cascades to its chunks.
func (s *documentStore) Delete(_ context.Context, organizationID, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	doc, ok := s.store.docs[id]
	if !ok || doc.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	delete(s.store.docs, id)
	delete(s.store.chunks, id)
	return nil
}
