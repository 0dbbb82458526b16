package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// organizationStore implements driven.OrganizationStore.
type organizationStore struct {
	store *Store
}

var _ driven.OrganizationStore = (*organizationStore)(nil)

// Save stores an organization.
func (s *organizationStore) Save(_ context.Context, org domain.Organization) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.orgs[org.ID] = org
	return nil
}

// Get retrieves an organization by ID.
func (s *organizationStore) Get(_ context.Context, id uuid.UUID) (*domain.Organization, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	org, ok := s.store.orgs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &org, nil
}

// GetByName retrieves an organization by its exact name.
func (s *organizationStore) GetByName(_ context.Context, name string) (*domain.Organization, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for id := range s.store.orgs {
		org := s.store.orgs[id]
		if org.Name == name {
			return &org, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all organizations.
func (s *organizationStore) List(_ context.Context) ([]domain.Organization, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	result := make([]domain.Organization, 0, len(s.store.orgs))
	for id := range s.store.orgs {
		result = append(result, s.store.orgs[id])
	}
	return result, nil
}

// Delete removes an organization and cascades to its documents and chunks.
func (s *organizationStore) Delete(_ context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	delete(s.store.orgs, id)
	for docID, doc := range s.store.docs {
		if doc.OrganizationID == id {
			delete(s.store.docs, docID)
			delete(s.store.chunks, docID)
		}
	}
	return nil
}
