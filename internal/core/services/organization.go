package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
	"github.com/custodia-labs/docbase/internal/core/ports/driving"
)

// Ensure OrganizationService implements the interface.
var _ driving.OrganizationService = (*OrganizationService)(nil)

// OrganizationService manages tenants.
type OrganizationService struct {
	orgs  driven.OrganizationStore
	blobs driven.BlobStore
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(orgs driven.OrganizationStore, blobs driven.BlobStore) *OrganizationService {
	return &OrganizationService{
		orgs:  orgs,
		blobs: blobs,
	}
}

// Create adds a new organization with a validated name.
func (s *OrganizationService) Create(ctx context.Context, name string) (*domain.Organization, error) {
	org, err := domain.NewOrganization(name)
	if err != nil {
		return nil, err
	}

	if err := s.orgs.Save(ctx, org); err != nil {
		return nil, fmt.Errorf("saving organization: %w", err)
	}
	return &org, nil
}

// Get retrieves an organization by ID.
func (s *OrganizationService) Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return s.orgs.Get(ctx, id)
}

// GetByName retrieves an organization by its exact name.
func (s *OrganizationService) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	return s.orgs.GetByName(ctx, name)
}

// List returns all organizations.
func (s *OrganizationService) List(ctx context.Context) ([]domain.Organization, error) {
	return s.orgs.List(ctx)
}

// Delete removes an organization and everything it owns. Document and
// chunk rows cascade inside the relational store; blobs live elsewhere and
// are removed explicitly first, so a blob cleanup failure leaves the
// tenant intact rather than orphaning its files.
func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orgs.Get(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.DeleteOrganization(ctx, id); err != nil {
		return fmt.Errorf("%w: deleting organization blobs: %w", domain.ErrStorage, err)
	}

	if err := s.orgs.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	return nil
}
