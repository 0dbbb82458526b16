package driving

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

// OrganizationService manages tenants.
type OrganizationService interface {
	// Create adds a new organization with a validated name.
	Create(ctx context.Context, name string) (*domain.Organization, error)

	// Get retrieves an organization by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	// GetByName retrieves an organization by its exact name.
	GetByName(ctx context.Context, name string) (*domain.Organization, error)

	// List returns all organizations.
	List(ctx context.Context) ([]domain.Organization, error)

	// Delete removes an organization and everything it owns: document and
	// chunk rows cascade in the relational store, blobs are cleaned up
	// explicitly.
	Delete(ctx context.Context, id uuid.UUID) error
}
