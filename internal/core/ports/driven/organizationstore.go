package driven

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

// OrganizationStore persists tenants.
type OrganizationStore interface {
	// Save stores an organization.
	Save(ctx context.Context, org domain.Organization) error

	// Get retrieves an organization by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	// GetByName retrieves an organization by its exact name.
	// Returns domain.ErrNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.Organization, error)

	// List returns all organizations.
	List(ctx context.Context) ([]domain.Organization, error)

	// Delete removes an organization. Document and chunk rows owned by it
	// are removed with it.
	Delete(ctx context.Context, id uuid.UUID) error
}
