package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength is the maximum length of an organization name.
const MaxNameLength = 255

// Organization is a tenant. Every document, chunk and deduplication check
// is scoped to exactly one organization.
// Organizations are immutable once created.
type Organization struct {
	// ID is the unique identifier for the organization.
	ID uuid.UUID

	// Name is the human-readable tenant name. Trimmed, non-empty,
	// at most MaxNameLength characters.
	Name string

	// CreatedAt is when the organization was created.
	CreatedAt time.Time
}

// NewOrganization creates a validated Organization with a fresh identity.
// The name is trimmed before validation.
func NewOrganization(name string) (Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Organization{}, fmt.Errorf("%w: organization name is required", ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return Organization{}, fmt.Errorf("%w: organization name exceeds %d characters", ErrInvalidInput, MaxNameLength)
	}

	return Organization{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
