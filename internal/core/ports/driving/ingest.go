package driving

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

// IngestService turns raw uploaded bytes into a persisted document plus its
// ordered chunks.
type IngestService interface {
	// Ingest validates, parses, deduplicates and persists one upload for
	// a tenant. The filename becomes the initial document title.
	//
	// On failure the returned error matches exactly one of the domain
	// error classes (ErrValidation, ErrParse, ErrPersistence, ErrStorage)
	// and no partial state is left behind.
	Ingest(ctx context.Context, organizationID uuid.UUID, content []byte, filename string) (*domain.IngestResult, error)
}
