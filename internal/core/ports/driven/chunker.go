package driven

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

// Chunker splits parsed text into ordered, overlapping chunks.
//
// Implementations are pure: no I/O, no stored state beyond configuration.
// The produced chunks carry document identity, dense 0-based indices and
// [StartChar, EndChar) offsets into the given text; the orchestrator stamps
// the organization afterwards.
type Chunker interface {
	Chunk(documentID uuid.UUID, text string) ([]domain.Chunk, error)
}
