package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Chunk is a contiguous slice of a document's parsed text. Chunks for one
// document, ordered by index, cover the whole text with adjacent chunks
// overlapping by a configured amount.
// Chunks are immutable and live exactly as long as their document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID uuid.UUID

	// DocumentID links to the owning Document.
	DocumentID uuid.UUID

	// OrganizationID is denormalized from the document for tenant-scoped
	// queries.
	OrganizationID uuid.UUID

	// Index is the 0-based position within the document, unique per
	// document.
	Index int

	// Content is the text slice [StartChar, EndChar) of the parsed text.
	Content string

	// StartChar is the inclusive offset into the parsed text, counted in
	// characters (Unicode code points), not bytes.
	StartChar int

	// EndChar is the exclusive offset into the parsed text, counted in
	// characters (Unicode code points), not bytes.
	EndChar int

	// TokenCount is the number of tokens in the chunk; zero when not
	// computed.
	TokenCount int

	// CreatedAt is when the chunk was produced.
	CreatedAt time.Time
}

// NewChunk creates a validated Chunk with a fresh identity. The content
// must be the exact text slice the offsets describe, so it is not trimmed.
func NewChunk(documentID uuid.UUID, index int, content string, startChar, endChar int) (Chunk, error) {
	if documentID == uuid.Nil {
		return Chunk{}, fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	if index < 0 {
		return Chunk{}, fmt.Errorf("%w: chunk index cannot be negative", ErrInvalidInput)
	}
	if content == "" {
		return Chunk{}, fmt.Errorf("%w: chunk content is required", ErrInvalidInput)
	}
	if startChar < 0 || startChar >= endChar {
		return Chunk{}, fmt.Errorf("%w: chunk offsets [%d, %d) are invalid", ErrInvalidInput, startChar, endChar)
	}
	if n := utf8.RuneCountInString(content); endChar-startChar != n {
		return Chunk{}, fmt.Errorf("%w: chunk offsets [%d, %d) do not match content length %d", ErrInvalidInput, startChar, endChar, n)
	}

	return Chunk{
		ID:         uuid.New(),
		DocumentID: documentID,
		Index:      index,
		Content:    content,
		StartChar:  startChar,
		EndChar:    endChar,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
