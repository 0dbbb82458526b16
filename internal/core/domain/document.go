package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxTitleLength is the maximum length of a document title.
	MaxTitleLength = 255

	// MaxSourceTypeLength is the maximum length of a document source type.
	MaxSourceTypeLength = 32

	// SourceTypePDF is the only source type currently ingested.
	SourceTypePDF = "pdf"
)

// Document is one ingested file's parsed record. It belongs to exactly one
// organization and exclusively owns its chunks.
// Documents are immutable once created; a correction means ingesting again.
type Document struct {
	// ID is the unique identifier for the document.
	ID uuid.UUID

	// OrganizationID is the owning tenant.
	OrganizationID uuid.UUID

	// Title is the human-readable title, initially the upload filename.
	// Trimmed, non-empty, at most MaxTitleLength characters.
	Title string

	// SourceType identifies the original file format (e.g. "pdf").
	SourceType string

	// Content is the full parsed text.
	Content string

	// Hash is the hex SHA-256 of the original raw bytes, not the parsed
	// text. (OrganizationID, Hash) is unique: re-ingesting byte-identical
	// content for the same tenant is rejected.
	Hash string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// NewDocument creates a validated Document with a fresh identity.
// The title is trimmed before validation; content is stored as parsed.
func NewDocument(organizationID uuid.UUID, title, sourceType, content, hash string) (Document, error) {
	if organizationID == uuid.Nil {
		return Document{}, fmt.Errorf("%w: organization id is required", ErrInvalidInput)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Document{}, fmt.Errorf("%w: document title is required", ErrInvalidInput)
	}
	if len(title) > MaxTitleLength {
		return Document{}, fmt.Errorf("%w: document title exceeds %d characters", ErrInvalidInput, MaxTitleLength)
	}

	if sourceType == "" {
		return Document{}, fmt.Errorf("%w: source type is required", ErrInvalidInput)
	}
	if len(sourceType) > MaxSourceTypeLength {
		return Document{}, fmt.Errorf("%w: source type exceeds %d characters", ErrInvalidInput, MaxSourceTypeLength)
	}

	if strings.TrimSpace(content) == "" {
		return Document{}, fmt.Errorf("%w: document content is required", ErrInvalidInput)
	}

	if hash == "" {
		return Document{}, fmt.Errorf("%w: document hash is required", ErrInvalidInput)
	}

	return Document{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Title:          title,
		SourceType:     sourceType,
		Content:        content,
		Hash:           hash,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// HashBytes returns the hex SHA-256 digest of raw file bytes.
// This is the deduplication key within an organization.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
