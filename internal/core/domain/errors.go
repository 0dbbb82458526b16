package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every ingestion failure belongs to exactly one class so
// that callers can map client faults and server faults without inspecting
// error strings.
var (
	// ErrValidation covers client-fault input failures: unknown tenant,
	// wrong file type, oversized or empty input, empty parsed content,
	// duplicate document.
	ErrValidation = errors.New("validation error")

	// ErrParse indicates the extraction engine rejected the bytes.
	ErrParse = errors.New("parse error")

	// ErrPersistence indicates a relational insert or transaction failure
	// after parsing succeeded.
	ErrPersistence = errors.New("persistence error")

	// ErrStorage indicates a blob write or delete failure.
	ErrStorage = errors.New("storage error")
)

// Specific validation failures. Each wraps ErrValidation, so errors.Is
// matches at both granularities.
var (
	// ErrOrganizationNotFound indicates the tenant does not exist.
	ErrOrganizationNotFound = fmt.Errorf("%w: organization not found", ErrValidation)

	// ErrInvalidFileType indicates the upload does not carry a PDF signature.
	ErrInvalidFileType = fmt.Errorf("%w: invalid file type", ErrValidation)

	// ErrEmptyFile indicates a zero-length upload.
	ErrEmptyFile = fmt.Errorf("%w: empty file", ErrValidation)

	// ErrFileTooLarge indicates the upload exceeds the configured maximum.
	ErrFileTooLarge = fmt.Errorf("%w: file too large", ErrValidation)

	// ErrEmptyContent indicates the parsed text is empty or whitespace-only.
	ErrEmptyContent = fmt.Errorf("%w: empty content", ErrValidation)

	// ErrDocumentExists indicates byte-identical content was already
	// ingested for this organization.
	ErrDocumentExists = fmt.Errorf("%w: document already exists", ErrValidation)
)

// General domain errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrChunkConfig indicates an invalid chunker configuration
	// (non-positive size, negative overlap, or overlap >= size).
	ErrChunkConfig = errors.New("invalid chunker configuration")
)
