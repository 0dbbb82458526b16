package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
	"github.com/custodia-labs/docbase/internal/core/ports/driving"
	"github.com/custodia-labs/docbase/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// pdfSignature is the magic prefix every PDF upload must carry.
var pdfSignature = []byte("%PDF-")

// DefaultMaxUploadSize is the default upload limit in bytes (32 MiB).
const DefaultMaxUploadSize = 32 << 20

// IngestService is the document ingestion orchestrator. It validates,
// parses, deduplicates and persists one upload per call.
//
// One call is one sequential operation; concurrent calls share no mutable
// state. The relational writes (document row + chunk rows) run in a single
// transaction through the TxRunner. The blob store is a separate resource
// manager, so a failure after the blob was written triggers a compensating
// delete instead of a rollback.
type IngestService struct {
	orgs          driven.OrganizationStore
	docs          driven.DocumentStore
	tx            driven.TxRunner
	blobs         driven.BlobStore
	parser        driven.Parser
	chunker       driven.Chunker
	maxUploadSize int64
}

// NewIngestService creates the ingestion orchestrator.
// A maxUploadSize of zero or less falls back to DefaultMaxUploadSize.
func NewIngestService(
	orgs driven.OrganizationStore,
	docs driven.DocumentStore,
	tx driven.TxRunner,
	blobs driven.BlobStore,
	parser driven.Parser,
	chunker driven.Chunker,
	maxUploadSize int64,
) *IngestService {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &IngestService{
		orgs:          orgs,
		docs:          docs,
		tx:            tx,
		blobs:         blobs,
		parser:        parser,
		chunker:       chunker,
		maxUploadSize: maxUploadSize,
	}
}

// Ingest runs the pipeline: tenant check, file type and size checks, parse,
// empty-content check, dedup lookup, then one atomic persistence step.
//
// Steps before persistence fail fast with no side effects. Once anything
// was written, a failure unwinds it: the transaction rolls the rows back
// and the orchestrator deletes the blob it wrote.
func (s *IngestService) Ingest(ctx context.Context, organizationID uuid.UUID, content []byte, filename string) (*domain.IngestResult, error) {
	logger.Section("ingest")

	// 1. Tenant check
	if _, err := s.orgs.Get(ctx, organizationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return failedResult(), domain.ErrOrganizationNotFound
		}
		return failedResult(), fmt.Errorf("%w: looking up organization: %w", domain.ErrPersistence, err)
	}

	// 2. Size and type checks, cheapest first
	if len(content) == 0 {
		return failedResult(), domain.ErrEmptyFile
	}
	if int64(len(content)) > s.maxUploadSize {
		return failedResult(), fmt.Errorf("%w: %d bytes exceeds limit of %d", domain.ErrFileTooLarge, len(content), s.maxUploadSize)
	}
	if !bytes.HasPrefix(content, pdfSignature) {
		return failedResult(), domain.ErrInvalidFileType
	}

	// 3. Parse
	logger.Debug("parsing %d bytes", len(content))
	text, err := s.parser.Parse(ctx, content)
	if err != nil {
		if errors.Is(err, domain.ErrParse) {
			return failedResult(), err
		}
		return failedResult(), fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	if strings.TrimSpace(text) == "" {
		return failedResult(), domain.ErrEmptyContent
	}

	// 4. Dedup lookup. Advisory only: two concurrent ingestions can both
	// pass it, and the store's unique constraint catches the loser at
	// insert time below.
	hash := domain.HashBytes(content)
	if _, err := s.docs.GetByHash(ctx, organizationID, hash); err == nil {
		return failedResult(), domain.ErrDocumentExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return failedResult(), fmt.Errorf("%w: checking for duplicate: %w", domain.ErrPersistence, err)
	}

	// 5. Construct the document
	doc, err := domain.NewDocument(organizationID, documentTitle(filename), domain.SourceTypePDF, text, hash)
	if err != nil {
		return failedResult(), fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	// 6. Persist: document row, blob, chunks. The rows commit or roll back
	// together; the blob is compensated for on failure.
	var (
		blobWritten bool
		chunkCount  int
	)
	err = s.tx.InTx(ctx, func(docs driven.DocumentStore, chunks driven.ChunkStore) error {
		if err := docs.Save(ctx, doc); err != nil {
			return err
		}

		if err := s.blobs.Save(ctx, organizationID, doc.ID, content); err != nil {
			return fmt.Errorf("%w: saving blob: %w", domain.ErrStorage, err)
		}
		blobWritten = true

		logger.Debug("chunking %d bytes of text", len(doc.Content))
		chunkSet, err := s.chunker.Chunk(doc.ID, doc.Content)
		if err != nil {
			return err
		}
		for i := range chunkSet {
			chunkSet[i].OrganizationID = organizationID
		}

		if err := chunks.SaveChunks(ctx, chunkSet); err != nil {
			return err
		}
		chunkCount = len(chunkSet)
		return nil
	})
	if err != nil {
		if blobWritten {
			if cleanupErr := s.blobs.Delete(ctx, organizationID, doc.ID); cleanupErr != nil {
				logger.Warn("compensating blob delete failed for document %s: %v", doc.ID, cleanupErr)
			}
		}
		return failedResult(), classifyPersistErr(err)
	}

	logger.Debug("ingested document %s with %d chunks", doc.ID, chunkCount)
	return &domain.IngestResult{
		Status:     true,
		DocumentID: doc.ID,
		ChunkCount: chunkCount,
	}, nil
}

// failedResult is the zero-progress result returned with every error.
func failedResult() *domain.IngestResult {
	return &domain.IngestResult{}
}

// documentTitle derives the initial title from the upload filename,
// synthesising one when the filename is empty.
func documentTitle(filename string) string {
	if strings.TrimSpace(filename) == "" {
		return "new_document_" + time.Now().UTC().Format("20060102150405")
	}
	return filename
}

// classifyPersistErr maps a failure inside the persistence step onto the
// error taxonomy. A unique-constraint violation on (organization, hash) is
// the dedup race losing, not a server fault.
func classifyPersistErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrDocumentExists):
		return domain.ErrDocumentExists
	case errors.Is(err, domain.ErrStorage),
		errors.Is(err, domain.ErrChunkConfig),
		errors.Is(err, domain.ErrPersistence):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
}
