// Package blob provides a filesystem implementation of the BlobStore port.
//
// Uploaded files are kept verbatim under <dataDir>/blobs/<orgID>/<docID>.pdf,
// one directory per tenant so an organization's files can be removed in one
// operation. The relational store never sees the raw bytes; this package is
// the only place they live.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// Store is a filesystem-backed blob store.
type Store struct {
	root string
}

var _ driven.BlobStore = (*Store)(nil)

// NewStore creates a blob store rooted at <dataDir>/blobs.
// If dataDir is empty, defaults to ~/.docbase/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docbase", "data")
	}

	root := filepath.Join(dataDir, "blobs")
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}

	return &Store{root: root}, nil
}

// Save writes the original upload bytes for a document. An existing blob
// for the same document is overwritten.
func (s *Store) Save(_ context.Context, orgID, docID uuid.UUID, content []byte) error {
	dir := s.orgDir(orgID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating organization blob directory: %w", err)
	}

	// Write to a temp file first so a crash mid-write never leaves a
	// truncated blob behind the final name.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp blob: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing blob: %w", err)
	}

	if err := os.Rename(tmpName, s.blobPath(orgID, docID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("placing blob: %w", err)
	}
	return nil
}

// Load returns the original upload bytes for a document.
// Returns domain.ErrNotFound if no blob exists.
func (s *Store) Load(_ context.Context, orgID, docID uuid.UUID) ([]byte, error) {
	content, err := os.ReadFile(s.blobPath(orgID, docID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return content, nil
}

// Delete removes a document's blob. Deleting a blob that does not exist is
// a no-op, so compensating cleanup can always run.
func (s *Store) Delete(_ context.Context, orgID, docID uuid.UUID) error {
	if err := os.Remove(s.blobPath(orgID, docID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}

// DeleteOrganization removes every blob owned by a tenant.
func (s *Store) DeleteOrganization(_ context.Context, orgID uuid.UUID) error {
	if err := os.RemoveAll(s.orgDir(orgID)); err != nil {
		return fmt.Errorf("deleting organization blobs: %w", err)
	}
	return nil
}

func (s *Store) orgDir(orgID uuid.UUID) string {
	return filepath.Join(s.root, orgID.String())
}

func (s *Store) blobPath(orgID, docID uuid.UUID) string {
	return filepath.Join(s.orgDir(orgID), docID.String()+".pdf")
}
