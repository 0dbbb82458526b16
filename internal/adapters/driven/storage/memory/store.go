// Package memory provides in-memory implementations of the storage ports.
// They are used as fakes in service tests and as a throwaway backend.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// Ensure Store implements the transaction runner.
var _ driven.TxRunner = (*Store)(nil)

// Store is a unified in-memory storage that provides access to the
// relational store interfaces through wrapper types, mirroring the SQLite
// store's layout. Deleting an organization or document cascades the same
// way the SQLite foreign keys do.
type Store struct {
	mu     sync.RWMutex
	orgs   map[uuid.UUID]domain.Organization
	docs   map[uuid.UUID]domain.Document
	chunks map[uuid.UUID][]domain.Chunk // keyed by document ID

	// txMu serializes transactions so a snapshot captures a consistent
	// state.
	txMu sync.Mutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		orgs:   make(map[uuid.UUID]domain.Organization),
		docs:   make(map[uuid.UUID]domain.Document),
		chunks: make(map[uuid.UUID][]domain.Chunk),
	}
}

// OrganizationStore returns an OrganizationStore backed by this store.
func (s *Store) OrganizationStore() driven.OrganizationStore {
	return &organizationStore{store: s}
}

// DocumentStore returns a DocumentStore backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ChunkStore returns a ChunkStore backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// InTx runs fn with document and chunk stores whose writes are undone when
// fn returns an error. Transactions are serialized; the snapshot-restore
// gives the same all-or-nothing behaviour the SQLite transaction gives.
func (s *Store) InTx(_ context.Context, fn func(docs driven.DocumentStore, chunks driven.ChunkStore) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	docsSnap, chunksSnap := s.snapshot()

	if err := fn(s.DocumentStore(), s.ChunkStore()); err != nil {
		s.restore(docsSnap, chunksSnap)
		return err
	}
	return nil
}

func (s *Store) snapshot() (map[uuid.UUID]domain.Document, map[uuid.UUID][]domain.Chunk) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make(map[uuid.UUID]domain.Document, len(s.docs))
	for id, doc := range s.docs {
		docs[id] = doc
	}
	chunks := make(map[uuid.UUID][]domain.Chunk, len(s.chunks))
	for id, set := range s.chunks {
		cp := make([]domain.Chunk, len(set))
		copy(cp, set)
		chunks[id] = cp
	}
	return docs, chunks
}

func (s *Store) restore(docs map[uuid.UUID]domain.Document, chunks map[uuid.UUID][]domain.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = docs
	s.chunks = chunks
}
