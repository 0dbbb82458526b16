// Package sqlite provides a unified SQLite-based implementation of the
// relational driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements multiple
// store interfaces through a single database connection:
//
//   - OrganizationStore: Tenant persistence
//   - DocumentStore: Document metadata and extracted text persistence
//   - ChunkStore: Chunk persistence
//   - TxRunner: Atomic document-plus-chunks writes
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. The (organization_id, document_hash) unique index on documents is
// the authoritative duplicate-upload guard; a violation is reported as
// domain.ErrDocumentExists.
//
// # Data Location
//
// By default, the database is stored at ~/.docbase/data/docbase.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
