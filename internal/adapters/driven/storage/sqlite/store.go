package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docbase/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all relational store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.TxRunner = (*Store)(nil)

// querier is the subset of *sql.DB and *sql.Tx the wrapper stores need,
// so the same store code runs inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docbase/data/docbase.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docbase", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docbase.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys so document and chunk rows cascade with their owner
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// OrganizationStore returns an OrganizationStore interface backed by this store.
func (s *Store) OrganizationStore() driven.OrganizationStore {
	return &organizationStore{q: s.db}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{q: s.db}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{q: s.db}
}

// InTx runs fn inside one database transaction. The stores handed to fn
// write through that transaction, so the document row and its chunk rows
// commit or roll back together.
func (s *Store) InTx(ctx context.Context, fn func(docs driven.DocumentStore, chunks driven.ChunkStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&documentStore{q: tx}, &chunkStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Organization Store ====================

// organizationStore implements driven.OrganizationStore.
type organizationStore struct {
	q querier
}

var _ driven.OrganizationStore = (*organizationStore)(nil)

// Save stores an organization.
func (s *organizationStore) Save(ctx context.Context, org domain.Organization) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO organizations (id, name, created_at)
		VALUES (?, ?, ?)
	`, org.ID.String(), org.Name, org.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving organization: %w", err)
	}
	return nil
}

// Get retrieves an organization by ID.
func (s *organizationStore) Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM organizations WHERE id = ?
	`, id.String())

	return scanOrganization(row)
}

// GetByName retrieves an organization by its exact name.
func (s *organizationStore) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM organizations WHERE name = ?
		ORDER BY created_at LIMIT 1
	`, name)

	return scanOrganization(row)
}

// List returns all organizations.
func (s *organizationStore) List(ctx context.Context) ([]domain.Organization, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM organizations ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying organizations: %w", err)
	}
	defer rows.Close()

	var orgs []domain.Organization //nolint:prealloc // size unknown from query
	for rows.Next() {
		var org domain.Organization
		var id string
		if err := rows.Scan(&id, &org.Name, &org.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning organization: %w", err)
		}
		org.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing organization id: %w", err)
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating organizations: %w", err)
	}

	return orgs, nil
}

// Delete removes an organization. Document and chunk rows cascade through
// foreign keys.
func (s *organizationStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM organizations WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanOrganization scans a single organization row.
func scanOrganization(row *sql.Row) (*domain.Organization, error) {
	var org domain.Organization
	var id string
	if err := row.Scan(&id, &org.Name, &org.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning organization: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing organization id: %w", err)
	}
	org.ID = parsed

	return &org, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	q querier
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save inserts a document. A violation of the (organization_id,
// document_hash) unique index is reported as domain.ErrDocumentExists.
func (s *documentStore) Save(ctx context.Context, doc domain.Document) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO documents (id, organization_id, title, source_type, content, document_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID.String(), doc.OrganizationID.String(), doc.Title, doc.SourceType,
		doc.Content, doc.Hash, doc.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "documents.organization_id") {
			return domain.ErrDocumentExists
		}
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID, scoped to an organization.
func (s *documentStore) Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.Document, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, organization_id, title, source_type, content, document_hash, created_at
		FROM documents WHERE organization_id = ? AND id = ?
	`, organizationID.String(), id.String())

	return scanDocument(row)
}

// GetByHash retrieves a document by its deduplication hash, scoped to an
// organization.
func (s *documentStore) GetByHash(ctx context.Context, organizationID uuid.UUID, hash string) (*domain.Document, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, organization_id, title, source_type, content, document_hash, created_at
		FROM documents WHERE organization_id = ? AND document_hash = ?
	`, organizationID.String(), hash)

	return scanDocument(row)
}

// ListByOrganization returns all documents for a tenant.
func (s *documentStore) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.Document, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, organization_id, title, source_type, content, document_hash, created_at
		FROM documents WHERE organization_id = ?
		ORDER BY created_at
	`, organizationID.String())
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Delete removes a document, scoped to an organization. Chunk rows cascade
// through the foreign key.
func (s *documentStore) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx,
		"DELETE FROM documents WHERE organization_id = ? AND id = ?",
		organizationID.String(), id.String())
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var id, orgID string

	if err := row.Scan(&id, &orgID, &doc.Title, &doc.SourceType,
		&doc.Content, &doc.Hash, &doc.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return parseDocumentIDs(&doc, id, orgID)
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var id, orgID string

	if err := rows.Scan(&id, &orgID, &doc.Title, &doc.SourceType,
		&doc.Content, &doc.Hash, &doc.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return parseDocumentIDs(&doc, id, orgID)
}

// parseDocumentIDs fills in the UUID fields from their text columns.
func parseDocumentIDs(doc *domain.Document, id, orgID string) (*domain.Document, error) {
	var err error
	doc.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing document id: %w", err)
	}
	doc.OrganizationID, err = uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("parsing organization id: %w", err)
	}
	return doc, nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	q querier
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// SaveChunks inserts all chunks in one operation.
func (s *chunkStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO chunks (id, document_id, organization_id, chunk_index, content, start_char, end_char, token_count, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID.String(), chunk.DocumentID.String(), chunk.OrganizationID.String(),
			chunk.Index, chunk.Content, chunk.StartChar, chunk.EndChar,
			chunk.TokenCount, chunk.CreatedAt)
		if err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunk.Index, err)
		}
	}
	return nil
}

// GetByDocument returns a document's chunks ordered by index.
func (s *chunkStore) GetByDocument(ctx context.Context, organizationID, documentID uuid.UUID) ([]domain.Chunk, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, document_id, organization_id, chunk_index, content, start_char, end_char, token_count, created_at
		FROM chunks WHERE organization_id = ? AND document_id = ?
		ORDER BY chunk_index
	`, organizationID.String(), documentID.String())
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var id, docID, orgID string
		if err := rows.Scan(&id, &docID, &orgID, &chunk.Index, &chunk.Content,
			&chunk.StartChar, &chunk.EndChar, &chunk.TokenCount, &chunk.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		chunk.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing chunk id: %w", err)
		}
		chunk.DocumentID, err = uuid.Parse(docID)
		if err != nil {
			return nil, fmt.Errorf("parsing document id: %w", err)
		}
		chunk.OrganizationID, err = uuid.Parse(orgID)
		if err != nil {
			return nil, fmt.Errorf("parsing organization id: %w", err)
		}

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// DeleteByDocument removes all chunks for a document.
func (s *chunkStore) DeleteByDocument(ctx context.Context, organizationID, documentID uuid.UUID) error {
	_, err := s.q.ExecContext(ctx,
		"DELETE FROM chunks WHERE organization_id = ? AND document_id = ?",
		organizationID.String(), documentID.String())
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// isUniqueViolation reports whether err is a UNIQUE constraint violation on
// the index whose first column matches target. modernc.org/sqlite surfaces
// constraint failures as text, e.g.
// "constraint failed: UNIQUE constraint failed: documents.organization_id, documents.document_hash".
func isUniqueViolation(err error, target string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, target)
}
