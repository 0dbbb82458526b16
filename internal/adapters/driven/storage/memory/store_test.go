package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

func newTestOrg(t *testing.T, name string) domain.Organization {
	t.Helper()
	org, err := domain.NewOrganization(name)
	require.NoError(t, err)
	return org
}

func newTestDoc(t *testing.T, orgID uuid.UUID, title, content string) domain.Document {
	t.Helper()
	doc, err := domain.NewDocument(orgID, title, domain.SourceTypePDF, content, domain.HashBytes([]byte(content)))
	require.NoError(t, err)
	return doc
}

func newTestChunks(t *testing.T, doc domain.Document, n int) []domain.Chunk {
	t.Helper()
	chunks := make([]domain.Chunk, 0, n)
	for i := 0; i < n; i++ {
		chunk, err := domain.NewChunk(doc.ID, i, "chunk content", i*10, i*10+13)
		require.NoError(t, err)
		chunk.OrganizationID = doc.OrganizationID
		chunks = append(chunks, chunk)
	}
	return chunks
}

func TestNewStore(t *testing.T) {
	store := NewStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.OrganizationStore())
	assert.NotNil(t, store.DocumentStore())
	assert.NotNil(t, store.ChunkStore())
}

func TestOrganizationStore_SaveAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	orgs := store.OrganizationStore()

	org := newTestOrg(t, "Acme Corp")
	require.NoError(t, orgs.Save(ctx, org))

	saved, err := orgs.Get(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, org.ID, saved.ID)
	assert.Equal(t, "Acme Corp", saved.Name)

	byName, err := orgs.GetByName(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, org.ID, byName.ID)
}

func TestOrganizationStore_GetMissing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.OrganizationStore().Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.OrganizationStore().GetByName(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrganizationStore_List(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	orgs := store.OrganizationStore()

	require.NoError(t, orgs.Save(ctx, newTestOrg(t, "One")))
	require.NoError(t, orgs.Save(ctx, newTestOrg(t, "Two")))

	all, err := orgs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrganizationStore_DeleteCascades(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	require.NoError(t, store.OrganizationStore().Save(ctx, org))

	doc := newTestDoc(t, org.ID, "report.pdf", "some parsed text")
	require.NoError(t, store.DocumentStore().Save(ctx, doc))
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, newTestChunks(t, doc, 3)))

	require.NoError(t, store.OrganizationStore().Delete(ctx, org.ID))

	_, err := store.OrganizationStore().Get(ctx, org.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.DocumentStore().Get(ctx, org.ID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.ChunkStore().GetByDocument(ctx, org.ID, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	doc := newTestDoc(t, org.ID, "report.pdf", "some parsed text")
	require.NoError(t, store.DocumentStore().Save(ctx, doc))

	saved, err := store.DocumentStore().Get(ctx, org.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, saved.ID)
	assert.Equal(t, doc.Hash, saved.Hash)

	byHash, err := store.DocumentStore().GetByHash(ctx, org.ID, doc.Hash)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, byHash.ID)
}

func TestDocumentStore_TenantScoping(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	other := newTestOrg(t, "Other Corp")
	doc := newTestDoc(t, org.ID, "report.pdf", "some parsed text")
	require.NoError(t, store.DocumentStore().Save(ctx, doc))

	// A document ID from another organization behaves as missing
	_, err := store.DocumentStore().Get(ctx, other.ID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.DocumentStore().GetByHash(ctx, other.ID, doc.Hash)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = store.DocumentStore().Delete(ctx, other.ID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_UniqueHashPerOrganization(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	doc := newTestDoc(t, org.ID, "report.pdf", "identical bytes")
	require.NoError(t, store.DocumentStore().Save(ctx, doc))

	// Same content, same organization: rejected regardless of title
	dup := newTestDoc(t, org.ID, "renamed.pdf", "identical bytes")
	err := store.DocumentStore().Save(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentExists)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Same content, different organization: fine
	otherOrg := newTestOrg(t, "Other Corp")
	otherDoc := newTestDoc(t, otherOrg.ID, "report.pdf", "identical bytes")
	assert.NoError(t, store.DocumentStore().Save(ctx, otherDoc))
}

func TestDocumentStore_ListByOrganization(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	other := newTestOrg(t, "Other Corp")
	require.NoError(t, store.DocumentStore().Save(ctx, newTestDoc(t, org.ID, "a.pdf", "text a")))
	require.NoError(t, store.DocumentStore().Save(ctx, newTestDoc(t, org.ID, "b.pdf", "text b")))
	require.NoError(t, store.DocumentStore().Save(ctx, newTestDoc(t, other.ID, "c.pdf", "text c")))

	docs, err := store.DocumentStore().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestChunkStore_OrderedByIndex(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	doc := newTestDoc(t, org.ID, "report.pdf", "some parsed text")

	chunks := newTestChunks(t, doc, 5)
	// Insert out of order
	shuffled := []domain.Chunk{chunks[3], chunks[0], chunks[4], chunks[2], chunks[1]}
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, shuffled))

	got, err := store.ChunkStore().GetByDocument(ctx, org.ID, doc.ID)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, chunk := range got {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestChunkStore_DeleteByDocument(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	doc := newTestDoc(t, org.ID, "report.pdf", "some parsed text")
	require.NoError(t, store.ChunkStore().SaveChunks(ctx, newTestChunks(t, doc, 3)))

	require.NoError(t, store.ChunkStore().DeleteByDocument(ctx, org.ID, doc.ID))

	got, err := store.ChunkStore().GetByDocument(ctx, org.ID, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_InTx_CommitsOnSuccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	doc := newTestDoc(t, org.ID, "report.pdf", "some parsed text")

	err := store.InTx(ctx, func(docs driven.DocumentStore, chunks driven.ChunkStore) error {
		if err := docs.Save(ctx, doc); err != nil {
			return err
		}
		return chunks.SaveChunks(ctx, newTestChunks(t, doc, 2))
	})
	require.NoError(t, err)

	saved, err := store.DocumentStore().Get(ctx, org.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, saved.ID)

	got, err := store.ChunkStore().GetByDocument(ctx, org.ID, doc.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_InTx_RollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	org := newTestOrg(t, "Acme Corp")
	doc := newTestDoc(t, org.ID, "report.pdf", "some parsed text")
	boom := errors.New("mid-transaction failure")

	err := store.InTx(ctx, func(docs driven.DocumentStore, chunks driven.ChunkStore) error {
		if err := docs.Save(ctx, doc); err != nil {
			return err
		}
		if err := chunks.SaveChunks(ctx, newTestChunks(t, doc, 2)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Neither the document row nor the chunks survive
	_, err = store.DocumentStore().Get(ctx, org.ID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.ChunkStore().GetByDocument(ctx, org.ID, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
