package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

func TestBlobStore_SaveAndLoad(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()
	orgID, docID := uuid.New(), uuid.New()

	content := []byte("%PDF-1.7 raw bytes")
	require.NoError(t, store.Save(ctx, orgID, docID, content))

	loaded, err := store.Load(ctx, orgID, docID)
	require.NoError(t, err)
	assert.Equal(t, content, loaded)
}

func TestBlobStore_LoadMissing(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()

	_, err := store.Load(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlobStore_SaveCopiesContent(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()
	orgID, docID := uuid.New(), uuid.New()

	content := []byte("original")
	require.NoError(t, store.Save(ctx, orgID, docID, content))
	content[0] = 'X'

	loaded, err := store.Load(ctx, orgID, docID)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), loaded)
}

func TestBlobStore_DeleteIdempotent(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()
	orgID, docID := uuid.New(), uuid.New()

	// Deleting a blob that was never saved is a no-op
	assert.NoError(t, store.Delete(ctx, orgID, docID))

	require.NoError(t, store.Save(ctx, orgID, docID, []byte("bytes")))
	assert.NoError(t, store.Delete(ctx, orgID, docID))
	assert.NoError(t, store.Delete(ctx, orgID, docID))

	_, err := store.Load(ctx, orgID, docID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlobStore_DeleteOrganization(t *testing.T) {
	store := NewBlobStore()
	ctx := context.Background()
	orgID, otherOrgID := uuid.New(), uuid.New()

	require.NoError(t, store.Save(ctx, orgID, uuid.New(), []byte("a")))
	require.NoError(t, store.Save(ctx, orgID, uuid.New(), []byte("b")))
	keptDoc := uuid.New()
	require.NoError(t, store.Save(ctx, otherOrgID, keptDoc, []byte("c")))

	require.NoError(t, store.DeleteOrganization(ctx, orgID))
	assert.Equal(t, 1, store.Len())

	kept, err := store.Load(ctx, otherOrgID, keptDoc)
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), kept)
}
