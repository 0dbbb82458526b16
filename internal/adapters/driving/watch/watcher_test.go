package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

// recordingIngest captures ingestion calls for assertions.
type recordingIngest struct {
	mu    sync.Mutex
	calls []ingestCall
	err   error
}

type ingestCall struct {
	orgID    uuid.UUID
	content  []byte
	filename string
}

func (r *recordingIngest) Ingest(_ context.Context, orgID uuid.UUID, content []byte, filename string) (*domain.IngestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ingestCall{orgID: orgID, content: content, filename: filename})
	if r.err != nil {
		return &domain.IngestResult{}, r.err
	}
	return &domain.IngestResult{Status: true, DocumentID: uuid.New(), ChunkCount: 1}, nil
}

func (r *recordingIngest) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recordingIngest) call(i int) ingestCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[i]
}

func TestNew_RequiresDirectory(t *testing.T) {
	ingest := &recordingIngest{}

	_, err := New(ingest, uuid.New(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))
	_, err = New(ingest, uuid.New(), file)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestWatcher_IngestsDroppedFile(t *testing.T) {
	dir := t.TempDir()
	ingest := &recordingIngest{}
	orgID := uuid.New()

	results := make(chan string, 10)
	watcher, err := New(ingest, orgID, dir,
		WithSettleDelay(20*time.Millisecond),
		WithResultFunc(func(path string, _ *domain.IngestResult, _ error) {
			results <- path
		}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watch a moment to attach before dropping the file
	time.Sleep(50 * time.Millisecond)
	dropped := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(dropped, []byte("%PDF-1.7 bytes"), 0600))

	select {
	case path := <-results:
		assert.Equal(t, dropped, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ingestion")
	}

	require.Equal(t, 1, ingest.callCount())
	call := ingest.call(0)
	assert.Equal(t, orgID, call.orgID)
	assert.Equal(t, []byte("%PDF-1.7 bytes"), call.content)
	assert.Equal(t, "report.pdf", call.filename)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher shutdown")
	}
}

func TestWatcher_IngestsPreexistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.pdf"), []byte("%PDF-1.7"), 0600))
	// Non-PDF and hidden files are left alone
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.pdf"), []byte("%PDF-1.7"), 0600))

	ingest := &recordingIngest{}
	results := make(chan string, 10)
	watcher, err := New(ingest, uuid.New(), dir,
		WithSettleDelay(20*time.Millisecond),
		WithResultFunc(func(path string, _ *domain.IngestResult, _ error) {
			results <- path
		}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	select {
	case path := <-results:
		assert.Equal(t, "existing.pdf", filepath.Base(path))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ingestion")
	}

	cancel()
	<-done
	assert.Equal(t, 1, ingest.callCount())
}

func TestWatcher_FailuresDoNotStopTheWatch(t *testing.T) {
	dir := t.TempDir()
	ingest := &recordingIngest{err: domain.ErrDocumentExists}

	results := make(chan error, 10)
	watcher, err := New(ingest, uuid.New(), dir,
		WithSettleDelay(20*time.Millisecond),
		WithResultFunc(func(_ string, _ *domain.IngestResult, err error) {
			results <- err
		}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("%PDF-"), 0600))

	select {
	case err := <-results:
		assert.ErrorIs(t, err, domain.ErrDocumentExists)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first result")
	}

	// The watcher keeps running and picks up the next drop
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("%PDF-"), 0600))
	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for second result")
	}

	cancel()
	<-done
}

func TestIsPDFName(t *testing.T) {
	assert.True(t, isPDFName("report.pdf"))
	assert.True(t, isPDFName("REPORT.PDF"))
	assert.False(t, isPDFName("report.txt"))
	assert.False(t, isPDFName(".hidden.pdf"))
	assert.False(t, isPDFName("report"))
}
