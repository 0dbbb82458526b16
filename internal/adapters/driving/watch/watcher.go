// Package watch implements a drop-folder watcher that drives the ingestion
// pipeline. PDF files placed into the watched directory are picked up and
// ingested for one organization.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driving"
	"github.com/custodia-labs/docbase/internal/logger"
)

// DefaultSettleDelay is how long a file must stay quiet after its last
// write event before it is ingested. Copies into the drop folder arrive as
// a burst of write events; ingesting on the first one would read a
// truncated file.
const DefaultSettleDelay = 500 * time.Millisecond

// ResultFunc is called after each ingestion attempt.
type ResultFunc func(path string, result *domain.IngestResult, err error)

// Watcher watches one directory and ingests PDF files dropped into it.
type Watcher struct {
	ingest   driving.IngestService
	orgID    uuid.UUID
	dir      string
	settle   time.Duration
	onResult ResultFunc

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettleDelay overrides the quiet period before a file is ingested.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) { w.settle = d }
}

// WithResultFunc sets a callback invoked after each ingestion attempt.
func WithResultFunc(fn ResultFunc) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// New creates a watcher for dir that ingests into the given organization.
func New(ingest driving.IngestService, orgID uuid.UUID, dir string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory: %s is not a directory", dir)
	}

	w := &Watcher{
		ingest:  ingest,
		orgID:   orgID,
		dir:     dir,
		settle:  DefaultSettleDelay,
		pending: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches the directory until ctx is cancelled. Files already present
// in the directory are ingested first. Returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	// Pick up files that were dropped before the watch started
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading watch directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isPDFName(entry.Name()) {
			continue
		}
		w.ingestFile(ctx, filepath.Join(w.dir, entry.Name()))
	}

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleEvent schedules ingestion for relevant file events. Each new event
// for a file resets its settle timer, so ingestion only happens once the
// writer has gone quiet.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	name := filepath.Base(event.Name)
	if !isPDFName(name) {
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}

	path := event.Name
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingestFile(ctx, path)
	})
}

// ingestFile reads one file and runs it through the pipeline. Failures are
// reported through the result callback and never stop the watch.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		w.report(path, nil, fmt.Errorf("reading %s: %w", path, err))
		return
	}

	result, err := w.ingest.Ingest(ctx, w.orgID, content, filepath.Base(path))
	if err != nil && errors.Is(err, domain.ErrDocumentExists) {
		// Re-dropped files are expected in a drop folder
		logger.Debug("skipping %s: already ingested", path)
	}
	w.report(path, result, err)
}

func (w *Watcher) report(path string, result *domain.IngestResult, err error) {
	if w.onResult != nil {
		w.onResult(path, result, err)
	}
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// isPDFName reports whether a file name looks like a PDF drop. Hidden
// files and editor temp files are skipped.
func isPDFName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
