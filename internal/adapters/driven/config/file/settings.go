package file

import (
	"github.com/custodia-labs/docbase/internal/chunker"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// Configuration keys understood by docbase.
const (
	KeyDataDir        = "storage.data_dir"
	KeyChunkSize      = "chunking.size"
	KeyChunkOverlap   = "chunking.overlap"
	KeyChunkStrip     = "chunking.strip"
	KeyMaxUploadBytes = "ingest.max_upload_bytes"
)

// Settings are the typed ingestion settings resolved from a config store.
// Absent chunking keys fall back to the chunker defaults. An absent upload
// limit is left at zero, which the ingest service replaces with its own
// default.
type Settings struct {
	DataDir        string
	ChunkSize      int
	ChunkOverlap   int
	ChunkStrip     bool
	MaxUploadBytes int64
}

// ResolveSettings reads the docbase settings out of a config store,
// applying defaults for keys that are not set.
func ResolveSettings(cfg driven.ConfigStore) Settings {
	s := Settings{
		ChunkSize:    chunker.DefaultSize,
		ChunkOverlap: chunker.DefaultOverlap,
		ChunkStrip:   true,
	}

	s.DataDir = cfg.GetString(KeyDataDir)
	if _, ok := cfg.Get(KeyChunkSize); ok {
		s.ChunkSize = cfg.GetInt(KeyChunkSize)
	}
	if _, ok := cfg.Get(KeyChunkOverlap); ok {
		s.ChunkOverlap = cfg.GetInt(KeyChunkOverlap)
	}
	if _, ok := cfg.Get(KeyChunkStrip); ok {
		s.ChunkStrip = cfg.GetBool(KeyChunkStrip)
	}
	s.MaxUploadBytes = int64(cfg.GetInt(KeyMaxUploadBytes))

	return s
}

// ChunkerOptions translates the settings into chunker options.
func (s Settings) ChunkerOptions() []chunker.Option {
	return []chunker.Option{
		chunker.WithSize(s.ChunkSize),
		chunker.WithOverlap(s.ChunkOverlap),
		chunker.WithStrip(s.ChunkStrip),
	}
}
