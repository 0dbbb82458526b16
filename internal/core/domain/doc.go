// Package domain defines the core business entities for Docbase.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Organization: A tenant; the isolation boundary for all data
//   - Document: One ingested file's parsed record
//   - Chunk: A bounded, indexed substring of a document's parsed text
//   - IngestResult: The outcome of one ingestion
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library and github.com/google/uuid
//   - Cannot Import: Any internal/ package, any other external dependency
package domain
