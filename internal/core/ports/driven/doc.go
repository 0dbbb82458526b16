// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - OrganizationStore: Tenant persistence
//   - DocumentStore: Document metadata persistence
//   - ChunkStore: Chunk persistence
//   - TxRunner: One relational transaction around document + chunk writes
//   - BlobStore: Raw upload bytes persistence
//   - Parser: PDF text extraction
//   - Chunker: Splits parsed text into overlapping chunks
//   - ConfigStore: Application configuration access
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or parser package
package driven
