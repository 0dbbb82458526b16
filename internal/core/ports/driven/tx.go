package driven

import "context"

// TxRunner executes fn inside one relational transaction.
//
// The document and chunk stores passed to fn write through that
// transaction: everything fn saves is committed together when fn returns
// nil, and rolled back together when fn returns an error. Blob storage is
// a different resource manager and is never part of the transaction; the
// orchestrator compensates for it explicitly.
type TxRunner interface {
	InTx(ctx context.Context, fn func(docs DocumentStore, chunks ChunkStore) error) error
}
