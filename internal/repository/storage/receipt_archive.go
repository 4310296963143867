// Package storage holds blob storage backends for the receipt archive.
// Archiving is optional: when no backend is configured, cleared
// receipts are simply discarded.
package storage

import "context"

// ReceiptArchive defines the interface for archiving receipt blobs
// before they are wiped from the database.
type ReceiptArchive interface {
	// Archive stores one receipt payload under the given object path.
	Archive(ctx context.Context, objectPath string, payload []byte, contentType string) error
}
