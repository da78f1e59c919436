package output

import (
	"context"
)

// BackupGateway moves exported snapshot text to and from an external medium
// (clipboard, file, object storage)
type BackupGateway interface {
	// Name identifies the medium in messages
	Name() string

	// Export stores data and returns where it went
	Export(ctx context.Context, data []byte) (string, error)

	// Import fetches backup text. ref selects a specific backup; an empty
	// ref means the most recent one.
	Import(ctx context.Context, ref string) ([]byte, error)
}
