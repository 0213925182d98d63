package stemstoreentity

import "context"

// FileStore is where archived stems are written to
type FileStore interface {
	WriteFile(ctx context.Context, url string, fileContent []byte) error
}
