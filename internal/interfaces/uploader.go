package interfaces

import "context"

// Uploader stores image bytes and returns the URL they are served from.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
}
