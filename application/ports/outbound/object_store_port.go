package outbound

import "context"

// ObjectStorePort addresses blobs by scheme://bucket/key locations.
// Malformed locations fail with domain.ErrInvalidLocation.
type ObjectStorePort interface {
	Get(ctx context.Context, location string) ([]byte, error)
	Put(ctx context.Context, location string, body []byte, contentType string) (string, error)
	// Head returns the object size, or domain.ErrNotFound.
	Head(ctx context.Context, location string) (int64, error)
	Download(ctx context.Context, location string, localPath string) error
	Upload(ctx context.Context, localPath string, location string, contentType string) (string, error)
}
