package ports

import "context"

// ObjectStore provides blob storage against named buckets. Upload places
// content at path inside bucket, creating intermediate "folders" implicitly
// (paths are flat keys with '/' separators).
type ObjectStore interface {
	CreateBucket(ctx context.Context, name string) error
	Upload(ctx context.Context, bucket, path string, content []byte) error
}
