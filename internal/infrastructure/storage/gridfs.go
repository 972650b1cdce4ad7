// Package storage implements the object-store port on MongoDB GridFS. Each
// named bucket maps to a GridFS bucket in the same database as the entity
// collections; object paths become GridFS filenames, so "folders" exist
// only as path prefixes.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// keepObject marks a bucket or folder as existing without any real content.
const keepObject = ".keep"

var bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

type GridFSStore struct {
	db *mongo.Database
}

func NewGridFSStore(db *mongo.Database) *GridFSStore {
	return &GridFSStore{db: db}
}

// CreateBucket provisions a new named bucket. GridFS materializes its
// collections lazily, so a zero-byte marker object is written to make the
// bucket observable and duplicate creation detectable.
func (s *GridFSStore) CreateBucket(ctx context.Context, name string) error {
	if !bucketNamePattern.MatchString(name) {
		return domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	existing, err := s.db.ListCollectionNames(ctx, bson.M{"name": name + ".files"})
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if len(existing) > 0 {
		return domain.ErrBucketExists
	}

	return s.Upload(ctx, name, keepObject, nil)
}

// Upload places content at path inside bucket.
func (s *GridFSStore) Upload(ctx context.Context, bucket, path string, content []byte) error {
	if bucket == "" || path == "" {
		return domain.ErrInvalidInput
	}

	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(bucket))
	if err != nil {
		return fmt.Errorf("open bucket %s: %w", bucket, err)
	}

	deadline := time.Now().Add(defaultTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := b.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("bucket deadline: %w", err)
	}

	if _, err := b.UploadFromStream(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, path, err)
	}
	return nil
}
