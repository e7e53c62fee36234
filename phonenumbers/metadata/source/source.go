// Package source provides the byte providers a metadata store can be fed
// from. The store itself only ever sees raw document bytes.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Source yields the raw bytes of a metadata document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Bytes wraps an already-loaded document.
type Bytes []byte

// Fetch returns the wrapped bytes.
func (b Bytes) Fetch(context.Context) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("metadata source: empty document")
	}
	return b, nil
}

// File reads the document from the local filesystem on every fetch, so a
// reload picks up an updated file.
type File string

// Fetch reads the file.
func (f File) Fetch(context.Context) ([]byte, error) {
	raw, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("metadata source: %w", err)
	}
	return raw, nil
}

// ObjectStorage fetches the document from an S3-compatible bucket, which is
// how updated metadata snapshots are distributed to running services.
type ObjectStorage struct {
	client *minio.Client
	bucket string
	object string
}

// ObjectStorageConfig carries the connection settings for ObjectStorage.
type ObjectStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Object    string
}

// NewObjectStorage creates an object-storage source.
func NewObjectStorage(cfg ObjectStorageConfig) (*ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("metadata source: %w", err)
	}
	return &ObjectStorage{client: client, bucket: cfg.Bucket, object: cfg.Object}, nil
}

// Fetch downloads the document object.
func (s *ObjectStorage) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("metadata source: %w", err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("metadata source: %w", err)
	}
	return raw, nil
}
