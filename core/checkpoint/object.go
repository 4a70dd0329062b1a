package checkpoint

import (
	"bytes"
	"context"
	"io"
	"path"

	"card-tracker/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectBackend keeps checkpoints as objects in an S3 compatible bucket.
type ObjectBackend struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectBackend returns a backend writing to bucket under prefix.
func NewObjectBackend(client storage.Client, bucket, prefix string) *ObjectBackend {
	return &ObjectBackend{client: client, bucket: bucket, prefix: prefix}
}

func (b *ObjectBackend) objectName(namespace string) string {
	return path.Join(b.prefix, namespace+".json")
}

func (b *ObjectBackend) Read(ctx context.Context, namespace string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.objectName(namespace), minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer obj.Close()

	// Minio reports missing keys lazily on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *ObjectBackend) Write(ctx context.Context, namespace string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.objectName(namespace), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (b *ObjectBackend) Delete(ctx context.Context, namespace string) error {
	return b.client.RemoveObject(ctx, b.bucket, b.objectName(namespace), minio.RemoveObjectOptions{})
}
