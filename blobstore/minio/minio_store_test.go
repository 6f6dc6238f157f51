package minio

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hups/blobstore"
)

func TestNew_InvalidEndpoint(t *testing.T) {
	_, err := New("localhost:9000/bad", "a", "b", false, "bucket", "")
	require.Error(t, err)
}

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "nets/")
	assert.Equal(t, "nets/sobol.txt", s.key("sobol.txt"))
	assert.Equal(t, "nets", s.key(""))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-hups"

	store, err := New(endpoint, "minioadmin", "minioadmin", false, bucket, "test-prefix/")
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}
	client := store.client

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("2 1 1 2 1\n1073741824\n")
	_, err = client.PutObject(ctx, bucket, "test-prefix/vdc.txt", bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.RemoveObject(ctx, bucket, "test-prefix/vdc.txt", minio.RemoveObjectOptions{})
	})

	got, err := blobstore.Fetch(ctx, store, "vdc.txt")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	blob, err := store.Open(ctx, "vdc.txt")
	require.NoError(t, err)
	part := make([]byte, 5)
	n, err := blob.ReadAt(ctx, part, 2)
	require.NoError(t, err)
	assert.Equal(t, "1 1 2", string(part[:n]))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "vdc.txt")

	_, err = store.Open(ctx, "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
