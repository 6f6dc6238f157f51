// Package minio provides a read-only BlobStore over MinIO and other
// S3-compatible servers (Ceph, SeaweedFS, Garage) using the MinIO client.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "minioadmin", "minioadmin", false, "nets", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	net, err := netfile.Load(ctx, "sobol/joe-kuo-6.21201.txt", netfile.WithStore(store))
//
// Package netfile also resolves "minio://bucket/key" locations, reading the
// endpoint and credentials from HUPS_MINIO_ENDPOINT, HUPS_MINIO_ACCESS_KEY,
// HUPS_MINIO_SECRET_KEY and HUPS_MINIO_SECURE.
package minio
