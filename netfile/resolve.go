package netfile

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/hups/blobstore"
	"github.com/hupe1980/hups/blobstore/ftp"
	"github.com/hupe1980/hups/blobstore/minio"
	"github.com/hupe1980/hups/blobstore/s3"
	"github.com/hupe1980/hups/internal/cache"
)

// Memory is the in-process store behind "mem://" locations.
var Memory = blobstore.NewMemoryStore()

// remoteCacheBytes bounds the process-wide cache of remote payloads.
const remoteCacheBytes = 64 << 20

var remoteCache = cache.NewLRU(remoteCacheBytes, nil)

// Environment variables configuring remote locations.
const (
	EnvS3Endpoint     = "HUPS_S3_ENDPOINT"
	EnvMinioEndpoint  = "HUPS_MINIO_ENDPOINT"
	EnvMinioAccessKey = "HUPS_MINIO_ACCESS_KEY"
	EnvMinioSecretKey = "HUPS_MINIO_SECRET_KEY"
	EnvMinioSecure    = "HUPS_MINIO_SECURE"
)

// Resolve maps a location to the store holding it and the name of the
// resource inside that store. Remote stores are wrapped in a shared cache
// unless WithoutCache is given.
func Resolve(ctx context.Context, location string, opts ...Option) (blobstore.BlobStore, string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return resolveWith(ctx, location, &o)
}

func resolveWith(ctx context.Context, location string, o *options) (blobstore.BlobStore, string, error) {
	if o.store != nil {
		return o.store, location, nil
	}

	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		if p, isFile := strings.CutPrefix(location, "file:"); isFile {
			return localStore(p)
		}
		return localStore(location)
	}

	var (
		store blobstore.BlobStore
		name  string
		err   error
		id    string
	)
	switch scheme {
	case "mem":
		return Memory, rest, nil
	case "file":
		u, perr := url.Parse(location)
		if perr != nil {
			return nil, "", perr
		}
		return localStore(u.Path)
	case "http", "https":
		base, file := path.Split(location)
		if file == "" {
			return nil, "", fmt.Errorf("%w: %q has no file name", blobstore.ErrUnsupportedScheme, location)
		}
		store, err = blobstore.NewHTTPStore(base, blobstore.WithController(o.controller))
		name, id = file, base
	case "ftp":
		store, name, id, err = ftpStore(location, o)
	case "s3":
		bucket, key, found := strings.Cut(rest, "/")
		if !found || key == "" {
			return nil, "", fmt.Errorf("%w: %q is not s3://bucket/key", blobstore.ErrUnsupportedScheme, location)
		}
		var s3opts []s3.Option
		if ep := os.Getenv(EnvS3Endpoint); ep != "" {
			s3opts = append(s3opts, s3.WithEndpoint(ep))
		}
		store, err = s3.New(ctx, bucket, s3opts...)
		name, id = key, "s3://"+bucket
	case "minio":
		bucket, key, found := strings.Cut(rest, "/")
		if !found || key == "" {
			return nil, "", fmt.Errorf("%w: %q is not minio://bucket/key", blobstore.ErrUnsupportedScheme, location)
		}
		store, err = minioFromEnv(bucket)
		name, id = key, "minio://"+bucket
	default:
		return nil, "", fmt.Errorf("%w: %q", blobstore.ErrUnsupportedScheme, location)
	}
	if err != nil {
		return nil, "", err
	}
	if o.noCache {
		return store, name, nil
	}
	return blobstore.NewCachingStore(store, remoteCache, id), name, nil
}

func localStore(p string) (blobstore.BlobStore, string, error) {
	dir, file := filepath.Split(p)
	if file == "" {
		return nil, "", fmt.Errorf("%w: %q is a directory", blobstore.ErrUnsupportedScheme, p)
	}
	if dir == "" {
		dir = "."
	}
	return blobstore.NewLocalStore(dir), file, nil
}

// ftpStore serves ftp://[user[:password]@]host[:port]/dir/file from dir.
func ftpStore(location string, o *options) (*ftp.Store, string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", "", err
	}
	dir, file := path.Split(u.Path)
	if u.Host == "" || file == "" {
		return nil, "", "", fmt.Errorf("%w: %q is not ftp://host/path", blobstore.ErrUnsupportedScheme, location)
	}
	opts := []ftp.Option{ftp.WithRoot(dir), ftp.WithController(o.controller)}
	if u.User != nil {
		password, _ := u.User.Password()
		opts = append(opts, ftp.WithCredentials(u.User.Username(), password))
	}
	store, err := ftp.New(u.Host, opts...)
	if err != nil {
		return nil, "", "", err
	}
	return store, file, "ftp://" + store.Addr() + dir, nil
}

func minioFromEnv(bucket string) (*minio.Store, error) {
	endpoint := os.Getenv(EnvMinioEndpoint)
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	secure := false
	if v := os.Getenv(EnvMinioSecure); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvMinioSecure, err)
		}
		secure = b
	}
	return minio.New(endpoint, os.Getenv(EnvMinioAccessKey), os.Getenv(EnvMinioSecretKey), secure, bucket, "")
}
