package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/hups/blobstore"
)

// Client is the subset of the S3 API the store needs. *s3.Client satisfies
// it; tests substitute a mock.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client   Client
	bucket   string
	prefix   string
	partSize int64
}

type options struct {
	prefix       string
	region       string
	endpoint     string
	usePathStyle bool
	partSize     int64
}

// Option configures New.
type Option func(*options)

// WithPrefix sets the key prefix prepended to every name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion overrides the region of the default configuration.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint and switches
// to path-style addressing.
func WithEndpoint(url string) Option {
	return func(o *options) {
		o.endpoint = url
		o.usePathStyle = true
	}
}

// WithPartSize sets the part size of whole-object downloads.
func WithPartSize(n int64) Option {
	return func(o *options) { o.partSize = n }
}

// New creates a store for bucket from the default AWS configuration chain
// (environment, shared config, instance role).
func New(ctx context.Context, bucket string, opts ...Option) (*Store, error) {
	o := options{partSize: manager.DefaultDownloadPartSize}
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = aws.String(o.endpoint)
		}
		so.UsePathStyle = o.usePathStyle
	})

	s := NewStore(client, bucket, o.prefix)
	s.partSize = o.partSize
	return s, nil
}

// NewStore creates a new S3 blob store over an existing client.
// rootPrefix is prepended to all keys (e.g. "nets/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return &Store{
		client:   client,
		bucket:   bucket,
		prefix:   rootPrefix,
		partSize: manager.DefaultDownloadPartSize,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open checks that the object exists and returns a blob over it.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &s3Blob{
		ctx:      ctx,
		client:   s.client,
		bucket:   s.bucket,
		key:      key,
		size:     aws.ToInt64(head.ContentLength),
		partSize: s.partSize,
	}, nil
}

// List implements blobstore.Lister.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.key(prefix)),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			rel := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			keys = append(keys, strings.TrimPrefix(rel, "/"))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// s3Blob implements blobstore.Blob and blobstore.Mappable.
type s3Blob struct {
	ctx      context.Context
	client   Client
	bucket   string
	key      string
	size     int64
	partSize int64

	once sync.Once
	data []byte
	err  error
}

func (b *s3Blob) Close() error {
	return nil
}

func (b *s3Blob) Size() int64 {
	return b.size
}

// ReadAt issues a ranged GET.
func (b *s3Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	end := min(off+int64(len(p))-1, b.size-1)
	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	want := int(end - off + 1)
	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		return n, err
	}
	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Bytes downloads the whole object once, in parallel parts.
func (b *s3Blob) Bytes() ([]byte, error) {
	b.once.Do(func() {
		buf := manager.NewWriteAtBuffer(make([]byte, 0, b.size))
		d := manager.NewDownloader(b.client, func(d *manager.Downloader) {
			d.PartSize = b.partSize
		})
		_, b.err = d.Download(b.ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(b.bucket),
			Key:    aws.String(b.key),
		})
		b.data = buf.Bytes()
	})
	return b.data, b.err
}
