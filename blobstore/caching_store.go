package blobstore

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/hups/internal/cache"
)

// CachingStore wraps a BlobStore and keeps whole payloads in a cache.
// Concurrent opens of the same missing blob share one backend read.
type CachingStore struct {
	inner BlobStore
	cache cache.Cache
	id    string
	group singleflight.Group
}

// NewCachingStore creates a new CachingStore. id separates the entries of
// this store from those of other stores sharing the cache.
func NewCachingStore(inner BlobStore, c cache.Cache, id string) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: c,
		id:    id,
	}
}

// Open serves name from the cache, reading it from the inner store once on
// a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	key := cache.Key{Store: s.id, Name: name}
	if data, ok := s.cache.Get(ctx, key); ok {
		return NewBytesBlob(data), nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		data, err := Fetch(ctx, s.inner, name)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return NewBytesBlob(v.([]byte)), nil
}

// Invalidate drops the cached payload of name.
func (s *CachingStore) Invalidate(name string) {
	s.cache.Invalidate(func(key cache.Key) bool {
		return key.Store == s.id && key.Name == name
	})
}

// List implements Lister when the inner store does.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	l, ok := s.inner.(Lister)
	if !ok {
		return nil, ErrUnsupportedScheme
	}
	return l.List(ctx, prefix)
}
