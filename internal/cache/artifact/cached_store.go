// Package artifact layers a read-through memory cache over an artifact
// store so repeated opens of the same analysis do not refetch the blob.
package artifact

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	memcache "flowscope/internal/cache/memory"
	artifactrepo "flowscope/internal/repository/artifact"
)

type Store = artifactrepo.Store

type CacheConfig struct {
	BlobTTL        time.Duration
	BlobMaxEntries int
	BlobMaxBytes   int

	ListTTL        time.Duration
	ListMaxEntries int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		BlobTTL:        5 * time.Minute,
		BlobMaxEntries: 256,
		BlobMaxBytes:   128 * 1024 * 1024, // analysis blobs can be large
		ListTTL:        30 * time.Second,
		ListMaxEntries: 512,
	}
}

type MetricsSnapshot struct {
	BlobHits     uint64
	BlobMisses   uint64
	ListHits     uint64
	ListMisses   uint64
	OriginReads  uint64
	OriginWrites uint64
	OriginErrors uint64
}

type metrics struct {
	blobHits     atomic.Uint64
	blobMisses   atomic.Uint64
	listHits     atomic.Uint64
	listMisses   atomic.Uint64
	originReads  atomic.Uint64
	originWrites atomic.Uint64
	originErrors atomic.Uint64
}

// CachedStore serves Get/List from memory when possible and writes through
// to the origin. Puts invalidate the project's listing.
type CachedStore struct {
	origin Store

	blobCache *memcache.LRUTTL[string, []byte]
	listCache *memcache.LRUTTL[string, []string]
	metrics   metrics
}

func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.BlobTTL <= 0 {
		cfg.BlobTTL = def.BlobTTL
	}
	if cfg.BlobMaxEntries <= 0 {
		cfg.BlobMaxEntries = def.BlobMaxEntries
	}
	if cfg.BlobMaxBytes < 0 {
		cfg.BlobMaxBytes = def.BlobMaxBytes
	}
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = def.ListTTL
	}
	if cfg.ListMaxEntries <= 0 {
		cfg.ListMaxEntries = def.ListMaxEntries
	}
	return &CachedStore{
		origin:    origin,
		blobCache: memcache.NewLRUTTL[string, []byte](cfg.BlobMaxEntries, cfg.BlobMaxBytes, cfg.BlobTTL),
		listCache: memcache.NewLRUTTL[string, []string](cfg.ListMaxEntries, 0, cfg.ListTTL),
	}
}

func (s *CachedStore) Put(ctx context.Context, projectID, path string, content []byte) error {
	s.metrics.originWrites.Add(1)
	if err := s.origin.Put(ctx, projectID, path, content); err != nil {
		s.metrics.originErrors.Add(1)
		return err
	}
	copied := append([]byte(nil), content...)
	s.blobCache.Set(cacheKey(projectID, path), copied, len(copied))
	s.listCache.Delete(strings.TrimSpace(projectID))
	return nil
}

func (s *CachedStore) Get(ctx context.Context, projectID, path string) ([]byte, error) {
	key := cacheKey(projectID, path)
	if raw, ok := s.blobCache.Get(key); ok {
		s.metrics.blobHits.Add(1)
		return append([]byte(nil), raw...), nil
	}
	s.metrics.blobMisses.Add(1)
	s.metrics.originReads.Add(1)

	raw, err := s.origin.Get(ctx, projectID, path)
	if err != nil {
		s.metrics.originErrors.Add(1)
		return nil, err
	}
	copied := append([]byte(nil), raw...)
	s.blobCache.Set(key, copied, len(copied))
	return append([]byte(nil), copied...), nil
}

// GetURL always goes to the origin; presigned links expire on their own
// schedule.
func (s *CachedStore) GetURL(ctx context.Context, projectID, path string) (string, error) {
	return s.origin.GetURL(ctx, projectID, path)
}

func (s *CachedStore) List(ctx context.Context, projectID string) ([]string, error) {
	projectID = strings.TrimSpace(projectID)
	if list, ok := s.listCache.Get(projectID); ok {
		s.metrics.listHits.Add(1)
		return append([]string(nil), list...), nil
	}
	s.metrics.listMisses.Add(1)
	s.metrics.originReads.Add(1)

	list, err := s.origin.List(ctx, projectID)
	if err != nil {
		s.metrics.originErrors.Add(1)
		return nil, err
	}
	copied := append([]string(nil), list...)
	approx := 0
	for _, v := range copied {
		approx += len(v)
	}
	s.listCache.Set(projectID, copied, approx)
	return append([]string(nil), copied...), nil
}

func (s *CachedStore) Metrics() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		BlobHits:     s.metrics.blobHits.Load(),
		BlobMisses:   s.metrics.blobMisses.Load(),
		ListHits:     s.metrics.listHits.Load(),
		ListMisses:   s.metrics.listMisses.Load(),
		OriginReads:  s.metrics.originReads.Load(),
		OriginWrites: s.metrics.originWrites.Load(),
		OriginErrors: s.metrics.originErrors.Load(),
	}
}

func cacheKey(projectID, path string) string {
	return strings.TrimSpace(projectID) + "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
}
