package figma

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/logger"
)

// DefaultCacheMaxAge is the maximum age before a cache entry is auto-invalidated.
const DefaultCacheMaxAge = 7 * 24 * time.Hour

// Cache stores fetched Figma data on disk, one JSON file per Figma file.
type Cache struct {
	Dir    string        // default: .figma-to-react/cache
	MaxAge time.Duration // zero selects DefaultCacheMaxAge
}

// CacheEntry is everything cached for one Figma file version.
type CacheEntry struct {
	FileKey      string                     `json:"file_key"`
	LastModified string                     `json:"last_modified"`
	FetchedAt    time.Time                  `json:"fetched_at"`
	Components   []ComponentRef             `json:"components,omitempty"`
	Nodes        map[string]json.RawMessage `json:"nodes,omitempty"`
}

// Get retrieves a cached entry if it exists and is not expired.
func (c *Cache) Get(fileKey string) (*CacheEntry, bool) {
	path := c.entryPath(fileKey)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	maxAge := c.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultCacheMaxAge
	}
	if time.Since(entry.FetchedAt) > maxAge {
		_ = os.Remove(path)
		return nil, false
	}
	return &entry, true
}

// Put stores an entry in the cache.
func (c *Cache) Put(entry *CacheEntry) error {
	path := c.entryPath(entry.FileKey)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating cache directory")
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling cache entry")
	}
	return os.WriteFile(path, data, 0644)
}

// IsStale checks if the cached entry is outdated by comparing lastModified.
func (c *Cache) IsStale(entry *CacheEntry, currentLastModified string) bool {
	return entry.LastModified != currentLastModified
}

// Invalidate removes a cached entry.
func (c *Cache) Invalidate(fileKey string) error {
	err := os.Remove(c.entryPath(fileKey))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	return os.RemoveAll(c.Dir)
}

func (c *Cache) entryPath(fileKey string) string {
	return filepath.Join(c.Dir, filepath.Base(fileKey)+".json")
}

// Fetcher is the subset of Client that CachedSource decorates.
type Fetcher interface {
	GetFileMetadata(ctx context.Context, fileKey string) (*FileMetadata, error)
	ListComponents(ctx context.Context, fileKey string) ([]ComponentRef, error)
	ImageURLs(ctx context.Context, fileKey string, ids []string) (map[string]string, error)
	ImageFills(ctx context.Context, fileKey string) (map[string]string, error)
	NodeJSON(ctx context.Context, fileKey, nodeID string) ([]byte, error)
}

// CachedSource serves component lists and node trees from the disk cache
// while the file's lastModified matches, and fetches through otherwise.
// Rendered image URLs expire on Figma's side and are never cached.
// Node trees are buffered in memory and written by Flush, once per batch.
// Safe for concurrent use.
type CachedSource struct {
	upstream Fetcher
	cache    *Cache
	maxDepth int
	log      *zap.SugaredLogger

	mu      sync.Mutex
	entries map[string]*CacheEntry
	dirty   map[string]bool // file keys with nodes not yet on disk
}

// NewCachedSource wraps upstream with cache.
func NewCachedSource(upstream Fetcher, cache *Cache, maxDepth int) *CachedSource {
	return &CachedSource{
		upstream: upstream,
		cache:    cache,
		maxDepth: maxDepth,
		log:      logger.ComponentLogger("figma.cache"),
		entries:  make(map[string]*CacheEntry),
		dirty:    make(map[string]bool),
	}
}

// entry returns the validated in-memory entry for fileKey. The caller must
// hold s.mu. The file version is checked once per CachedSource.
func (s *CachedSource) entry(ctx context.Context, fileKey string) (*CacheEntry, error) {
	if e, ok := s.entries[fileKey]; ok {
		return e, nil
	}

	meta, err := s.upstream.GetFileMetadata(ctx, fileKey)
	if err != nil {
		return nil, err
	}

	e, ok := s.cache.Get(fileKey)
	switch {
	case !ok:
		s.log.Debugw("Cache miss", logger.FieldFileKey, fileKey)
		e = nil
	case s.cache.IsStale(e, meta.LastModified):
		s.log.Infow("Cache stale, refetching", logger.FieldFileKey, fileKey)
		e = nil
	default:
		s.log.Debugw("Cache hit", logger.FieldFileKey, fileKey)
	}
	if e == nil {
		e = &CacheEntry{
			FileKey:      fileKey,
			LastModified: meta.LastModified,
			FetchedAt:    time.Now(),
		}
	}
	if e.Nodes == nil {
		e.Nodes = make(map[string]json.RawMessage)
	}
	s.entries[fileKey] = e
	return e, nil
}

// persist writes e to disk; failures only cost a future refetch. The
// caller must hold s.mu.
func (s *CachedSource) persist(e *CacheEntry) error {
	delete(s.dirty, e.FileKey)
	if err := s.cache.Put(e); err != nil {
		s.log.Warnw("Failed to write cache entry", logger.FieldFileKey, e.FileKey, logger.FieldError, err)
		return err
	}
	return nil
}

// Flush writes every entry holding node trees fetched since the last
// write.
func (s *CachedSource) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error
	for key := range s.dirty {
		if err := s.persist(s.entries[key]); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	return errs
}

// ListComponents implements the component listing with caching.
func (s *CachedSource) ListComponents(ctx context.Context, fileKey string) ([]ComponentRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.entry(ctx, fileKey)
	if err != nil {
		return nil, err
	}
	if e.Components != nil {
		return append([]ComponentRef(nil), e.Components...), nil
	}

	refs, err := s.upstream.ListComponents(ctx, fileKey)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []ComponentRef{}
	}
	e.Components = refs
	_ = s.persist(e)
	return append([]ComponentRef(nil), refs...), nil
}

// NodeDetail returns the decoded node, fetching its JSON on a cache miss.
func (s *CachedSource) NodeDetail(ctx context.Context, fileKey, nodeID string) (*Node, error) {
	s.mu.Lock()
	e, err := s.entry(ctx, fileKey)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	raw, ok := e.Nodes[nodeID]
	s.mu.Unlock()

	if !ok {
		raw, err = s.upstream.NodeJSON(ctx, fileKey, nodeID)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		e.Nodes[nodeID] = raw
		s.dirty[fileKey] = true
		s.mu.Unlock()
	}
	return DecodeNode(raw, s.maxDepth)
}

// ImageURLs passes through to the upstream.
func (s *CachedSource) ImageURLs(ctx context.Context, fileKey string, ids []string) (map[string]string, error) {
	return s.upstream.ImageURLs(ctx, fileKey, ids)
}

// ImageFills passes through to the upstream.
func (s *CachedSource) ImageFills(ctx context.Context, fileKey string) (map[string]string, error) {
	return s.upstream.ImageFills(ctx, fileKey)
}
