package metacache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/singleflight"

	"ytmeta/internal/logging"
	"ytmeta/internal/mapper"
	"ytmeta/internal/videoid"
)

const (
	cacheSubdir = "youtubemetadata"
	// recordBase is the output stem handed to the fetch backend, which
	// appends ".info.json" on its own.
	recordBase = "ytvideo"
	recordFile = "ytvideo.info.json"
	lockFile   = ".fetch.lock"

	freshnessWindow = 240 * time.Hour

	lockRetryDelay = 50 * time.Millisecond
)

// Clock abstracts wall-clock reads so freshness checks are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Fetcher downloads full records into the cache directory.
type Fetcher interface {
	FetchVideoInfo(ctx context.Context, id, destBase string) error
	FetchChannelInfo(ctx context.Context, channelID, destBase string) error
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the freshness clock.
func WithClock(clock Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Cache stores fetched records on disk and serves them back while fresh.
// Concurrent requests for the same identifier share a single fetch.
type Cache struct {
	root    string
	fetcher Fetcher
	clock   Clock
	logger  *slog.Logger
	group   singleflight.Group
}

// NewCache constructs a Cache rooted at cacheRoot.
func NewCache(cacheRoot string, fetcher Fetcher, opts ...Option) *Cache {
	cache := &Cache{
		root:    cacheRoot,
		fetcher: fetcher,
		clock:   systemClock{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// VideoInfoPath returns the cached record location for a video identifier.
func (c *Cache) VideoInfoPath(id string) string {
	return filepath.Join(c.root, cacheSubdir, videoid.SafeCacheKey(id), recordFile)
}

// ChannelInfoPath returns the cached record location for a channel folder
// name. The folder name is sanitized so arbitrary channel titles stay inside
// the cache root.
func (c *Cache) ChannelInfoPath(folderName string) string {
	return filepath.Join(c.root, cacheSubdir, videoid.SafeCacheKey(folderName), recordFile)
}

// GetRecord returns the record for a video identifier, fetching and caching
// it when the cached copy is missing, stale, or unreadable.
func (c *Cache) GetRecord(ctx context.Context, id string) (*mapper.RawRecord, error) {
	path := c.VideoInfoPath(id)
	if record, ok := c.readFresh(path); ok {
		return record, nil
	}
	return c.fetchShared(ctx, "video:"+id, path, func(ctx context.Context, destBase string) error {
		return c.fetcher.FetchVideoInfo(ctx, id, destBase)
	})
}

// GetChannelRecord returns the record for a channel identifier, cached under
// the given folder name.
func (c *Cache) GetChannelRecord(ctx context.Context, channelID, folderName string) (*mapper.RawRecord, error) {
	path := c.ChannelInfoPath(folderName)
	if record, ok := c.readFresh(path); ok {
		return record, nil
	}
	return c.fetchShared(ctx, "channel:"+channelID, path, func(ctx context.Context, destBase string) error {
		return c.fetcher.FetchChannelInfo(ctx, channelID, destBase)
	})
}

func (c *Cache) fetchShared(ctx context.Context, key, path string, fetch func(context.Context, string) error) (*mapper.RawRecord, error) {
	value, err, shared := c.group.Do(key, func() (any, error) {
		// Another flight may have landed the record while we waited.
		if record, ok := c.readFresh(path); ok {
			return record, nil
		}
		if err := c.fetchLocked(ctx, path, fetch); err != nil {
			return nil, err
		}
		return c.read(path)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("fetch deduplicated", logging.String("cache_key", key))
	}
	return value.(*mapper.RawRecord), nil
}

func (c *Cache) fetchLocked(ctx context.Context, path string, fetch func(context.Context, string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire cache lock: lock unavailable")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			c.logger.Warn("release cache lock", logging.Error(unlockErr))
		}
	}()

	// A competing process may have written the record while we waited on
	// the lock.
	if _, ok := c.readFresh(path); ok {
		return nil
	}

	destBase := filepath.Join(dir, recordBase)
	return fetch(ctx, destBase)
}

// readFresh returns the cached record when the file exists, is within the
// freshness window, and decodes cleanly. Any other state counts as a miss.
func (c *Cache) readFresh(path string) (*mapper.RawRecord, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.clock.Now().Sub(info.ModTime()) > freshnessWindow {
		return nil, false
	}

	record, err := c.read(path)
	if err != nil {
		c.logger.Warn("cached record unreadable, refetching",
			logging.String("path", path),
			logging.Error(err))
		return nil, false
	}
	return record, true
}

func (c *Cache) read(path string) (*mapper.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cached record: %w", err)
	}
	var record mapper.RawRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode cached record: %w", err)
	}
	return &record, nil
}
