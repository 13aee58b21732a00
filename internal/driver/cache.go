package driver

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"recast/internal/logging"
	"recast/internal/project"
)

// cacheSchemaVersion is bumped whenever CacheEntry changes shape.
const cacheSchemaVersion uint16 = 1

// Cache stores finished conversions on disk keyed by project.InputsDigest.
// It is safe for concurrent use; a nil Cache stores nothing.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is one stored conversion.
type CacheEntry struct {
	Schema      uint16
	Backend     string
	Joined      string
	Files       []FileOutput
	Diagnostics []string
}

// OpenCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "locate cache directory")
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir opens a cache rooted at dir.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache directory %s", dir)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "runs", hex.EncodeToString(key[:])+".mp")
}

// Put writes entry under key, replacing any earlier one atomically.
func (c *Cache) Put(key project.Digest, entry *CacheEntry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "create cache directory")
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Wrap(err, "create cache file")
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logging.ComponentLogger("cache").Warnw("remove temp file", logging.FieldPath, f.Name(), logging.FieldError, rmErr)
		}
	}()

	entry.Schema = cacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "encode cache entry")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close cache file")
	}
	return errors.Wrap(os.Rename(f.Name(), p), "store cache entry")
}

// Get reads the entry under key. Entries of another schema are misses.
func (c *Cache) Get(key project.Digest) (*CacheEntry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "open cache entry")
	}
	defer f.Close()
	var entry CacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, errors.Wrap(err, "decode cache entry")
	}
	if entry.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &entry, true, nil
}

// DropAll removes every stored entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Wrap(os.RemoveAll(filepath.Join(c.dir, "runs")), "drop cache")
}
