package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered artifacts on disk, one file per entry.
// Each file carries an 8-byte expiry header (unix nanoseconds, zero
// means the artifact never expires) followed by the artifact bytes.
type FileCache struct {
	dir string
}

const expiryHeaderLen = 8

// NewFileCache creates a file-based artifact cache rooted at dir,
// creating the directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a cached artifact. Expired or truncated entries are
// removed and reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(data) < expiryHeaderLen {
		_ = os.Remove(path)
		return nil, false, nil
	}

	expiry := int64(binary.BigEndian.Uint64(data[:expiryHeaderLen]))
	if expiry != 0 && time.Now().UnixNano() > expiry {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return data[expiryHeaderLen:], true, nil
}

// Set stores an artifact with the given TTL. A zero TTL keeps the
// artifact until it is deleted or the cache is cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiry int64
	if ttl != 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}

	buf := make([]byte, expiryHeaderLen+len(data))
	binary.BigEndian.PutUint64(buf[:expiryHeaderLen], uint64(expiry))
	copy(buf[expiryHeaderLen:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Delete removes a cached artifact. Deleting a missing entry is not an
// error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a cache key to a file path. The first two hash characters
// become a subdirectory so large caches do not pile every artifact
// into one directory.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:])
}

var _ Cache = (*FileCache)(nil)
