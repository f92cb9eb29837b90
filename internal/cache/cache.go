// Package cache provides file-based caching of per-file analysis results,
// keyed by a BLAKE3 content hash so edits invalidate entries automatically.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
)

// Cache is a directory of JSON entries. A disabled cache is a valid value
// whose lookups always miss.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

// Entry represents a cached analysis result.
type Entry struct {
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
	Data      []byte    `json:"data"`
}

// New creates a cache rooted at dir. With enabled false, no directory is
// created and all operations are no-ops.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// HashFile computes a BLAKE3 hash of a file's contents.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}

// HashBytes computes a BLAKE3 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Get retrieves a cached entry if it exists, has the expected content hash,
// and is not expired.
func (c *Cache) Get(key, hash string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	raw, err := os.ReadFile(c.keyPath(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}

	if entry.Hash != hash {
		return nil, false
	}
	if c.ttl > 0 && time.Since(entry.Timestamp) > c.ttl {
		os.Remove(c.keyPath(key))
		return nil, false
	}

	return entry.Data, true
}

// Put stores data under key with its content hash.
func (c *Cache) Put(key, hash string, data []byte) error {
	if !c.enabled {
		return nil
	}

	entry := Entry{
		Hash:      hash,
		Timestamp: time.Now(),
		Data:      data,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(c.keyPath(key), raw, 0644)
}

// Clear removes all entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0755)
}

// keyPath maps a key to a file path inside the cache directory. Keys are
// hashed so arbitrary strings (file paths) stay filesystem-safe.
func (c *Cache) keyPath(key string) string {
	return filepath.Join(c.dir, HashBytes([]byte(key))+".json")
}
