package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"lox/internal/bytecode"
)

// Current schema version - increment when cachePayload format changes
const chunkCacheSchemaVersion uint16 = 1

// ErrCacheCorrupted reports an entry that exists but cannot be used.
var ErrCacheCorrupted = errors.New("chunk cache entry corrupted")

// ChunkCache хранит скомпилированные чанки на диске по sha256 исходника.
// Thread-safe for concurrent access.
type ChunkCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Source string   // путь исходника на момент записи
	Hash   [32]byte // ключ, повторён для проверки
	Chunk  *bytecode.Chunk
}

// OpenChunkCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenChunkCache(app string) (*ChunkCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewChunkCache(filepath.Join(base, app))
}

// NewChunkCache opens a cache rooted at dir, creating it if needed.
func NewChunkCache(dir string) (*ChunkCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ChunkCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ChunkCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *ChunkCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "chunks", hex.EncodeToString(key[:])+".mp")
}

// Put serializes chunk under key, replacing any previous entry atomically.
func (c *ChunkCache) Put(key [32]byte, sourcePath string, chunk *bytecode.Chunk) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	payload := cachePayload{
		Schema: chunkCacheSchemaVersion,
		Source: sourcePath,
		Hash:   key,
		Chunk:  chunk,
	}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get returns the cached chunk for key. A missing entry or an entry written
// by another schema version is a miss; an unreadable one is ErrCacheCorrupted.
func (c *ChunkCache) Get(key [32]byte) (*bytecode.Chunk, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from a hex digest
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCacheCorrupted, err)
	}
	if payload.Schema != chunkCacheSchemaVersion {
		return nil, false, nil
	}
	if payload.Hash != key || payload.Chunk == nil {
		return nil, false, fmt.Errorf("%w: key mismatch", ErrCacheCorrupted)
	}
	if err := payload.Chunk.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCacheCorrupted, err)
	}
	return payload.Chunk, true, nil
}

// DropAll invalidates the cache.
func (c *ChunkCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
