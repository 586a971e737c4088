package driver

import (
	"crypto/sha256"
	"errors"
	"os"
	"testing"

	"lox/internal/bytecode"
	"lox/internal/value"
)

func TestChunkCacheRoundTrip(t *testing.T) {
	cache, err := NewChunkCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := sha256.Sum256([]byte("1.5\x00"))

	if _, hit, err := cache.Get(key); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	chunk := bytecode.New()
	chunk.WriteConstant(value.Number(1.5), 1)
	chunk.WriteReturn(1)
	if err := cache.Put(key, "a.lox", chunk); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, hit, err := cache.Get(key)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	v, err := got.ConstantAt(0)
	if err != nil {
		t.Fatalf("ConstantAt: %v", err)
	}
	if n, ok := v.AsNumber(); !ok || n != 1.5 {
		t.Fatalf("constant = %v, %v", v, err)
	}
	if got.Len() != 3 || got.LineAt(2) != 1 {
		t.Fatalf("unexpected chunk %+v", got)
	}
}

func TestChunkCacheCorrupted(t *testing.T) {
	cache, err := NewChunkCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := sha256.Sum256([]byte("x"))
	if err := cache.Put(key, "x.lox", bytecode.New()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cache.pathFor(key), []byte("not msgpack at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := cache.Get(key); hit || !errors.Is(err, ErrCacheCorrupted) {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
}

func TestChunkCacheDropAll(t *testing.T) {
	cache, err := NewChunkCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := sha256.Sum256([]byte("y"))
	chunk := bytecode.New()
	chunk.WriteReturn(1)
	if err := cache.Put(key, "y.lox", chunk); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, hit, _ := cache.Get(key); hit {
		t.Fatal("entry survived DropAll")
	}
	if err := cache.Put(key, "y.lox", chunk); err != nil {
		t.Fatalf("cache unusable after DropAll: %v", err)
	}
}

func TestNilChunkCache(t *testing.T) {
	var cache *ChunkCache
	if err := cache.Put([32]byte{}, "", nil); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := cache.Get([32]byte{}); hit || err != nil {
		t.Fatal("nil cache always misses")
	}
}
