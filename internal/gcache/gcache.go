// Package gcache implements a content-addressed cache of compiled grammars:
// hash a grammar's source text, and reuse a previously compiled
// level.Grammar instead of re-running the BNF->PREC2->Grammar pipeline on
// identical source. Entirely in-memory plus caller-supplied io.Writer/
// io.Reader for persistence - no file or socket is ever opened here,
// preserving the "no files, no sockets" resource model the rest of this
// module holds to.
package gcache

import (
	"fmt"
	"io"
	"sync"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/smie/internal/level"
	"github.com/dekarrin/smie/internal/symbol"
	"golang.org/x/crypto/blake2b"
)

// Key is a content hash of grammar source text, used to address a cached
// compiled Grammar.
type Key [blake2b.Size256]byte

func (k Key) String() string {
	return fmt.Sprintf("%x", [blake2b.Size256]byte(k))
}

// HashSource returns the cache Key for src.
func HashSource(src string) Key {
	return Key(blake2b.Sum256([]byte(src)))
}

// Cache holds previously compiled Grammars in memory, keyed by the hash of
// the source text that produced them. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key][]byte
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[Key][]byte)}
}

// Get returns the encoded bytes for key and whether they were found.
func (c *Cache) Get(key Key) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[key]
	return data, ok
}

// Put records the encoded bytes for key, overwriting any existing entry.
func (c *Cache) Put(key Key, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
}

// Encode serializes g to w, via rezi.EncBinary over level.Grammar's
// MarshalBinary implementation (mirroring the teacher's
// server/dao/sqlite.rezi.EncBinary(g) usage for compiled game state).
func Encode(w io.Writer, g *level.Grammar) error {
	enc := rezi.EncBinary(g)
	_, err := w.Write(enc)
	return err
}

// Decode reads a Grammar previously written by Encode from r, binding it to
// pool.
func Decode(r io.Reader, pool *symbol.Pool) (*level.Grammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gcache: read: %w", err)
	}

	g := level.NewForDecode(pool)
	if _, err := rezi.DecBinary(data, g); err != nil {
		return nil, fmt.Errorf("gcache: decode: %w", err)
	}
	return g, nil
}

// Lookup returns a decoded Grammar for src if the cache already holds a
// compiled entry for it, bound to pool.
func (c *Cache) Lookup(pool *symbol.Pool, src string) (*level.Grammar, bool, error) {
	key := HashSource(src)
	data, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}

	g := level.NewForDecode(pool)
	if _, err := rezi.DecBinary(data, g); err != nil {
		return nil, false, fmt.Errorf("gcache: decode cached entry: %w", err)
	}
	return g, true, nil
}

// Store encodes g and records it under src's content hash for future
// Lookup calls.
func (c *Cache) Store(src string, g *level.Grammar) error {
	enc := rezi.EncBinary(g)
	c.Put(HashSource(src), enc)
	return nil
}
