package packrat

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// CacheKey identifies a memo cell: a parser identity at a source position.
type CacheKey struct {
	ID  ParserID
	Pos Position
}

// hash returns a fast, well-distributed hash of the key. The memo table is
// the hot path of a packrat parser (it is probed on every combinator call),
// so this implementation follows the same engineering call the original
// Rust source made when it swapped the cache's hasher for rustc_hash's
// FxHashMap: use a hash built for speed on small fixed-size keys rather
// than the general-purpose one.
func (k CacheKey) hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(k.ID))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(k.Pos))
	return xxhash.Sum64(buf[:])
}

// cacheState tags a CacheEntry with which of the two variants from spec.md
// §3 it holds.
type cacheState int

const (
	// cachePending marks a key as currently being evaluated; any reentry
	// at this key is a left-recursive call (spec.md §4.4 step 1).
	cachePending cacheState = iota
	// cacheResolved marks a key as holding a memoized, final result.
	cacheResolved
)

// cacheEntry is the heterogeneous memo cell. When resolved, value holds a
// boxed result[T] for whichever T the owning Parser[T] produces; it is
// downcast by that parser alone (design option (a) from spec.md §9).
type cacheEntry struct {
	state cacheState
	value any
}

// result is the boxed payload of a resolved cacheEntry for a Parser[T].
type result[T any] struct {
	pos Position
	val T
	err *ParseError
}

// cacheSlot is one chain link in a bucket.
type cacheSlot struct {
	key   CacheKey
	entry *cacheEntry
	next  *cacheSlot
}

// memoTable is a chained hash table over CacheKey, keyed by CacheKey.hash.
// It exists instead of a plain Go map for the same reason described on
// CacheKey.hash: a purpose-built hash for this exact hot-path key shape.
type memoTable struct {
	buckets map[uint64]*cacheSlot
	size    int
}

func newMemoTable() *memoTable {
	return &memoTable{buckets: make(map[uint64]*cacheSlot)}
}

func (m *memoTable) get(key CacheKey) (*cacheEntry, bool) {
	for s := m.buckets[key.hash()]; s != nil; s = s.next {
		if s.key == key {
			return s.entry, true
		}
	}
	return nil, false
}

func (m *memoTable) set(key CacheKey, entry *cacheEntry) {
	h := key.hash()
	for s := m.buckets[h]; s != nil; s = s.next {
		if s.key == key {
			s.entry = entry
			return
		}
	}
	m.buckets[h] = &cacheSlot{key: key, entry: entry, next: m.buckets[h]}
	m.size++
}

func (m *memoTable) delete(key CacheKey) {
	h := key.hash()
	head := m.buckets[h]
	var prev *cacheSlot
	for s := head; s != nil; s = s.next {
		if s.key == key {
			if prev == nil {
				m.buckets[h] = s.next
			} else {
				prev.next = s.next
			}
			m.size--
			return
		}
		prev = s
	}
}

func (m *memoTable) len() int {
	return m.size
}
