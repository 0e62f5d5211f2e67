// In-memory index: an ordered mapping from key to the location of its
// most recent Set record.
//
// Lookups are point queries by key (map access). Compaction needs a
// stable traversal order so that repeated compactions of an unchanged
// key set produce the same generation layout; index.sorted provides
// that by sorting keys on demand rather than maintaining an ordered
// tree on every insert; this engine's write path (set/remove, one key
// at a time) never needs ordered traversal except during compaction,
// so paying slices.Sort once per compaction is cheaper than keeping a
// balanced structure warm on every mutation.
package kvs

import "slices"

// location is the byte range of the most recent Set record for a key:
// which generation file it lives in, its start offset, and its length
// in bytes.
type location struct {
	gen    uint64
	offset int64
	length int64
}

// index is the engine's key -> location map.
type index struct {
	entries map[string]location
}

func newIndex() *index {
	return &index{entries: make(map[string]location)}
}

// get returns the location for key, and whether it was present.
func (ix *index) get(key string) (location, bool) {
	loc, ok := ix.entries[key]
	return loc, ok
}

// set inserts or overwrites the location for key, returning the prior
// location if one existed (so callers can account for its staleness).
func (ix *index) set(key string, loc location) (prev location, existed bool) {
	prev, existed = ix.entries[key]
	ix.entries[key] = loc
	return prev, existed
}

// remove deletes key from the index, returning its last location if it
// was present.
func (ix *index) remove(key string) (prev location, existed bool) {
	prev, existed = ix.entries[key]
	delete(ix.entries, key)
	return prev, existed
}

// len reports the number of live keys.
func (ix *index) len() int {
	return len(ix.entries)
}

// sorted returns every key in the index in ascending order, for
// compaction to walk in a stable order; callers look up each key's
// location with get.
func (ix *index) sorted() []string {
	keys := make([]string, 0, len(ix.entries))
	for k := range ix.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
