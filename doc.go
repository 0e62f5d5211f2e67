// Package kvs provides a log-structured, embedded key/value store for
// string keys and string values.
//
// Keys and values are persisted to an append-only log, split across
// generation files in the database directory. A single open Store owns
// one directory: writes land at the end of the active generation, an
// in-memory index tracks the location of every live key, and periodic
// compaction reclaims space occupied by overwritten or removed keys.
//
// The store is single-writer: only one process, and one goroutine at a
// time, may hold an open Store on a given directory. Concurrent callers
// within a process must serialise their own access; Open acquires an
// advisory OS-level lock to catch a second process opening the same
// directory.
package kvs
