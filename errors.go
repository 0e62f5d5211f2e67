// Package kvs provides a log-structured, embedded key/value store.
package kvs

import "errors"

// Sentinel errors returned by Store operations. Callers should compare
// against these with errors.Is rather than string-matching messages.
var (
	// ErrKeyNotFound is returned by Remove when the key has no live
	// record in the index.
	ErrKeyNotFound = errors.New("kvs: key not found")

	// ErrUnexpectedCommandType is returned when the index points at a
	// byte range that decodes to a Remove record instead of a Set
	// record. This indicates corruption or a bug: invariant 1 (every
	// index entry locates a valid Set record) has been violated.
	ErrUnexpectedCommandType = errors.New("kvs: unexpected command type")

	// ErrCorruptRecord is returned when a record cannot be decoded:
	// malformed JSON, a checksum mismatch, or a truncated line.
	ErrCorruptRecord = errors.New("kvs: corrupt record")

	// ErrCorruptLogName is returned when a directory entry matching
	// "*.log" has a stem that does not parse as a decimal generation
	// number.
	ErrCorruptLogName = errors.New("kvs: corrupt log file name")

	// ErrEngineMismatch is returned when the "engine" marker file in a
	// database directory names a backend other than the one opening it.
	ErrEngineMismatch = errors.New("kvs: engine mismatch")

	// ErrClosed is returned by any operation attempted after Close.
	ErrClosed = errors.New("kvs: store is closed")

	// ErrLocked is returned by Open when another process already holds
	// the advisory lock on the database directory.
	ErrLocked = errors.New("kvs: database directory is locked by another process")
)
