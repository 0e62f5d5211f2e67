// Hashing helper used outside the hot set/get/remove path.
//
// The engine itself locates keys by exact map lookup in the index, not
// by hash bucket — so this hash is never load-bearing for correctness.
// It is grounded in the teacher's hash algorithm menu (xxh3 for speed),
// repurposed for a fast content fingerprint written into the advisory
// directory lock file.
package kvs

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// quickHash returns a 16 hex character xxh3 digest of s. Used by
// acquireLock to embed a fast, non-cryptographic process fingerprint in
// the advisory lock file (see lock.go), so a stale lock left by a dead
// process can be told apart from one held by a live one sharing the
// same PID after PID reuse.
func quickHash(s string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(s))
}
