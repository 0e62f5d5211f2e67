package kvs

import "log/slog"

// Config holds Store configuration options. The zero value is valid:
// Open fills in defaults for every unset field, the same pattern the
// teacher's folio.Config uses.
type Config struct {
	// CompactionThreshold is the number of stale bytes that triggers a
	// synchronous compaction inside the mutating call that reaches it,
	// before that call returns.
	// Default 1 MiB, matching spec.md's fixed implementation constant.
	CompactionThreshold int64

	// ReadBuffer sizes the buffered reader used for each generation
	// file. Default 64 KiB.
	ReadBuffer int

	// SyncWrites, when true, calls fsync on the active generation file
	// after every flush, strengthening durability beyond the baseline
	// flush-only contract. Default false.
	SyncWrites bool

	// Logger receives structured lifecycle and compaction events. If
	// nil, Open uses slog.Default().
	Logger *slog.Logger
}

const defaultCompactionThreshold = 1 << 20 // 1 MiB
const defaultReadBuffer = 64 * 1024

func (c Config) withDefaults() Config {
	if c.CompactionThreshold <= 0 {
		c.CompactionThreshold = defaultCompactionThreshold
	}
	if c.ReadBuffer <= 0 {
		c.ReadBuffer = defaultReadBuffer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
