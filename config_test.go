// Configuration defaults tests.
//
// Config controls compaction threshold, read buffer size, sync
// writes, and the logger. These tests verify that defaults are
// applied when Config{} is passed, custom values override defaults,
// and the store is functional with each variant.
package kvs

import (
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()

	if c.CompactionThreshold != defaultCompactionThreshold {
		t.Errorf("CompactionThreshold = %d, want %d", c.CompactionThreshold, defaultCompactionThreshold)
	}
	if c.ReadBuffer != defaultReadBuffer {
		t.Errorf("ReadBuffer = %d, want %d", c.ReadBuffer, defaultReadBuffer)
	}
	if c.SyncWrites {
		t.Error("SyncWrites default = true, want false")
	}
	if c.Logger == nil {
		t.Error("Logger default is nil, want slog.Default()")
	}
}

func TestConfigCustomValuesOverrideDefaults(t *testing.T) {
	c := Config{CompactionThreshold: 123, ReadBuffer: 456, SyncWrites: true}.withDefaults()

	if c.CompactionThreshold != 123 {
		t.Errorf("CompactionThreshold = %d, want 123", c.CompactionThreshold)
	}
	if c.ReadBuffer != 456 {
		t.Errorf("ReadBuffer = %d, want 456", c.ReadBuffer)
	}
	if !c.SyncWrites {
		t.Error("SyncWrites = false, want true")
	}
}

func TestConfigSyncWritesIsFunctional(t *testing.T) {
	s := openTestStore(t, Config{SyncWrites: true})

	if !s.config.SyncWrites {
		t.Fatal("SyncWrites not propagated to store")
	}
	if err := s.Set("k", "v"); err != nil {
		t.Errorf("Set with SyncWrites: %v", err)
	}
}

func TestConfigCustomReadBuffer(t *testing.T) {
	s := openTestStore(t, Config{ReadBuffer: 128 * 1024})

	if s.config.ReadBuffer != 128*1024 {
		t.Errorf("ReadBuffer = %d, want %d", s.config.ReadBuffer, 128*1024)
	}
}

// TestLargeValueRoundTrips verifies a multi-megabyte value round-trips
// through Set/Get. This exercises the buffered reader's ability to
// satisfy a readExact larger than its internal buffer.
func TestLargeValueRoundTrips(t *testing.T) {
	s := openTestStore(t, Config{})

	value := strings.Repeat("x", 2*1024*1024)
	if err := s.Set("large", value); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := s.Get("large")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || len(got) != len(value) {
		t.Errorf("Get large value: ok=%v len=%d, want len=%d", ok, len(got), len(value))
	}
}
