// Compaction tests.
package kvs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompactReservesTwoGenerations(t *testing.T) {
	s := openTestStore(t, Config{CompactionThreshold: 1 << 30})

	s.Set("k", "v")
	before := s.activeGen

	if err := s.compact(); err != nil {
		t.Fatalf("compact: %v", err)
	}

	if s.activeGen != before+2 {
		t.Errorf("activeGen after compact = %d, want %d", s.activeGen, before+2)
	}
}

func TestCompactPreservesAllLiveKeys(t *testing.T) {
	s := openTestStore(t, Config{CompactionThreshold: 1 << 30})

	want := make(map[string]string)
	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("k%d", i)
		v := fmt.Sprintf("v%d", i)
		s.Set(k, v)
		want[k] = v
	}
	s.Remove("k0")
	delete(want, "k0")

	if err := s.compact(); err != nil {
		t.Fatalf("compact: %v", err)
	}

	for k, v := range want {
		got, ok, err := s.Get(k)
		if err != nil || !ok || got != v {
			t.Errorf("Get(%q) after compact = (%q, %v, %v), want (%q, true, nil)", k, got, ok, err, v)
		}
	}
	if _, ok, _ := s.Get("k0"); ok {
		t.Error("removed key k0 reappeared after compact")
	}
}

func TestCompactResetsStaleBytes(t *testing.T) {
	s := openTestStore(t, Config{CompactionThreshold: 1 << 30})

	s.Set("k", "v1")
	s.Set("k", "v2")
	if s.staleBytes == 0 {
		t.Fatal("expected stale bytes to accumulate before compact")
	}

	if err := s.compact(); err != nil {
		t.Fatalf("compact: %v", err)
	}
	if s.staleBytes != 0 {
		t.Errorf("staleBytes after compact = %d, want 0", s.staleBytes)
	}
}

func TestCompactRemovesOldGenerationFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, Config{CompactionThreshold: 1 << 30})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	s.Set("k", "v")
	oldGen := s.activeGen

	if err := s.compact(); err != nil {
		t.Fatalf("compact: %v", err)
	}

	if _, err := os.Stat(logPath(dir, oldGen)); !os.IsNotExist(err) {
		t.Errorf("old generation file %d.log still exists after compact", oldGen)
	}
}

// TestAutomaticCompactionTriggersAtThreshold verifies Set triggers
// compaction on its own once staleBytes crosses the
// configured threshold, without a caller ever calling compact
// directly.
func TestAutomaticCompactionTriggersAtThreshold(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, Config{CompactionThreshold: 2048})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	genBefore := s.activeGen
	padding := strings.Repeat("p", 64)
	for i := 0; i < 200; i++ {
		if err := s.Set("k", fmt.Sprintf("v%d-%s", i, padding)); err != nil {
			t.Fatalf("Set %d: %v", i, err)
		}
	}

	if s.activeGen <= genBefore {
		t.Error("expected at least one automatic compaction to have advanced activeGen")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	logCount := 0
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".log" {
			logCount++
		}
	}
	if logCount > 2 {
		t.Errorf("found %d generation files after automatic compaction, want at most 2", logCount)
	}
}
