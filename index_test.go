// In-memory index tests.
package kvs

import "testing"

func TestIndexSetAndGet(t *testing.T) {
	ix := newIndex()

	loc := location{gen: 1, offset: 10, length: 20}
	if _, existed := ix.set("k", loc); existed {
		t.Error("set on fresh index reported existed=true")
	}

	got, ok := ix.get("k")
	if !ok || got != loc {
		t.Errorf("get = (%+v, %v), want (%+v, true)", got, ok, loc)
	}
}

func TestIndexSetReturnsPriorLocation(t *testing.T) {
	ix := newIndex()
	first := location{gen: 1, offset: 0, length: 10}
	second := location{gen: 1, offset: 10, length: 15}

	ix.set("k", first)
	prev, existed := ix.set("k", second)
	if !existed || prev != first {
		t.Errorf("set returned (%+v, %v), want (%+v, true)", prev, existed, first)
	}

	got, _ := ix.get("k")
	if got != second {
		t.Errorf("get after overwrite = %+v, want %+v", got, second)
	}
}

func TestIndexRemove(t *testing.T) {
	ix := newIndex()
	loc := location{gen: 1, offset: 0, length: 10}
	ix.set("k", loc)

	prev, existed := ix.remove("k")
	if !existed || prev != loc {
		t.Errorf("remove returned (%+v, %v), want (%+v, true)", prev, existed, loc)
	}

	if _, ok := ix.get("k"); ok {
		t.Error("get after remove still reports key present")
	}
}

func TestIndexRemoveMissingKey(t *testing.T) {
	ix := newIndex()
	if _, existed := ix.remove("absent"); existed {
		t.Error("remove on absent key reported existed=true")
	}
}

func TestIndexLen(t *testing.T) {
	ix := newIndex()
	if ix.len() != 0 {
		t.Fatalf("len of fresh index = %d, want 0", ix.len())
	}

	ix.set("a", location{})
	ix.set("b", location{})
	if ix.len() != 2 {
		t.Errorf("len = %d, want 2", ix.len())
	}

	ix.remove("a")
	if ix.len() != 1 {
		t.Errorf("len after remove = %d, want 1", ix.len())
	}
}

func TestIndexSortedIsAscending(t *testing.T) {
	ix := newIndex()
	for _, k := range []string{"charlie", "alpha", "bravo"} {
		ix.set(k, location{})
	}

	got := ix.sorted()
	want := []string{"alpha", "bravo", "charlie"}
	if len(got) != len(want) {
		t.Fatalf("sorted() returned %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sorted()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
