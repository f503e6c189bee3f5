package mapindex_test

import (
	"testing"

	a1c "github.com/terrelln/a1-cbor"
	"github.com/terrelln/a1-cbor/mapindex"
)

func buildMap(t *testing.T, arena a1c.Arena, n int) (*a1c.Item, *a1c.Map) {
	t.Helper()
	item, m := a1c.NewMap(n, arena)
	if item == nil {
		t.Fatalf("NewMap failed")
	}
	for i := 0; i < n; i++ {
		m.Keys[i].SetUint64(uint64(i))
		if !m.Values[i].SetString(string(rune('a'+i)), arena) {
			t.Fatalf("SetString failed")
		}
	}
	return item, m
}

func TestIndexMatchesLinearScan(t *testing.T) {
	arena := a1c.NewHeapArena()
	_, m := buildMap(t, arena, 10)

	idx, err := mapindex.Build(m)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	for i := 0; i < 10; i++ {
		key := a1c.Item{Type: a1c.ItemUint64, Uint64: uint64(i)}
		want := m.Get(key)
		got := idx.Get(key)
		if want == nil || got == nil {
			t.Fatalf("key %d: want=%v got=%v", i, want, got)
		}
		if string(want.String) != string(got.String) {
			t.Fatalf("key %d: linear scan and index disagree: %q vs %q", i, want.String, got.String)
		}
	}
}

func TestIndexMissingKey(t *testing.T) {
	arena := a1c.NewHeapArena()
	_, m := buildMap(t, arena, 3)
	idx, err := mapindex.Build(m)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	missing := a1c.Item{Type: a1c.ItemUint64, Uint64: 999}
	if idx.Get(missing) != nil {
		t.Fatalf("expected nil for a missing key")
	}
}

func TestIndexCrossTypeKeyEquality(t *testing.T) {
	arena := a1c.NewHeapArena()
	item, m := a1c.NewMap(1, arena)
	_ = item
	m.Keys[0].SetUint64(7)
	if !m.Values[0].SetString("seven", arena) {
		t.Fatalf("SetString failed")
	}
	idx, err := mapindex.Build(m)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	// a non-negative int64 key must hit the same bucket as the uint64 it
	// was built with, per a1c.Equal's cross-type rule.
	key := a1c.Item{Type: a1c.ItemInt64, Int64: 7}
	got := idx.Get(key)
	if got == nil || string(got.String) != "seven" {
		t.Fatalf("got %v, want \"seven\"", got)
	}
}
