package a1c

import "testing"

func TestArenaEmptyAllocationIsStableNonNil(t *testing.T) {
	arena := NewHeapArena()
	a := arena.alloc(0)
	b := arena.alloc(0)
	if a == nil || b == nil {
		t.Fatalf("zero-byte alloc must return a stable non-nil sentinel")
	}
	if len(a) != 0 || len(b) != 0 {
		t.Fatalf("zero-byte alloc must have length 0")
	}
}

func TestArenaAllocZeroed(t *testing.T) {
	arena := NewHeapArena()
	b := arena.Calloc(16)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, v)
		}
	}
}

func TestLimitedArenaRefusesOverLimit(t *testing.T) {
	limited := NewLimitedArena(NewHeapArena(), 10)
	arena := limited.Arena()
	if arena.alloc(10) == nil {
		t.Fatalf("alloc(10) under a 10-byte limit must succeed")
	}
	if arena.alloc(1) != nil {
		t.Fatalf("alloc(1) over budget must fail")
	}
	if limited.AllocatedBytes() != 10 {
		t.Fatalf("AllocatedBytes = %d, want 10", limited.AllocatedBytes())
	}
}

func TestLimitedArenaReset(t *testing.T) {
	limited := NewLimitedArena(NewHeapArena(), 10)
	arena := limited.Arena()
	if arena.alloc(10) == nil {
		t.Fatalf("first alloc should succeed")
	}
	limited.Reset()
	if limited.AllocatedBytes() != 0 {
		t.Fatalf("Reset must zero the counter")
	}
	if arena.alloc(10) == nil {
		t.Fatalf("alloc after reset should succeed again")
	}
}

func TestLimitedArenaZeroMeansUnbounded(t *testing.T) {
	limited := NewLimitedArena(NewHeapArena(), 0)
	arena := limited.Arena()
	if arena.alloc(1 << 20) == nil {
		t.Fatalf("a zero limit must mean unbounded")
	}
}

func TestLimitedArenaOverflowChecked(t *testing.T) {
	limited := NewLimitedArena(NewHeapArena(), ^uint64(0))
	limited.allocated = 1
	arena := limited.Arena()
	if arena.alloc(^uint64(0)) != nil {
		t.Fatalf("allocated+requested overflow must fail, not wrap")
	}
}

func TestArenaAllocNOverflowChecked(t *testing.T) {
	arena := NewHeapArena()
	if arena.allocN(^uint64(0), 2) != nil {
		t.Fatalf("count*size overflow must fail")
	}
	if arena.allocN(0, 100) == nil {
		t.Fatalf("count=0 must succeed trivially (empty sentinel)")
	}
}

func TestHeapArenaRefusesPathologicalSizeInsteadOfPanicking(t *testing.T) {
	arena := NewHeapArena()
	if arena.Calloc(maxHeapAllocBytes+1) != nil {
		t.Fatalf("a request over maxHeapAllocBytes must fail, not allocate")
	}
	if arena.Calloc(^uint64(0)) != nil {
		t.Fatalf("an enormous request must fail gracefully, not panic")
	}
}

func TestDecodeHugeAnnouncedArrayFailsGracefully(t *testing.T) {
	// Major 4 (array), short_count 26 (4-byte count): announces
	// 0x7FFFFFFF elements with no element bytes present at all.
	dec := NewDecoder(NewHeapArena(), DecodeOptions{})
	_, err := dec.Decode(mustHex(t, "9a7fffffff"))
	if err == nil {
		t.Fatalf("expected an error (badAlloc), not a successful decode")
	}
	aerr, ok := errType(err)
	if !ok || aerr.Type != ErrBadAlloc {
		t.Fatalf("got %v, want ErrBadAlloc", err)
	}
}

func TestCallocFailurePropagates(t *testing.T) {
	failing := Arena{Calloc: func(uint64) []byte { return nil }}
	if failing.alloc(4) != nil {
		t.Fatalf("a failing backing Calloc must propagate nil")
	}
	limited := NewLimitedArena(failing, 0)
	if limited.Arena().alloc(4) != nil {
		t.Fatalf("a passthrough limited arena must also propagate nil")
	}
}
