package heapalloc

import "testing"

func TestAllocZeroFails(t *testing.T) {
	h := New(4096)
	if _, ok := h.Alloc(0); ok {
		t.Fatal("Alloc(0) must fail")
	}
}

func TestRoundTripLeavesUsedUnchanged(t *testing.T) {
	h := New(4096)
	before := h.UsedBytes()
	idx, ok := h.Alloc(64)
	if !ok {
		t.Fatal("alloc failed")
	}
	h.Free(idx)
	if h.UsedBytes() != before {
		t.Fatalf("used bytes changed after round trip: %d != %d", h.UsedBytes(), before)
	}
}

func TestSpanInvariant(t *testing.T) {
	h := New(4096)
	a, _ := h.Alloc(100)
	b, _ := h.Alloc(200)
	if h.SpanBytes() != h.RegionSize() {
		t.Fatalf("span %d != region %d", h.SpanBytes(), h.RegionSize())
	}
	h.Free(a)
	h.Free(b)
	if h.SpanBytes() != h.RegionSize() {
		t.Fatalf("span %d != region %d after free", h.SpanBytes(), h.RegionSize())
	}
}

func TestCoalescingScenario(t *testing.T) {
	// Allocate three 256-byte blocks A, B, C; free B then A then C;
	// a subsequent alloc of 768+2*header must succeed (spec scenario 6).
	h := New(4096)
	a, _ := h.Alloc(256)
	b, _ := h.Alloc(256)
	c, _ := h.Alloc(256)

	h.Free(b)
	h.Free(a)
	h.Free(c)

	if n := h.NumBlocks(); n != 1 {
		t.Fatalf("expected full coalesce into 1 block, got %d blocks", n)
	}

	if _, ok := h.Alloc(768 + 2*HeaderSize); !ok {
		t.Fatal("expected post-coalesce allocation to succeed")
	}
}

// TestHandleSurvivesIntermediateCoalesce guards against a handle going
// stale when an earlier Free triggers a merge that shifts every later
// block's slice position: C's handle must still resolve to C's block
// after A and B have already coalesced out from under it.
func TestHandleSurvivesIntermediateCoalesce(t *testing.T) {
	h := New(4096)
	a, _ := h.Alloc(256)
	b, _ := h.Alloc(256)
	c, _ := h.Alloc(256)

	h.Free(a)
	h.Free(b) // merges a+b, shifting c's old slice position down by one

	if h.BlockFree(1) {
		t.Fatal("c should still be allocated before its own Free")
	}

	h.Free(c)
	if n := h.NumBlocks(); n != 1 {
		t.Fatalf("expected c's Free to reach its own block and fully coalesce, got %d blocks", n)
	}
}

func TestNoAdjacentFreeBlocksSurvive(t *testing.T) {
	h := New(8192)
	idxs := make([]Handle, 0, 8)
	for i := 0; i < 8; i++ {
		idx, ok := h.Alloc(64)
		if !ok {
			t.Fatalf("alloc %d failed", i)
		}
		idxs = append(idxs, idx)
	}
	for _, idx := range idxs {
		h.Free(idx)
	}
	for i := 0; i+1 < h.NumBlocks(); i++ {
		if h.BlockFree(i) && h.BlockFree(i+1) {
			t.Fatalf("adjacent free blocks at %d,%d survived coalescing", i, i+1)
		}
	}
}

func TestSplitSuppressedWhenRemainderTooSmall(t *testing.T) {
	h := New(128)
	// Region payload is 128-HeaderSize. Alloc almost everything so the
	// remainder after the request is smaller than HeaderSize+MinSplitPayload.
	full := h.BlockSize(0)
	idx, ok := h.Alloc(full - 10)
	if !ok {
		t.Fatal("alloc failed")
	}
	if h.NumBlocks() != 1 {
		t.Fatalf("expected split to be suppressed, got %d blocks", h.NumBlocks())
	}
	h.Free(idx)
}
