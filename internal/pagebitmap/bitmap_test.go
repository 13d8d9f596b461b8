package pagebitmap

import "testing"

func TestAllocFirstFit(t *testing.T) {
	b := New(0x100000, 4)

	a0, ok := b.Alloc()
	if !ok || a0 != 0x100000 {
		t.Fatalf("first alloc = %#x, %v", a0, ok)
	}
	a1, ok := b.Alloc()
	if !ok || a1 != 0x101000 {
		t.Fatalf("second alloc = %#x, %v", a1, ok)
	}

	b.Free(a0)
	a2, ok := b.Alloc()
	if !ok || a2 != a0 {
		t.Fatalf("first-fit should reuse freed low page, got %#x", a2)
	}
}

func TestAllocExhaustion(t *testing.T) {
	b := New(0, 2)
	b.Alloc()
	b.Alloc()
	if _, ok := b.Alloc(); ok {
		t.Fatal("expected allocation failure once bitmap is full")
	}
	if b.FreePages() != 0 || b.UsedPages() != 2 {
		t.Fatalf("unexpected counters: used=%d free=%d", b.UsedPages(), b.FreePages())
	}
}

func TestFreeInvariant(t *testing.T) {
	b := New(0x100000, 16)
	for i := 0; i < 16; i++ {
		b.Alloc()
	}
	addr := uint32(0x100000 + 5*PageSize)
	b.Free(addr)
	if b.UsedPages()+b.FreePages() != b.TotalPages() {
		t.Fatal("used + free != total")
	}
	a, ok := b.Alloc()
	if !ok || a != addr {
		t.Fatalf("expected to reallocate freed page %#x, got %#x", addr, a)
	}
}

func TestFreeOutOfRangeIsNoop(t *testing.T) {
	b := New(0x100000, 4)
	b.Free(0) // below managed region
	b.Free(0x100000 + 4*PageSize)
	if b.UsedPages() != 0 {
		t.Fatal("out-of-range free must not change counters")
	}
}

func TestRoundTrip(t *testing.T) {
	b := New(0x100000, 8)
	addr, _ := b.Alloc()
	usedBefore, freeBefore := b.UsedPages(), b.FreePages()
	b.Free(addr)
	b.Reserve(addr) // re-allocate via Reserve to exercise that path too
	b.Free(addr)
	if b.UsedPages() != usedBefore-1 || b.FreePages() != freeBefore+1 {
		t.Fatal("alloc/free round trip left counters inconsistent")
	}
}
