// Package pagebitmap implements the physical-page bitmap allocator: one bit
// per 4 KiB page covering a contiguous region starting at a configurable
// base address. It is pure, pointer-free logic so it can run under the
// hosted Go toolchain; kernel/physmem.go wires it to the real physical address
// space on the freestanding side.
package pagebitmap

const PageSize = 4096

// Bitmap tracks allocation state for a contiguous run of pages starting at
// Base. A set bit means the page is allocated.
type Bitmap struct {
	base  uint32
	bits  []uint32
	total uint32
	used  uint32
}

// New creates a bitmap covering npages pages starting at physical address
// base. base and npages are the caller's responsibility to choose so that
// the covered range does not overlap reserved memory (the kernel image, the
// bitmap's own backing storage, or the heap).
func New(base uint32, npages uint32) *Bitmap {
	words := (npages + 31) / 32
	return &Bitmap{
		base:  base,
		bits:  make([]uint32, words),
		total: npages,
	}
}

func (b *Bitmap) test(i uint32) bool {
	return b.bits[i/32]&(1<<(i%32)) != 0
}

func (b *Bitmap) set(i uint32) {
	b.bits[i/32] |= 1 << (i % 32)
}

func (b *Bitmap) clear(i uint32) {
	b.bits[i/32] &^= 1 << (i % 32)
}

// Reserve marks the page at the given physical address as allocated without
// consuming it through Alloc. Used at boot to reserve the kernel image, the
// bitmap itself, and other fixed regions. Addresses outside the managed
// range are ignored.
func (b *Bitmap) Reserve(phys uint32) {
	if phys < b.base {
		return
	}
	i := (phys - b.base) / PageSize
	if i >= b.total {
		return
	}
	if !b.test(i) {
		b.set(i)
		b.used++
	}
}

// Alloc scans for the lowest clear bit, sets it, and returns the physical
// address of that page. Returns (0, false) when no page is free — the
// allocator never reuses a set bit.
func (b *Bitmap) Alloc() (uint32, bool) {
	for i := uint32(0); i < b.total; i++ {
		if !b.test(i) {
			b.set(i)
			b.used++
			return b.base + i*PageSize, true
		}
	}
	return 0, false
}

// Free clears the bit for the page at phys. Freeing an address outside the
// managed region, or an address that is already free, is a silent no-op.
func (b *Bitmap) Free(phys uint32) {
	if phys < b.base {
		return
	}
	i := (phys - b.base) / PageSize
	if i >= b.total {
		return
	}
	if b.test(i) {
		b.clear(i)
		b.used--
	}
}

func (b *Bitmap) TotalPages() uint32 { return b.total }
func (b *Bitmap) UsedPages() uint32  { return b.used }
func (b *Bitmap) FreePages() uint32  { return b.total - b.used }
