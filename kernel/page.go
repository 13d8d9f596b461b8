package main

import (
	"unsafe"

	"kernel386/internal/bitfield"
)

// Identity paging, per spec §4.5: a single page directory at a fixed
// physical address, the first IdentityMapMiB of memory identity-mapped by
// initial page tables, and an on-demand region mapper (used only for the
// framebuffer) that draws extra page tables from a fixed bump pool.

const (
	pageEntries     = 1024
	initialPageTabs = IdentityMapMiB / 4 // each table maps 4 MiB
)

type pageDirectory [pageEntries]uint32
type pageTable [pageEntries]uint32

var (
	pageDir      pageDirectory
	initialPTs   [initialPageTabs]pageTable
	extraPTs     [ExtraPageTablePoolSize]pageTable
	extraPTsUsed int
)

func ptePresentRW() uint32 {
	f, _ := bitfield.PackPTEFlags(bitfield.PTEFlags{Present: true, Writable: true})
	return f
}

// pagingInit writes the initial identity-mapped page tables, installs
// them in the low PDE slots, loads CR3 and sets CR0.PG.
//
//go:nosplit
func pagingInit() {
	flags := ptePresentRW()
	for t := 0; t < initialPageTabs; t++ {
		for i := 0; i < pageEntries; i++ {
			phys := uint32(t*pageEntries+i) * 4096
			initialPTs[t][i] = phys | flags
		}
		pageDir[t] = uint32(uintptr(unsafe.Pointer(&initialPTs[t]))) | flags
	}
	for i := initialPageTabs; i < pageEntries; i++ {
		pageDir[i] = 0
	}

	loadCR3(uint32(uintptr(unsafe.Pointer(&pageDir))))
	enablePaging()
}

// allocExtraPageTable draws the next page table from the fixed bump pool
// map_region uses once a virtual range falls outside the initial identity
// map. Returns nil once the pool is exhausted (spec §9: "must set a hard
// cap and fail map_region cleanly when it's exhausted").
//
//go:nosplit
func allocExtraPageTable() *pageTable {
	if extraPTsUsed >= ExtraPageTablePoolSize {
		return nil
	}
	pt := &extraPTs[extraPTsUsed]
	extraPTsUsed++
	return pt
}

// mapRegion maps size bytes starting at virt to phys with the given PTE
// flags, page by page, allocating page tables from the bump pool as
// needed. Returns false (and leaves any already-mapped pages mapped) if
// the pool is exhausted partway through — the spec requires map_region to
// fail cleanly rather than map_region partially without any exhausted
// call ever reaching faulting code.
//
//go:nosplit
func mapRegion(virt, phys, size, flags uint32) bool {
	flags |= ptePresentRW() & 0x1 // ensure PRESENT bit regardless of caller flags
	for off := uint32(0); off < size; off += 4096 {
		v := virt + off
		p := phys + off
		pdIdx := (v >> 22) & 0x3FF
		ptIdx := (v >> 12) & 0x3FF

		if pageDir[pdIdx] == 0 {
			pt := allocExtraPageTable()
			if pt == nil {
				return false
			}
			for i := range pt {
				pt[i] = 0
			}
			pageDir[pdIdx] = uint32(uintptr(unsafe.Pointer(pt))) | ptePresentRW()
		}
		ptBase := uintptr(pageDir[pdIdx] &^ 0xFFF)
		pt := (*pageTable)(unsafe.Pointer(ptBase))
		pt[ptIdx] = p | flags
	}
	flushTLB()
	return true
}
