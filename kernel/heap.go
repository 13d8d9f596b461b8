package main

import (
	"unsafe"

	"kernel386/internal/heapalloc"
)

// kheap is the first-fit coalescing heap described by the core spec §4.6,
// laid over the region [kheapBase, kheapBase+KernelHeapSize). Block
// bookkeeping lives in internal/heapalloc; this file only turns block
// handles (payload offsets) into real addresses within the region and
// back.
var (
	kheap     *heapalloc.Heap
	kheapBase uintptr
)

// heapInit lays the heap over the region starting at heapStart. Called
// once during boot, after paging and the physical allocator are up.
//
//go:nosplit
func heapInit(heapStart uintptr) {
	kheapBase = heapStart
	kheap = heapalloc.New(KernelHeapSize)
}

// kmalloc allocates size bytes and returns the payload address, or nil on
// exhaustion. kmalloc(0) returns nil (spec §4.6/§8 boundary behavior).
//
//go:nosplit
func kmalloc(size uint32) unsafe.Pointer {
	if kheap == nil || size == 0 {
		return nil
	}
	h, ok := kheap.Alloc(size)
	if !ok {
		return nil
	}
	return unsafe.Pointer(kheapBase + uintptr(h))
}

// kfree releases memory obtained from kmalloc. kfree(nil) is a no-op. The
// handle heapalloc.Free expects is the block's payload offset, which is
// exactly ptr's offset from kheapBase, mirroring how the pointer-linked-
// list original recovers a header by address.
//
//go:nosplit
func kfree(ptr unsafe.Pointer) {
	if ptr == nil || kheap == nil {
		return
	}
	kheap.Free(heapalloc.Handle(uintptr(ptr) - kheapBase))
}

// heapUsedBytes / heapFreeBytes back the "meminfo" shell command and the
// window manager's System Info panel (spec §4.11).
func heapUsedBytes() uint32 {
	if kheap == nil {
		return 0
	}
	return kheap.UsedBytes()
}

func heapFreeBytes() uint32 {
	if kheap == nil {
		return 0
	}
	return kheap.FreeBytes()
}
