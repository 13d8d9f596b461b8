// Package heapalloc implements the first-fit, coalescing kernel heap
// described by the core spec's heap block model. Per the design notes on
// the original pointer-linked-list implementation ("use arena + index...
// to avoid aliasing hazards"), blocks are held in a slice; kernel/heap.go
// writes no header bytes to physical memory and leaves all of the
// bookkeeping to this package, only adding a Handle to the region base.
//
// Callers identify a block by its payload byte offset (a Handle), not by
// its position in the block slice: coalescing splices the slice and
// shifts every later block's position, but a block's own payload offset
// never moves (merging a free neighbor absorbs its header into the
// surviving block's size, so the total span up to and including any
// later block is unchanged). A positional index would go stale across an
// intervening Free that triggers a merge; the offset-keyed Handle is
// exactly what kernel/heap.go's kfree recovers as the pointer's offset
// from the region base.
package heapalloc

// HeaderSize is the accounting overhead per block, mirroring the
// {size, free flag, next pointer} header the core spec mandates. It is
// counted against the region budget but never reported as used/free
// payload.
const HeaderSize = 12

// MinSplitPayload is the smallest payload a split-off remainder block may
// keep; splitting a larger free block is suppressed otherwise (spec: "Heap
// split suppressed when remaining < header+16").
const MinSplitPayload = 16

type block struct {
	size uint32 // payload size, 4-byte aligned
	free bool
}

// Handle identifies a block by its payload byte offset from the start of
// the region. Unlike a slice index, it stays valid across intervening
// Free calls that trigger coalescing.
type Handle uint32

// Heap is the coalescing first-fit allocator. Block 0 always exists and
// initially spans the whole region.
type Heap struct {
	regionSize uint32
	blocks     []block
}

// New creates a heap over a region of regionSize bytes. regionSize must be
// large enough to hold at least one header.
func New(regionSize uint32) *Heap {
	h := &Heap{regionSize: regionSize}
	h.blocks = []block{{size: regionSize - HeaderSize, free: true}}
	return h
}

func align4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// Alloc finds the first free block that fits size bytes (first-fit from the
// head), splitting it if the remainder can hold a header plus
// MinSplitPayload bytes. Returns a stable handle for the allocated block
// and true on success. Alloc(0) always fails, matching "kmalloc(0) -> null".
func (h *Heap) Alloc(size uint32) (Handle, bool) {
	if size == 0 {
		return 0, false
	}
	size = align4(size)

	for i := range h.blocks {
		b := &h.blocks[i]
		if !b.free || b.size < size {
			continue
		}
		remainder := b.size - size
		if remainder >= HeaderSize+MinSplitPayload {
			newBlock := block{size: remainder - HeaderSize, free: true}
			b.size = size
			h.blocks = append(h.blocks, block{})
			copy(h.blocks[i+2:], h.blocks[i+1:])
			h.blocks[i+1] = newBlock
		}
		h.blocks[i].free = false
		return Handle(h.BlockOffset(i)), true
	}
	return 0, false
}

// indexOf recovers the current slice position of the block whose payload
// starts at the given offset, or -1 if none matches (an unknown or
// already-coalesced-away handle is a silent no-op, matching the core
// spec's "freeing an address below the managed region is a silent
// no-op" policy).
func (h *Heap) indexOf(handle Handle) int {
	for i := range h.blocks {
		if h.BlockOffset(i) == uint32(handle) {
			return i
		}
	}
	return -1
}

// Free marks the block identified by handle free, then sweeps the list
// coalescing any pair of adjacent free blocks, walking until no merges
// occur (the spec's "single forward pass repeated until stable"; no
// cyclic list).
func (h *Heap) Free(handle Handle) {
	idx := h.indexOf(handle)
	if idx < 0 {
		return
	}
	h.blocks[idx].free = true
	h.coalesce()
}

func (h *Heap) coalesce() {
	for {
		merged := false
		for i := 0; i+1 < len(h.blocks); i++ {
			if h.blocks[i].free && h.blocks[i+1].free {
				h.blocks[i].size += HeaderSize + h.blocks[i+1].size
				h.blocks = append(h.blocks[:i+1], h.blocks[i+2:]...)
				merged = true
				break
			}
		}
		if !merged {
			return
		}
	}
}

// NumBlocks reports the current block-list length, for diagnostics and
// tests verifying coalescing collapsed adjacent free blocks.
func (h *Heap) NumBlocks() int { return len(h.blocks) }

// BlockSize reports the payload size of the block at idx.
func (h *Heap) BlockSize(idx int) uint32 { return h.blocks[idx].size }

// BlockFree reports whether the block at idx is free.
func (h *Heap) BlockFree(idx int) bool { return h.blocks[idx].free }

// UsedBytes sums payload bytes of allocated blocks. The core spec flags the
// used-byte accounting as ambiguous in the original C (incremented by
// post-split size in alloc, decremented by freed size in free); this
// package resolves it explicitly: heap_used tracks payload bytes only,
// never header overhead, so alloc/free of the same size is a no-op on the
// running total.
func (h *Heap) UsedBytes() uint32 {
	var used uint32
	for _, b := range h.blocks {
		if !b.free {
			used += b.size
		}
	}
	return used
}

// FreeBytes sums payload bytes of free blocks (header overhead excluded,
// consistent with UsedBytes).
func (h *Heap) FreeBytes() uint32 {
	var free uint32
	for _, b := range h.blocks {
		if b.free {
			free += b.size
		}
	}
	return free
}

// RegionSize returns the total byte size the heap was constructed over.
func (h *Heap) RegionSize() uint32 { return h.regionSize }

// BlockOffset returns the byte offset of block idx's payload from the
// start of the region (sum of header+payload size of every preceding
// block). Alloc uses it to produce a block's Handle, and Free resolves a
// Handle back to a block index by comparing against it.
func (h *Heap) BlockOffset(idx int) uint32 {
	var off uint32
	for i := 0; i < idx; i++ {
		off += HeaderSize + h.blocks[i].size
	}
	return off + HeaderSize
}

// SpanBytes returns payload-plus-header bytes across the whole block list;
// this must always equal RegionSize (spec invariant).
func (h *Heap) SpanBytes() uint32 {
	var total uint32
	for _, b := range h.blocks {
		total += b.size + HeaderSize
	}
	return total
}
