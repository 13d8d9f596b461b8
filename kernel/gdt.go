package main

import (
	"unsafe"

	"kernel386/internal/bitfield"
)

// Segment selectors (index<<3 | RPL), matching the fixed GDT layout the
// core spec describes in §3/§4.1: null, kernel code/data, user code/data,
// one TSS descriptor.
const (
	selNull       = 0x00
	SelKernelCode = 0x08
	SelKernelData = 0x10
	SelUserCode   = 0x18 | 3
	SelUserData   = 0x20 | 3
	selTSS        = 0x28
)

const gdtEntries = 6

// gdtDescriptor is the raw 8-byte x86 segment descriptor layout.
type gdtDescriptor struct {
	limitLow   uint16
	baseLow    uint16
	baseMid    uint8
	access     uint8
	flagsLimit uint8
	baseHigh   uint8
}

var gdt [gdtEntries]gdtDescriptor

// gdtPointer is the 6-byte pseudo-descriptor LGDT expects.
type gdtPointer struct {
	limit uint16
	base  uint32
}

var gdtPtr gdtPointer

// tss is the single Task State Segment. Only esp0/ss0 (the ring-0 stack
// pointer used on ring-3 to ring-0 transitions) are meaningful here — the
// spec uses the TSS purely as a privilege-transition stack holder, not for
// hardware task switching.
type tss struct {
	prevTask uint16
	_        uint16
	esp0     uint32
	ss0      uint16
	_        uint16
	esp1     uint32
	ss1      uint16
	_        uint16
	esp2     uint32
	ss2      uint16
	_        uint16
	cr3      uint32
	eip      uint32
	eflags   uint32
	eax, ecx, edx, ebx uint32
	esp, ebp, esi, edi uint32
	es, cs, ss, ds, fs, gs uint16
	_, _, _, _, _, _       uint16
	ldt      uint16
	_        uint16
	trapIOMB uint16
	ioMapBase uint16
}

var kernelTSS tss

func setGDTEntry(i int, base uint32, limit uint32, access uint8, gran uint8) {
	gdt[i] = gdtDescriptor{
		limitLow:   uint16(limit & 0xFFFF),
		baseLow:    uint16(base & 0xFFFF),
		baseMid:    uint8((base >> 16) & 0xFF),
		access:     access,
		flagsLimit: uint8((limit>>16)&0x0F) | (gran & 0xF0),
		baseHigh:   uint8((base >> 24) & 0xFF),
	}
}

func accessByte(executable, user bool) uint8 {
	dpl := uint8(0)
	if user {
		dpl = 3
	}
	b, _ := bitfield.PackGDTAccess(bitfield.GDTAccess{
		Present:        true,
		DPL:            dpl,
		DescriptorType: true,
		Executable:     executable,
		ReadWrite:      true,
	})
	return b
}

// gdtInit populates the five segment descriptors plus the TSS descriptor,
// loads GDTR and the task register, and points the TSS at a safe
// bootstrap ring-0 stack (spec §4.1).
//
//go:nosplit
func gdtInit(bootstrapStackTop uint32) {
	setGDTEntry(0, 0, 0, 0, 0) // null

	const granByte = 0xC0 // 4K granularity, 32-bit

	setGDTEntry(1, 0, 0xFFFFF, accessByte(true, false), granByte)  // kernel code
	setGDTEntry(2, 0, 0xFFFFF, accessByte(false, false), granByte) // kernel data
	setGDTEntry(3, 0, 0xFFFFF, accessByte(true, true), granByte)   // user code
	setGDTEntry(4, 0, 0xFFFFF, accessByte(false, true), granByte)  // user data

	kernelTSS = tss{}
	kernelTSS.ss0 = SelKernelData
	kernelTSS.esp0 = bootstrapStackTop
	kernelTSS.ioMapBase = uint16(unsafe.Sizeof(tss{}))

	tssBase := uint32(uintptr(unsafe.Pointer(&kernelTSS)))
	tssLimit := uint32(unsafe.Sizeof(tss{})) - 1
	tssAccess, _ := bitfield.PackGDTAccess(bitfield.GDTAccess{
		Present:        true,
		DescriptorType: false, // system descriptor
		Executable:     true,  // TSS "type" low bit pattern (0x9 = available 32-bit TSS)
		Accessed:       true,
	})
	setGDTEntry(5, tssBase, tssLimit, tssAccess, 0x00)

	gdtPtr.limit = uint16(unsafe.Sizeof(gdt)) - 1
	gdtPtr.base = uint32(uintptr(unsafe.Pointer(&gdt[0])))

	lgdt(uintptr(unsafe.Pointer(&gdtPtr)))
	reloadSegments()
	ltr(selTSS)
}

// setKernelStack updates the TSS's ring-0 stack pointer. The scheduler
// calls this before each dispatch targeting a ring-3 process (spec §4.1
// invariant: TSS esp0 always equals the scheduled process's kernel-stack
// top).
//
//go:nosplit
func setKernelStack(esp0 uint32) {
	kernelTSS.esp0 = esp0
}

// reloadSegments is implemented in gdt_386.s: it far-jumps into the new
// code selector and reloads the data segment registers, the step every
// x86 GDT switch needs immediately after LGDT.
//
//go:nosplit
func reloadSegments()
