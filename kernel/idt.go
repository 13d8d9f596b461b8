package main

import "unsafe"

const idtEntries = 256

// idtGate is the raw 8-byte x86 interrupt-gate descriptor.
type idtGate struct {
	offsetLow  uint16
	selector   uint16
	zero       uint8
	typeAttr   uint8
	offsetHigh uint16
}

var idt [idtEntries]idtGate

type idtPointer struct {
	limit uint16
	base  uint32
}

var idtPtr idtPointer

// 32-bit interrupt gate, present, kernel code selector. Type 0xE =
// 32-bit interrupt gate (clears IF on entry, unlike a trap gate).
const (
	gateTypeInterrupt32 = 0x0E
	gatePresent         = 0x80
)

func setIDTGate(n int, handler uint32, selector uint16, dpl uint8) {
	idt[n] = idtGate{
		offsetLow:  uint16(handler & 0xFFFF),
		selector:   selector,
		zero:       0,
		typeAttr:   gatePresent | (dpl << 5) | gateTypeInterrupt32,
		offsetHigh: uint16(handler >> 16),
	}
}

// idtInit zeros all 256 gates, then installs the exception stubs
// (0-31), IRQ stubs (32-47, after the PIC remap so they land where the
// hardware actually raises them), and the syscall gate (0x80, DPL 3 so
// ring-3 code can INT into it). Finally loads IDTR and enables
// interrupts (spec §4.1).
//
//go:nosplit
func idtInit() {
	for i := range idt {
		idt[i] = idtGate{}
	}

	for v := 0; v < 32; v++ {
		setIDTGate(v, isrTable[v], SelKernelCode, 0)
	}
	for v := 32; v < 48; v++ {
		setIDTGate(v, isrTable[v], SelKernelCode, 0)
	}
	setIDTGate(0x80, isrTable[48], SelKernelCode, 3)

	idtPtr.limit = uint16(unsafe.Sizeof(idt)) - 1
	idtPtr.base = uint32(uintptr(unsafe.Pointer(&idt[0])))
	lidt(uintptr(unsafe.Pointer(&idtPtr)))

	sti()
}
