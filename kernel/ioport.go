package main

// Port I/O and CPU control primitives. Bodyless declarations backed by
// ioport_386.s, the same split gopheros uses for its asm-backed gate
// package (HandleInterrupt, installIDT, dispatchInterrupt have no Go
// body either) rather than mazarin's go:linkname-to-externally-named-symbol
// style — there is nothing here that needs a different assembly symbol
// name than its Go declaration, so the plain declaration is the simpler
// idiom.

//go:nosplit
func outb(port uint16, val uint8)

//go:nosplit
func inb(port uint16) uint8

//go:nosplit
func outw(port uint16, val uint16)

//go:nosplit
func inw(port uint16) uint16

//go:nosplit
func cli()

//go:nosplit
func sti()

//go:nosplit
func hlt()

// ioWait gives the CPU a few cycles to let a port write land, the
// standard "write to an unused port" trick.
//
//go:nosplit
func ioWait() {
	outb(0x80, 0)
}

// lgdt loads the GDTR from a 6-byte pseudo-descriptor {limit, base}.
//
//go:nosplit
func lgdt(ptr uintptr)

// lidt loads the IDTR the same way.
//
//go:nosplit
func lidt(ptr uintptr)

// ltr loads the task register with a GDT selector.
//
//go:nosplit
func ltr(selector uint16)

// loadCR3 loads the page-directory base register.
//
//go:nosplit
func loadCR3(pageDirPhys uint32)

// enablePaging sets CR0.PG (bit 31), turning on paging with CR3 already
// loaded.
//
//go:nosplit
func enablePaging()

// flushTLB reloads CR3 with its current value, the simplest full flush.
//
//go:nosplit
func flushTLB()
