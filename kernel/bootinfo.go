package main

import "unsafe"

// bootinfoRecord mirrors the packed handoff record the bootloader
// deposits at BootinfoAddr before jumping to the kernel (spec §6): magic
// "BMYO", framebuffer physical address, dimensions, pitch, bpp, and a
// vesa_mode flag (0 = text, 1 = linear framebuffer). Parsing this layout
// is the bootloader's contract, not the kernel's — the core spec lists
// it as an external collaborator; this struct exists only to read it.
type bootinfoRecord struct {
	Magic      uint32
	FBAddr     uint32
	Width      uint32
	Height     uint32
	Pitch      uint32
	BPP        uint32
	VesaMode   uint32
	MemSizeMiB uint32
}

// readBootinfo loads the record at BootinfoAddr and reports whether its
// magic matched. A mismatch means no bootloader handoff happened (or a
// different one did) and the caller must fall back to VGA text mode.
//
//go:nosplit
func readBootinfo() (bootinfoRecord, bool) {
	bi := *(*bootinfoRecord)(unsafe.Pointer(uintptr(BootinfoAddr)))
	return bi, bi.Magic == BootinfoMagic
}
