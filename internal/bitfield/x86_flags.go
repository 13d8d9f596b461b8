package bitfield

// PTEFlags are the flag bits of a page-directory or page-table entry, per
// the core spec's "entry = index x 4 KiB | PRESENT | RW" construction.
// Reserved carries the remaining bits up to a 32-bit word (the physical
// frame address is OR'd in by the caller, not represented here).
type PTEFlags struct {
	Present  bool   `bitfield:",1"`
	Writable bool   `bitfield:",1"`
	User     bool   `bitfield:",1"`
	Reserved uint32 `bitfield:",29"`
}

// PackPTEFlags packs f into the low bits of a page-table-entry flag word.
func PackPTEFlags(f PTEFlags) (uint32, error) {
	packed, err := Pack(f, &Config{NumBits: 32})
	return uint32(packed), err
}

// UnpackPTEFlags extracts the flag bits from a page-table entry's low
// 32 bits.
func UnpackPTEFlags(word uint32) PTEFlags {
	return PTEFlags{
		Present:  word&0x1 != 0,
		Writable: word&0x2 != 0,
		User:     word&0x4 != 0,
		Reserved: (word >> 3) & 0x1FFFFFFF,
	}
}

// GDTAccess is the x86 segment-descriptor access byte: present, privilege
// level, descriptor type, executable, and the direction/conforming +
// readable/writable pair — exactly the fields the core spec's kernel and
// user code/data descriptors and the TSS descriptor need.
type GDTAccess struct {
	Accessed       bool  `bitfield:",1"`
	ReadWrite      bool  `bitfield:",1"`
	DirConform     bool  `bitfield:",1"`
	Executable     bool  `bitfield:",1"`
	DescriptorType bool  `bitfield:",1"` // 1 = code/data, 0 = system (TSS)
	DPL            uint8 `bitfield:",2"`
	Present        bool  `bitfield:",1"`
}

// PackGDTAccess packs f into a single access byte.
func PackGDTAccess(f GDTAccess) (uint8, error) {
	packed, err := Pack(f, &Config{NumBits: 8})
	return uint8(packed), err
}

// UnpackGDTAccess extracts the access-byte fields back out, for tests and
// diagnostics.
func UnpackGDTAccess(b uint8) GDTAccess {
	return GDTAccess{
		Accessed:       b&0x01 != 0,
		ReadWrite:      b&0x02 != 0,
		DirConform:     b&0x04 != 0,
		Executable:     b&0x08 != 0,
		DescriptorType: b&0x10 != 0,
		DPL:            (b >> 5) & 0x3,
		Present:        b&0x80 != 0,
	}
}
