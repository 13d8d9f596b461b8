package bitfield

import "testing"

func TestPackPTEFlags(t *testing.T) {
	cases := []struct {
		name     string
		flags    PTEFlags
		expected uint32
	}{
		{"all clear", PTEFlags{}, 0},
		{"present only", PTEFlags{Present: true}, 0x1},
		{"present+writable", PTEFlags{Present: true, Writable: true}, 0x3},
		{"present+writable+user", PTEFlags{Present: true, Writable: true, User: true}, 0x7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := PackPTEFlags(c.flags)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.expected {
				t.Fatalf("got 0x%x, want 0x%x", got, c.expected)
			}
		})
	}
}

func TestPTEFlagsRoundTrip(t *testing.T) {
	original := PTEFlags{Present: true, Writable: true, User: false, Reserved: 0x1234}
	packed, err := PackPTEFlags(original)
	if err != nil {
		t.Fatal(err)
	}
	got := UnpackPTEFlags(packed)
	if got.Present != original.Present || got.Writable != original.Writable || got.User != original.User {
		t.Fatalf("round trip mismatch: %+v != %+v", got, original)
	}
}

func TestPackGDTAccessKernelCode(t *testing.T) {
	// Kernel code segment: present, ring 0, code/data type, executable, readable.
	f := GDTAccess{
		Present:        true,
		DPL:            0,
		DescriptorType: true,
		Executable:     true,
		ReadWrite:      true,
	}
	got, err := PackGDTAccess(f)
	if err != nil {
		t.Fatal(err)
	}
	const want = 0x9A // standard x86 kernel-code access byte
	if got != want {
		t.Fatalf("got 0x%02x, want 0x%02x", got, want)
	}
}

func TestPackGDTAccessUserData(t *testing.T) {
	f := GDTAccess{
		Present:        true,
		DPL:            3,
		DescriptorType: true,
		Executable:     false,
		ReadWrite:      true,
	}
	got, err := PackGDTAccess(f)
	if err != nil {
		t.Fatal(err)
	}
	const want = 0xF2 // standard x86 ring-3 data access byte
	if got != want {
		t.Fatalf("got 0x%02x, want 0x%02x", got, want)
	}
}

func TestGDTAccessRoundTrip(t *testing.T) {
	original := GDTAccess{Present: true, DPL: 3, DescriptorType: true, Executable: true, ReadWrite: true, Accessed: false, DirConform: false}
	packed, err := PackGDTAccess(original)
	if err != nil {
		t.Fatal(err)
	}
	got := UnpackGDTAccess(packed)
	if got != original {
		t.Fatalf("round trip mismatch: %+v != %+v", got, original)
	}
}

func TestDPLOverflowRejected(t *testing.T) {
	_, err := PackGDTAccess(GDTAccess{DPL: 4}) // only 2 bits available
	if err == nil {
		t.Fatal("expected error for out-of-range DPL")
	}
}
