// Package mousefsm implements the PS/2 mouse 3-byte packet assembler. The
// core spec (§9 design notes) explicitly preserves the original's quirk of
// reading one byte per call while only resyncing against byte 0's
// "always-1" bit — this package models exactly that one-byte-at-a-time
// cycle; kernel/mouse.go is the IRQ12 adapter that feeds it one byte per
// interrupt, gated on PS/2 status bit 5 as the real hardware requires.
package mousefsm

// Packet is a fully assembled 3-byte PS/2 mouse report.
type Packet struct {
	LeftButton   bool
	RightButton  bool
	MiddleButton bool
	DX           int8
	DY           int8
}

// FSM holds the 3-byte assembly cycle state.
type FSM struct {
	cycle int // 0, 1, 2
	b0    byte
	b1    byte
}

// Feed advances the assembler by one byte. It returns a completed Packet
// and ok=true only when byte 2 lands. Byte 0 is accepted only when bit 3
// (the "always-1" bit) is set; otherwise the byte is discarded and the
// cycle stays at 0 (resync policy — spec boundary behavior: "Mouse cycle
// discards byte 0 with bit 3 clear").
func (f *FSM) Feed(b byte) (Packet, bool) {
	switch f.cycle {
	case 0:
		if b&0x08 == 0 {
			return Packet{}, false
		}
		f.b0 = b
		f.cycle = 1
		return Packet{}, false
	case 1:
		f.b1 = b
		f.cycle = 2
		return Packet{}, false
	case 2:
		f.cycle = 0
		pkt := Packet{
			LeftButton:   f.b0&0x01 != 0,
			RightButton:  f.b0&0x02 != 0,
			MiddleButton: f.b0&0x04 != 0,
			DX:           int8(f.b1),
			DY:           int8(b),
		}
		return pkt, true
	}
	// Unreachable, but keep the FSM self-healing.
	f.cycle = 0
	return Packet{}, false
}
