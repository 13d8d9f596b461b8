package mousefsm

import "testing"

func TestCompletePacket(t *testing.T) {
	var f FSM
	f.Feed(0x08) // byte0, always-1 bit set, no buttons
	f.Feed(10)   // dx
	// dy = -5 as a two's-complement byte
	pkt, ok := f.Feed(0xFB)
	if !ok {
		t.Fatal("expected packet completion on third byte")
	}
	if pkt.DX != 10 || pkt.DY != -5 {
		t.Fatalf("unexpected deltas dx=%d dy=%d", pkt.DX, pkt.DY)
	}
}

func TestByte0ResyncOnBadBit(t *testing.T) {
	var f FSM
	_, ok := f.Feed(0x00) // bit3 clear, must be discarded
	if ok {
		t.Fatal("should never complete from a discarded byte0")
	}
	// next byte must still be treated as a candidate byte0, not byte1
	_, ok = f.Feed(0x08)
	if ok {
		t.Fatal("byte0 accepted should not itself complete a packet")
	}
	_, ok = f.Feed(1)
	if ok {
		t.Fatal("byte1 should not complete a packet")
	}
	pkt, ok := f.Feed(2)
	if !ok {
		t.Fatal("expected completion on third accepted byte")
	}
	if pkt.DX != 1 || pkt.DY != 2 {
		t.Fatalf("unexpected packet after resync: %+v", pkt)
	}
}

func TestButtonBits(t *testing.T) {
	var f FSM
	f.Feed(0x08 | 0x01 | 0x02) // always-1 + left + right
	f.Feed(0)
	pkt, _ := f.Feed(0)
	if !pkt.LeftButton || !pkt.RightButton || pkt.MiddleButton {
		t.Fatalf("unexpected button state: %+v", pkt)
	}
}
