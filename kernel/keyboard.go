package main

import "kernel386/internal/scancode"

const keyboardDataPort = 0x60

var kbDecoder scancode.Decoder

// kbRing is the fixed-capacity byte ring backing getkey/getchar (spec
// §3/§4.9). A full ring drops new bytes, same policy as the event queue.
var (
	kbRing       [KeyboardRingCapacity]byte
	kbHead, kbTail, kbCount uint32
)

//go:nosplit
func kbRingPush(c byte) {
	if kbCount == uint32(len(kbRing)) {
		return
	}
	kbRing[kbTail] = c
	kbTail = (kbTail + 1) % uint32(len(kbRing))
	kbCount++
}

//go:nosplit
func kbRingPop() (byte, bool) {
	if kbCount == 0 {
		return 0, false
	}
	c := kbRing[kbHead]
	kbHead = (kbHead + 1) % uint32(len(kbRing))
	kbCount--
	return c, true
}

func keyboardInit() {
	registerIRQ(1, keyboardISR)
	picUnmask(1)
}

// keyboardISR reads one scancode byte, feeds it through the decoder, and
// on a printable key-down pushes the character both into the ring (for
// getkey/getchar) and as an event (spec §4.9).
//
//go:nosplit
func keyboardISR(frame *IntFrame) {
	sc := inb(keyboardDataPort)
	c, ok := kbDecoder.Feed(sc)
	if !ok {
		return
	}
	kbRingPush(c)
	pushEvent(eventKey(c))
}

// getkey is the non-blocking read backing SYS_GETKEY: returns the next
// buffered character, or 0 if none is available (spec §4.8).
//
//go:nosplit
func getkey() byte {
	c, ok := kbRingPop()
	if !ok {
		return 0
	}
	return c
}

// getchar blocks (via hlt, spec §5) until a key is available.
func getchar() byte {
	for {
		if c, ok := kbRingPop(); ok {
			return c
		}
		hlt()
	}
}
