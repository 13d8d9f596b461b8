// Package scancode decodes PS/2 Set-1 keyboard scancodes into ASCII,
// tracking shift and caps-lock state across press/release edges. It is the
// pure decode logic behind kernel/keyboard.go's IRQ1 handler.
package scancode

const releaseBit = 0x80

const (
	leftShift  = 0x2A
	rightShift = 0x36
	capsLock   = 0x3A
)

// normal and shifted are 128-entry lookup tables indexed by the
// make-code (scancode with the release bit masked off). A 0 entry means
// the scancode does not produce a printable character.
var normal = [128]byte{
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0',
	0x0C: '-', 0x0D: '=', 0x0E: 8, // backspace
	0x0F: '\t',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't',
	0x15: 'y', 0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p',
	0x1A: '[', 0x1B: ']', 0x1C: '\n',
	0x1E: 'a', 0x1F: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x24: 'j', 0x25: 'k', 0x26: 'l', 0x27: ';',
	0x28: '\'', 0x29: '`',
	0x2B: '\\',
	0x2C: 'z', 0x2D: 'x', 0x2E: 'c', 0x2F: 'v', 0x30: 'b',
	0x31: 'n', 0x32: 'm', 0x33: ',', 0x34: '.', 0x35: '/',
	0x39: ' ',
}

var shifted = [128]byte{
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%',
	0x07: '^', 0x08: '&', 0x09: '*', 0x0A: '(', 0x0B: ')',
	0x0C: '_', 0x0D: '+', 0x0E: 8,
	0x0F: '\t',
	0x10: 'Q', 0x11: 'W', 0x12: 'E', 0x13: 'R', 0x14: 'T',
	0x15: 'Y', 0x16: 'U', 0x17: 'I', 0x18: 'O', 0x19: 'P',
	0x1A: '{', 0x1B: '}', 0x1C: '\n',
	0x1E: 'A', 0x1F: 'S', 0x20: 'D', 0x21: 'F', 0x22: 'G',
	0x23: 'H', 0x24: 'J', 0x25: 'K', 0x26: 'L', 0x27: ':',
	0x28: '"', 0x29: '~',
	0x2B: '|',
	0x2C: 'Z', 0x2D: 'X', 0x2E: 'C', 0x2F: 'V', 0x30: 'B',
	0x31: 'N', 0x32: 'M', 0x33: '<', 0x34: '>', 0x35: '?',
	0x39: ' ',
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func swapCase(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	if c >= 'A' && c <= 'Z' {
		return c + 32
	}
	return c
}

// Decoder holds the modifier state across calls to Feed.
type Decoder struct {
	shiftHeld bool
	capsLock  bool
}

// Feed processes one scancode byte and returns the decoded character and
// true if it produced a printable key-down event. Release scancodes
// (release bit set) update modifier state but never produce a character;
// non-shift key releases are ignored by modifier tracking (spec boundary
// behavior).
func (d *Decoder) Feed(sc byte) (ch byte, ok bool) {
	released := sc&releaseBit != 0
	code := sc &^ releaseBit

	switch code {
	case leftShift, rightShift:
		d.shiftHeld = !released
		return 0, false
	case capsLock:
		if !released {
			d.capsLock = !d.capsLock
		}
		return 0, false
	}

	if released {
		return 0, false
	}

	if int(code) >= len(normal) {
		return 0, false
	}

	var c byte
	if d.shiftHeld {
		c = shifted[code]
	} else {
		c = normal[code]
	}
	if c == 0 {
		return 0, false
	}
	if d.capsLock && isAlpha(c) {
		c = swapCase(c)
	}
	return c, true
}
