package main

// Freestanding code has no fmt package (the kernel binary imports only
// the pure internal/ packages, none of which format text for it, so
// anything needing package fmt has to hand-roll it). These are the small
// string/number formatters the terminal, exception printer, and shell
// commands share — grounded on the teacher's own printHex32/itoa-style
// uart helpers, just retargeted at the terminal instead of a UART.

const hexDigits = "0123456789ABCDEF"

// hex32 renders v as 8 uppercase hex digits with no "0x" prefix.
func hex32(v uint32) [8]byte {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		shift := uint(28 - i*4)
		buf[i] = hexDigits[(v>>shift)&0xF]
	}
	return buf
}

// hex8 renders the low byte of v as 2 uppercase hex digits.
func hex8(v uint8) [2]byte {
	return [2]byte{hexDigits[(v>>4)&0xF], hexDigits[v&0xF]}
}

// uint32ToDecimal renders v in decimal into buf (which must be at least
// 10 bytes) and returns the slice actually used, buf[:digit count],
// starting at buf[0] (no leading zeros, "0" for zero).
func uint32ToDecimal(v uint32, buf []byte) []byte {
	if v == 0 {
		buf[0] = '0'
		return buf[:1]
	}
	var tmp [10]byte
	n := 0
	for v > 0 {
		tmp[n] = '0' + byte(v%10)
		v /= 10
		n++
	}
	for i := 0; i < n; i++ {
		buf[i] = tmp[n-1-i]
	}
	return buf[:n]
}

// decimalString is uint32ToDecimal for callers that want a string
// rather than a caller-supplied buffer (shell command output, mostly).
func decimalString(v uint32) string {
	var buf [10]byte
	return string(uint32ToDecimal(v, buf[:]))
}
