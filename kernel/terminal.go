package main

import "unsafe"

// terminal is the early text surface used before the window manager
// takes over (and the one the SYS_WRITE syscall and kernel panics
// always target, per spec §4.8/§4.12): either 8x8 glyphs scrolled over
// the framebuffer, or the VGA text-mode fallback, chosen once at boot
// depending on what framebufferInit found (spec §6).
const (
	termCharW = 8
	termCharH = 8
)

var (
	termCol, termRow   int32
	termCols, termRows int32
)

func terminalInit() {
	if fbActive {
		termCols = screenWidth / termCharW
		termRows = screenHeight / termCharH
		fillRect(0, 0, screenWidth, screenHeight, FramebufferBackgroundColor)
	} else {
		vgaClear()
	}
	termCol, termRow = 0, 0
}

//go:nosplit
func termScroll() {
	if !fbActive {
		return
	}
	rowBytes := uintptr(fbPitch) * termCharH
	for row := int32(1); row < termRows; row++ {
		dst := fbBase + uintptr(row-1)*rowBytes
		src := fbBase + uintptr(row)*rowBytes
		memcopyBytes(dst, src, uint32(rowBytes))
	}
	fillRect(0, (termRows-1)*termCharH, screenWidth, termCharH, FramebufferBackgroundColor)
}

// memcopyBytes is a small forward byte copy; freestanding code has no
// runtime memmove to call into for raw pointers like this.
//
//go:nosplit
func memcopyBytes(dst, src uintptr, n uint32) {
	for i := uint32(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(dst + uintptr(i))) = *(*byte)(unsafe.Pointer(src + uintptr(i)))
	}
}

//go:nosplit
func termPutChar(c byte) {
	if c == '\n' {
		termCol = 0
		termRow++
	} else if c >= 32 && c < 127 {
		if fbActive {
			renderChar(c, termCol*termCharW, termRow*termCharH, FramebufferTextColor)
		} else {
			vgaPutChar(c)
		}
		termCol++
		if termCol >= termCols {
			termCol = 0
			termRow++
		}
	}
	if !fbActive {
		return // vgaPutChar already scrolled itself
	}
	if termRow >= termRows {
		termScroll()
		termRow = termRows - 1
	}
}

//go:nosplit
func termPutString(s string) {
	for i := 0; i < len(s); i++ {
		termPutChar(s[i])
	}
}

//go:nosplit
func termPutHex(v uint32) {
	digits := hex32(v)
	for _, d := range digits {
		termPutChar(d)
	}
}
