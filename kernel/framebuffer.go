package main

import "unsafe"

// Pixel primitives over the linear framebuffer the bootloader reports,
// grounded on the teacher's WritePixel/WritePixelAlpha (colors are
// XRGB8888, matching colors.go, rather than the teacher's ARGB — this
// kernel never blends against a transparent backdrop below the
// desktop, so the top byte is always ignored on read and write).
var (
	fbBase          uintptr
	fbWidth         uint32
	fbHeight        uint32
	fbPitch         uint32
	fbActive        bool // true once a linear framebuffer is mapped and usable
	screenWidth     int32
	screenHeight    int32
)

// framebufferInit maps the framebuffer the bootloader described (spec
// §4.5/§6: map_region's only caller) and wires the screen dimensions
// every other subsystem (mouse clamp, window manager, terminal) reads.
// Returns false when bootinfo carried no vesa_mode framebuffer, in
// which case the caller falls back to VGA text mode.
//
//go:nosplit
func framebufferInit(bi bootinfoRecord) bool {
	if bi.VesaMode == 0 || bi.FBAddr == 0 {
		return false
	}
	size := bi.Pitch * bi.Height
	size = (size + 4095) &^ 4095
	flags := ptePresentRW()
	if !mapRegion(bi.FBAddr, bi.FBAddr, size, flags) {
		return false
	}

	fbBase = uintptr(bi.FBAddr)
	fbWidth = bi.Width
	fbHeight = bi.Height
	fbPitch = bi.Pitch
	fbActive = true
	screenWidth = int32(bi.Width)
	screenHeight = int32(bi.Height)
	return true
}

//go:nosplit
func writePixel(x, y uint32, color uint32) {
	if !fbActive || x >= fbWidth || y >= fbHeight {
		return
	}
	off := uintptr(y)*uintptr(fbPitch) + uintptr(x)*4
	*(*uint32)(unsafe.Pointer(fbBase + off)) = color & 0x00FFFFFF
}

// writePixelAlpha blends color (top byte = alpha, 0 transparent, 255
// opaque) over the existing pixel — used for the window drop shadow
// (spec §4.11).
//
//go:nosplit
func writePixelAlpha(x, y uint32, color uint32) {
	if !fbActive || x >= fbWidth || y >= fbHeight {
		return
	}
	alpha := (color >> 24) & 0xFF
	if alpha == 0 {
		return
	}
	if alpha == 255 {
		writePixel(x, y, color)
		return
	}

	off := uintptr(y)*uintptr(fbPitch) + uintptr(x)*4
	ptr := (*uint32)(unsafe.Pointer(fbBase + off))
	dst := *ptr

	srcR, srcG, srcB := (color>>16)&0xFF, (color>>8)&0xFF, color&0xFF
	dstR, dstG, dstB := (dst>>16)&0xFF, (dst>>8)&0xFF, dst&0xFF
	inv := 256 - alpha

	r := (srcR*alpha + dstR*inv) / 256
	g := (srcG*alpha + dstG*inv) / 256
	b := (srcB*alpha + dstB*inv) / 256
	*ptr = (r << 16) | (g << 8) | b
}

// fillRect paints an axis-aligned rectangle a solid color, clipped to
// the screen. Used by the compositor for the desktop, borders, title
// bars, and taskbar buttons.
//
//go:nosplit
func fillRect(x, y, w, h int32, color uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	for row := y; row < y+h; row++ {
		if row < 0 || row >= screenHeight {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= screenWidth {
				continue
			}
			writePixel(uint32(col), uint32(row), color)
		}
	}
}

// renderChar draws one 8x8 glyph with a transparent background —
// unset bits are simply skipped rather than painted, so text composites
// over whatever the compositor already drew (spec §4.11: glyphs sit on
// top of title bars, buttons, and the desktop gradient alike).
//
//go:nosplit
func renderChar(c byte, x, y int32, color uint32) {
	if c >= 128 {
		return
	}
	glyph := fontBitmaps[c]
	for row := 0; row < 8; row++ {
		rowBits := glyph[row]
		if rowBits == 0 {
			continue
		}
		for col := 0; col < 8; col++ {
			if rowBits&(1<<uint(7-col)) == 0 {
				continue
			}
			px, py := x+int32(col), y+int32(row)
			if px < 0 || py < 0 || px >= screenWidth || py >= screenHeight {
				continue
			}
			writePixel(uint32(px), uint32(py), color)
		}
	}
}

// renderString draws s left to right starting at (x, y), 8 pixels per
// glyph, with no wrapping — callers that need wrapping (the terminal)
// handle it themselves.
//
//go:nosplit
func renderString(s string, x, y int32, color uint32) {
	cx := x
	for i := 0; i < len(s); i++ {
		renderChar(s[i], cx, y, color)
		cx += 8
	}
}
