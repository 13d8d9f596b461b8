package main

import (
	"unsafe"

	"kernel386/internal/eventqueue"
	"kernel386/internal/wm"
)

// The compositor: wraps internal/wm.Manager with real heap-allocated
// backing buffers and paints the composed frame to the framebuffer
// (spec §4.11). Window z-order/hit-test decisions stay in internal/wm;
// this file owns pixels, the taskbar, the cursor, and the System Info
// panel.

const (
	colorDesktopTop    = 0x002B2B55
	colorDesktopBottom = 0x00111133
	colorTitleActive   = 0x002D5D9E
	colorTitleInactive = 0x00555566
	colorBorder        = 0x00333333
	colorShadow        = 0x60000000
	colorTaskbar       = 0x00202030
	colorTaskbarHi     = 0x003A3A55
	colorCloseGlyph    = AnsiBrightRed
)

var (
	winMgr       *wm.Manager
	winBuffers   [MaxWindows]unsafe.Pointer
	sysInfoIdx   = -1
	dragIdx      = -1
	lastMouseX   int32
	lastMouseY   int32
)

func wmInit() {
	winMgr = wm.NewManager(MaxWindows, screenWidth, screenHeight)
	idx, ok := winMgr.Create(40, 40, 280, 160, "System Info")
	if ok {
		sysInfoIdx = idx
		allocWindowBuffer(idx)
	}
}

func allocWindowBuffer(idx int) {
	w := &winMgr.Windows[idx]
	size := uint32(w.ContentW) * uint32(w.ContentH) * 4
	winBuffers[idx] = kmalloc(size)
}

func freeWindowBuffer(idx int) {
	if winBuffers[idx] != nil {
		kfree(winBuffers[idx])
		winBuffers[idx] = nil
	}
}

//go:nosplit
func windowSetPixel(idx int, x, y int32, color uint32) {
	w := &winMgr.Windows[idx]
	if x < 0 || y < 0 || x >= w.ContentW || y >= w.ContentH || winBuffers[idx] == nil {
		return
	}
	off := uintptr(y)*uintptr(w.ContentW)*4 + uintptr(x)*4
	*(*uint32)(unsafe.Pointer(uintptr(winBuffers[idx]) + off)) = color
}

// wmCreateWindow is create_window's public entry point (spec §4.11/
// §4.12: fails the same way the heap does, by returning false).
func wmCreateWindow(x, y, w, h int32, title string) (int, bool) {
	idx, ok := winMgr.Create(x, y, w, h, title)
	if !ok {
		return -1, false
	}
	allocWindowBuffer(idx)
	if winBuffers[idx] == nil {
		winMgr.Destroy(idx)
		return -1, false
	}
	return idx, true
}

func wmDestroyWindow(idx int) {
	freeWindowBuffer(idx)
	winMgr.Destroy(idx)
	if idx == sysInfoIdx {
		sysInfoIdx = -1
	}
}

// wmHandleEvent applies one polled input event to hit-testing, dragging,
// focus and window destruction (spec §4.11); desktopLoop drains the queue.
func wmHandleEvent(e eventqueue.Event) {
	switch e.Kind {
	case eventqueue.MouseMove:
		if dragIdx >= 0 {
			winMgr.DragTo(dragIdx, e.X-lastMouseX, e.Y-lastMouseY)
		}
		lastMouseX, lastMouseY = e.X, e.Y

	case eventqueue.MouseButton:
		if e.ButtonIndex != 0 {
			return
		}
		if e.Pressed {
			idx, action := winMgr.HitTest(lastMouseX, lastMouseY)
			switch action {
			case wm.HitTaskbarButton:
				// Same button layout paintTaskbar draws.
				bx := int32(4)
				for _, zi := range winMgr.ZOrder {
					if lastMouseX >= bx && lastMouseX < bx+100 {
						winMgr.BringToFront(zi)
						break
					}
					bx += 104
				}
			case wm.HitClose:
				wmDestroyWindow(idx)
			case wm.HitTitleBar:
				dragIdx = idx
			}
		} else {
			dragIdx = -1
		}
	}
}

// wmTick runs the periodic background repaint (spec §4.11: every 50
// ticks, the System Info window refreshes).
func wmTick(ticks uint32) {
	if ticks%WMInfoRefreshTicks == 0 && sysInfoIdx >= 0 {
		paintSysInfo(sysInfoIdx)
	}
}

func paintSysInfo(idx int) {
	w := &winMgr.Windows[idx]
	for y := int32(0); y < w.ContentH; y++ {
		for x := int32(0); x < w.ContentW; x++ {
			windowSetPixel(idx, x, y, FramebufferBackgroundColor)
		}
	}
	lines := []string{
		"uptime: " + decimalString(tickCount/TimerHz) + "s",
		"free mem: " + decimalString(freePages()*4) + " KB",
		"heap free: " + decimalString(heapFreeBytes()) + " B",
		"procs: " + decimalString(uint32(procRunningCount())),
		"screen: " + decimalString(uint32(screenWidth)) + "x" + decimalString(uint32(screenHeight)),
		"mouse: " + decimalString(uint32(lastMouseX)) + "," + decimalString(uint32(lastMouseY)),
		"windows: " + decimalString(uint32(winMgr.NumWindows())),
	}
	for i, line := range lines {
		renderStringIntoWindow(idx, line, 4, int32(4+i*10))
	}
	w.Dirty = true
}

func procRunningCount() int {
	if procTable == nil {
		return 0
	}
	return procTable.RunningCount()
}

func renderStringIntoWindow(idx int, s string, x, y int32) {
	cx := x
	for i := 0; i < len(s); i++ {
		glyph := fontBitmaps[s[i]]
		for row := 0; row < 8; row++ {
			bits := glyph[row]
			for col := 0; col < 8; col++ {
				if bits&(1<<uint(7-col)) != 0 {
					windowSetPixel(idx, cx+int32(col), y+int32(row), FramebufferTextColor)
				}
			}
		}
		cx += 8
	}
}

// compositeFrame is the per-frame draw in the exact order spec §4.11
// specifies: desktop, windows back-to-front, taskbar, cursor.
func compositeFrame() {
	if !fbActive {
		return
	}
	paintDesktop()
	for _, idx := range winMgr.ZOrder {
		paintWindow(idx)
	}
	paintTaskbar()
	paintCursor()
}

func paintDesktop() {
	top := screenHeight - taskbarPx
	for y := int32(0); y < top; y++ {
		t := y * 255 / maxI32(top, 1)
		color := lerpColor(colorDesktopTop, colorDesktopBottom, t)
		for x := int32(0); x < screenWidth; x++ {
			writePixel(uint32(x), uint32(y), color)
		}
	}
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func lerpColor(a, b uint32, t int32) uint32 {
	ar, ag, ab := (a>>16)&0xFF, (a>>8)&0xFF, a&0xFF
	br, bg, bb := (b>>16)&0xFF, (b>>8)&0xFF, b&0xFF
	r := (ar*uint32(255-t) + br*uint32(t)) / 255
	g := (ag*uint32(255-t) + bg*uint32(t)) / 255
	bl := (ab*uint32(255-t) + bb*uint32(t)) / 255
	return (r << 16) | (g << 8) | bl
}

const (
	shadowOffset = 3
	titleBarPx   = wm.TitleBarPx
	borderPx     = wm.BorderPx
	closeBoxPx   = wm.CloseBoxPx
	taskbarPx    = wm.TaskbarPx
)

func paintWindow(idx int) {
	w := &winMgr.Windows[idx]
	if !w.Visible {
		return
	}

	for sy := w.Y + shadowOffset; sy < w.Y+shadowOffset+w.H; sy++ {
		for sx := w.X + shadowOffset; sx < w.X+shadowOffset+w.W; sx++ {
			if sx >= 0 && sy >= 0 {
				writePixelAlpha(uint32(sx), uint32(sy), colorShadow)
			}
		}
	}
	fillRect(w.X, w.Y, w.W, w.H, colorBorder)

	titleColor := uint32(colorTitleInactive)
	if w.Focused {
		titleColor = colorTitleActive
	}
	fillRect(w.X+borderPx, w.Y+borderPx, w.W-2*borderPx, titleBarPx-borderPx, titleColor)
	renderString(w.Title, w.X+borderPx+2, w.Y+borderPx+2, AnsiBrightWhite)

	closeX := w.X + w.W - closeBoxPx
	fillRect(closeX, w.Y+borderPx, closeBoxPx, closeBoxPx, colorCloseGlyph)

	blitWindowContent(idx)
}

func blitWindowContent(idx int) {
	w := &winMgr.Windows[idx]
	if winBuffers[idx] == nil {
		return
	}
	contentX := w.X + borderPx
	contentY := w.Y + titleBarPx
	for y := int32(0); y < w.ContentH; y++ {
		for x := int32(0); x < w.ContentW; x++ {
			off := uintptr(y)*uintptr(w.ContentW)*4 + uintptr(x)*4
			px := *(*uint32)(unsafe.Pointer(uintptr(winBuffers[idx]) + off))
			sx, sy := contentX+x, contentY+y
			if sx >= 0 && sy >= 0 && sx < screenWidth && sy < screenHeight {
				writePixel(uint32(sx), uint32(sy), px)
			}
		}
	}
}

func paintTaskbar() {
	y := screenHeight - taskbarPx
	fillRect(0, y, screenWidth, taskbarPx, colorTaskbar)

	bx := int32(4)
	for _, idx := range winMgr.ZOrder {
		w := &winMgr.Windows[idx]
		bw := int32(100)
		color := uint32(colorTaskbar)
		if w.Focused {
			color = colorTaskbarHi
		}
		fillRect(bx, y+4, bw, taskbarPx-8, color)
		renderString(w.Title, bx+4, y+10, AnsiWhite)
		bx += bw + 4
	}

	clock := formatClock(tickCount / TimerHz)
	renderString(clock, screenWidth-80, y+10, AnsiBrightCyan)
}

func formatClock(totalSeconds uint32) string {
	h := (totalSeconds / 3600) % 24
	m := (totalSeconds / 60) % 60
	s := totalSeconds % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(v uint32) string {
	s := decimalString(v)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// cursorBitmap is a 12x19 two-tone mouse pointer: 1 = outline
// (black), 2 = fill (white), 0 = transparent.
var cursorBitmap = [19][12]byte{
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 2, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 2, 2, 2, 1, 0, 0, 0, 0, 0, 0, 0},
	{1, 2, 2, 2, 2, 1, 0, 0, 0, 0, 0, 0},
	{1, 2, 2, 2, 2, 2, 1, 0, 0, 0, 0, 0},
	{1, 2, 2, 2, 2, 2, 2, 1, 0, 0, 0, 0},
	{1, 2, 2, 2, 2, 2, 2, 2, 1, 0, 0, 0},
	{1, 2, 2, 2, 2, 2, 2, 2, 2, 1, 0, 0},
	{1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 0},
	{1, 2, 2, 1, 2, 2, 1, 0, 0, 0, 0, 0},
	{1, 2, 1, 0, 1, 2, 2, 1, 0, 0, 0, 0},
	{1, 1, 0, 0, 1, 2, 2, 1, 0, 0, 0, 0},
	{1, 0, 0, 0, 0, 1, 2, 2, 1, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 2, 2, 1, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

func paintCursor() {
	for row := 0; row < 19; row++ {
		for col := 0; col < 12; col++ {
			switch cursorBitmap[row][col] {
			case 1:
				writePixel(uint32(lastMouseX+int32(col)), uint32(lastMouseY+int32(row)), AnsiBlack)
			case 2:
				writePixel(uint32(lastMouseX+int32(col)), uint32(lastMouseY+int32(row)), AnsiBrightWhite)
			}
		}
	}
}
