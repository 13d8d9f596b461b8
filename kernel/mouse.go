package main

import "kernel386/internal/mousefsm"

const (
	ps2DataPort   = 0x60
	ps2StatusPort = 0x64
	ps2CmdPort    = 0x64

	ps2CmdWriteAux    = 0xD4
	ps2CmdReadConfig  = 0x20
	ps2CmdWriteConfig = 0x60
	ps2CmdEnableAux   = 0xA8

	mouseReset       = 0xFF
	mouseSetDefaults = 0xF6
	mouseEnable      = 0xF4

	statusOutputFull = 0x01
	statusInputFull  = 0x02
	statusAuxData    = 0x20
)

var mouseFSM mousefsm.FSM

var (
	mouseX, mouseY int32
	mouseButtons   [3]bool
)

//go:nosplit
func ps2WaitInputClear() {
	for inb(ps2StatusPort)&statusInputFull != 0 {
	}
}

//go:nosplit
func ps2WaitOutputFull() {
	for inb(ps2StatusPort)&statusOutputFull == 0 {
	}
}

//go:nosplit
func mouseWriteCmd(b byte) {
	ps2WaitInputClear()
	outb(ps2CmdPort, ps2CmdWriteAux)
	ps2WaitInputClear()
	outb(ps2DataPort, b)
	ps2WaitOutputFull()
	inb(ps2DataPort) // discard ACK
}

// mouseInit enables the PS/2 aux device, unmasks its IRQ (12) in the
// controller's configuration byte, then resets and enables the mouse
// itself (spec §4.9/§6).
//
//go:nosplit
func mouseInit(screenW, screenH int32) {
	ps2WaitInputClear()
	outb(ps2CmdPort, ps2CmdEnableAux)

	ps2WaitInputClear()
	outb(ps2CmdPort, ps2CmdReadConfig)
	ps2WaitOutputFull()
	cfg := inb(ps2DataPort)
	cfg |= 1 << 1  // enable IRQ12
	cfg &^= 1 << 5 // unmask mouse clock

	ps2WaitInputClear()
	outb(ps2CmdPort, ps2CmdWriteConfig)
	ps2WaitInputClear()
	outb(ps2DataPort, cfg)

	mouseWriteCmd(mouseReset)
	mouseWriteCmd(mouseSetDefaults)
	mouseWriteCmd(mouseEnable)

	mouseX = screenW / 2
	mouseY = screenH / 2

	registerIRQ(12, mouseISR)
	picUnmask(12)
}

// mouseISR preserves the original's one-byte-per-IRQ quirk exactly as
// spec §9 requires: it is invoked once per IRQ12 and feeds the FSM a
// single byte, gated on the controller status bit that confirms the
// byte came from the aux (mouse) device.
//
//go:nosplit
func mouseISR(frame *IntFrame) {
	status := inb(ps2StatusPort)
	if status&statusAuxData == 0 {
		return
	}
	b := inb(ps2DataPort)

	pkt, ok := mouseFSM.Feed(b)
	if !ok {
		return
	}

	mouseX += int32(pkt.DX)
	mouseY -= int32(pkt.DY)
	clampMouseToScreen()
	pushEvent(eventMouseMove(mouseX, mouseY))

	updateButton(0, pkt.LeftButton)
	updateButton(1, pkt.RightButton)
	updateButton(2, pkt.MiddleButton)
}

//go:nosplit
func clampMouseToScreen() {
	if mouseX < 0 {
		mouseX = 0
	}
	if mouseY < 0 {
		mouseY = 0
	}
	if mouseX >= screenWidth {
		mouseX = screenWidth - 1
	}
	if mouseY >= screenHeight {
		mouseY = screenHeight - 1
	}
}

//go:nosplit
func updateButton(idx int, pressed bool) {
	if mouseButtons[idx] != pressed {
		mouseButtons[idx] = pressed
		pushEvent(eventMouseButton(idx, pressed))
	}
}
