package main

// 8259A PIC remap and EOI, per spec §4.1/§6. Master IRQs land on vectors
// 32-39, slave on 40-47, with the cascade wired on IRQ 2.
const (
	pic1Cmd  = 0x20
	pic1Data = 0x21
	pic2Cmd  = 0xA0
	pic2Data = 0xA1

	picEOI = 0x20

	icw1Init = 0x11 // ICW4 needed, cascade mode, edge triggered
	icw4_8086 = 0x01
)

//go:nosplit
func picRemap() {
	outb(pic1Cmd, icw1Init)
	ioWait()
	outb(pic2Cmd, icw1Init)
	ioWait()

	outb(pic1Data, 32) // master offset: IRQ0 -> vector 32
	ioWait()
	outb(pic2Data, 40) // slave offset: IRQ8 -> vector 40
	ioWait()

	outb(pic1Data, 0x04) // tell master there's a slave at IRQ2
	ioWait()
	outb(pic2Data, 0x02) // tell slave its cascade identity
	ioWait()

	outb(pic1Data, icw4_8086)
	ioWait()
	outb(pic2Data, icw4_8086)
	ioWait()

	// Mask everything until individual drivers unmask the IRQs they own.
	outb(pic1Data, 0xFF)
	outb(pic2Data, 0xFF)
}

//go:nosplit
func picUnmask(irq uint8) {
	if irq < 8 {
		mask := inb(pic1Data)
		outb(pic1Data, mask&^(1<<irq))
		return
	}
	mask := inb(pic2Data)
	outb(pic2Data, mask&^(1<<(irq-8)))
	// The slave's cascade line (IRQ2 on the master) must stay unmasked
	// for any slave IRQ to reach the CPU.
	m1 := inb(pic1Data)
	outb(pic1Data, m1&^(1<<2))
}

// picSendEOI acknowledges irq. commonDispatch calls this before invoking
// the registered handler — the early-EOI rule spec §4.2 requires, since
// the timer handler may context-switch and never return through the
// stub epilogue.
//
//go:nosplit
func picSendEOI(irq uint8) {
	if irq >= 8 {
		outb(pic2Cmd, picEOI)
	}
	outb(pic1Cmd, picEOI)
}
