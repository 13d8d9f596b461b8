package main

// excNames gives the 32 architectural exception vectors their Intel
// manual names, used only for the fatal-fault printout below.
var excNames = [32]string{
	0: "divide error", 1: "debug", 2: "NMI", 3: "breakpoint",
	4: "overflow", 5: "bound range", 6: "invalid opcode",
	7: "device not available", 8: "double fault", 9: "coprocessor overrun",
	10: "invalid TSS", 11: "segment not present", 12: "stack fault",
	13: "general protection", 14: "page fault", 15: "reserved",
	16: "x87 fp", 17: "alignment check", 18: "machine check",
	19: "SIMD fp", 20: "virtualization",
}

func excName(n uint32) string {
	if n < uint32(len(excNames)) && excNames[n] != "" {
		return excNames[n]
	}
	return "reserved"
}

// fatalException handles a CPU exception taken while CS.RPL was 0 (spec
// §4.2/§4.12): kernel-mode faults are unrecoverable, so this prints what
// it can and halts forever rather than returning into a broken machine.
//
//go:nosplit
func fatalException(frame *IntFrame) {
	cli()
	termPutString("\n*** kernel panic: ")
	termPutString(excName(frame.IntNo))
	termPutString(" (vector 0x")
	termPutHex(frame.IntNo)
	termPutString(", error 0x")
	termPutHex(frame.ErrCode)
	termPutString(") at eip=0x")
	termPutHex(frame.EIP)
	termPutString(" ***\n")
	for {
		hlt()
	}
}
