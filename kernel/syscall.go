package main

import "unsafe"

// Syscall call numbers, per spec §4.8's int 0x80 gate: EAX selects the
// call, arguments arrive in EBX/ECX, and the result (or -1 for an
// unknown call number) goes back in EAX.
const (
	sysExit  = 0
	sysWrite = 1
	sysGetkey = 2
	sysYield = 3
)

// syscallDispatch implements the register ABI. It runs with interrupts
// disabled on the interrupting process's ring-0 stack, same as any
// other vector.
//
//go:nosplit
func syscallDispatch(frame *IntFrame) {
	switch frame.EAX {
	case sysExit:
		terminateCurrentProcess(frame)

	case sysWrite:
		ptr := uintptr(frame.EBX)
		n := frame.ECX
		for i := uint32(0); i < n; i++ {
			c := *(*byte)(unsafe.Pointer(ptr + uintptr(i)))
			termPutChar(c)
		}
		frame.EAX = n

	case sysGetkey:
		frame.EAX = uint32(getkey())

	case sysYield:
		schedule()
		frame.EAX = 0

	default:
		frame.EAX = 0xFFFFFFFF
	}
}
