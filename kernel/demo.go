package main

import "unsafe"

// The supplemental two-task scheduler demo (SPEC_FULL.md §5), grounded
// on original_source/kernel/shell.c's demo_task_a/demo_task_b and
// kernel/userland.c's userland_main/userland_spawn: two kernel threads
// counting concurrently, plus a ring-3 process exercising SYS_WRITE and
// SYS_EXIT end to end.

const demoBusyLoop = 2000000

//go:nosplit
func demoBusyWait(n int) {
	for i := 0; i < n; i++ {
	}
}

func demoTaskA() {
	for count := 0; count < 50; count++ {
		termPutString("Task A: ")
		termPutString(decimalString(uint32(count)))
		termPutString("\n")
		demoBusyWait(demoBusyLoop / 4)
	}
}

func demoTaskB() {
	for count := 0; count < 50; count++ {
		termPutString("Task B: ")
		termPutString(decimalString(uint32(count)))
		termPutString("\n")
		demoBusyWait(demoBusyLoop / 4)
	}
}

// userSyscall is implemented in syscall_user_386.s: it traps via int
// 0x80 with EAX=num, EBX/ECX as the call's two arguments, and returns
// whatever the gate left in EAX.
//
//go:nosplit
func userSyscall(num, ebx, ecx uint32) uint32

//go:nosplit
func userPrint(s string) {
	if len(s) == 0 {
		return
	}
	ptr := uint32(uintptr(unsafe.Pointer(unsafe.StringData(s))))
	userSyscall(sysWrite, ptr, uint32(len(s)))
}

// userlandMain runs at CS.RPL==3 once scheduled (spec §8 example 2): it
// writes a few lines back through the syscall gate and exits.
//
//go:nosplit
func userlandMain() {
	userPrint("Hello from Ring 3!\n")
	userPrint("User-mode process running.\n")
	for i := 0; i < 5; i++ {
		userPrint("  User tick\n")
		demoBusyWait(demoBusyLoop)
	}
	userPrint("User process exiting.\n")
	userSyscall(sysExit, 0, 0)
	for {
	}
}

// cmdDemo is the shell's "demo" command: spawn both kernel threads and
// the ring-3 process, then return control to the shell, which keeps
// running concurrently once the scheduler is live.
func cmdDemo() {
	if procTable == nil || !procTable.Multitask {
		termPutString("Multitasking not initialized.\n")
		return
	}

	termPutString("Starting multitasking demo...\n")
	termPutString("Two tasks will count concurrently.\n\n")

	pidA, okA := processCreate(demoTaskA, "demo_A")
	pidB, okB := processCreate(demoTaskB, "demo_B")
	if !okA || !okB {
		termPutString("Failed to create demo tasks.\n")
		return
	}

	entryAddr := funcAddr(userlandMain)
	pidU, okU := processCreateUser(entryAddr, "user_demo")
	if !okU {
		termPutString("Failed to create user demo process.\n")
		return
	}

	termPutString("Created tasks: A=")
	termPutString(decimalString(uint32(pidA)))
	termPutString(" B=")
	termPutString(decimalString(uint32(pidB)))
	termPutString(" user=")
	termPutString(decimalString(uint32(pidU)))
	termPutString("\n")
	termPutString("Shell continues to run concurrently.\n")
}
