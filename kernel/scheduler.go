package main

import (
	"unsafe"

	"kernel386/internal/proctable"
)

// procTable is the single round-robin process table the core spec
// describes in §4.7. contextSwitch never touches it directly; this file
// is the only place that translates a schedule decision into register
// save/restore.
var procTable *proctable.Table

// multitaskInit brings up the process table with slot 0 already claimed
// by the thread that called it (the boot thread), and arms the timer
// hook that drives preemption.
func multitaskInit(bootStackTop uint32) {
	procTable = proctable.NewTable()
	procTable.Slots[0].ESP = bootStackTop
	schedulerHook = schedule
}

// contextSwitch is implemented in context_switch_386.s: it saves the
// caller's callee-saved registers and stack pointer into *oldESPSlot,
// loads newESP, restores the incoming callee-saved registers, and RETs
// into whatever return address sits on top of the new stack.
//
//go:nosplit
func contextSwitch(oldESPSlot *uint32, newESP uint32)

// taskStartWrapper / userModeEnter / exitTrampoline are asm-only symbols
// (see context_switch_386.s); Go never calls them directly, it only
// needs their addresses to seed a synthetic stack, via the Addr
// variants below.
//
//go:nosplit
func taskStartWrapper()

//go:nosplit
func userModeEnter()

//go:nosplit
func exitTrampoline()

//go:nosplit
func taskStartWrapperAddr() uint32

//go:nosplit
func userModeEnterAddr() uint32

//go:nosplit
func exitTrampolineAddr() uint32

// startMultitasking flips the table into round-robin mode. Before this,
// Schedule always reports switched=false (spec §4.7: multitasking is
// off until explicitly enabled, so single-threaded boot code never
// fights the timer ISR over the stack it's running on).
func startMultitasking() {
	procTable.Multitask = true
}

// schedule is the scheduler hook timerISR invokes on every tick (spec
// §4.7). It runs on the interrupted stack with interrupts disabled, so
// it must never allocate or block.
//
//go:nosplit
func schedule() {
	if procTable == nil {
		return
	}
	oldIdx, newIdx, switched := procTable.Schedule()
	if !switched {
		return
	}
	if procTable.Slots[newIdx].IsUser {
		setKernelStack(procTable.Slots[newIdx].Ring0StackTop)
	}
	contextSwitch(&procTable.Slots[oldIdx].ESP, procTable.Slots[newIdx].ESP)
}

// pokeUint32 stores val at addr, used only while laying out a synthetic
// stack nobody else can observe yet.
//
//go:nosplit
func pokeUint32(addr uintptr, val uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = val
}

// funcAddr recovers a nullary func value's entry point. A Go func value
// is a pointer to a closure record whose first word is the code
// address; for the entry points used here (top-level functions with no
// captured variables) that word is the address callers actually want.
//
//go:nosplit
func funcAddr(fn func()) uint32 {
	closure := *(*uintptr)(unsafe.Pointer(&fn))
	return *(*uint32)(unsafe.Pointer(closure))
}

// processCreate spawns a kernel thread: a Ready descriptor whose saved
// stack pointer, once restored by contextSwitch, falls through
// taskStartWrapper straight into entry (spec §4.7 synthetic kernel
// thread stack layout).
func processCreate(entry func(), name string) (int, bool) {
	idx, ok := procTable.Alloc()
	if !ok {
		return -1, false
	}

	stackAddr := allocPage()
	if stackAddr == 0 {
		procTable.Slots[idx] = proctable.Descriptor{ID: idx, State: proctable.Unused}
		return -1, false
	}
	base := uintptr(stackAddr)
	top := base + uintptr(KernelThreadStackSize)

	entryAddr := funcAddr(entry)

	sp := top
	sp -= 4
	pokeUint32(sp, exitTrampolineAddr())
	sp -= 4
	pokeUint32(sp, entryAddr)
	sp -= 4
	pokeUint32(sp, taskStartWrapperAddr())
	sp -= 4
	pokeUint32(sp, 0) // EBP
	sp -= 4
	pokeUint32(sp, 0) // EDI
	sp -= 4
	pokeUint32(sp, 0) // ESI
	sp -= 4
	pokeUint32(sp, 0) // EBX

	d := &procTable.Slots[idx]
	d.Name = name
	d.ESP = uint32(sp)
	d.StackBase = uint32(base)
	d.StackSize = KernelThreadStackSize
	d.IsUser = false
	return idx, true
}

// processCreateUser spawns a ring-3 process with its own ring-3 and
// ring-0 stacks (spec §4.7). entryEIP is a physical/identity-mapped
// address in user code the caller has already loaded.
func processCreateUser(entryEIP uint32, name string) (int, bool) {
	idx, ok := procTable.Alloc()
	if !ok {
		return -1, false
	}

	userStackAddr := allocPage()
	ring0StackAddr := allocPage()
	if userStackAddr == 0 || ring0StackAddr == 0 {
		if userStackAddr != 0 {
			freePage(userStackAddr)
		}
		if ring0StackAddr != 0 {
			freePage(ring0StackAddr)
		}
		procTable.Slots[idx] = proctable.Descriptor{ID: idx, State: proctable.Unused}
		return -1, false
	}

	userTop := userStackAddr + UserStackSize
	ring0Base := uintptr(ring0StackAddr)
	ring0Top := ring0Base + uintptr(UserRing0StackSize)

	const eflagsIF = 1 << 9

	sp := ring0Top
	sp -= 4
	pokeUint32(sp, uint32(SelUserData)) // UserSS
	sp -= 4
	pokeUint32(sp, userTop) // UserESP
	sp -= 4
	pokeUint32(sp, eflagsIF) // EFLAGS
	sp -= 4
	pokeUint32(sp, uint32(SelUserCode)) // CS
	sp -= 4
	pokeUint32(sp, entryEIP) // EIP
	sp -= 4
	pokeUint32(sp, userModeEnterAddr())
	sp -= 4
	pokeUint32(sp, 0) // EBP
	sp -= 4
	pokeUint32(sp, 0) // EDI
	sp -= 4
	pokeUint32(sp, 0) // ESI
	sp -= 4
	pokeUint32(sp, 0) // EBX

	d := &procTable.Slots[idx]
	d.Name = name
	d.ESP = uint32(sp)
	d.StackBase = userStackAddr
	d.StackSize = UserStackSize
	d.IsUser = true
	d.Ring0StackBase = uint32(ring0Base)
	d.Ring0StackTop = uint32(ring0Top)
	return idx, true
}

// schedExit is exitTrampoline's call target and SYS_EXIT's handler
// (spec §4.7/§4.8): tear the current process down and pick the next
// Ready one. It never returns to its caller — the contextSwitch inside
// it lands somewhere else entirely.
//
//go:nosplit
func schedExit() {
	terminateProcess(procTable.Current)
}

// terminateCurrentProcess is dispatch.go's handler for a ring-3
// exception (spec §4.2: a user-mode fault kills the offending process
// instead of halting the kernel).
//
//go:nosplit
func terminateCurrentProcess(frame *IntFrame) {
	terminateProcess(procTable.Current)
}

//go:nosplit
func terminateProcess(idx int) {
	d := &procTable.Slots[idx]
	procTable.Exit(idx)

	stackBase := d.StackBase
	ring0Base := d.Ring0StackBase
	isUser := d.IsUser

	procTable.Reap(idx)

	if stackBase != 0 {
		freePage(stackBase)
	}
	if isUser && ring0Base != 0 {
		freePage(ring0Base)
	}

	var discard uint32
	for {
		_, newIdx, switched := procTable.Schedule()
		if switched {
			if procTable.Slots[newIdx].IsUser {
				setKernelStack(procTable.Slots[newIdx].Ring0StackTop)
			}
			contextSwitch(&discard, procTable.Slots[newIdx].ESP)
			return
		}
		if procTable.RunningCount() == 0 {
			hlt()
			continue
		}
		return
	}
}
