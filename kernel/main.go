package main

import (
	"unsafe"

	"kernel386/internal/eventqueue"
)

// bootStack is the kernel's initial stack, live before multitasking
// claims slot 0's ESP for itself. A boot-stage assembly stub (outside
// this package, the same way iansmith-mazarin's boot.s calls
// KernelMain directly rather than going through Go's normal runtime
// entry) is expected to set up a stack somewhere in identity-mapped
// memory and jump straight to kernelMain; bootStack gives it a known,
// statically-sized one if the bootloader hands off with SP unset.
var bootStack [16 * 1024]byte

func bootStackTop() uint32 {
	return uint32(uintptr(unsafe.Pointer(&bootStack[0]))) + uint32(len(bootStack))
}

// main exists only so the linker keeps kernelMain reachable; the real
// entry point is whatever physical address the bootloader jumps to,
// which points at kernelMain directly and never runs Go's usual
// runtime.main (spec's freestanding boundary: no goroutines, no GC).
func main() {
	kernelMain()
}

// kernelMain runs the boot sequence spec §2 lays out, leaves-first:
// descriptor tables, physical allocator, paging, framebuffer mapping,
// terminal, interrupt vectors + PIC, periodic timer, input drivers,
// heap, optional disk+FS, multitasking, syscall gate (already part of
// idtInit), event queue, then the window manager or text shell.
func kernelMain() {
	cli()

	top := bootStackTop()
	gdtInit(top)

	bi, haveBootinfo := readBootinfo()

	memBytes := uint32(64 * 1024 * 1024)
	if haveBootinfo && bi.MemSizeMiB > 0 {
		memBytes = bi.MemSizeMiB * 1024 * 1024
	}
	physMemInit(memBytes)
	pagingInit()

	haveFB := haveBootinfo && framebufferInit(bi)
	terminalInit()

	picRemap()
	idtInit()

	pitInit()
	keyboardInit()
	mouseInit(screenWidth, screenHeight)

	heapInit(uintptr(PhysMemStart))

	fsInit()

	multitaskInit(top)
	startMultitasking()

	eventsInit()

	if haveFB {
		wmInit()
		desktopLoop()
	} else {
		shellRun()
	}

	for {
		hlt()
	}
}

// desktopLoop drains the event queue into the window manager and
// recomposites the frame, the consumer side of the producer/consumer
// ring spec §4.10 describes. It never returns; SYS_EXIT from the last
// user process or an idle hlt loop are the only ways time passes here.
func desktopLoop() {
	for {
		handled := false
		for {
			e, ok := pollEvent()
			if !ok {
				break
			}
			handled = true
			if e.Kind == eventqueue.Timer {
				wmTick(e.Ticks)
			} else {
				wmHandleEvent(e)
			}
		}
		compositeFrame()
		if !handled {
			hlt()
		}
	}
}
