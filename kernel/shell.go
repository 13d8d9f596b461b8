package main

import "kernel386/internal/proctable"

// The text shell: the fallback UI when no bootinfo framebuffer handoff
// is present (spec §6), and the supplemental command set the distilled
// spec dropped (SPEC_FULL.md §5), grounded on
// original_source/kernel/shell.c's command table and reboot sequence.

const shellCmdBufSize = 256

var (
	shellBuf [shellCmdBufSize]byte
	shellLen int
)

func shellPrompt() {
	termPutString("myos> ")
}

func shellRun() {
	termPutString("\nWelcome to MyOS Shell! Type 'help' for commands.\n\n")
	shellPrompt()

	for {
		c := getchar()
		switch {
		case c == '\n':
			termPutChar('\n')
			shellExecute(string(shellBuf[:shellLen]))
			shellLen = 0
			shellPrompt()

		case c == '\b':
			if shellLen > 0 {
				shellLen--
				termPutChar('\b')
			}

		case c >= ' ' && shellLen < shellCmdBufSize-1:
			shellBuf[shellLen] = c
			shellLen++
			termPutChar(c)
		}
	}
}

func splitCommand(line string) (cmd, args string) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	line = line[i:]
	sp := -1
	for i := range line {
		if line[i] == ' ' {
			sp = i
			break
		}
	}
	if sp < 0 {
		return line, ""
	}
	args = line[sp+1:]
	for len(args) > 0 && args[0] == ' ' {
		args = args[1:]
	}
	return line[:sp], args
}

func shellExecute(line string) {
	cmd, args := splitCommand(line)
	if cmd == "" {
		return
	}
	switch cmd {
	case "help":
		cmdHelp()
	case "clear":
		terminalInit()
	case "reboot":
		cmdReboot()
	case "meminfo":
		cmdMeminfo()
	case "echo":
		termPutString(args)
		termPutString("\n")
	case "ls":
		cmdLs()
	case "cat":
		cmdCat(args)
	case "tasks":
		cmdTasks()
	case "demo":
		cmdDemo()
	case "uname":
		termPutString("MyOS v0.2.0 (x86 i386) - built with love and assembly\n")
	default:
		termPutString("Unknown command: ")
		termPutString(cmd)
		termPutString("\nType 'help' for available commands.\n")
	}
}

func cmdHelp() {
	termPutString("Available commands:\n")
	termPutString("  help     - Show this help message\n")
	termPutString("  clear    - Clear the screen\n")
	termPutString("  reboot   - Reboot the system\n")
	termPutString("  meminfo  - Show memory information\n")
	termPutString("  echo     - Print text to screen\n")
	termPutString("  ls       - List files on disk\n")
	termPutString("  cat      - Display file contents\n")
	termPutString("  tasks    - Show running processes\n")
	termPutString("  demo     - Start multitasking demo\n")
	termPutString("  uname    - Show system info\n")
}

// cmdReboot pulses the keyboard controller's CPU-reset line (spec §6):
// drain any pending status bit, then write 0xFE to port 0x64.
func cmdReboot() {
	termPutString("Rebooting...\n")
	for inb(ps2StatusPort)&0x02 != 0 {
		inb(ps2DataPort)
	}
	outb(0x64, 0xFE)
	for {
		hlt()
	}
}

func cmdMeminfo() {
	termPutString("Memory Information:\n")
	termPutString("  Physical pages: ")
	termPutString(decimalString(totalPages()))
	termPutString(" total, ")
	termPutString(decimalString(freePages()))
	termPutString(" free\n")
	termPutString("  Heap: ")
	termPutString(decimalString(heapUsedBytes()))
	termPutString(" bytes used, ")
	termPutString(decimalString(heapFreeBytes()))
	termPutString(" bytes free\n")

	p := kmalloc(128)
	if p != nil {
		termPutString("  Alloc test: kmalloc(128) [OK]\n")
		kfree(p)
	} else {
		termPutString("  Alloc test: FAILED\n")
	}
}

func cmdLs() {
	entries, ok := fsListRoot(32)
	if !ok {
		termPutString("No filesystem mounted.\n")
		termPutString("Attach a FAT16 disk image as secondary IDE drive.\n")
		return
	}
	if len(entries) == 0 {
		termPutString("(empty directory)\n")
		return
	}
	termPutString("Name            Size     Attr\n")
	termPutString("-------------------------------\n")
	for _, e := range entries {
		termPutString(e.Name)
		for i := len(e.Name); i < 16; i++ {
			termPutChar(' ')
		}
		size := decimalString(e.Size)
		termPutString(size)
		for i := len(size); i < 9; i++ {
			termPutChar(' ')
		}
		attr := hex8(e.Attr)
		termPutString(string(attr[:]))
		termPutString("\n")
	}
	termPutString("\n")
	termPutString(decimalString(uint32(len(entries))))
	termPutString(" file(s)\n")
}

func cmdCat(filename string) {
	if filename == "" {
		termPutString("Usage: cat <filename>\n")
		return
	}
	buf := make([]byte, 4096)
	n, ok := fsReadFile(filename, buf)
	if !ok {
		termPutString("File not found: ")
		termPutString(filename)
		termPutString("\n")
		return
	}
	termPutString(string(buf[:n]))
	if n > 0 && buf[n-1] != '\n' {
		termPutString("\n")
	}
}

func cmdTasks() {
	if procTable == nil || !procTable.Multitask {
		termPutString("Multitasking not initialized.\n")
		return
	}
	termPutString("PID  State      Name\n")
	termPutString("------------------------\n")
	for i := range procTable.Slots {
		d := &procTable.Slots[i]
		if d.State == proctable.Unused {
			continue
		}
		termPutString(decimalString(uint32(d.ID)))
		termPutString("    ")
		termPutString(stateLabel(d.State))
		termPutString(" ")
		termPutString(d.Name)
		termPutString("\n")
	}
	termPutString("\nActive processes: ")
	termPutString(decimalString(uint32(procTable.RunningCount())))
	termPutString("\n")
}

func stateLabel(s proctable.State) string {
	switch s {
	case proctable.Running:
		return "RUNNING   "
	case proctable.Ready:
		return "READY     "
	case proctable.Terminated:
		return "DONE      "
	default:
		return "???       "
	}
}
