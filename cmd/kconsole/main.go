// Command kconsole is the serial-console side of the QEMU test
// harness: it tails a captured terminal transcript (what `qemu-system-i386
// -serial file:...` or a VGA-text scrape would produce from the
// kernel's own termPutString output) and turns the plain-text banners,
// panics, and shell prompts into structured log lines, so a CI job can
// grep for "level=ERROR" instead of parsing kernel text by hand.
//
// Styled on rcornwell-S370's command/reader package, which also reads
// a line-oriented operator console and routes it through a slog
// wrapper (util/logger) rather than printing raw text.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var panicLine = regexp.MustCompile(`^\*\*\* kernel panic: (.+) \(vector (0x[0-9A-Fa-f]+), error (0x[0-9A-Fa-f]+)\) at eip=(0x[0-9A-Fa-f]+) \*\*\*$`)

func main() {
	path := flag.String("in", "-", "transcript file to read, or - for stdin")
	failOnPanic := flag.Bool("fail-on-panic", true, "exit nonzero if a kernel panic line is seen")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kconsole -in transcript.log\n")
		fmt.Fprintf(os.Stderr, "Summarizes a kernel serial/VGA transcript as structured log lines.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var r io.Reader = os.Stdin
	if *path != "-" {
		f, err := os.Open(*path)
		if err != nil {
			logger.Error("opening transcript", "path", *path, "err", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	summary := summarize(r, logger)

	logger.Info("transcript summary",
		"lines", summary.lines,
		"panics", summary.panics,
		"shell_commands", summary.shellCommands,
		"demo_ticks_a", summary.demoTicksA,
		"demo_ticks_b", summary.demoTicksB,
	)

	if *failOnPanic && summary.panics > 0 {
		os.Exit(1)
	}
}

type summary struct {
	lines         int
	panics        int
	shellCommands int
	demoTicksA    int
	demoTicksB    int
}

// summarize classifies each transcript line the same way a human
// skimming kernel/shell.go and kernel/exceptions.go output would:
// the "myos> " prompt marks a command, "Task A:"/"Task B:" mark the
// demo's cooperative tick counters, and the panic banner is parsed
// into its vector/EIP fields.
func summarize(r io.Reader, logger *slog.Logger) summary {
	var s summary
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		s.lines++

		switch {
		case panicLine.MatchString(line):
			s.panics++
			logPanic(logger, line)
		case strings.HasPrefix(line, "myos> "):
			s.shellCommands++
		case strings.HasPrefix(line, "Task A: "):
			s.demoTicksA++
		case strings.HasPrefix(line, "Task B: "):
			s.demoTicksB++
		}
	}
	return s
}

func logPanic(logger *slog.Logger, line string) {
	m := panicLine.FindStringSubmatch(line)
	if m == nil {
		logger.Warn("unparsed panic line", "line", line)
		return
	}
	vector, _ := strconv.ParseUint(strings.TrimPrefix(m[2], "0x"), 16, 32)
	eip, _ := strconv.ParseUint(strings.TrimPrefix(m[4], "0x"), 16, 32)
	logger.Error("kernel panic",
		"fault", m[1],
		"vector", vector,
		"error_code", m[3],
		"eip", fmt.Sprintf("0x%08x", eip),
	)
}
