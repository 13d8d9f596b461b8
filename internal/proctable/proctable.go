// Package proctable holds the process-descriptor table and the pure
// round-robin scheduling decision the core spec describes in §4.7. The
// actual register save/restore (context_switch) is a single cooperative
// assembly primitive that lives in kernel/context_switch_386.s; this
// package only decides which slot runs next and updates descriptor state,
// so the decision logic is hosted-testable without a CPU.
package proctable

// State is a process descriptor's lifecycle state.
type State int

const (
	Unused State = iota
	Ready
	Running
	Terminated
)

// Descriptor mirrors the core spec's process descriptor: identifier,
// state, saved stack pointer, owning stack base(s), ring flag, and
// optional ring-0 stack bounds for user processes.
type Descriptor struct {
	ID   int
	Name string
	State
	ESP uint32 // saved stack pointer (opaque to this package)

	StackBase uint32 // base of the ring-3 (or sole, for kernel threads) stack
	StackSize uint32

	IsUser        bool
	Ring0StackTop  uint32 // TSS esp0 value while this descriptor runs
	Ring0StackBase uint32
}

// MaxProcs is the fixed process-table capacity (spec: "up to N (e.g. 8)").
const MaxProcs = 8

// Table is the fixed-capacity process table plus the currently running
// slot. Slot 0 is reserved for the initial kernel thread per the spec
// invariant.
type Table struct {
	Slots      [MaxProcs]Descriptor
	Current    int
	Multitask  bool
}

// NewTable returns a table with every slot unused and slot 0 claimed as
// the initial kernel thread (the caller fills in its ESP/name).
func NewTable() *Table {
	t := &Table{}
	for i := range t.Slots {
		t.Slots[i].ID = i
		t.Slots[i].State = Unused
	}
	t.Slots[0].State = Running
	t.Slots[0].Name = "kernel"
	t.Current = 0
	return t
}

// Alloc finds the first Unused slot, marks it Ready, and returns its
// index. Returns (-1, false) when the table is full — callers propagate
// this as process_create failure (spec §4.12).
func (t *Table) Alloc() (int, bool) {
	for i := range t.Slots {
		if t.Slots[i].State == Unused {
			t.Slots[i].State = Ready
			return i, true
		}
	}
	return -1, false
}

// Schedule scans the table starting at Current+1 (mod MaxProcs) for a
// Ready descriptor. If none is found, or the only candidate is the
// currently running slot, or multitasking is disabled, it returns the
// current index unchanged and switched=false. Otherwise it marks the
// outgoing descriptor Ready (unless Terminated), the incoming Running,
// advances Current, and returns switched=true so the caller knows to
// invoke context_switch.
func (t *Table) Schedule() (oldIdx, newIdx int, switched bool) {
	oldIdx = t.Current
	if !t.Multitask {
		return oldIdx, oldIdx, false
	}

	for i := 1; i <= MaxProcs; i++ {
		cand := (t.Current + i) % MaxProcs
		if cand == t.Current {
			break
		}
		if t.Slots[cand].State == Ready {
			if t.Slots[t.Current].State == Running {
				t.Slots[t.Current].State = Ready
			}
			t.Slots[cand].State = Running
			t.Current = cand
			return oldIdx, cand, true
		}
	}
	return oldIdx, oldIdx, false
}

// Exit marks the slot Terminated. The caller (kernel/scheduler.go's
// terminateProcess) reads the stack bases, calls Reap, and then releases
// the stacks.
func (t *Table) Exit(idx int) {
	t.Slots[idx].State = Terminated
}

// Reap transitions a Terminated slot back to Unused, making it available
// to Alloc again.
func (t *Table) Reap(idx int) {
	if t.Slots[idx].State == Terminated {
		t.Slots[idx] = Descriptor{ID: idx, State: Unused}
	}
}

// RunningCount reports how many descriptors are currently Running — used
// by tests and invariant checks; must never exceed 1.
func (t *Table) RunningCount() int {
	n := 0
	for _, d := range t.Slots {
		if d.State == Running {
			n++
		}
	}
	return n
}
