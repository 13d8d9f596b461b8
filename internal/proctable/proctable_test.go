package proctable

import "testing"

func TestAtMostOneRunning(t *testing.T) {
	tb := NewTable()
	tb.Multitask = true
	a, _ := tb.Alloc()
	b, _ := tb.Alloc()
	_ = a
	_ = b

	for i := 0; i < 20; i++ {
		tb.Schedule()
		if tb.RunningCount() > 1 {
			t.Fatalf("more than one running descriptor after %d schedules", i)
		}
	}
}

func TestRoundRobinFairness(t *testing.T) {
	tb := NewTable()
	tb.Multitask = true
	tb.Alloc() // slot 1
	tb.Alloc() // slot 2

	counts := map[int]int{}
	counts[tb.Current]++
	for i := 0; i < 999; i++ {
		_, newIdx, _ := tb.Schedule()
		counts[newIdx]++
	}
	for slot, c := range counts {
		if c < 200 {
			t.Fatalf("slot %d ran only %d/1000 ticks, expected fair round robin", slot, c)
		}
	}
}

func TestScheduleNoopWhenNoneReady(t *testing.T) {
	tb := NewTable()
	tb.Multitask = true
	old, next, switched := tb.Schedule()
	if switched || old != next {
		t.Fatal("expected no-op schedule when only the current slot exists")
	}
}

func TestScheduleDisabledMultitasking(t *testing.T) {
	tb := NewTable()
	tb.Alloc()
	_, _, switched := tb.Schedule()
	if switched {
		t.Fatal("schedule must no-op when multitasking is disabled")
	}
}

func TestExitReapAllocCycle(t *testing.T) {
	tb := NewTable()
	idx, _ := tb.Alloc()
	tb.Exit(idx)
	if tb.Slots[idx].State != Terminated {
		t.Fatal("expected terminated state")
	}
	tb.Reap(idx)
	if tb.Slots[idx].State != Unused {
		t.Fatal("expected unused state after reap")
	}
	idx2, ok := tb.Alloc()
	if !ok || idx2 != idx {
		t.Fatalf("expected reaped slot %d to be reused, got %d ok=%v", idx, idx2, ok)
	}
}

func TestAllocExhaustion(t *testing.T) {
	tb := NewTable()
	n := 0
	for {
		if _, ok := tb.Alloc(); !ok {
			break
		}
		n++
		if n > MaxProcs {
			t.Fatal("alloc did not respect MaxProcs cap")
		}
	}
	if n != MaxProcs-1 { // slot 0 already running
		t.Fatalf("expected %d allocations, got %d", MaxProcs-1, n)
	}
}
