package wm

import "testing"

func TestAtMostOneFocused(t *testing.T) {
	m := NewManager(4, 800, 600)
	m.Create(0, 0, 100, 100, "a")
	m.Create(10, 10, 100, 100, "b")
	m.Create(20, 20, 100, 100, "c")

	n := 0
	for _, w := range m.Windows {
		if w.Focused {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected exactly one focused window, got %d", n)
	}
}

func TestZOrderIsPermutationOfVisible(t *testing.T) {
	m := NewManager(4, 800, 600)
	a, _ := m.Create(0, 0, 50, 50, "a")
	m.Create(0, 0, 50, 50, "b")
	m.Destroy(a)

	if len(m.ZOrder) != m.NumWindows() {
		t.Fatalf("z-order length %d != visible window count %d", len(m.ZOrder), m.NumWindows())
	}
	for _, idx := range m.ZOrder {
		if !m.Slots[idx] {
			t.Fatalf("z-order references destroyed slot %d", idx)
		}
	}
}

func TestDestroyReleasesSlot(t *testing.T) {
	m := NewManager(2, 800, 600)
	a, _ := m.Create(0, 0, 50, 50, "a")
	m.Destroy(a)
	b, ok := m.Create(1, 1, 60, 60, "b")
	if !ok || b != a {
		t.Fatalf("expected destroyed slot to be reused, got %d ok=%v", b, ok)
	}
}

func TestCreateFailsWhenTableFull(t *testing.T) {
	m := NewManager(1, 800, 600)
	if _, ok := m.Create(0, 0, 10, 10, "a"); !ok {
		t.Fatal("first create should succeed")
	}
	if _, ok := m.Create(0, 0, 10, 10, "b"); ok {
		t.Fatal("create should fail once table is full")
	}
}

func TestWindowDragScenario(t *testing.T) {
	m := NewManager(4, 800, 600)
	idx, _ := m.Create(50, 50, 300, 200, "demo")

	hitIdx, action := m.HitTest(60, 55)
	if hitIdx != idx || action != HitTitleBar {
		t.Fatalf("expected title-bar hit on window %d, got idx=%d action=%v", idx, hitIdx, action)
	}

	m.DragTo(idx, 260-60, 255-55)

	w := m.Windows[idx]
	if w.X != 250 || w.Y != 250 {
		t.Fatalf("expected final position (250,250), got (%d,%d)", w.X, w.Y)
	}
	if m.ZOrder[len(m.ZOrder)-1] != idx || !w.Focused {
		t.Fatal("dragged window should be topmost and focused")
	}
}

func TestCloseRegionHit(t *testing.T) {
	m := NewManager(4, 800, 600)
	idx, _ := m.Create(0, 0, 100, 100, "x")
	_, action := m.HitTest(100-5, 5)
	if action != HitClose {
		t.Fatalf("expected close hit, got %v", action)
	}
	_ = idx
}

func TestTaskbarHitTakesPriority(t *testing.T) {
	m := NewManager(4, 800, 600)
	m.Create(0, 560, 800, 40, "covers-taskbar-area")
	_, action := m.HitTest(10, 590)
	if action != HitTaskbarButton {
		t.Fatal("clicks within the taskbar strip must report HitTaskbarButton regardless of window overlap")
	}
}
