// Package wm holds the window table, z-order, and hit-testing logic behind
// the core spec's §4.11 window manager. It is deliberately free of pixel
// operations (those live in kernel/wm.go, which overlays real
// heap-allocated backing buffers and the framebuffer); this package is the
// part with real invariants — at most one focused window, z-order is a
// permutation of visible indices, closing releases the slot — so it runs
// under the hosted Go toolchain.
package wm

const (
	BorderPx    = 3
	TitleBarPx  = 24
	TaskbarPx   = 36
	CloseBoxPx  = 16
	MinOnScreen = 40
	MaxTitle    = 31
)

// Window is a window table slot. ContentW/ContentH are the backing-buffer
// dimensions (width-minus-border x height-minus-titlebar, per spec §3).
type Window struct {
	X, Y          int32
	W, H          int32
	Title         string
	Visible       bool
	Focused       bool
	Dirty         bool
	ContentW      int32
	ContentH      int32
}

// Manager owns the fixed-capacity window table and the z-order permutation
// (index 0 = backmost).
type Manager struct {
	Windows      []Window
	Slots        []bool // true where Windows[i] is a live (allocated) slot
	ZOrder       []int
	ScreenW      int32
	ScreenH      int32
}

// NewManager creates a manager for a fixed-capacity table of `capacity`
// windows over a screen of the given size.
func NewManager(capacity int, screenW, screenH int32) *Manager {
	return &Manager{
		Windows: make([]Window, capacity),
		Slots:   make([]bool, capacity),
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

func clampTitle(title string) string {
	if len(title) > MaxTitle {
		return title[:MaxTitle]
	}
	return title
}

// Create allocates the first unused slot, computes its content dimensions,
// places it at the top of the z-order, and focuses it (unfocusing all
// others). Returns (-1, false) if every slot is in use — the caller
// propagates this as create_window failure.
func (m *Manager) Create(x, y, w, h int32, title string) (int, bool) {
	for i := range m.Slots {
		if m.Slots[i] {
			continue
		}
		m.Slots[i] = true
		m.Windows[i] = Window{
			X: x, Y: y, W: w, H: h,
			Title:    clampTitle(title),
			Visible:  true,
			ContentW: w - 2*BorderPx,
			ContentH: h - TitleBarPx - BorderPx,
			Dirty:    true,
		}
		m.focus(i)
		m.ZOrder = append(m.ZOrder, i)
		return i, true
	}
	return -1, false
}

// Destroy removes idx from the z-order and releases its slot. The caller
// is responsible for freeing the heap-backed buffer this slot owned.
func (m *Manager) Destroy(idx int) {
	if idx < 0 || idx >= len(m.Slots) || !m.Slots[idx] {
		return
	}
	for i, z := range m.ZOrder {
		if z == idx {
			m.ZOrder = append(m.ZOrder[:i], m.ZOrder[i+1:]...)
			break
		}
	}
	wasFocused := m.Windows[idx].Focused
	m.Slots[idx] = false
	m.Windows[idx] = Window{}
	if wasFocused && len(m.ZOrder) > 0 {
		m.focus(m.ZOrder[len(m.ZOrder)-1])
	}
}

func (m *Manager) focus(idx int) {
	for i := range m.Windows {
		m.Windows[i].Focused = false
	}
	m.Windows[idx].Focused = true
}

// BringToFront moves idx to the top of the z-order and focuses it.
func (m *Manager) BringToFront(idx int) {
	for i, z := range m.ZOrder {
		if z == idx {
			m.ZOrder = append(m.ZOrder[:i], m.ZOrder[i+1:]...)
			break
		}
	}
	m.ZOrder = append(m.ZOrder, idx)
	m.focus(idx)
}

// HitAction identifies what a point-and-click landed on.
type HitAction int

const (
	HitNone HitAction = iota
	HitTaskbarButton
	HitClose
	HitTitleBar
	HitContent
)

// HitTest implements the front-to-back rule from spec §4.11: taskbar
// button under the cursor first (handled by the caller, which knows the
// button layout); else the topmost window containing the cursor, with the
// close region (top-right 16x16 of the title bar) and the title bar tested
// before general content.
func (m *Manager) HitTest(cx, cy int32) (windowIdx int, action HitAction) {
	if cy >= m.ScreenH-TaskbarPx {
		return -1, HitTaskbarButton
	}
	for i := len(m.ZOrder) - 1; i >= 0; i-- {
		idx := m.ZOrder[i]
		w := m.Windows[idx]
		if !w.Visible {
			continue
		}
		if cx < w.X || cx >= w.X+w.W || cy < w.Y || cy >= w.Y+w.H {
			continue
		}
		m.BringToFront(idx)
		if cy < w.Y+TitleBarPx {
			closeX0 := w.X + w.W - CloseBoxPx
			if cx >= closeX0 && cy < w.Y+CloseBoxPx {
				return idx, HitClose
			}
			return idx, HitTitleBar
		}
		return idx, HitContent
	}
	return -1, HitNone
}

// DragTo moves window idx by (dx, dy), clamping so at least MinOnScreen
// pixels remain on-screen and the title bar stays above the taskbar (spec
// §4.11 drag clamp rule).
func (m *Manager) DragTo(idx int, dx, dy int32) {
	if idx < 0 || idx >= len(m.Windows) || !m.Slots[idx] {
		return
	}
	w := &m.Windows[idx]
	nx := w.X + dx
	ny := w.Y + dy

	if nx < MinOnScreen-w.W {
		nx = MinOnScreen - w.W
	}
	if nx > m.ScreenW-MinOnScreen {
		nx = m.ScreenW - MinOnScreen
	}
	if ny < 0 {
		ny = 0
	}
	if ny > m.ScreenH-TaskbarPx-TitleBarPx {
		ny = m.ScreenH - TaskbarPx - TitleBarPx
	}
	w.X = nx
	w.Y = ny
	w.Dirty = true
}

// NumWindows reports how many slots are currently live.
func (m *Manager) NumWindows() int {
	n := 0
	for _, s := range m.Slots {
		if s {
			n++
		}
	}
	return n
}
