// Package users implements the fixed-size, round-robin user table the
// dispatcher scans once per tick for the next user with a complete command.
package users

import "github.com/miseqsprime/neolith/interactive"

// Table is a fixed-size indexable collection of connected users. Slot i
// either holds a live *interactive.State or is empty (nil).
type Table struct {
	slots []*interactive.State
	// next is the rotation cursor. Its decrement discipline is preserved
	// verbatim from the original driver: `if next-- == 0 { next = size-1 }`,
	// which visits the same slot sequence as `next = (next - 1 + size) % size`.
	// The visitation-order tests here and in the dispatcher pin that order.
	next int
}

// NewTable allocates a table with the given fixed capacity.
func NewTable(size int) *Table {
	return &Table{slots: make([]*interactive.State, size)}
}

// Size returns the table's fixed capacity.
func (t *Table) Size() int { return len(t.slots) }

// At returns the state in slot i, or nil.
func (t *Table) At(i int) *interactive.State { return t.slots[i] }

// Put installs ip in slot i, replacing whatever was there.
func (t *Table) Put(i int, ip *interactive.State) { t.slots[i] = ip }

// Remove clears slot i.
func (t *Table) Remove(i int) { t.slots[i] = nil }

// Add installs ip in the first empty slot, returning its index, or -1 if
// the table is full.
func (t *Table) Add(ip *interactive.State) int {
	for i, s := range t.slots {
		if s == nil {
			t.slots[i] = ip
			return i
		}
	}
	return -1
}

// Cursor returns the current rotation cursor position.
func (t *Table) Cursor() int { return t.next }

// SetCursor forces the rotation cursor, used only by tests that need to
// pin down a starting visitation order.
func (t *Table) SetCursor(i int) { t.next = i }

// stepCursor applies the original driver's decrement-then-wrap step and
// returns the slot index that was just examined (the cursor value before
// the step).
func (t *Table) stepCursor() int {
	examined := t.next
	if t.next == 0 {
		t.next = len(t.slots) - 1
	} else {
		t.next--
	}
	return examined
}

// Visit scans at most Size() slots starting at the current cursor,
// decrementing (with wrap) once per slot examined, calling fn on each
// non-nil slot. fn returns true to stop the scan (the caller selected this
// user). In the original, the selected iteration breaks before reaching its
// own decrement, so only the single step already taken to reach that slot
// applies to it; Visit matches this by stepping once per examined slot,
// including the selected one, and nothing more. If fn never returns true,
// Visit returns (-1, false) having stepped the cursor once per slot as
// specified.
func (t *Table) Visit(fn func(i int, ip *interactive.State) bool) (int, bool) {
	n := len(t.slots)
	for count := 0; count < n; count++ {
		i := t.stepCursor()
		ip := t.slots[i]
		if ip != nil && fn(i, ip) {
			return i, true
		}
	}
	return -1, false
}
