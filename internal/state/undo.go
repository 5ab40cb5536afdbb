package state

import "sync"

// UndoStack is the linear per-session stroke history. The first entry is the
// blank surface and is never popped.
type UndoStack struct {
	mu      sync.RWMutex
	entries []Snapshot
}

func NewUndoStack() *UndoStack {
	return &UndoStack{entries: make([]Snapshot, 0, 16)}
}

func (u *UndoStack) Push(s Snapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries = append(u.entries, s)
}

// Pop discards the newest entry and returns the one now on top. It reports
// false and leaves the stack alone when only the initial entry remains.
func (u *UndoStack) Pop() (Snapshot, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.entries) <= 1 {
		return "", false
	}
	u.entries[len(u.entries)-1] = ""
	u.entries = u.entries[:len(u.entries)-1]
	return u.entries[len(u.entries)-1], true
}

// Top returns the newest entry.
func (u *UndoStack) Top() (Snapshot, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if len(u.entries) == 0 {
		return "", false
	}
	return u.entries[len(u.entries)-1], true
}

func (u *UndoStack) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.entries)
}
