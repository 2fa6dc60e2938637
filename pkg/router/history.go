package router

// HistoryEntry is one session history entry.
type HistoryEntry struct {
	// Path is the navigated target, query included.
	Path string

	// Saved is the scroll offset recorded when the entry was left.
	// The navigator never restores it.
	Saved ScrollPosition
}

// History is the session history the navigator records transitions in.
// In a browser this is the History API; MemoryHistory backs server
// sessions and tests.
type History interface {
	// Current returns the active entry, or false if history is empty.
	Current() (HistoryEntry, bool)

	// Push appends an entry after the current one, discarding any
	// forward entries.
	Push(entry HistoryEntry)

	// Replace swaps the current entry, or pushes when history is empty.
	Replace(entry HistoryEntry)

	// SaveScroll records the scroll offset of the current entry.
	SaveScroll(pos ScrollPosition)

	// Peek returns the entry delta steps away (-1 back, +1 forward)
	// without moving.
	Peek(delta int) (HistoryEntry, bool)

	// Go moves delta steps and returns the new current entry.
	Go(delta int) (HistoryEntry, bool)
}

// MemoryHistory is an in-memory History.
// It is not safe for concurrent use; the Navigator serializes access.
type MemoryHistory struct {
	entries []HistoryEntry
	index   int
}

// NewMemoryHistory creates an empty history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		entries: make([]HistoryEntry, 0),
		index:   -1,
	}
}

// Current implements History.
func (h *MemoryHistory) Current() (HistoryEntry, bool) {
	if h.index < 0 {
		return HistoryEntry{}, false
	}
	return h.entries[h.index], true
}

// Push implements History.
func (h *MemoryHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries[:h.index+1], entry)
	h.index = len(h.entries) - 1
}

// Replace implements History.
func (h *MemoryHistory) Replace(entry HistoryEntry) {
	if h.index < 0 {
		h.Push(entry)
		return
	}
	h.entries[h.index] = entry
}

// SaveScroll implements History.
func (h *MemoryHistory) SaveScroll(pos ScrollPosition) {
	if h.index < 0 {
		return
	}
	h.entries[h.index].Saved = pos
}

// Peek implements History.
func (h *MemoryHistory) Peek(delta int) (HistoryEntry, bool) {
	i := h.index + delta
	if h.index < 0 || i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, false
	}
	return h.entries[i], true
}

// Go implements History.
func (h *MemoryHistory) Go(delta int) (HistoryEntry, bool) {
	if _, ok := h.Peek(delta); !ok {
		return HistoryEntry{}, false
	}
	h.index += delta
	return h.entries[h.index], true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	return len(h.entries)
}

// Index returns the position of the current entry, or -1 when empty.
func (h *MemoryHistory) Index() int {
	return h.index
}
