package service

import (
	"sync"

	"cvp/internal/modules/navigation/domain"
)

type EventKind int

const (
	// EventPopState fires when Back or Forward moves through the stack.
	EventPopState EventKind = iota + 1
	// EventHashChange fires when the location is set from outside the app,
	// e.g. a deep link typed into the palette.
	EventHashChange
)

func (k EventKind) String() string {
	switch k {
	case EventPopState:
		return "popstate"
	case EventHashChange:
		return "hashchange"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind     EventKind
	Location domain.Location
}

// History is an in-memory session history: a stack of locations and a
// cursor. Push and Replace are silent; Back, Forward and Assign notify
// subscribers after the lock is released.
type History struct {
	mu        sync.Mutex
	entries   []domain.Location
	index     int
	listeners map[int]func(Event)
	nextID    int
}

func NewHistory(initial domain.Location) *History {
	return &History{entries: []domain.Location{initial}, listeners: map[int]func(Event){}}
}

func (h *History) Current() domain.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) CanGoBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

func (h *History) CanGoForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// Push drops any forward entries and appends loc.
func (h *History) Push(loc domain.Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
}

func (h *History) Replace(loc domain.Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = loc
}

func (h *History) Back() bool {
	return h.move(-1)
}

func (h *History) Forward() bool {
	return h.move(1)
}

func (h *History) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	event := Event{Kind: EventPopState, Location: h.entries[next]}
	listeners := h.snapshot()
	h.mu.Unlock()

	dispatch(listeners, event)
	return true
}

// Assign pushes loc and fires EventHashChange.
func (h *History) Assign(loc domain.Location) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
	listeners := h.snapshot()
	h.mu.Unlock()

	dispatch(listeners, Event{Kind: EventHashChange, Location: loc})
}

func (h *History) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.listeners[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners, id)
		})
	}
}

func (h *History) ListenerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

func (h *History) snapshot() []func(Event) {
	out := make([]func(Event), 0, len(h.listeners))
	for id := 1; id <= h.nextID; id++ {
		if fn, ok := h.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func dispatch(listeners []func(Event), event Event) {
	for _, fn := range listeners {
		fn(event)
	}
}
