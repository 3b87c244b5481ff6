package service

import (
	"log/slog"
	"sync"

	"cvp/internal/modules/navigation/domain"
)

// Navigator keeps a view state in sync with a History through one route
// table. Each dashboard gets its own Navigator over the shared History.
type Navigator struct {
	history *History
	table   domain.RouteTable
	logger  *slog.Logger

	mu          sync.Mutex
	state       domain.State
	applied     bool
	unsubscribe func()
	listeners   map[int]func(domain.State)
	nextID      int
}

func NewNavigator(history *History, table domain.RouteTable, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Navigator{
		history:   history,
		table:     table,
		logger:    logger,
		listeners: map[int]func(domain.State){},
	}
}

func (n *Navigator) Table() domain.RouteTable {
	return n.table
}

// Mount applies the current location and starts following history events.
// Mounting an already mounted navigator only returns its unmount.
func (n *Navigator) Mount() (unmount func()) {
	n.mu.Lock()
	if n.unsubscribe == nil {
		n.unsubscribe = n.history.Subscribe(n.onHistoryEvent)
	}
	n.mu.Unlock()

	n.ApplyRouteFromLocation()
	return n.unmount
}

func (n *Navigator) unmount() {
	n.mu.Lock()
	unsubscribe := n.unsubscribe
	n.unsubscribe = nil
	n.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (n *Navigator) Mounted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.unsubscribe != nil
}

func (n *Navigator) onHistoryEvent(event Event) {
	n.logger.Debug("history event", "kind", event.Kind.String(), "location", event.Location.String())
	n.ApplyRouteFromLocation()
}

// ApplyRouteFromLocation resolves the current location. Listeners hear about
// it only when the state actually changed.
func (n *Navigator) ApplyRouteFromLocation() domain.State {
	next := n.table.Resolve(n.history.Current(), n.logger)

	n.mu.Lock()
	changed := !n.applied || !n.state.Equal(next)
	n.state = next
	n.applied = true
	listeners := n.snapshot()
	n.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(next)
		}
	}
	return next
}

// NavigateTo pushes the canonical location of target and applies it. Every
// call creates a history entry, so back always returns to where the user was.
func (n *Navigator) NavigateTo(target domain.State) domain.State {
	loc := domain.Encode(target)
	n.history.Push(loc)
	n.logger.Debug("navigate", "location", loc.String())
	return n.ApplyRouteFromLocation()
}

// Back steps the history. A mounted navigator is updated by the popstate
// event; an unmounted one applies the route itself.
func (n *Navigator) Back() bool {
	moved := n.history.Back()
	if moved && !n.Mounted() {
		n.ApplyRouteFromLocation()
	}
	return moved
}

func (n *Navigator) Forward() bool {
	moved := n.history.Forward()
	if moved && !n.Mounted() {
		n.ApplyRouteFromLocation()
	}
	return moved
}

func (n *Navigator) State() domain.State {
	n.mu.Lock()
	state, applied := n.state, n.applied
	n.mu.Unlock()
	if !applied {
		return n.ApplyRouteFromLocation()
	}
	return state
}

func (n *Navigator) Location() domain.Location {
	return n.history.Current()
}

func (n *Navigator) OnChange(fn func(domain.State)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

func (n *Navigator) snapshot() []func(domain.State) {
	out := make([]func(domain.State), 0, len(n.listeners))
	for id := 1; id <= n.nextID; id++ {
		if fn, ok := n.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
