package service

import (
	"sync"

	"cvp/internal/modules/session/domain"
)

// State is the single writer of the session. Every transition is reported to
// subscribers synchronously, after the lock is released.
type State struct {
	mu        sync.Mutex
	session   domain.Session
	listeners map[int]func(domain.Session)
	nextID    int
}

func NewState() *State {
	return &State{listeners: map[int]func(domain.Session){}}
}

func (s *State) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySession(s.session)
}

func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}

func (s *State) Set(token string, user domain.User) {
	s.update(func(cur *domain.Session) {
		cur.Token = token
		cur.User = &user
	})
}

func (s *State) SetUser(user domain.User) {
	s.update(func(cur *domain.Session) {
		cur.User = &user
	})
}

// Clear always notifies, so a half written store is cleaned up even when
// memory was already empty.
func (s *State) Clear() {
	s.update(func(cur *domain.Session) {
		*cur = domain.Session{}
	})
}

func (s *State) Subscribe(fn func(domain.Session)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *State) update(mutate func(*domain.Session)) {
	s.mu.Lock()
	mutate(&s.session)
	snapshot := copySession(s.session)
	listeners := make([]func(domain.Session), 0, len(s.listeners))
	for id := 1; id <= s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func copySession(in domain.Session) domain.Session {
	out := domain.Session{Token: in.Token}
	if in.User != nil {
		user := *in.User
		out.User = &user
	}
	return out
}
