// Package state holds the menu-level store shared by one navigation session.
package state

import (
	"sync"

	"github.com/mchmarny/sidenav/pkg/level"
)

// Store holds the current menu level. It has one writer (the route
// classifier) and any number of readers and subscribers.
type Store struct {
	mu     sync.RWMutex
	level  level.Level
	subs   map[uint64]func(level.Level)
	nextID uint64
}

// New returns a store starting at initial.
func New(initial level.Level) *Store {
	return &Store{
		level: initial,
		subs:  make(map[uint64]func(level.Level)),
	}
}

// MenuLevel returns the current menu level.
func (s *Store) MenuLevel() level.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.level
}

// SetMenuLevel replaces the current menu level and notifies subscribers.
// Subscribers run on the caller's goroutine after the lock is released.
func (s *Store) SetMenuLevel(l level.Level) {
	s.mu.Lock()
	s.level = l
	subs := make([]func(level.Level), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(l)
	}
}

// Subscribe registers fn to be called on every SetMenuLevel.
// The returned function removes the subscription and is safe to call twice.
func (s *Store) Subscribe(fn func(level.Level)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
