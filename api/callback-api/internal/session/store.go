// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_session

import (
	"context"
	"sync"
	"time"

	"github.com/curavoice/pkg/commons"
)

// Store holds the live call sessions. It must be safe for concurrent webhook
// deliveries on different numbers and must serialize access per number so
// two racing events for the same call cannot lose an update. There is no
// persistence: a process restart drops every session.
type Store interface {
	// Put stores (or overwrites) the session for its phone number.
	// Overwriting an active session is deliberate last-writer-wins: a second
	// request-callback for the same number resets the call context.
	Put(s *CallSession)

	// Get returns a snapshot of the session for the number. Mutations must
	// go through Update; the snapshot is a copy.
	Get(phoneNumber string) (CallSession, bool)

	// Update applies fn to the session under the store lock and stamps
	// UpdatedDate. Returns false when no session exists for the number.
	Update(phoneNumber string, fn func(*CallSession)) bool

	// Delete removes the session for the number, if any.
	Delete(phoneNumber string)

	// Len returns the number of stored sessions, terminal ones included.
	Len() int

	// Sweep removes sessions not updated within ttl and returns how many
	// were dropped. Hardening hook for the janitor; never called on the
	// webhook path.
	Sweep(ttl time.Duration) int

	// StartJanitor sweeps on the given interval until ctx is done.
	StartJanitor(ctx context.Context, ttl, interval time.Duration)
}

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*CallSession
	logger   commons.Logger
}

// NewStore creates an in-memory session store.
func NewStore(logger commons.Logger) Store {
	return &memoryStore{
		sessions: make(map[string]*CallSession),
		logger:   logger,
	}
}

func (m *memoryStore) Put(s *CallSession) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if s.CreatedDate.IsZero() {
		s.CreatedDate = now
	}
	s.UpdatedDate = now

	cp := *s
	if prior, ok := m.sessions[s.PhoneNumber]; ok && !prior.IsTerminal() {
		m.logger.Warnf("overwriting active call session: phone=%s, priorStatus=%s", s.PhoneNumber, prior.Status)
	}
	m.sessions[s.PhoneNumber] = &cp
}

func (m *memoryStore) Get(phoneNumber string) (CallSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[phoneNumber]
	if !ok {
		return CallSession{}, false
	}
	return *s, true
}

func (m *memoryStore) Update(phoneNumber string, fn func(*CallSession)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[phoneNumber]
	if !ok {
		return false
	}
	fn(s)
	s.UpdatedDate = time.Now()
	return true
}

func (m *memoryStore) Delete(phoneNumber string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, phoneNumber)
}

func (m *memoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *memoryStore) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for number, s := range m.sessions {
		if s.UpdatedDate.Before(cutoff) {
			delete(m.sessions, number)
			removed++
		}
	}
	return removed
}

func (m *memoryStore) StartJanitor(ctx context.Context, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.Sweep(ttl); removed > 0 {
					m.logger.Infof("session janitor removed %d stale sessions", removed)
				}
			}
		}
	}()
}
